package pay

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreatePaymentIntent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/payment_intents" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk_test_123" {
			t.Errorf("unexpected auth header %q", got)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("ParseForm: %v", err)
		}
		if got := r.PostForm.Get("amount"); got != "37500" {
			t.Errorf("unexpected amount %q", got)
		}
		if got := r.PostForm.Get("currency"); got != "gbp" {
			t.Errorf("unexpected currency %q", got)
		}
		if got := r.PostForm.Get("metadata[invoiceId]"); got != "2" {
			t.Errorf("metadata missing, got %q", got)
		}
		w.Write([]byte(`{"id":"pi_1","client_secret":"pi_1_secret_x"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), "sk_test_123")
	c.SetBaseURL(srv.URL)

	resp, err := c.CreatePaymentIntent(context.Background(), CreateIntentRequest{
		Amount:   37500,
		Currency: Currency,
		Metadata: map[string]string{"projectId": "4", "invoiceId": "2"},
	})
	if err != nil {
		t.Fatalf("CreatePaymentIntent: %v", err)
	}
	if resp.ClientSecret != "pi_1_secret_x" || resp.IntentID != "pi_1" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestCreatePaymentIntentRejectsNonPositiveAmount(t *testing.T) {
	c := NewClient(nil, "sk_test_123")
	if _, err := c.CreatePaymentIntent(context.Background(), CreateIntentRequest{Amount: 0, Currency: Currency}); err == nil {
		t.Fatal("expected error for zero amount")
	}
}

func TestCreateCheckoutSessionPropagatesGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"message":"Your card was declined."}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), "sk_test_123")
	c.SetBaseURL(srv.URL)

	_, err := c.CreateCheckoutSession(context.Background(), CreateSessionRequest{
		Amount:     100,
		Currency:   Currency,
		SuccessURL: "https://example.com/ok",
		CancelURL:  "https://example.com/no",
	})
	if err == nil {
		t.Fatal("expected gateway error")
	}
	if got := err.Error(); got != "stripe: Your card was declined." {
		t.Fatalf("gateway message not propagated verbatim: %q", got)
	}
}
