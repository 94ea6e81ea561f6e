package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"studioBack/internal/models"
	"studioBack/internal/pay"
	"studioBack/internal/services"
)

func TestPaymentErrorStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{models.ErrNotOwner, http.StatusForbidden},
		{models.ErrProjectNotFound, http.StatusNotFound},
		{models.ErrInvoiceNotFound, http.StatusNotFound},
	}
	for _, c := range cases {
		w := httptest.NewRecorder()
		writePaymentError(w, c.err)
		if w.Code != c.want {
			t.Errorf("writePaymentError(%v) = %d, want %d", c.err, w.Code, c.want)
		}
	}
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	h := &PaymentHandler{Service: &services.PaymentService{}, WebhookSecret: "whsec_test"}

	body := `{"id":"evt_1","type":"payment_intent.succeeded","data":{"object":{"id":"pi_1"}}}`

	t.Run("missing header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/payments/webhook", strings.NewReader(body))
		w := httptest.NewRecorder()
		h.Webhook(w, r)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected %d, got %d", http.StatusBadRequest, w.Code)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/payments/webhook", strings.NewReader(body))
		r.Header.Set("Stripe-Signature", pay.SignPayload([]byte(body), "whsec_other", time.Now()))
		w := httptest.NewRecorder()
		h.Webhook(w, r)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected %d, got %d", http.StatusBadRequest, w.Code)
		}
	})
}

func TestWebhookIgnoresUnhandledEvents(t *testing.T) {
	h := &PaymentHandler{Service: &services.PaymentService{}, WebhookSecret: "whsec_test"}

	body := `{"id":"evt_2","type":"invoice.created","data":{"object":{"id":"in_1"}}}`
	r := httptest.NewRequest(http.MethodPost, "/payments/webhook", strings.NewReader(body))
	r.Header.Set("Stripe-Signature", pay.SignPayload([]byte(body), "whsec_test", time.Now()))
	w := httptest.NewRecorder()
	h.Webhook(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, w.Code)
	}
}
