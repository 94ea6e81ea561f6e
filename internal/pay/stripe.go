package pay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Currency is fixed across the whole system; all amounts are pence.
const Currency = "gbp"

// Client is a minimal Stripe API client covering payment intents and hosted
// checkout sessions.
type Client struct {
	httpClient *http.Client
	secretKey  string
	baseURL    string
}

// NewClient constructs a new Stripe client.
func NewClient(httpClient *http.Client, secretKey string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		httpClient: httpClient,
		secretKey:  secretKey,
		baseURL:    "https://api.stripe.com/v1",
	}
}

// SetBaseURL overrides the API endpoint, used by tests.
func (c *Client) SetBaseURL(u string) { c.baseURL = u }

// CreateIntentRequest describes parameters for payment intent creation.
type CreateIntentRequest struct {
	Amount        int
	Currency      string
	TransferGroup string
	Metadata      map[string]string
}

// CreateIntentResponse contains provider data needed by the client portal.
type CreateIntentResponse struct {
	IntentID     string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

// CreatePaymentIntent creates a payment intent via the Stripe API.
func (c *Client) CreatePaymentIntent(ctx context.Context, req CreateIntentRequest) (CreateIntentResponse, error) {
	if req.Amount <= 0 {
		return CreateIntentResponse{}, fmt.Errorf("stripe: amount must be a positive integer in minor units")
	}
	form := url.Values{}
	form.Set("amount", strconv.Itoa(req.Amount))
	form.Set("currency", req.Currency)
	form.Set("automatic_payment_methods[enabled]", "true")
	if req.TransferGroup != "" {
		form.Set("transfer_group", req.TransferGroup)
	}
	for k, v := range req.Metadata {
		form.Set("metadata["+k+"]", v)
	}

	var resp CreateIntentResponse
	if err := c.post(ctx, "/payment_intents", form, &resp); err != nil {
		return CreateIntentResponse{}, err
	}
	return resp, nil
}

// CreateSessionRequest describes parameters for hosted checkout creation.
type CreateSessionRequest struct {
	Amount     int
	Currency   string
	Label      string
	InvoiceRef string
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

// CreateSessionResponse contains the redirect URL for hosted checkout.
type CreateSessionResponse struct {
	SessionID string `json:"id"`
	URL       string `json:"url"`
}

// CreateCheckoutSession creates a hosted checkout session via the Stripe API.
func (c *Client) CreateCheckoutSession(ctx context.Context, req CreateSessionRequest) (CreateSessionResponse, error) {
	if req.Amount <= 0 {
		return CreateSessionResponse{}, fmt.Errorf("stripe: amount must be a positive integer in minor units")
	}
	label := req.Label
	if label == "" {
		label = "Project Payment"
	}
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", req.Currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.Itoa(req.Amount))
	form.Set("line_items[0][price_data][product_data][name]", label)
	if desc := strings.TrimSpace("Invoice " + req.InvoiceRef); desc != "Invoice" {
		form.Set("line_items[0][price_data][product_data][description]", desc)
	}
	form.Set("success_url", req.SuccessURL)
	form.Set("cancel_url", req.CancelURL)
	for k, v := range req.Metadata {
		form.Set("metadata["+k+"]", v)
		form.Set("payment_intent_data[metadata]["+k+"]", v)
	}

	var resp CreateSessionResponse
	if err := c.post(ctx, "/checkout/sessions", form, &resp); err != nil {
		return CreateSessionResponse{}, err
	}
	return resp, nil
}

func (c *Client) post(ctx context.Context, path string, form url.Values, out interface{}) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		// Gateway error messages propagate verbatim to the caller.
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		body, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("stripe: %s", apiErr.Error.Message)
		}
		return fmt.Errorf("stripe: unexpected status %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
