package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"studioBack/internal/lifecycle"
	"studioBack/internal/models"
	"studioBack/internal/pay"
	"studioBack/internal/services"
)

type PaymentHandler struct {
	Service       *services.PaymentService
	WebhookSecret string
}

// POST /admin/projects/:id/invoice
// { "quote_amount_pence": 75000 }
func (h *PaymentHandler) GenerateInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	var body struct {
		QuoteAmountPence int `json:"quote_amount_pence"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.Service.GenerateInvoice(r.Context(), id, body.QuoteAmountPence)
	if err != nil {
		writePaymentError(w, err)
		return
	}
	json.NewEncoder(w).Encode(result)
}

// POST /payments/deposit
// { "project_id": 4, "invoice_id": 2 }
func (h *PaymentHandler) CreateDeposit(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProjectID int `json:"project_id"`
		InvoiceID int `json:"invoice_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if body.ProjectID == 0 || body.InvoiceID == 0 {
		http.Error(w, "project_id and invoice_id are required", http.StatusBadRequest)
		return
	}

	clientSecret, intentID, err := h.Service.CreateDeposit(r.Context(), body.ProjectID, body.InvoiceID,
		userIDFromContext(r), roleFromContext(r) == models.RoleAdmin)
	if err != nil {
		writePaymentError(w, err)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{
		"client_secret":     clientSecret,
		"payment_intent_id": intentID,
	})
}

// POST /payments/checkout-session
func (h *PaymentHandler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProjectID  int    `json:"project_id"`
		InvoiceID  int    `json:"invoice_id"`
		Amount     int    `json:"amount"`
		Label      string `json:"label"`
		SuccessURL string `json:"success_url"`
		CancelURL  string `json:"cancel_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if body.ProjectID == 0 || body.Amount <= 0 {
		http.Error(w, "project_id and a positive amount are required", http.StatusBadRequest)
		return
	}

	url, err := h.Service.CreateCheckoutSession(r.Context(), services.CheckoutParams{
		ProjectID:  body.ProjectID,
		InvoiceID:  body.InvoiceID,
		Amount:     body.Amount,
		Label:      body.Label,
		SuccessURL: body.SuccessURL,
		CancelURL:  body.CancelURL,
	}, userIDFromContext(r), roleFromContext(r) == models.RoleAdmin)
	if err != nil {
		writePaymentError(w, err)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"url": url})
}

// POST /payments/webhook is the gateway callback. It always answers 200 once
// the signature checks out so the gateway stops retrying; processing itself
// is idempotent.
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<16))
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return
	}
	if !pay.VerifySignature(body, r.Header.Get("Stripe-Signature"), h.WebhookSecret, time.Now()) {
		http.Error(w, "invalid signature", http.StatusBadRequest)
		return
	}

	event, err := pay.ParseEvent(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if event.Type != "payment_intent.succeeded" && event.Type != "checkout.session.completed" {
		w.WriteHeader(http.StatusOK)
		return
	}

	if err := h.Service.HandlePaymentSucceeded(r.Context(), event); err != nil {
		http.Error(w, "processing failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Write([]byte(`{"received":true}`))
}

func writePaymentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrProjectNotFound), errors.Is(err, models.ErrInvoiceNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrNotOwner):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, lifecycle.ErrNoQuote), errors.Is(err, lifecycle.ErrNegativeAmount):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		// Gateway errors propagate with the collaborator's message.
		http.Error(w, err.Error(), http.StatusBadGateway)
	}
}
