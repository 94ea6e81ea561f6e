package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"studioBack/internal/models"
	"studioBack/internal/services"
)

type InvoiceHandler struct {
	Service *services.InvoiceService
}

// GET /invoices and GET /admin/invoices
func (h *InvoiceHandler) GetInvoices(w http.ResponseWriter, r *http.Request) {
	var (
		invoices []models.Invoice
		err      error
	)
	if roleFromContext(r) == models.RoleAdmin {
		invoices, err = h.Service.GetInvoices(r.Context())
	} else {
		invoices, err = h.Service.GetInvoicesByUserID(r.Context(), userIDFromContext(r))
	}
	if err != nil {
		http.Error(w, "Failed to fetch", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(invoices)
}

// GET /invoices/:id
func (h *InvoiceHandler) GetInvoiceByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	var invoice models.Invoice
	if roleFromContext(r) == models.RoleAdmin {
		invoice, err = h.Service.GetInvoiceByID(r.Context(), id)
	} else {
		invoice, err = h.Service.GetOwnInvoice(r.Context(), id, userIDFromContext(r))
	}
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvoiceNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, models.ErrNotOwner):
			http.Error(w, err.Error(), http.StatusForbidden)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	json.NewEncoder(w).Encode(invoice)
}
