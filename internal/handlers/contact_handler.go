package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"studioBack/internal/models"
	"studioBack/internal/services"
)

type ContactHandler struct {
	Service *services.ContactService
	Notify  func(models.AdminEvent)
}

// POST /contact
func (h *ContactHandler) CreateSubmission(w http.ResponseWriter, r *http.Request) {
	var sub models.ContactSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	created, err := h.Service.Submit(r.Context(), sub)
	if err != nil {
		if errors.Is(err, services.ErrContactValidation) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to create", http.StatusInternalServerError)
		return
	}
	if h.Notify != nil {
		h.Notify(models.AdminEvent{Kind: "contact.created", Payload: created})
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// GET /admin/contact
func (h *ContactHandler) GetSubmissions(w http.ResponseWriter, r *http.Request) {
	subs, err := h.Service.GetSubmissions(r.Context())
	if err != nil {
		http.Error(w, "Failed to fetch", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(subs)
}

// PUT /admin/contact/:id/read
func (h *ContactHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	if err := h.Service.MarkRead(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrContactNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to update", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
