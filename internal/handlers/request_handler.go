package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"studioBack/internal/lifecycle"
	"studioBack/internal/models"
	"studioBack/internal/services"
	"studioBack/utils"
)

type RequestHandler struct {
	Service *services.RequestService
	Notify  func(models.AdminEvent)
}

// POST /requests
func (h *RequestHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var draft models.Request
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	created, err := h.Service.Submit(r.Context(), draft, userIDFromContext(r))
	if err != nil {
		if errors.Is(err, lifecycle.ErrInvalidEmail) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to create", http.StatusInternalServerError)
		return
	}
	if h.Notify != nil {
		h.Notify(models.AdminEvent{Kind: "request.created", Payload: created})
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// GET /requests returns the caller's own requests; admins see everything.
func (h *RequestHandler) GetRequests(w http.ResponseWriter, r *http.Request) {
	var (
		requests []models.Request
		err      error
	)
	if roleFromContext(r) == models.RoleAdmin {
		requests, err = h.Service.GetRequests(r.Context())
	} else {
		requests, err = h.Service.GetRequestsByUserID(r.Context(), userIDFromContext(r))
	}
	if err != nil {
		http.Error(w, "Failed to fetch", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(requests)
}

// GET /requests/:id
func (h *RequestHandler) GetRequestByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}

	var req models.Request
	if roleFromContext(r) == models.RoleAdmin {
		req, err = h.Service.GetRequestByID(r.Context(), id)
	} else {
		req, err = h.Service.GetOwnRequest(r.Context(), id, userIDFromContext(r))
	}
	if err != nil {
		writeRequestError(w, err)
		return
	}
	json.NewEncoder(w).Encode(req)
}

// PUT /requests/:id lets the owner edit the brief, refused once accepted.
func (h *RequestHandler) UpdateRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	var req models.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	req.ID = id

	if err := h.Service.UpdateOwnRequest(r.Context(), req, userIDFromContext(r)); err != nil {
		writeRequestError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /admin/requests/:id/quote
func (h *RequestHandler) QuoteRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	var body struct {
		Amount float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	quoted, err := h.Service.Quote(r.Context(), id, body.Amount)
	if err != nil {
		writeRequestError(w, err)
		return
	}
	json.NewEncoder(w).Encode(quoted)
}

// POST /admin/requests/:id/accept
func (h *RequestHandler) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	projectID, err := h.Service.Accept(r.Context(), id)
	if err != nil {
		writeRequestError(w, err)
		return
	}
	json.NewEncoder(w).Encode(map[string]int{"project_id": projectID})
}

// POST /admin/requests/:id/reject
func (h *RequestHandler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	rejected, err := h.Service.Reject(r.Context(), id)
	if err != nil {
		writeRequestError(w, err)
		return
	}
	json.NewEncoder(w).Encode(rejected)
}

// POST /requests/:id/uploads takes a multipart brief attachment and stores
// it in S3.
func (h *RequestHandler) UploadAttachment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	fileURL, err := utils.UploadFile(file, header.Filename, "request-uploads")
	if err != nil {
		http.Error(w, "Failed to store file", http.StatusInternalServerError)
		return
	}
	if err := h.Service.AttachUpload(r.Context(), id, userIDFromContext(r), fileURL); err != nil {
		writeRequestError(w, err)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"url": fileURL})
}

func writeRequestError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrRequestNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrNotOwner):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, models.ErrRequestAccepted), errors.Is(err, lifecycle.ErrAlreadyAccepted), errors.Is(err, lifecycle.ErrInvalidOperation):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, lifecycle.ErrInvalidEmail), errors.Is(err, lifecycle.ErrNegativeAmount):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
