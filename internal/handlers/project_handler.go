package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"studioBack/internal/models"
	"studioBack/internal/services"
)

type ProjectHandler struct {
	Service *services.ProjectService
}

// POST /admin/projects
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var body struct {
		models.Project
		RequestID int `json:"request_id,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if body.Name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}

	created, err := h.Service.CreateProject(r.Context(), body.Project, body.RequestID)
	if err != nil {
		writeProjectError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// GET /admin/projects and GET /projects
func (h *ProjectHandler) GetProjects(w http.ResponseWriter, r *http.Request) {
	var (
		projects []models.Project
		err      error
	)
	if roleFromContext(r) == models.RoleAdmin {
		projects, err = h.Service.GetProjects(r.Context())
	} else {
		projects, err = h.Service.GetProjectsByUserID(r.Context(), userIDFromContext(r))
	}
	if err != nil {
		http.Error(w, "Failed to fetch", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(projects)
}

// GET /projects/:id
func (h *ProjectHandler) GetProjectByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}

	var project models.Project
	if roleFromContext(r) == models.RoleAdmin {
		project, err = h.Service.GetProjectByID(r.Context(), id)
	} else {
		project, err = h.Service.GetOwnProject(r.Context(), id, userIDFromContext(r))
	}
	if err != nil {
		writeProjectError(w, err)
		return
	}
	json.NewEncoder(w).Encode(project)
}

// PUT /admin/projects/:id
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	var project models.Project
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	project.ID = id

	updated, err := h.Service.UpdateProject(r.Context(), project)
	if err != nil {
		writeProjectError(w, err)
		return
	}
	json.NewEncoder(w).Encode(updated)
}

func writeProjectError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrProjectNotFound), errors.Is(err, models.ErrRequestNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrNotOwner):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, models.ErrRequestAccepted):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
