package handlers

import (
	"net/http"
	"strconv"
)

// userIDFromContext reads the authenticated user id set by the JWT middleware.
func userIDFromContext(r *http.Request) int {
	if id, ok := r.Context().Value("user_id").(int); ok {
		return id
	}
	return 0
}

// roleFromContext reads the authenticated role set by the JWT middleware.
func roleFromContext(r *http.Request) string {
	if role, ok := r.Context().Value("role").(string); ok {
		return role
	}
	return ""
}

func pathID(r *http.Request) (int, error) {
	return strconv.Atoi(r.URL.Query().Get(":id"))
}
