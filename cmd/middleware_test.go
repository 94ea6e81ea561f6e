package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"studioBack/internal/models"
)

func TestJWTMiddlewareRoles(t *testing.T) {
	app := &application{signingKey: "test-signing-key"}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, _ := r.Context().Value("user_id").(int); id != 7 {
			t.Errorf("expected user_id 7 in context, got %v", r.Context().Value("user_id"))
		}
		w.WriteHeader(http.StatusOK)
	})

	send := func(t *testing.T, role, requiredRole string) int {
		t.Helper()
		token, err := app.generateAccessToken(7, role)
		if err != nil {
			t.Fatalf("generateAccessToken: %v", err)
		}
		r := httptest.NewRequest(http.MethodGet, "/requests", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		app.JWTMiddleware(next, requiredRole).ServeHTTP(w, r)
		return w.Code
	}

	t.Run("user role passes client routes", func(t *testing.T) {
		if code := send(t, models.RoleUser, models.RoleClient); code != http.StatusOK {
			t.Fatalf("expected %d, got %d", http.StatusOK, code)
		}
	})

	t.Run("client role passes client routes", func(t *testing.T) {
		if code := send(t, models.RoleClient, models.RoleClient); code != http.StatusOK {
			t.Fatalf("expected %d, got %d", http.StatusOK, code)
		}
	})

	t.Run("user role is refused on admin routes", func(t *testing.T) {
		if code := send(t, models.RoleUser, models.RoleAdmin); code != http.StatusForbidden {
			t.Fatalf("expected %d, got %d", http.StatusForbidden, code)
		}
	})

	t.Run("admin passes everywhere", func(t *testing.T) {
		if code := send(t, models.RoleAdmin, models.RoleClient); code != http.StatusOK {
			t.Fatalf("expected %d, got %d", http.StatusOK, code)
		}
		if code := send(t, models.RoleAdmin, models.RoleAdmin); code != http.StatusOK {
			t.Fatalf("expected %d, got %d", http.StatusOK, code)
		}
	})
}
