package utils

import (
	"testing"
	"time"
)

func TestManagerJWTRoundTrip(t *testing.T) {
	m, err := NewManager("test-signing-key")
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	token, err := m.NewJWT("42", time.Minute)
	if err != nil {
		t.Fatalf("NewJWT: %v", err)
	}
	sub, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if sub != "42" {
		t.Fatalf("expected subject 42, got %q", sub)
	}
}

func TestManagerRejectsForeignTokens(t *testing.T) {
	m, _ := NewManager("test-signing-key")
	other, _ := NewManager("another-key")

	token, err := other.NewJWT("42", time.Minute)
	if err != nil {
		t.Fatalf("NewJWT: %v", err)
	}
	if _, err := m.Parse(token); err == nil {
		t.Fatal("expected a token signed with another key to be rejected")
	}
	if _, err := m.Parse("not-a-token"); err == nil {
		t.Fatal("expected garbage to be rejected")
	}
}

func TestNewRefreshToken(t *testing.T) {
	m, _ := NewManager("test-signing-key")

	a, err := m.NewRefreshToken()
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	b, _ := m.NewRefreshToken()
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
	if a == b {
		t.Fatal("expected distinct tokens")
	}
}
