package auth

import (
	"encoding/base64"
	"net/http/httptest"
	"testing"
)

func TestNewToken_Entropy(t *testing.T) {
	token, err := NewToken()
	if err != nil {
		t.Fatalf("NewToken() error = %v", err)
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		t.Fatalf("token is not raw-URL base64: %v", err)
	}
	if len(raw) != 32 {
		t.Errorf("token entropy = %d bytes, want 32", len(raw))
	}
}

func TestNewToken_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := NewToken()
		if err != nil {
			t.Fatalf("NewToken() error = %v", err)
		}
		if seen[token] {
			t.Fatalf("duplicate token generated: %s", token)
		}
		seen[token] = true
	}
}

func TestSetSessionCookie_Attributes(t *testing.T) {
	w := httptest.NewRecorder()
	SetSessionCookie(w, "tok123", true)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}

	c := cookies[0]
	if c.Name != CookieName {
		t.Errorf("Name = %q, want %q", c.Name, CookieName)
	}
	if !c.HttpOnly {
		t.Error("cookie must be HttpOnly")
	}
	if !c.Secure {
		t.Error("cookie must be Secure when requested")
	}
	if c.Path != "/" {
		t.Errorf("Path = %q, want /", c.Path)
	}
	if c.MaxAge != 30*24*60*60 {
		t.Errorf("MaxAge = %d, want 30 days in seconds", c.MaxAge)
	}
}

func TestAdminGate_Verify(t *testing.T) {
	gate, err := NewAdminGate("admin@showcase.local", "s3cret")
	if err != nil {
		t.Fatalf("NewAdminGate() error = %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		want     bool
	}{
		{"correct pair", "admin@showcase.local", "s3cret", true},
		{"email case-insensitive", "Admin@Showcase.Local", "s3cret", true},
		{"wrong password", "admin@showcase.local", "nope", false},
		{"wrong email", "user@showcase.local", "s3cret", false},
		{"both wrong", "user@showcase.local", "nope", false},
		{"empty pair", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gate.Verify(tt.email, tt.password); got != tt.want {
				t.Errorf("Verify(%q, ...) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestAdminGate_DisabledWithoutSecret(t *testing.T) {
	gate, err := NewAdminGate("admin@showcase.local", "")
	if err != nil {
		t.Fatalf("NewAdminGate() error = %v", err)
	}
	if gate.Verify("admin@showcase.local", "") {
		t.Error("gate with no secret must never verify")
	}
	// Candidate check still works — is_admin stamping is independent of the gate secret.
	if !gate.IsCandidate("admin@showcase.local") {
		t.Error("IsCandidate() = false for the admin address")
	}
}
