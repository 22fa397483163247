// Package handler contains the HTTP layer: request parsing, response writing,
// and nothing else. Business rules live in internal/service.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/showcase/internal/auth"
	"github.com/sakif/showcase/internal/service"
)

// AuthHandler owns the login flow, the admin gate, and /api/me.
type AuthHandler struct {
	auth         *service.AuthService
	secureCookie bool // Secure flag on the session cookie; false only in dev
	logger       *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authSvc *service.AuthService, secureCookie bool, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: authSvc, secureCookie: secureCookie, logger: logger}
}

type loginRequest struct {
	Name         string `json:"name"`
	SocialHandle string `json:"socialHandle"`
	Email        string `json:"email"`
}

// HandleLogin is register-or-resume by name/email.
//
// HTTP: POST /api/auth/login
// BODY: {"name": "...", "socialHandle": "...", "email": "..."}
//
// On success the session token is set as the HttpOnly cookie and the resolved
// user (including isAdmin) comes back as the body. No password exists on this
// path — see HandleAdminLogin for the one credential check in the system.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid login JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:    "validation_error",
			Messages: []string{"Invalid JSON body"},
		})
		return
	}

	user, session, err := h.auth.Login(r.Context(), req.Name, req.SocialHandle, req.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	auth.SetSessionCookie(w, session.Token, h.secureCookie)
	writeJSON(w, http.StatusOK, user)
}

type adminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleAdminLogin is the admin privilege gate.
//
// HTTP: POST /api/auth/admin
//
// It verifies the fixed admin email + server-side secret and answers ok or a
// single generic 401 — never which field was wrong. It does NOT issue a
// session; the caller follows up with the ordinary login using that email.
func (h *AuthHandler) HandleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:    "validation_error",
			Messages: []string{"Invalid JSON body"},
		})
		return
	}

	if err := h.auth.AdminLogin(req.Email, req.Password); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// HandleMe returns the authenticated user's profile.
//
// HTTP: GET /api/me (behind RequireAuth)
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		// RequireAuth should make this unreachable; belt and braces.
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:    "unauthorized",
			Messages: []string{"authentication required"},
		})
		return
	}
	writeJSON(w, http.StatusOK, user)
}
