package auth

import (
	"context"
	"net/http"

	"github.com/sakif/showcase/internal/model"
)

// SessionValidator resolves a session token to its session and user.
//
// The contract mirrors the no-oracle rule: a missing, malformed, or expired
// token all come back as (nil, nil, nil) — "no session", not an error. An
// error means the store itself failed.
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (*model.Session, *model.User, error)
}

// contextKey is an unexported type for context keys in this package. A
// package-private key type means only this package can read or write the
// current-user value — no other package can collide with or shadow it.
type contextKey string

const userKey contextKey = "currentUser"

// RequireAuth enforces authentication on protected routes.
//
// It reads the session cookie, validates it against the store, and puts the
// user in the request context. Anything short of a live session gets a 401
// with the same generic body — callers cannot distinguish "no cookie" from
// "expired token" from "garbage token".
func RequireAuth(sessions SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := resolveUser(r, sessions)
			if user == nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized","messages":["authentication required"]}`))
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth attaches the user when a valid session is present but never
// blocks the request. Public routes use this so handlers can widen behavior
// for owners and admins (e.g. fetching a pending project you own).
func OptionalAuth(sessions SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user := resolveUser(r, sessions); user != nil {
				ctx := context.WithValue(r.Context(), userKey, user)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// resolveUser turns the request's cookie into a user, or nil for guests.
// Store failures degrade to nil as well: a flaky database must not turn every
// public page into a 500 for logged-in visitors.
func resolveUser(r *http.Request, sessions SessionValidator) *model.User {
	token := SessionTokenFromRequest(r)
	if token == "" {
		return nil
	}
	_, user, err := sessions.ValidateSession(r.Context(), token)
	if err != nil {
		return nil
	}
	return user
}

// UserFromContext retrieves the authenticated user placed by the middleware.
// Returns (nil, false) for anonymous requests.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userKey).(*model.User)
	return user, ok
}
