// Package service contains the business logic layer of the application.
//
// The layering follows the usual shape:
//
//	Handler (HTTP)     → parses requests, writes responses
//	Service (business) → validates, enforces rules, orchestrates
//	Repository (data)  → reads/writes the store
//
// Services accept primitives and models, never *http.Request, and return
// apperror domain errors, never status codes. Handlers translate both ways.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sakif/showcase/internal/apperror"
	"github.com/sakif/showcase/internal/auth"
	"github.com/sakif/showcase/internal/model"
	"github.com/sakif/showcase/internal/repository"
)

// AuthService owns login, session resolution, and the admin gate.
type AuthService struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	gate     *auth.AdminGate
	logger   *slog.Logger
}

// NewAuthService creates an AuthService with all required dependencies.
func NewAuthService(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	gate *auth.AdminGate,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		gate:     gate,
		logger:   logger,
	}
}

// compile-time check: AuthService satisfies the middleware's validator seam.
var _ auth.SessionValidator = (*AuthService)(nil)

// Login is register-or-resume: no password is ever checked on this path.
//
// Matching is by email only — if an email is supplied and a user with that
// exact email exists, that account is resumed (this is also how the admin
// account is logged into after passing the gate). In every other case a brand
// new user row is created, including name-only logins that repeat an existing
// name. Name never dedupes; that is the documented contract, not an accident.
//
// A new session is always created, even when resuming — there is no
// single-session-per-user constraint.
func (s *AuthService) Login(ctx context.Context, name, socialHandle, email string) (*model.User, *model.Session, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil, apperror.Validation("Name is required")
	}
	socialHandle = strings.TrimSpace(socialHandle)
	email = strings.TrimSpace(email)

	user, err := s.resolveOrCreateIdentity(ctx, name, socialHandle, email)
	if err != nil {
		return nil, nil, err
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("user logged in",
		slog.String("userID", user.ID),
		slog.Bool("isAdmin", user.IsAdmin),
	)

	return user, session, nil
}

// resolveOrCreateIdentity implements the identity merge policy: email is the
// only dedupe key. The is_admin flag is stamped from the AdminGate policy at
// creation time — the single privilege-granting mechanism.
func (s *AuthService) resolveOrCreateIdentity(ctx context.Context, name, socialHandle, email string) (*model.User, error) {
	if email != "" {
		existing, err := s.users.GetUserByEmail(ctx, email)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, apperror.ErrNotFound) {
			return nil, fmt.Errorf("service/auth: looking up user by email: %w", err)
		}
	}

	user := &model.User{
		Name:         name,
		SocialHandle: socialHandle,
		Email:        email,
		IsAdmin:      s.gate.IsCandidate(email),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("service/auth: creating user: %w", err)
	}

	return user, nil
}

// createSession mints a 256-bit token and persists the session row with the
// fixed 30-day expiry horizon.
func (s *AuthService) createSession(ctx context.Context, userID string) (*model.Session, error) {
	token, err := auth.NewToken()
	if err != nil {
		return nil, fmt.Errorf("service/auth: %w", err)
	}

	now := time.Now()
	session := &model.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: now.Add(auth.SessionDuration),
		CreatedAt: now,
	}
	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("service/auth: creating session: %w", err)
	}

	return session, nil
}

// ValidateSession resolves a token to its session and user.
//
// An unknown, malformed, or expired token returns (nil, nil, nil) — plain "no
// session". Callers must not be able to distinguish a bad token from a missing
// one, so none of those cases is an error. Expiry is checked here and only
// here; it never extends on use.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*model.Session, *model.User, error) {
	if token == "" {
		return nil, nil, nil
	}

	session, user, err := s.sessions.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("service/auth: validating session: %w", err)
	}

	if !session.Valid(time.Now()) {
		return nil, nil, nil
	}

	return session, user, nil
}

// AdminLogin is the privilege gate check. It verifies the fixed admin email
// plus the server-side secret and nothing else — on success the caller is
// expected to run the ordinary Login flow with that email to obtain a session.
// Any mismatch yields one generic Unauthorized with no field attribution.
func (s *AuthService) AdminLogin(email, password string) error {
	if !s.gate.Verify(email, password) {
		return apperror.Unauthorized("invalid credentials")
	}
	s.logger.Info("admin gate passed")
	return nil
}

// RevokeSession deletes a session. No route is wired to this today; it exists
// so a future logout feature has a seam that doesn't require a redesign.
func (s *AuthService) RevokeSession(ctx context.Context, token string) error {
	if err := s.sessions.RevokeSession(ctx, token); err != nil {
		return fmt.Errorf("service/auth: revoking session: %w", err)
	}
	return nil
}

// SweepExpiredSessions garbage-collects expired session rows. The server runs
// this on a ticker.
func (s *AuthService) SweepExpiredSessions(ctx context.Context) error {
	n, err := s.sessions.DeleteExpiredSessions(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("service/auth: sweeping sessions: %w", err)
	}
	if n > 0 {
		s.logger.Info("swept expired sessions", slog.Int64("count", n))
	}
	return nil
}

// GetUserByID returns the user for the given internal ID. Used by /api/me.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, apperror.Validation("user ID is required")
	}
	return s.users.GetUserByID(ctx, id)
}
