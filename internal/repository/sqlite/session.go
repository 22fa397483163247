package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sakif/showcase/internal/apperror"
	"github.com/sakif/showcase/internal/model"
	"github.com/sakif/showcase/internal/repository"
)

// compile-time check that *DB implements repository.SessionRepository
var _ repository.SessionRepository = (*DB)(nil)

// CreateSession inserts a session row. The caller (auth.TokenSource via the
// service) generates the token; this layer only persists it. The token column
// is the primary key, so an astronomically unlikely collision surfaces as a
// unique violation rather than silently overwriting another user's session.
func (db *DB) CreateSession(ctx context.Context, session *model.Session) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO sessions (token, user_id, expires_at, created_at)
		 VALUES (?, ?, ?, ?)`,
		session.Token,
		session.UserID,
		session.ExpiresAt,
		session.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("session token collision")
		}
		return fmt.Errorf("sqlite: creating session: %w", err)
	}

	return nil
}

// GetSession returns the session joined with its owning user.
//
// Expiry is NOT checked here — the service applies the cutoff so "expired" and
// "unknown token" collapse into the same answer in exactly one place.
func (db *DB) GetSession(ctx context.Context, token string) (*model.Session, *model.User, error) {
	var (
		s model.Session
		u model.User
	)

	err := db.conn.QueryRowContext(ctx,
		`SELECT s.token, s.user_id, s.expires_at, s.created_at,
		        u.id, u.name, u.social_handle, u.email, u.is_admin, u.created_at, u.updated_at
		 FROM sessions s
		 JOIN users u ON u.id = s.user_id
		 WHERE s.token = ?`,
		token,
	).Scan(
		&s.Token,
		&s.UserID,
		&s.ExpiresAt,
		&s.CreatedAt,
		&u.ID,
		&u.Name,
		&u.SocialHandle,
		&u.Email,
		&u.IsAdmin,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, apperror.NotFound("session", "token")
		}
		return nil, nil, fmt.Errorf("sqlite: getting session: %w", err)
	}

	return &s, &u, nil
}

// RevokeSession deletes a session row. Revoking an unknown token is a no-op —
// the caller must not learn whether the token ever existed.
func (db *DB) RevokeSession(ctx context.Context, token string) error {
	if _, err := db.conn.ExecContext(ctx,
		`DELETE FROM sessions WHERE token = ?`, token,
	); err != nil {
		return fmt.Errorf("sqlite: revoking session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions sweeps rows whose expiry has passed. Run periodically
// by the server; reported count feeds the sweep log line.
func (db *DB) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at <= ?`, now,
	)
	if err != nil {
		return 0, fmt.Errorf("sqlite: sweeping expired sessions: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	return n, nil
}
