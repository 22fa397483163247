package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/showcase/internal/apperror"
	"github.com/sakif/showcase/internal/model"
	"github.com/sakif/showcase/internal/repository"
)

// compile-time check that *DB implements repository.HeartRepository
var _ repository.HeartRepository = (*DB)(nil)

// CreateHeart inserts one heart row for either a user or a guest actor.
//
// This is the one place where a concurrency race is possible and matters: two
// simultaneous adds for the same (project, actor) both reach the INSERT, the
// partial unique index admits exactly one, and the loser's driver error is
// translated here into apperror.Conflict so callers can surface
// "already hearted" instead of a generic 500.
func (db *DB) CreateHeart(ctx context.Context, heart *model.Heart) error {
	heart.ID = xid.New().String()
	heart.CreatedAt = time.Now()

	// Empty strings become NULLs so the CHECK and partial indexes see the
	// attribution the schema expects.
	var userID, guestID any
	if heart.UserID != "" {
		userID = heart.UserID
	}
	if heart.GuestID != "" {
		guestID = heart.GuestID
	}

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO hearts (id, project_id, user_id, guest_id, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		heart.ID,
		heart.ProjectID,
		userID,
		guestID,
		heart.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("project already hearted")
		}
		return fmt.Errorf("sqlite: creating heart: %w", err)
	}

	return nil
}

// DeleteHeartByUser removes a user's heart from a project. Deleting a heart
// that does not exist is a no-op success, so removal is idempotent.
func (db *DB) DeleteHeartByUser(ctx context.Context, projectID, userID string) error {
	if _, err := db.conn.ExecContext(ctx,
		`DELETE FROM hearts WHERE project_id = ? AND user_id = ?`,
		projectID, userID,
	); err != nil {
		return fmt.Errorf("sqlite: deleting heart (project=%s user=%s): %w", projectID, userID, err)
	}
	return nil
}

// DeleteHeartByGuest removes a guest's heart from a project. Idempotent like
// the user path.
func (db *DB) DeleteHeartByGuest(ctx context.Context, projectID, guestID string) error {
	if _, err := db.conn.ExecContext(ctx,
		`DELETE FROM hearts WHERE project_id = ? AND guest_id = ?`,
		projectID, guestID,
	); err != nil {
		return fmt.Errorf("sqlite: deleting heart (project=%s guest=%s): %w", projectID, guestID, err)
	}
	return nil
}

// HasGuestHeart reports whether a guest already hearted a project. Used as the
// fast-path pre-check that produces a friendly "already liked" message; the
// unique index remains the real guarantee under races.
func (db *DB) HasGuestHeart(ctx context.Context, projectID, guestID string) (bool, error) {
	var one int
	err := db.conn.QueryRowContext(ctx,
		`SELECT 1 FROM hearts WHERE project_id = ? AND guest_id = ?`,
		projectID, guestID,
	).Scan(&one)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("sqlite: checking guest heart: %w", err)
	}
	return true, nil
}

// CountHearts returns the live heart count for a project.
func (db *DB) CountHearts(ctx context.Context, projectID string) (int, error) {
	var count int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM hearts WHERE project_id = ?`,
		projectID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting hearts for project %s: %w", projectID, err)
	}
	return count, nil
}
