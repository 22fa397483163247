// Package repository declares the storage interfaces the service layer
// programs against. The sqlite subpackage is the only implementation; tests
// substitute in-memory mocks.
package repository

import (
	"context"
	"time"

	"github.com/sakif/showcase/internal/model"
)

// ProjectOrder names a column the project listing can sort by.
type ProjectOrder string

const (
	OrderCreatedAt   ProjectOrder = "created_at"
	OrderHeartsCount ProjectOrder = "hearts_count"
	OrderTitle       ProjectOrder = "title"
)

// ProjectFilter narrows and orders a project listing.
//
// Zero values mean "no filter": empty Status matches every status, empty
// UserID matches every owner. Default order is created_at descending.
type ProjectFilter struct {
	Status    model.Status
	UserID    string
	OrderBy   ProjectOrder
	Ascending bool
	Limit     int
	Offset    int
}

// UserRepository persists users.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	// GetUserByEmail is the only dedupe lookup at login. Empty emails never match.
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// SessionRepository persists login sessions keyed by opaque token.
type SessionRepository interface {
	CreateSession(ctx context.Context, session *model.Session) error
	// GetSession returns the session joined with its owning user, or NotFound.
	// Expiry is NOT checked here — that is the service's job, so the cutoff
	// lives in exactly one place.
	GetSession(ctx context.Context, token string) (*model.Session, *model.User, error)
	// RevokeSession deletes a session row. Unused by any route today; it is the
	// seam a future logout feature attaches to.
	RevokeSession(ctx context.Context, token string) error
	// DeleteExpiredSessions removes rows with expires_at <= now and reports how
	// many were swept.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

// ProjectRepository persists projects.
type ProjectRepository interface {
	CreateProject(ctx context.Context, project *model.Project) error
	// GetProject returns the project with its owner projection and live hearts
	// count, regardless of status — visibility rules are enforced above.
	GetProject(ctx context.Context, id string) (*model.Project, error)
	ListProjects(ctx context.Context, filter ProjectFilter) ([]model.Project, error)
	// UpdateProjectContent mutates content fields scoped to the owner:
	// WHERE id = ? AND user_id = ?. Zero rows affected reports NotFound, so a
	// non-owner can never mutate (or even detect) someone else's project.
	UpdateProjectContent(ctx context.Context, project *model.Project) error
	// UpdateProjectStatus is the admin path — unscoped by owner.
	UpdateProjectStatus(ctx context.Context, id string, status model.Status, updatedAt time.Time) error
	// DeleteProject deletes by id. A non-empty ownerID scopes the delete to that
	// owner (non-admin path); empty deletes unconditionally (admin path).
	DeleteProject(ctx context.Context, id, ownerID string) error
}

// HeartRepository persists the like ledger.
type HeartRepository interface {
	// CreateHeart inserts one heart row. A uniqueness violation on
	// (project, actor) surfaces as apperror.ErrConflict — this is the one
	// concurrency contract the store must keep: two racing adds admit exactly
	// one row and the loser gets Conflict, never a generic failure.
	CreateHeart(ctx context.Context, heart *model.Heart) error
	DeleteHeartByUser(ctx context.Context, projectID, userID string) error
	DeleteHeartByGuest(ctx context.Context, projectID, guestID string) error
	HasGuestHeart(ctx context.Context, projectID, guestID string) (bool, error)
	CountHearts(ctx context.Context, projectID string) (int, error)
}

// CommentRepository persists comment threads.
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	// ListComments returns the thread in chronological order with author
	// projections joined.
	ListComments(ctx context.Context, projectID string) ([]model.Comment, error)
}
