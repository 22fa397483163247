package model

import "time"

// Heart is a single "like" on a project, attributed to exactly one of an
// authenticated user (UserID set) or an anonymous guest (GuestID set) — never
// both, never neither. The sqlite schema enforces this with a CHECK constraint,
// and partial unique indexes on (project_id, user_id) and (project_id, guest_id)
// guarantee at-most-one heart per actor per project even under racing inserts.
type Heart struct {
	ID        string    `json:"id"        db:"id"`
	ProjectID string    `json:"projectId" db:"project_id"`
	UserID    string    `json:"userId,omitempty"  db:"user_id"`
	GuestID   string    `json:"guestId,omitempty" db:"guest_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
