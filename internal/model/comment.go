package model

import "time"

// Comment is a reply on an approved project's thread. Comments are authored by
// authenticated users only (guests can heart, not comment) and are append-only:
// no edit or delete endpoint exists, so UpdatedAt always equals CreatedAt today.
type Comment struct {
	ID        string    `json:"id"        db:"id"`
	ProjectID string    `json:"projectId" db:"project_id"`
	UserID    string    `json:"userId"    db:"user_id"`
	Content   string    `json:"content"   db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Author is the thin user projection, populated on joined reads.
	Author *Author `json:"author,omitempty" db:"-"`
}
