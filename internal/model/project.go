package model

import "time"

// Status is the moderation state of a project.
//
// Every project is born Pending. Admins move it to Approved, Rejected or
// Suspended; Approved may later be pulled back to Suspended. Only Approved
// projects are visible on public surfaces (listings, detail, hearts, comments).
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusSuspended Status = "suspended"
)

// ValidStatus reports whether s is one of the four known moderation states.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusSuspended:
		return true
	}
	return false
}

// Project is a community submission: a link to an app or tool someone built.
//
// At least one of WebsiteURL/GitHubURL is always present (enforced by
// service-level validation before any insert). HeartsCount is a derived value —
// the repository computes it with a COUNT subselect on every read, so it always
// equals the live number of heart rows and never needs separate synchronization.
type Project struct {
	ID          string    `json:"id"          db:"id"`
	UserID      string    `json:"userId"      db:"user_id"`
	Title       string    `json:"title"       db:"title"`
	Description string    `json:"description" db:"description"`
	WebsiteURL  string    `json:"websiteUrl,omitempty" db:"website_url"`
	GitHubURL   string    `json:"githubUrl,omitempty"  db:"github_url"`
	IconURL     string    `json:"iconUrl,omitempty"    db:"icon_url"`
	Status      Status    `json:"status"      db:"status"`
	HeartsCount int       `json:"heartsCount" db:"hearts_count"`
	CreatedAt   time.Time `json:"createdAt"   db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt"   db:"updated_at"`

	// Owner is the thin author projection, populated on joined reads only.
	Owner *Author `json:"owner,omitempty" db:"-"`
}
