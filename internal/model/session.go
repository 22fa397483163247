package model

import "time"

// Session is a server-side login session backed by a row in the sessions table.
//
// The token is an opaque 256-bit random string — it carries no claims and means
// nothing without the row behind it. This is the opposite of a JWT: validity is
// decided by the store, which gives us a revocation seam (SessionRepository.Revoke)
// and a place for the periodic expiry sweep to collect garbage.
type Session struct {
	Token     string    `json:"-"         db:"token"` // never serialized; travels only in the cookie
	UserID    string    `json:"userId"    db:"user_id"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Valid reports whether the session is still live at the given instant.
// Expiry is a hard horizon — sessions are not sliding-window, so reading a
// session never extends it.
func (s *Session) Valid(now time.Time) bool {
	return s.ExpiresAt.After(now)
}
