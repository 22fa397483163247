// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

import "time"

// User represents a community member.
//
// There is no password column anywhere: "logging in" is register-or-resume by
// name/email (see service.AuthService.Login). The only credential this system
// ever checks is the admin gate secret, and that never lives on a user row.
//
// WHY Email string (not *string)?
// Email is optional at login. We use the empty string as the zero value rather
// than a nullable pointer — simpler to work with, and the email-dedupe lookup
// in the repository simply skips empty emails.
type User struct {
	ID           string    `json:"id"           db:"id"`
	Name         string    `json:"name"         db:"name"`
	SocialHandle string    `json:"socialHandle" db:"social_handle"` // e.g. an X/GitHub handle, may be empty
	Email        string    `json:"email,omitempty" db:"email"`      // optional; the only dedupe key at login
	IsAdmin      bool      `json:"isAdmin"      db:"is_admin"`
	CreatedAt    time.Time `json:"createdAt"    db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt"    db:"updated_at"`
}

// Author is the thin user projection joined onto projects and comments.
// It deliberately excludes Email — public surfaces never expose it.
type Author struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	SocialHandle string `json:"socialHandle,omitempty"`
}

// AsAuthor returns the public projection of this user.
func (u *User) AsAuthor() Author {
	return Author{ID: u.ID, Name: u.Name, SocialHandle: u.SocialHandle}
}
