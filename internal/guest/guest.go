// Package guest handles the pseudo-identity of unauthenticated actors.
//
// A guest ID is derived client-side from environment signals and persisted in
// client-local storage, so repeated visits reuse the same ID. The server side
// of this package only normalizes and bounds-checks the client-supplied
// string; the derivation lives here too as a pure function so Go clients and
// tests share the exact algorithm.
//
// KNOWN WEAK POINT (accepted): the fingerprint is client-controlled. Clearing
// local storage yields a new guest ID and therefore a fresh like. The partial
// unique index on (project_id, guest_id) still guarantees one like per ID —
// the ledger is honest about the IDs it is given.
package guest

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// MaxIDLength bounds a client-supplied guest ID. Derived IDs are 64 hex chars
// plus the salt suffix; anything much longer is garbage or abuse.
const MaxIDLength = 128

// Inputs are the environment signals a fingerprint is derived from.
type Inputs struct {
	UserAgent      string
	Language       string
	ScreenWidth    int
	ScreenHeight   int
	TimezoneOffset int    // minutes from UTC
	Canvas         string // canvas-rendering fingerprint, opaque
}

// Provider yields the stable guest ID for the current client. Implementations
// back it with whatever persistent client storage the platform offers.
type Provider interface {
	GetOrCreateID() (string, error)
}

// Derive computes a guest ID from environment inputs plus a salt. It is a pure
// function: same inputs and salt, same ID. Callers persist the result so the
// random salt is only drawn once per client (see NewSalt).
func Derive(in Inputs, salt string) string {
	raw := strings.Join([]string{
		in.UserAgent,
		in.Language,
		fmt.Sprintf("%dx%d", in.ScreenWidth, in.ScreenHeight),
		fmt.Sprintf("%d", in.TimezoneOffset),
		in.Canvas,
	}, "|")

	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:]) + "-" + salt
}

// NewSalt returns the random suffix that keeps two identical environments from
// colliding on the same guest ID.
func NewSalt() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("guest: generating salt: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Normalize validates a client-supplied guest ID. Returns the trimmed ID, or
// "" if the value is unusable (empty or oversized) — callers treat "" as a
// missing guest identity.
func Normalize(id string) string {
	id = strings.TrimSpace(id)
	if id == "" || len(id) > MaxIDLength {
		return ""
	}
	return id
}
