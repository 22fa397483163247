// Package auth provides session token generation, the session cookie, the
// auth middleware, and the admin privilege gate.
//
// SESSIONS, NOT JWTS:
// A session token here is an opaque 256-bit random string whose only meaning
// is the row behind it in the sessions table. Nothing is encoded in the token,
// so there is nothing to forge and nothing to leak — an attacker would have to
// guess 256 bits of crypto/rand output. The trade against stateless tokens is
// one DB lookup per authenticated request, which the sessions primary key
// makes cheap, and in exchange the store stays the single source of truth:
// expiry, the GC sweep, and the revocation seam all live in one table.
package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"
)

const (
	// CookieName is the one cookie this system reads and writes.
	CookieName = "showcase_session"

	// SessionDuration is the fixed expiry horizon. Sessions are not
	// sliding-window — reading one never extends it.
	SessionDuration = 30 * 24 * time.Hour

	// tokenBytes is the entropy of a session token: 32 bytes = 256 bits.
	tokenBytes = 32
)

// NewToken returns a fresh cryptographically random session token.
// base64 raw-URL encoding keeps it cookie- and URL-safe (43 chars, no padding).
func NewToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("auth: generating session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
