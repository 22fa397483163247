package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// AdminGate is the single privilege-granting mechanism in the system: one
// fixed admin email plus one server-side secret.
//
// The gate is a small injectable policy object rather than a literal string
// comparison inside the login flow, so the privilege rule can be swapped
// without touching moderation logic. The secret is bcrypt-hashed at
// construction and compared with bcrypt's constant-time verifier — the
// plaintext never sits in memory past startup.
//
// bcrypt cost note: the default cost (10) takes tens of milliseconds per
// check. The gate is hit once per admin login, so the work factor costs
// nothing in practice and keeps an exfiltrated hash expensive to brute-force.
type AdminGate struct {
	email string
	hash  []byte
}

// NewAdminGate builds the gate for the given admin email and secret.
// An empty secret disables the gate entirely — Verify never succeeds — which
// is the safe default for a deployment that forgot to configure it.
func NewAdminGate(email, secret string) (*AdminGate, error) {
	g := &AdminGate{email: normalizeEmail(email)}
	if secret == "" {
		return g, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	g.hash = hash
	return g, nil
}

// IsCandidate reports whether email is the admin address. The identity
// resolver uses this to stamp is_admin when the admin account logs in.
func (g *AdminGate) IsCandidate(email string) bool {
	return email != "" && normalizeEmail(email) == g.email
}

// Verify checks the full credential pair. It returns a single boolean with no
// indication of which field was wrong, and it runs the bcrypt comparison even
// on a wrong email so the two failure modes take the same time.
func (g *AdminGate) Verify(email, password string) bool {
	if len(g.hash) == 0 {
		return false
	}
	emailOK := g.IsCandidate(email)
	passwordOK := bcrypt.CompareHashAndPassword(g.hash, []byte(password)) == nil
	return emailOK && passwordOK
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
