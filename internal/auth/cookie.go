package auth

import (
	"net/http"
	"time"
)

// SetSessionCookie writes the session token cookie on a login response.
//
// Attributes:
//   - HttpOnly: JavaScript cannot read it, so an XSS cannot exfiltrate the token
//   - SameSite=Lax: not sent on cross-site POSTs
//   - Path=/: the whole site authenticates with it
//   - Max-Age = SessionDuration: the cookie dies with the session row
//   - Secure outside local development (the cookie only travels over TLS)
func SetSessionCookie(w http.ResponseWriter, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionDuration / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SessionTokenFromRequest reads the session cookie. Returns "" when absent —
// an anonymous request, not an error.
func SessionTokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
