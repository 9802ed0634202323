package auth

import (
	"crypto/sha256"
	"net/http"

	"github.com/gorilla/sessions"
)

// SessionName is the name of the signed session cookie. It carries the
// bearer token for browser clients so they do not have to resend the
// Authorization header on every request.
const SessionName = "movie-memory-session"

// SessionKeyToken is the session value key holding the JWT.
const SessionKeyToken = "token"

// SessionStore signs and verifies session cookies.
type SessionStore struct {
	store *sessions.CookieStore
}

// NewSessionStore creates a cookie-based session store.
//
// The secret parameter signs session cookies. It can be any passphrase;
// it is SHA-256 hashed to derive a 32-byte key. The secret must be
// consistent across server restarts and multiple servers in a
// load-balanced deployment.
//
// The cookie lifetime matches the longest token lifetime we accept
// (7 days); an expired token inside a live cookie still fails validation.
//
// Security settings:
// - HttpOnly: true (inaccessible to JavaScript)
// - Secure: true when secureOnly is set (HTTPS only in production)
// - SameSite: Lax (the cookie survives top-level navigation from the provider)
func NewSessionStore(secret string, secureOnly bool) *SessionStore {
	key := sha256.Sum256([]byte(secret))

	store := sessions.NewCookieStore(key[:])
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 3600,
		HttpOnly: true,
		Secure:   secureOnly,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionStore{store: store}
}

// Token returns the JWT stored in the request's session cookie, or ""
// when the cookie is absent, unreadable, or holds no token.
func (s *SessionStore) Token(r *http.Request) string {
	session, err := s.store.Get(r, SessionName)
	if err != nil {
		return ""
	}
	token, _ := session.Values[SessionKeyToken].(string)
	return token
}

// SaveToken writes the JWT into the session cookie on the response.
// Called after a bearer token validates so subsequent browser requests
// authenticate via the cookie alone.
func (s *SessionStore) SaveToken(r *http.Request, w http.ResponseWriter, token string) error {
	session, err := s.store.Get(r, SessionName)
	if err != nil {
		// A tampered cookie decodes to an error and a fresh session; overwrite it.
		session, _ = s.store.New(r, SessionName)
	}
	session.Values[SessionKeyToken] = token
	return session.Save(r, w)
}

// Clear expires the session cookie.
func (s *SessionStore) Clear(r *http.Request, w http.ResponseWriter) error {
	session, err := s.store.Get(r, SessionName)
	if err != nil {
		session, _ = s.store.New(r, SessionName)
	}
	session.Options.MaxAge = -1
	delete(session.Values, SessionKeyToken)
	return session.Save(r, w)
}
