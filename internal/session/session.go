// Package session owns "who is logged in" for the gateway. A session is a
// bearer token plus the user record it was issued for, persisted as a pair
// of cookies that are always written and cleared together. The token is
// opaque to the gateway (the backend holds the signing secret); the user
// cookie is HMAC-signed so role-gated routes cannot be reached by editing it.
package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/talentbridge/marketplace-web/internal/core/domain"
	"github.com/talentbridge/marketplace-web/internal/web/metrics"
)

const (
	// TokenCookie holds the raw bearer token.
	TokenCookie = "tb_token"
	// UserCookie holds the signed, serialized user record.
	UserCookie = "tb_user"

	cookieMaxAge = 7 * 24 * int(time.Hour/time.Second)
)

var errBadCookie = errors.New("session: malformed user cookie")

// Session pairs the bearer token with its user. Invariant: neither field is
// ever persisted without the other.
type Session struct {
	Token string
	User  domain.User
}

// Store reads and writes the session cookie pair.
type Store struct {
	secret []byte
	secure bool
}

// NewStore creates a Store. secure controls the cookies' Secure flag and
// should be true outside development.
func NewStore(secret string, secure bool) *Store {
	return &Store{secret: []byte(secret), secure: secure}
}

// Restore reads the session from the request's cookies. When exactly one
// half of the pair survives, or the token is past its expiry, both halves
// are cleared on the response and no session is returned.
func (s *Store) Restore(r *http.Request, w http.ResponseWriter) *Session {
	token := cookieValue(r, TokenCookie)
	userRaw := cookieValue(r, UserCookie)

	switch {
	case token == "" && userRaw == "":
		metrics.SessionsRestoredTotal.WithLabelValues("none").Inc()
		return nil
	case token == "" || userRaw == "":
		// Split state: one half survived a partial write or deletion.
		s.Clear(w)
		metrics.SessionsRestoredTotal.WithLabelValues("split").Inc()
		return nil
	}

	user, err := s.decodeUser(userRaw)
	if err != nil {
		s.Clear(w)
		metrics.SessionsRestoredTotal.WithLabelValues("split").Inc()
		return nil
	}

	if tokenExpired(token, time.Now()) {
		s.Clear(w)
		metrics.SessionsRestoredTotal.WithLabelValues("expired").Inc()
		return nil
	}

	metrics.SessionsRestoredTotal.WithLabelValues("ok").Inc()
	return &Session{Token: token, User: *user}
}

// Save persists both halves of the session pair.
func (s *Store) Save(w http.ResponseWriter, token string, user domain.User) error {
	encoded, err := s.encodeUser(user)
	if err != nil {
		return err
	}
	http.SetCookie(w, s.cookie(TokenCookie, token, cookieMaxAge))
	http.SetCookie(w, s.cookie(UserCookie, encoded, cookieMaxAge))
	return nil
}

// Clear expires both halves of the session pair.
func (s *Store) Clear(w http.ResponseWriter) {
	http.SetCookie(w, s.cookie(TokenCookie, "", -1))
	http.SetCookie(w, s.cookie(UserCookie, "", -1))
}

func (s *Store) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// encodeUser serializes and signs the user record: base64(json) + "." +
// base64(hmac-sha256).
func (s *Store) encodeUser(user domain.User) (string, error) {
	payload, err := json.Marshal(user)
	if err != nil {
		return "", err
	}
	body := base64.RawURLEncoding.EncodeToString(payload)
	return body + "." + s.sign(body), nil
}

func (s *Store) decodeUser(value string) (*domain.User, error) {
	body, sig, ok := strings.Cut(value, ".")
	if !ok || !hmac.Equal([]byte(sig), []byte(s.sign(body))) {
		return nil, errBadCookie
	}
	payload, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil {
		return nil, errBadCookie
	}
	var user domain.User
	if err := json.Unmarshal(payload, &user); err != nil {
		return nil, errBadCookie
	}
	return &user, nil
}

func (s *Store) sign(body string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(body))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// tokenExpired inspects the token's exp claim without verifying the
// signature — the backend owns the signing key, the gateway only avoids
// presenting a token it already knows is dead. Tokens that do not parse as
// JWTs are treated as opaque and kept.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
