// Package session implements the server-side session store for the admin
// panel.  A session is an opaque random token handed to the client in a
// signed cookie; the store maps the token's SHA-256 hash to the
// authenticated admin record.  Two implementations exist: a Redis-backed
// store for production and an in-memory store for tests and for running
// without Redis.
package session

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

// CookieName is the name of the session cookie shared by the auth
// handlers and the admin guard middleware.
const CookieName = "salon_session"

// Admin is the identity record kept in a session once login succeeds.
// It mirrors what the profile page edits; the avatar is a public path
// and may be nil.
type Admin struct {
	ID     uint64  `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Avatar *string `json:"avatar,omitempty"`
}

// ErrNoSession is returned by Get when the token is unknown or expired.
var ErrNoSession = errors.New("no session")

// Store maps opaque session tokens to admin records.  All methods accept
// a context so the Redis implementation honours request cancellation.
type Store interface {
	// Create starts a session for the admin and returns the raw token.
	Create(ctx context.Context, a Admin) (string, error)
	// Get resolves a raw token to its admin record.
	Get(ctx context.Context, token string) (Admin, error)
	// Update replaces the admin record of an existing session, used
	// after a profile change so the panel shows fresh data.
	Update(ctx context.Context, token string, a Admin) error
	// Destroy terminates the session.  Destroying an unknown token is
	// not an error.
	Destroy(ctx context.Context, token string) error
}

// NewToken returns a 32-byte random token encoded as hex.
func NewToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// hashToken returns the SHA-256 hex digest of a raw token.  Stores key
// sessions by this digest so a leaked store dump does not expose usable
// cookie values.
func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// SignToken binds a token to the configured session secret.  The cookie
// carries "<token>.<hmac>" so the guard can reject forged or truncated
// values before touching the store.
func SignToken(secret, token string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(token))
	return token + "." + hex.EncodeToString(mac.Sum(nil))
}

// VerifyToken validates a signed cookie value and returns the raw token.
func VerifyToken(secret, value string) (string, bool) {
	i := strings.LastIndexByte(value, '.')
	if i <= 0 {
		return "", false
	}
	token, sig := value[:i], value[i+1:]
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(token))
	want := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(sig), []byte(want)) {
		return "", false
	}
	return token, true
}
