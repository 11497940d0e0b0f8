package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"
)

// TokenTTL is the absolute lifetime of an issued session token.
const TokenTTL = 24 * time.Hour

var (
	// ErrMissing means no token was supplied at all.
	ErrMissing = errors.New("token is missing")
	// ErrInvalid means the token is not (or no longer) in the registry.
	ErrInvalid = errors.New("invalid token")
	// ErrExpired means the token was found but its expiry has passed.
	// The entry is evicted as a side effect, so validating the same
	// token again returns ErrInvalid.
	ErrExpired = errors.New("token expired")
)

type session struct {
	adminID int64
	expires time.Time
}

// Registry holds live admin sessions in process memory. Sessions are not
// persisted: restarting the server logs every admin out, which is accepted
// behavior. Expired entries are evicted lazily on their next use rather
// than by a background sweep; the map stays small enough that a sweeper
// would be overkill.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]session

	now func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]session),
		now:      time.Now,
	}
}

// Issue generates a new opaque bearer token for the given admin and
// registers it with an absolute 24h expiry. An admin may hold any number
// of concurrent tokens (one per logged-in browser).
func (r *Registry) Issue(adminID int64) (string, error) {
	// 32 bytes of entropy, hex-encoded to a 64 character token.
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[token] = session{
		adminID: adminID,
		expires: r.now().Add(TokenTTL),
	}
	return token, nil
}

// Validate resolves a token to the admin that owns it.
func (r *Registry) Validate(token string) (int64, error) {
	if token == "" {
		return 0, ErrMissing
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[token]
	if !ok {
		return 0, ErrInvalid
	}
	if r.now().After(s.expires) {
		delete(r.sessions, token)
		return 0, ErrExpired
	}
	return s.adminID, nil
}

// Revoke removes a token from the registry. Revoking a token that is
// unknown or already expired is a no-op, not an error.
func (r *Registry) Revoke(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
}
