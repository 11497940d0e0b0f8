package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndValidate(t *testing.T) {
	r := NewRegistry()

	token, err := r.Issue(42)
	require.NoError(t, err)
	// 32 bytes of entropy, hex-encoded.
	require.Len(t, token, 64)

	adminID, err := r.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), adminID)
}

func TestValidateMissingToken(t *testing.T) {
	r := NewRegistry()

	_, err := r.Validate("")
	assert.ErrorIs(t, err, ErrMissing)
}

func TestValidateUnknownToken(t *testing.T) {
	r := NewRegistry()

	_, err := r.Validate("deadbeef")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestExpiredTokenIsEvicted(t *testing.T) {
	r := NewRegistry()

	now := time.Now()
	r.now = func() time.Time { return now }

	token, err := r.Issue(7)
	require.NoError(t, err)

	// Jump past the absolute expiry.
	r.now = func() time.Time { return now.Add(TokenTTL + time.Second) }

	_, err = r.Validate(token)
	assert.ErrorIs(t, err, ErrExpired)

	// The expired entry was evicted, so the second attempt no longer
	// reports expiry, just an unknown token.
	_, err = r.Validate(token)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestConcurrentTokensPerAdmin(t *testing.T) {
	r := NewRegistry()

	first, err := r.Issue(1)
	require.NoError(t, err)
	second, err := r.Issue(1)
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	// Revoking one browser's token leaves the other session alive.
	r.Revoke(first)

	_, err = r.Validate(first)
	assert.ErrorIs(t, err, ErrInvalid)

	adminID, err := r.Validate(second)
	require.NoError(t, err)
	assert.Equal(t, int64(1), adminID)
}

func TestRevokeUnknownTokenIsNoOp(t *testing.T) {
	r := NewRegistry()
	r.Revoke("never-issued")
}
