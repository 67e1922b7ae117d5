package admin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/rumibeauty/storefront/pkg/errors"
)

func newTestAuthenticator(t *testing.T) *Authenticator {
	t.Helper()
	hash, err := HashPassword("glow-up-2026")
	require.NoError(t, err)
	return NewAuthenticator("admin@rumimakeup.com", hash, "test-secret", time.Hour)
}

// ============================================================================
// Login Tests
// ============================================================================

func TestLogin_ValidCredentials(t *testing.T) {
	auth := newTestAuthenticator(t)

	token, err := auth.Login(context.Background(), "admin@rumimakeup.com", "glow-up-2026")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestLogin_WrongPassword(t *testing.T) {
	auth := newTestAuthenticator(t)

	_, err := auth.Login(context.Background(), "admin@rumimakeup.com", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestLogin_WrongEmail(t *testing.T) {
	auth := newTestAuthenticator(t)

	_, err := auth.Login(context.Background(), "intruder@example.com", "glow-up-2026")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

// ============================================================================
// Validate Tests
// ============================================================================

func TestValidate_RoundTrip(t *testing.T) {
	auth := newTestAuthenticator(t)

	token, err := auth.Login(context.Background(), "admin@rumimakeup.com", "glow-up-2026")
	require.NoError(t, err)

	claims, err := auth.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "admin@rumimakeup.com", claims.Email)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, "storefront", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestValidate_GarbageToken(t *testing.T) {
	auth := newTestAuthenticator(t)

	_, err := auth.Validate("not.a.token")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestValidate_WrongSecretRejected(t *testing.T) {
	auth := newTestAuthenticator(t)
	other := NewAuthenticator("admin@rumimakeup.com", "x", "other-secret", time.Hour)

	token, err := auth.Login(context.Background(), "admin@rumimakeup.com", "glow-up-2026")
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestValidate_ExpiredTokenRejected(t *testing.T) {
	hash, err := HashPassword("glow-up-2026")
	require.NoError(t, err)
	auth := NewAuthenticator("admin@rumimakeup.com", hash, "test-secret", -time.Minute)

	token, err := auth.Login(context.Background(), "admin@rumimakeup.com", "glow-up-2026")
	require.NoError(t, err)

	_, err = auth.Validate(token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

// ============================================================================
// HashPassword Tests
// ============================================================================

func TestHashPassword_ProducesVerifiableHash(t *testing.T) {
	hash, err := HashPassword("secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", hash)

	auth := NewAuthenticator("a@b.c", hash, "s", time.Hour)
	_, err = auth.Login(context.Background(), "a@b.c", "secret")
	assert.NoError(t, err)
}
