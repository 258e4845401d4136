package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/water-tracker/internal/kv"
)

func newTestGate(t *testing.T) (*Gate, *kv.MemStore) {
	t.Helper()
	store := kv.NewMemStore()
	g, err := NewGate(store, "", "", nil)
	require.NoError(t, err)
	return g, store
}

func TestValidate(t *testing.T) {
	assert.ErrorIs(t, Validate("", "secret1"), ErrEmptyUsername)
	assert.ErrorIs(t, Validate("admin", ""), ErrEmptyPassword)
	assert.ErrorIs(t, Validate("admin", "12345"), ErrPasswordTooShort)
	assert.NoError(t, Validate("admin", "123456"))
	assert.Equal(t, "Password must be at least 6 characters", ErrPasswordTooShort.Error())
}

func TestAuthenticateDefaultAccount(t *testing.T) {
	g, _ := newTestGate(t)

	assert.NoError(t, g.Authenticate("admin", "password"))
	assert.ErrorIs(t, g.Authenticate("admin", "wrongpass"), ErrInvalidCredentials)
	assert.ErrorIs(t, g.Authenticate("root", "password"), ErrInvalidCredentials)
}

func TestAuthenticateConfiguredHash(t *testing.T) {
	hash, err := HashPassword("hydrate-me")
	require.NoError(t, err)

	g, err := NewGate(kv.NewMemStore(), "sam", hash, nil)
	require.NoError(t, err)
	assert.NoError(t, g.Authenticate("sam", "hydrate-me"))
	assert.ErrorIs(t, g.Authenticate("admin", "password"), ErrInvalidCredentials)
}

func TestNewGateRejectsBadHash(t *testing.T) {
	_, err := NewGate(kv.NewMemStore(), "sam", "plaintext", nil)
	assert.Error(t, err)
}

func TestLoginLogoutForgetsUsername(t *testing.T) {
	ctx := context.Background()
	g, _ := newTestGate(t)

	s, err := g.Login(ctx, "admin", "password", false)
	require.NoError(t, err)
	assert.True(t, s.LoggedIn)
	assert.Equal(t, "admin", s.User)
	assert.Empty(t, s.SavedUsername)

	s, err = g.Logout(ctx)
	require.NoError(t, err)
	assert.False(t, s.LoggedIn)
	assert.Empty(t, s.User)
	assert.Empty(t, s.SavedUsername)
}

func TestRememberKeepsUsername(t *testing.T) {
	ctx := context.Background()
	g, store := newTestGate(t)

	_, err := g.Login(ctx, "admin", "password", true)
	require.NoError(t, err)
	_, err = g.Logout(ctx)
	require.NoError(t, err)

	// A fresh gate over the same store sees the persisted session.
	g2, err := NewGate(store, "", "", nil)
	require.NoError(t, err)
	s, err := g2.Session(ctx)
	require.NoError(t, err)
	assert.False(t, s.LoggedIn)
	assert.True(t, s.Remember)
	assert.Equal(t, "admin", s.SavedUsername)

	s, err = g2.SetRemember(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, s.SavedUsername)
}

func TestFailedLoginLeavesSession(t *testing.T) {
	ctx := context.Background()
	g, _ := newTestGate(t)

	_, err := g.Login(ctx, "admin", "nope", false)
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	s, err := g.Session(ctx)
	require.NoError(t, err)
	assert.False(t, s.LoggedIn)
}
