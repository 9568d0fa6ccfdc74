package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/crors-digital/calltrack/internal/domain/model"
	"github.com/crors-digital/calltrack/internal/usecase"
)

func newTestStore(t *testing.T, ttl time.Duration) *usecase.MemorySessionStore {
	t.Helper()
	store := usecase.NewMemorySessionStore(ttl, zap.NewNop())
	t.Cleanup(store.Close)
	return store
}

func testIdentity() usecase.Identity {
	return usecase.Identity{
		UserID:   7,
		Username: "anamoraes",
		FullName: "Ana Beatriz Moraes",
		Role:     model.RoleSecretary,
	}
}

func TestMemorySessionStore_CreateResolve(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, time.Hour)

	token, err := store.Create(ctx, testIdentity())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identity, ok := store.Resolve(ctx, token)
	require.True(t, ok)
	assert.Equal(t, "anamoraes", identity.Username)
	assert.Equal(t, model.RoleSecretary, identity.Role)
	assert.True(t, store.IsValid(ctx, token))
}

func TestMemorySessionStore_TokensAreUnique(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, time.Hour)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := store.Create(ctx, testIdentity())
		require.NoError(t, err)
		require.False(t, seen[token])
		seen[token] = true
	}
}

func TestMemorySessionStore_UnknownToken(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, time.Hour)

	identity, ok := store.Resolve(ctx, "no-such-token")
	assert.False(t, ok)
	assert.Nil(t, identity)

	_, ok = store.Resolve(ctx, "")
	assert.False(t, ok)
}

func TestMemorySessionStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, 10*time.Millisecond)

	token, err := store.Create(ctx, testIdentity())
	require.NoError(t, err)
	require.True(t, store.IsValid(ctx, token))

	time.Sleep(30 * time.Millisecond)

	_, ok := store.Resolve(ctx, token)
	assert.False(t, ok, "expired session must not resolve")
}

func TestMemorySessionStore_Invalidate(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, time.Hour)

	token, err := store.Create(ctx, testIdentity())
	require.NoError(t, err)

	require.NoError(t, store.Invalidate(ctx, token))
	assert.False(t, store.IsValid(ctx, token))

	// Invalidating again, or invalidating garbage, is a no-op.
	assert.NoError(t, store.Invalidate(ctx, token))
	assert.NoError(t, store.Invalidate(ctx, "no-such-token"))
}
