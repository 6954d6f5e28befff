package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	avatar := "a.png"
	token, err := store.Create(ctx, Admin{ID: 1, Name: "Jane", Email: "jane@example.com", Avatar: &avatar})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := store.Get(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), got.ID)
	assert.Equal(t, "Jane", got.Name)
	require.NotNil(t, got.Avatar)
	assert.Equal(t, "a.png", *got.Avatar)

	require.NoError(t, store.Update(ctx, token, Admin{ID: 1, Name: "Jane D", Email: "jane@example.com"}))
	got, err = store.Get(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "Jane D", got.Name)
	assert.Nil(t, got.Avatar)

	require.NoError(t, store.Destroy(ctx, token))
	_, err = store.Get(ctx, token)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestMemoryStoreUnknownToken(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	_, err := store.Get(ctx, "deadbeef")
	assert.ErrorIs(t, err, ErrNoSession)

	assert.ErrorIs(t, store.Update(ctx, "deadbeef", Admin{ID: 1}), ErrNoSession)
	assert.NoError(t, store.Destroy(ctx, "deadbeef"))
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(10 * time.Millisecond)
	ctx := context.Background()

	token, err := store.Create(ctx, Admin{ID: 1, Name: "Jane"})
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)
	_, err = store.Get(ctx, token)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestMemoryStoreTokensAreUnique(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		token, err := store.Create(ctx, Admin{ID: uint64(i)})
		require.NoError(t, err)
		assert.False(t, seen[token])
		seen[token] = true
	}
}
