package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog/internal/cache"
)

func newTestTokenStore(t *testing.T) (*TokenStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := cache.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	return NewTokenStore(c), mr
}

func TestTokenStore_RefreshTokens(t *testing.T) {
	store, mr := newTestTokenStore(t)
	ctx := context.Background()

	require.NoError(t, store.StoreRefreshToken(ctx, "tid", 7, "a@x.com", time.Hour))
	assert.True(t, mr.Exists(refreshTokenKeyPrefix+"tid"))

	userID, email, err := store.GetRefreshToken(ctx, "tid")
	require.NoError(t, err)
	assert.Equal(t, uint(7), userID)
	assert.Equal(t, "a@x.com", email)

	require.NoError(t, store.DeleteRefreshToken(ctx, "tid"))
	_, _, err = store.GetRefreshToken(ctx, "tid")
	assert.ErrorIs(t, err, ErrRefreshTokenNotFound)
}

func TestTokenStore_RefreshTokenExpires(t *testing.T) {
	store, mr := newTestTokenStore(t)
	ctx := context.Background()

	require.NoError(t, store.StoreRefreshToken(ctx, "tid", 7, "a@x.com", time.Minute))
	mr.FastForward(time.Hour)

	_, _, err := store.GetRefreshToken(ctx, "tid")
	assert.ErrorIs(t, err, ErrRefreshTokenNotFound)
}

func TestTokenStore_MalformedRecord(t *testing.T) {
	store, mr := newTestTokenStore(t)
	require.NoError(t, mr.Set(refreshTokenKeyPrefix+"bad", "{not json"))

	_, _, err := store.GetRefreshToken(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrRefreshTokenNotFound)
}

func TestTokenStore_Blacklist(t *testing.T) {
	store, _ := newTestTokenStore(t)
	ctx := context.Background()

	revoked, err := store.IsAccessTokenBlacklisted(ctx, "aid")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.BlacklistAccessToken(ctx, "aid", time.Minute))
	revoked, err = store.IsAccessTokenBlacklisted(ctx, "aid")
	require.NoError(t, err)
	assert.True(t, revoked)

	// already expired tokens need no entry
	require.NoError(t, store.BlacklistAccessToken(ctx, "old", 0))
	revoked, err = store.IsAccessTokenBlacklisted(ctx, "old")
	require.NoError(t, err)
	assert.False(t, revoked)
}
