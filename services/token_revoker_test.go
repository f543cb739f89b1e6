package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRevoker(t *testing.T) (*TokenRevoker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewTokenRevoker(client), mr
}

func TestRevokeToken(t *testing.T) {
	revoker, mr := newTestRevoker(t)
	ctx := context.Background()

	revoked, err := revoker.IsRevoked(ctx, "token-a")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, revoker.Revoke(ctx, "token-a", time.Now().Add(time.Hour)))

	revoked, err = revoker.IsRevoked(ctx, "token-a")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = revoker.IsRevoked(ctx, "token-b")
	require.NoError(t, err)
	assert.False(t, revoked)

	key := revokedKey("token-a")
	assert.True(t, mr.Exists(key))
	assert.NotContains(t, key, "token-a")

	mr.FastForward(2 * time.Hour)
	revoked, err = revoker.IsRevoked(ctx, "token-a")
	require.NoError(t, err)
	assert.False(t, revoked, "entry lapses with the token")
}

func TestRevokeExpiredTokenIsNoop(t *testing.T) {
	revoker, mr := newTestRevoker(t)

	require.NoError(t, revoker.Revoke(context.Background(), "old", time.Now().Add(-time.Minute)))
	assert.Empty(t, mr.Keys())
}

func TestRevokerReportsRedisFailure(t *testing.T) {
	revoker, mr := newTestRevoker(t)
	mr.Close()

	_, err := revoker.IsRevoked(context.Background(), "token")
	assert.Error(t, err)
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	defer client.Close()

	_, err = NewRedisClient(context.Background(), "not a url")
	assert.Error(t, err)
}
