package repository_test

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aaravmahajanofficial/pos-platform/internal/config"
	repository "github.com/aaravmahajanofficial/pos-platform/internal/repositories"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	t.Cleanup(func() { client.Close() })

	return client, mr
}

func TestCheckLoginRateLimit(t *testing.T) {
	client, _ := newTestRedis(t)
	repo := repository.NewRateLimitRepo(client, config.RateConfig{MaxAttempts: 2, WindowSize: time.Minute})
	ctx := t.Context()

	t.Run("Allows attempts within the limit", func(t *testing.T) {
		allowed, remaining, retryAfter, err := repo.CheckLoginRateLimit(ctx, "till@example.com")

		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 1, remaining)
		assert.Zero(t, retryAfter)

		allowed, remaining, _, err = repo.CheckLoginRateLimit(ctx, "till@example.com")

		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Zero(t, remaining)
	})

	t.Run("Blocks once the limit is exceeded", func(t *testing.T) {
		allowed, remaining, retryAfter, err := repo.CheckLoginRateLimit(ctx, "till@example.com")

		require.NoError(t, err)
		assert.False(t, allowed)
		assert.Zero(t, remaining)
		assert.LessOrEqual(t, retryAfter, 60)
	})

	t.Run("Counts each email separately", func(t *testing.T) {
		allowed, remaining, _, err := repo.CheckLoginRateLimit(ctx, "other@example.com")

		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 1, remaining)
	})
}

func TestCheckLoginRateLimit_RedisDown(t *testing.T) {
	client, mr := newTestRedis(t)
	repo := repository.NewRateLimitRepo(client, config.RateConfig{MaxAttempts: 2, WindowSize: time.Minute})

	mr.Close()

	allowed, _, _, err := repo.CheckLoginRateLimit(t.Context(), "till@example.com")

	assert.False(t, allowed)
	assert.ErrorContains(t, err, "redis pipeline error")
}

func TestRedisLocker(t *testing.T) {
	client, _ := newTestRedis(t)
	locker := repository.NewRedisLocker(client)
	ctx := t.Context()

	release, err := locker.Lock(ctx, "wallet:123", time.Second)
	require.NoError(t, err)

	t.Run("Second holder waits and gives up", func(t *testing.T) {
		_, err := locker.Lock(ctx, "wallet:123", time.Second)

		assert.ErrorIs(t, err, repository.ErrLockNotObtained)
	})

	t.Run("Other keys are independent", func(t *testing.T) {
		other, err := locker.Lock(ctx, "wallet:456", time.Second)

		require.NoError(t, err)
		assert.NoError(t, other(ctx))
	})

	t.Run("Released lock can be taken again", func(t *testing.T) {
		require.NoError(t, release(ctx))

		again, err := locker.Lock(ctx, "wallet:123", time.Second)

		require.NoError(t, err)
		assert.NoError(t, again(ctx))
		assert.NoError(t, again(ctx), "releasing twice is not an error")
	})
}
