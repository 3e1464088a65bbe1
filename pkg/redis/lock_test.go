package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewClientFrom(rdb, nil), server
}

func TestLockIsExclusive(t *testing.T) {
	client, server := newTestClient(t)
	ctx := context.Background()
	opts := DefaultLockOptions().WithTTL(time.Minute).WithLockNamespace("jobs")

	first := NewLock(client, "weather", opts)
	second := NewLock(client, "weather", opts)

	require.NoError(t, first.Lock(ctx))
	assert.True(t, server.Exists("jobs::weather"))
	assert.ErrorIs(t, second.Lock(ctx), ErrLockNotAcquired)

	assert.ErrorIs(t, second.Unlock(ctx), ErrLockNotHeld)
	require.NoError(t, first.Unlock(ctx))
	assert.False(t, server.Exists("jobs::weather"))

	require.NoError(t, second.Lock(ctx))
}

func TestLockExpires(t *testing.T) {
	client, server := newTestClient(t)
	ctx := context.Background()

	lock := NewLock(client, "weather", DefaultLockOptions().WithTTL(time.Second))
	require.NoError(t, lock.Lock(ctx))

	server.FastForward(2 * time.Second)

	require.NoError(t, NewLock(client, "weather", nil).Lock(ctx))
	assert.ErrorIs(t, lock.Refresh(ctx), ErrLockNotHeld)
}

func TestLockWithFuncReleasesAfterRun(t *testing.T) {
	client, server := newTestClient(t)
	ctx := context.Background()

	ran := false
	err := LockWithFunc(ctx, client, "weather", nil, func() error {
		ran = true
		assert.True(t, server.Exists("weather"))
		return nil
	})

	require.NoError(t, err)
	assert.True(t, ran)
	assert.False(t, server.Exists("weather"))
}

func TestLockWithFuncRefreshesWhileRunning(t *testing.T) {
	client, server := newTestClient(t)
	ctx := context.Background()
	opts := DefaultLockOptions().WithTTL(300 * time.Millisecond)

	err := LockWithFunc(ctx, client, "weather", opts, func() error {
		for i := 0; i < 6; i++ {
			time.Sleep(150 * time.Millisecond)
			server.FastForward(100 * time.Millisecond)
		}
		assert.True(t, server.Exists("weather"))
		assert.ErrorIs(t, NewLock(client, "weather", nil).Lock(ctx), ErrLockNotAcquired)
		return nil
	})

	require.NoError(t, err)
	assert.False(t, server.Exists("weather"))
}

func TestLockWithFuncSkipsWhenHeld(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, NewLock(client, "weather", nil).Lock(ctx))

	called := false
	err := LockWithFunc(ctx, client, "weather", nil, func() error {
		called = true
		return nil
	})

	assert.True(t, errors.Is(err, ErrLockNotAcquired))
	assert.False(t, called)
}

func TestHealthCheck(t *testing.T) {
	client, server := newTestClient(t)

	assert.Equal(t, StatusUp, NewHealthChecker(client).HealthCheck(context.Background()).Status)

	server.Close()
	check := NewHealthChecker(client).HealthCheck(context.Background())
	assert.Equal(t, StatusDown, check.Status)
	assert.NotEmpty(t, check.Details["error"])
}
