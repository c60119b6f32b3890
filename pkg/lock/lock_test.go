package lock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestMemoryLocker_Exclusive(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	l := NewMemoryLocker()

	token, ok, err := l.TryLock(ctx, "dashboard", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
	require.NotEmpty(t, token)

	_, ok, err = l.TryLock(ctx, "dashboard", time.Minute)
	require.NoError(t, err)
	require.False(t, ok, "second acquire must fail while held")

	_, ok, err = l.TryLock(ctx, "other", time.Minute)
	require.NoError(t, err)
	require.True(t, ok, "keys are independent")

	require.NoError(t, l.Unlock(ctx, "dashboard", token))
	_, ok, err = l.TryLock(ctx, "dashboard", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestMemoryLocker_Expiry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	now := time.Date(2025, 2, 23, 9, 0, 0, 0, time.UTC)
	l := NewMemoryLocker()
	l.nowFn = func() time.Time { return now }

	_, ok, _ := l.TryLock(ctx, "k", time.Second)
	require.True(t, ok)

	now = now.Add(2 * time.Second)
	_, ok, _ = l.TryLock(ctx, "k", time.Second)
	require.True(t, ok, "expired lock is reclaimed")
}

func TestMemoryLocker_StaleUnlockKeepsNewLease(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	now := time.Date(2025, 2, 23, 9, 0, 0, 0, time.UTC)
	l := NewMemoryLocker()
	l.nowFn = func() time.Time { return now }

	first, ok, _ := l.TryLock(ctx, "k", time.Second)
	require.True(t, ok)

	now = now.Add(2 * time.Second)
	second, ok, _ := l.TryLock(ctx, "k", time.Second)
	require.True(t, ok)
	require.NotEqual(t, first, second)

	require.ErrorIs(t, l.Unlock(ctx, "k", first), ErrNotHeld, "expired owner cannot release")
	_, ok, _ = l.TryLock(ctx, "k", time.Second)
	require.False(t, ok, "the new lease is still held")

	require.NoError(t, l.Unlock(ctx, "k", second))
}

func TestMemoryLocker_UnlockNotHeld(t *testing.T) {
	t.Parallel()
	require.ErrorIs(t, NewMemoryLocker().Unlock(context.Background(), "nope", "x"), ErrNotHeld)
}

func TestRedisLocker(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	a, err := NewRedisLocker(ctx, WithRedisAddr(mr.Addr()), WithRedisPrefix("marketdash-test"))
	require.NoError(t, err)
	defer a.Close()
	b, err := NewRedisLocker(ctx, WithRedisAddr(mr.Addr()), WithRedisPrefix("marketdash-test"))
	require.NoError(t, err)
	defer b.Close()

	token, ok, err := a.TryLock(ctx, "action", 5*time.Second)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, mr.Exists("marketdash-test:lock:action"))

	_, ok, err = b.TryLock(ctx, "action", 5*time.Second)
	require.NoError(t, err)
	require.False(t, ok, "another replica cannot take a held lock")
	require.ErrorIs(t, b.Unlock(ctx, "action", "not-the-owner"), ErrNotHeld)

	require.NoError(t, a.Unlock(ctx, "action", token))
	token, ok, err = b.TryLock(ctx, "action", 5*time.Second)
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, b.Unlock(ctx, "action", token))
}

func TestRedisLocker_StaleUnlockKeepsNewLease(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	l := NewRedisLockerFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "marketdash")
	defer l.Close()

	first, ok, err := l.TryLock(ctx, "action", time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Second)
	second, ok, err := l.TryLock(ctx, "action", time.Second)
	require.NoError(t, err)
	require.True(t, ok, "expired lock is reclaimed")

	require.ErrorIs(t, l.Unlock(ctx, "action", first), ErrNotHeld)
	_, ok, err = l.TryLock(ctx, "action", time.Second)
	require.NoError(t, err)
	require.False(t, ok, "the new lease is still held")
	require.NoError(t, l.Unlock(ctx, "action", second))
}
