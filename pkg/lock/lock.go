// Package lock provides short-lived exclusive locks keyed by name.
package lock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotHeld is returned by Unlock when this locker does not hold the key.
var ErrNotHeld = errors.New("lock: not held")

type lease struct {
	token string
	exp   time.Time
}

// MemoryLocker is a process-local locker. Expired keys are reclaimed lazily.
type MemoryLocker struct {
	mu    sync.Mutex
	held  map[string]lease
	nowFn func() time.Time
}

// NewMemoryLocker creates an empty in-process locker.
func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{
		held:  make(map[string]lease),
		nowFn: time.Now,
	}
}

// TryLock acquires key for ttl without blocking and returns the token that
// must be passed to Unlock. A non-positive ttl never expires.
func (m *MemoryLocker) TryLock(_ context.Context, key string, ttl time.Duration) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.nowFn()
	if l, ok := m.held[key]; ok && (l.exp.IsZero() || now.Before(l.exp)) {
		return "", false, nil
	}

	l := lease{token: uuid.NewString()}
	if ttl > 0 {
		l.exp = now.Add(ttl)
	}
	m.held[key] = l
	return l.token, true, nil
}

// Unlock releases key if token still owns it. A lease that expired and was
// taken by someone else is left in place.
func (m *MemoryLocker) Unlock(_ context.Context, key, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.held[key]
	if !ok || l.token != token {
		return ErrNotHeld
	}
	delete(m.held, key)
	return nil
}
