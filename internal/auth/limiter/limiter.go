// Package limiter counts failed logins and locks a key out once too many
// failures land inside the lockout window.
package limiter

import (
	"context"
	"sync"
	"time"
)

type Limiter interface {
	Blocked(ctx context.Context, key string) (bool, error)
	// Fail counts one attempt against key and returns the count inside the
	// current window.
	Fail(ctx context.Context, key string) (int, error)
	Reset(ctx context.Context, key string) error
	Limit() int
}

type entry struct {
	count   int
	expires time.Time
}

type MemoryLimiter struct {
	mu          sync.Mutex
	attempts    map[string]entry
	maxAttempts int
	window      time.Duration
	now         func() time.Time
	lastSweep   time.Time
}

func NewMemoryLimiter(maxAttempts int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		attempts:    make(map[string]entry),
		maxAttempts: maxAttempts,
		window:      window,
		now:         time.Now,
	}
}

func (l *MemoryLimiter) Blocked(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.live(key)
	return ok && e.count >= l.maxAttempts, nil
}

func (l *MemoryLimiter) Fail(_ context.Context, key string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep()

	e, ok := l.live(key)
	if !ok {
		e = entry{expires: l.now().Add(l.window)}
	}
	e.count++
	l.attempts[key] = e
	return e.count, nil
}

func (l *MemoryLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.attempts, key)
	return nil
}

func (l *MemoryLimiter) Limit() int {
	return l.maxAttempts
}

// sweep drops every expired entry at most once per window, so keys that
// never come back do not accumulate. Caller holds l.mu.
func (l *MemoryLimiter) sweep() {
	now := l.now()
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	l.lastSweep = now

	for key, e := range l.attempts {
		if !now.Before(e.expires) {
			delete(l.attempts, key)
		}
	}
}

// live returns the entry for key unless its window has passed. Caller
// holds l.mu.
func (l *MemoryLimiter) live(key string) (entry, bool) {
	e, ok := l.attempts[key]
	if !ok {
		return entry{}, false
	}
	if !l.now().Before(e.expires) {
		delete(l.attempts, key)
		return entry{}, false
	}
	return e, true
}
