package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/ghibliart/server/internal/logger"
)

// DefaultSweepInterval is how often expired entries are removed
const DefaultSweepInterval = 60 * time.Second

type entry struct {
	count     int
	resetTime time.Time
}

// Limiter is an in-process fixed-window request counter keyed by client
// identifier. Bursts at window boundaries are not smoothed; this is abuse
// deterrence, not precise throttling. Constructed once at startup and
// injected into handlers.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time // test seam
}

func New() *Limiter {
	return &Limiter{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// reports whether the caller identified by key may proceed. The first
// request for a key, or any request after the stored window elapsed,
// resets the window and is allowed; within a live window the count is
// compared against maxRequests. Increment-and-compare is atomic with
// respect to other calls for the same key.
func (l *Limiter) Allow(key string, maxRequests int, window time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	e, ok := l.entries[key]
	if !ok || now.After(e.resetTime) {
		l.entries[key] = &entry{
			count:     1,
			resetTime: now.Add(window),
		}

		return true
	}

	if e.count >= maxRequests {
		return false
	}

	e.count++

	return true
}

// runs the periodic cleanup loop until ctx is cancelled. Expired entries
// are deleted to bound memory growth; live windows are untouched.
func (l *Limiter) StartSweep(ctx context.Context, interval time.Duration) {
	logger.Info("starting rate limiter sweep", "interval", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("rate limiter sweep stopped")
			return
		case <-ticker.C:
			removed := l.sweep()
			if removed > 0 {
				logger.Debug("rate limiter sweep removed expired entries", "count", removed)
			}
		}
	}
}

func (l *Limiter) sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0

	for key, e := range l.entries {
		if now.After(e.resetTime) {
			delete(l.entries, key)
			removed++
		}
	}

	return removed
}

// number of tracked keys, for tests and diagnostics
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.entries)
}
