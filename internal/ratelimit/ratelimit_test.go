package ratelimit

import (
	"sync"
	"testing"
	"time"
)

// fixed clock the tests can move forward by hand
func newTestLimiter(start time.Time) (*Limiter, *time.Time) {
	clock := start
	l := New()
	l.now = func() time.Time { return clock }

	return l, &clock
}

func TestAllow_FixedWindow(t *testing.T) {
	l, clock := newTestLimiter(time.Unix(1000, 0))

	// maxRequests=3, window=1s: first three allowed, fourth denied
	for i := 0; i < 3; i++ {
		if !l.Allow("1.2.3.4", 3, time.Second) {
			t.Errorf("request %d should have been allowed", i+1)
		}
	}

	if l.Allow("1.2.3.4", 3, time.Second) {
		t.Error("4th request within the window should have been denied")
	}

	// after the window elapses the counter resets
	*clock = clock.Add(1001 * time.Millisecond)

	if !l.Allow("1.2.3.4", 3, time.Second) {
		t.Error("request after window elapsed should have been allowed")
	}
}

func TestAllow_IndependentKeys(t *testing.T) {
	l, _ := newTestLimiter(time.Unix(1000, 0))

	for i := 0; i < 3; i++ {
		l.Allow("a", 3, time.Second)
	}

	if l.Allow("a", 3, time.Second) {
		t.Error("key a should be exhausted")
	}

	if !l.Allow("b", 3, time.Second) {
		t.Error("key b should be unaffected by key a")
	}
}

func TestAllow_ConcurrentSameKey(t *testing.T) {
	l := New()

	const workers = 50

	var wg sync.WaitGroup

	allowed := make(chan bool, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()
			allowed <- l.Allow("shared", 10, time.Minute)
		}()
	}

	wg.Wait()
	close(allowed)

	count := 0
	for ok := range allowed {
		if ok {
			count++
		}
	}

	// no lost increments: exactly maxRequests admitted
	if count != 10 {
		t.Errorf("expected exactly 10 allowed requests, got %d", count)
	}
}

func TestSweep_RemovesExpiredEntries(t *testing.T) {
	l, clock := newTestLimiter(time.Unix(1000, 0))

	l.Allow("expired", 3, time.Second)
	l.Allow("live", 3, time.Hour)

	*clock = clock.Add(2 * time.Second)

	removed := l.sweep()

	if removed != 1 {
		t.Errorf("expected 1 entry removed, got %d", removed)
	}

	if l.Len() != 1 {
		t.Errorf("expected 1 entry remaining, got %d", l.Len())
	}
}
