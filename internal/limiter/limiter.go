// Package limiter paces login attempts per (email, ip) pair to slow
// online credential guessing.
package limiter

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// maxEntries caps the tracked pairs; the staleness sweep runs when it
// is exceeded.
const maxEntries = 10000

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LoginLimiter tracks a token bucket per (email, ip) pair.
type LoginLimiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	limit   rate.Limit
	burst   int
}

// New builds a limiter allowing perMinute sustained attempts with the
// given burst.
func New(perMinute, burst int) *LoginLimiter {
	if perMinute <= 0 {
		perMinute = 10
	}
	if burst <= 0 {
		burst = 5
	}
	return &LoginLimiter{
		entries: make(map[string]*entry),
		limit:   rate.Limit(float64(perMinute) / 60.0),
		burst:   burst,
	}
}

// Allow reports whether another attempt for this pair is permitted now.
func (l *LoginLimiter) Allow(email, ip string) bool {
	key := email + "|" + ip

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		if len(l.entries) >= maxEntries {
			l.sweepLocked()
		}
		e = &entry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.entries[key] = e
	}
	e.lastSeen = time.Now()
	return e.limiter.Allow()
}

// sweepLocked drops pairs idle for over an hour. Caller holds the lock.
func (l *LoginLimiter) sweepLocked() {
	cutoff := time.Now().Add(-time.Hour)
	for k, e := range l.entries {
		if e.lastSeen.Before(cutoff) {
			delete(l.entries, k)
		}
	}
}
