package validate

import (
	"sync"
	"time"
)

// NewRateLimiter returns a trailing-window limiter: each call records a
// timestamp for the identifier, timestamps older than the window are
// dropped, and the call is denied once maxRequests remain inside it.
// Identifiers are never evicted, so the map grows with distinct callers;
// acceptable for a login endpoint, not for unbounded identifier spaces.
func NewRateLimiter(maxRequests int, window time.Duration) func(identifier string) bool {
	var mu sync.Mutex
	requests := make(map[string][]time.Time)

	return func(identifier string) bool {
		mu.Lock()
		defer mu.Unlock()

		now := time.Now()
		windowStart := now.Add(-window)

		recent := requests[identifier][:0]
		for _, ts := range requests[identifier] {
			if ts.After(windowStart) {
				recent = append(recent, ts)
			}
		}

		if len(recent) >= maxRequests {
			requests[identifier] = recent
			return false
		}

		requests[identifier] = append(recent, now)
		return true
	}
}
