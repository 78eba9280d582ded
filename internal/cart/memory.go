package cart

import (
	"context"
	"sync"
	"time"
)

const (
	// SessionTTL is how long an idle cart survives before eviction
	SessionTTL = 30 * time.Minute

	// CleanupInterval is how often the background cleanup runs
	CleanupInterval = 1 * time.Minute
)

type memoryEntry struct {
	cart      *Cart
	expiresAt time.Time
}

// MemoryStore implements Store with in-process storage. Idle sessions are
// evicted by a background loop so the map cannot grow without bound.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string]*memoryEntry
	ttl   time.Duration

	stopCleanup chan struct{}
	wg          sync.WaitGroup
}

func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreTTL(SessionTTL, CleanupInterval)
}

func NewMemoryStoreTTL(ttl, cleanupEvery time.Duration) *MemoryStore {
	s := &MemoryStore{
		carts:       make(map[string]*memoryEntry),
		ttl:         ttl,
		stopCleanup: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.cleanupLoop(cleanupEvery)

	return s
}

func (s *MemoryStore) cleanupLoop(every time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.evictExpired()
		case <-s.stopCleanup:
			return
		}
	}
}

func (s *MemoryStore) evictExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, entry := range s.carts {
		if now.After(entry.expiresAt) {
			delete(s.carts, id)
		}
	}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (*Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.carts[sessionID]
	if !exists || time.Now().After(entry.expiresAt) {
		return nil, ErrCartNotFound
	}

	// Copy so callers never mutate stored state directly
	c := *entry.cart
	c.Items = append([]Item(nil), entry.cart.Items...)
	return &c, nil
}

func (s *MemoryStore) Save(_ context.Context, cart *Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *cart
	c.Items = append([]Item(nil), cart.Items...)
	s.carts[cart.SessionID] = &memoryEntry{
		cart:      &c,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}

// Close stops the background cleanup and waits for it to finish
func (s *MemoryStore) Close() error {
	close(s.stopCleanup)
	s.wg.Wait()
	return nil
}
