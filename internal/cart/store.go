package cart

import (
	"context"
	"sync"
	"time"
)

// Store keeps one cart per guest session in memory.
type Store interface {
	// Get returns the session's cart, empty if none.
	Get(sessionID string) Cart

	// Update applies fn to the session's cart atomically and stores the result.
	Update(sessionID string, fn func(Cart) Cart) Cart

	// Delete drops the session's cart.
	Delete(sessionID string)
}

type entry struct {
	cart      Cart
	touchedAt time.Time
}

// MemoryStore implements Store with a mutex-guarded map. Idle carts older
// than ttl are dropped by Sweep.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*entry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore creates an in-memory cart store.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(sessionID string) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[sessionID]
	if !ok {
		return Cart{}
	}
	e.touchedAt = s.now()
	out := make(Cart, len(e.cart))
	copy(out, e.cart)
	return out
}

func (s *MemoryStore) Update(sessionID string, fn func(Cart) Cart) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := Cart{}
	if e, ok := s.entries[sessionID]; ok {
		current = e.cart
	}
	next := fn(current)
	if next.Empty() {
		delete(s.entries, sessionID)
		return Cart{}
	}
	s.entries[sessionID] = &entry{cart: next, touchedAt: s.now()}

	out := make(Cart, len(next))
	copy(out, next)
	return out
}

func (s *MemoryStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
}

// Sweep removes carts idle for longer than the store TTL and returns how many
// were removed.
func (s *MemoryStore) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, e := range s.entries {
		if e.touchedAt.Before(cutoff) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live carts.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// RunSweeper calls Sweep every interval until ctx is cancelled.
func (s *MemoryStore) RunSweeper(ctx context.Context, interval time.Duration, onSweep func(removed int)) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.Sweep(); removed > 0 && onSweep != nil {
				onSweep(removed)
			}
		}
	}
}

var _ Store = (*MemoryStore)(nil)
