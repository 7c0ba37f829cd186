package cache

import (
	"context"
	"sync"
	"time"

	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/logger"
)

type memoryEntry struct {
	count     int
	expiresAt time.Time
}

// MemoryStore is the single-process fallback used when REDIS_ADDR is empty, and in tests.
// State is lost on restart and not shared between replicas.
type MemoryStore struct {
	mu          sync.Mutex
	entries     map[string]memoryEntry
	maxAttempts int
	window      time.Duration
	now         func() time.Time
}

func NewMemoryStore(maxAttempts int, window time.Duration) *MemoryStore {
	return &MemoryStore{
		entries:     make(map[string]memoryEntry),
		maxAttempts: maxAttempts,
		window:      window,
		now:         time.Now,
	}
}

// get returns a live entry; expired entries are dropped. Caller holds mu.
func (s *MemoryStore) get(key string) (memoryEntry, bool) {
	e, ok := s.entries[key]
	if !ok {
		return memoryEntry{}, false
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.entries, key)
		return memoryEntry{}, false
	}
	return e, true
}

func (s *MemoryStore) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[revokedKey(tokenID)] = memoryEntry{count: 1, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.get(revokedKey(tokenID))
	return ok, nil
}

func (s *MemoryStore) Allow(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.get(loginKey(key))
	if !ok {
		return true, nil
	}
	return e.count < s.maxAttempts, nil
}

func (s *MemoryStore) RecordFailure(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := loginKey(key)
	e, ok := s.get(k)
	if !ok {
		e = memoryEntry{expiresAt: s.now().Add(s.window)}
	}
	e.count++
	s.entries[k] = e
	return nil
}

func (s *MemoryStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, loginKey(key))
	return nil
}

// Sweep drops every expired entry. Reads only expire the key they touch, so without a periodic
// sweep a stream of distinct emails grows the map without bound.
func (s *MemoryStore) Sweep(ctx context.Context) error {
	s.mu.Lock()
	now := s.now()
	removed := 0
	for k, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, k)
			removed++
		}
	}
	remaining := len(s.entries)
	s.mu.Unlock()

	if removed > 0 {
		logger.FromContext(ctx).Debug("Expired cache entries removed", "removed", removed, "remaining", remaining)
	}
	return nil
}

// Len reports the number of stored entries, expired or not
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
