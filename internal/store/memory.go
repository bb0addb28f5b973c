package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/TOLUWALASE007/worldclock/internal/cityinfo"
)

var (
	// ErrNotFound is returned when no live bundle is cached for a key.
	ErrNotFound = errors.New("no cached bundle for location")
)

type entry struct {
	bundle   cityinfo.Bundle
	storedAt time.Time
	expires  time.Time
}

// MemoryStore is a concurrency-safe in-memory bundle cache.
type MemoryStore struct {
	mu sync.RWMutex

	// key: location key
	data map[string]entry

	// retention configuration
	maxEntries int // max number of cached locations (0 = unlimited)

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore.
// If maxEntries is <= 0, it is treated as unlimited.
func NewMemoryStore(maxEntries int) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]entry),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Put stores a bundle for ttl and enforces retention.
func (s *MemoryStore) Put(_ context.Context, key string, b cityinfo.Bundle, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.data[key] = entry{bundle: b, storedAt: now, expires: now.Add(ttl)}

	// Enforce retention by age.
	for k, e := range s.data {
		if !now.Before(e.expires) {
			delete(s.data, k)
		}
	}

	// Enforce retention by count, evicting the oldest entries first.
	for s.maxEntries > 0 && len(s.data) > s.maxEntries {
		var (
			oldestKey string
			oldestAt  time.Time
		)
		for k, e := range s.data {
			if oldestKey == "" || e.storedAt.Before(oldestAt) {
				oldestKey, oldestAt = k, e.storedAt
			}
		}
		delete(s.data, oldestKey)
	}
	return nil
}

// Get returns the live bundle for key.
func (s *MemoryStore) Get(_ context.Context, key string) (cityinfo.Bundle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[key]
	if !ok || !s.now().Before(e.expires) {
		return cityinfo.Bundle{}, ErrNotFound
	}
	return e.bundle, nil
}

// Len returns the number of entries, including expired ones not yet evicted.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
