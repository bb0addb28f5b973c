package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/TOLUWALASE007/worldclock/internal/cityinfo"
)

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore(10)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	ctx := context.Background()
	b := cityinfo.Bundle{Photo: "https://example.com/lagos.jpg"}
	if err := s.Put(ctx, "Lagos:Nigeria", b, time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := s.Get(ctx, "Lagos:Nigeria")
	if err != nil {
		t.Fatalf("expected cached bundle, got %v", err)
	}
	if got.Photo != b.Photo {
		t.Fatalf("expected photo %q, got %q", b.Photo, got.Photo)
	}

	now = now.Add(time.Minute)
	if _, err := s.Get(ctx, "Lagos:Nigeria"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after ttl, got %v", err)
	}

	if _, err := s.Get(ctx, "Paris:France"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown key, got %v", err)
	}
}

func TestMemoryStoreEvictsOldest(t *testing.T) {
	s := NewMemoryStore(2)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	for _, key := range []string{"a", "b", "c"} {
		now = now.Add(time.Second)
		if err := s.Put(ctx, key, cityinfo.Bundle{}, time.Hour); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if s.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", s.Len())
	}
	if _, err := s.Get(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected oldest entry to be evicted, got %v", err)
	}
	for _, key := range []string{"b", "c"} {
		if _, err := s.Get(ctx, key); err != nil {
			t.Fatalf("expected %s to be cached, got %v", key, err)
		}
	}
}

func TestMemoryStorePurgesExpiredOnPut(t *testing.T) {
	s := NewMemoryStore(0)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	_ = s.Put(ctx, "old", cityinfo.Bundle{}, time.Second)
	now = now.Add(time.Minute)
	_ = s.Put(ctx, "new", cityinfo.Bundle{}, time.Second)

	if s.Len() != 1 {
		t.Fatalf("expected expired entry to be purged, got %d entries", s.Len())
	}
}
