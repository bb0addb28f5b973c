package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TOLUWALASE007/worldclock/internal/catalog"
	"github.com/TOLUWALASE007/worldclock/internal/cityinfo"
)

type recordingRefresher struct {
	mu   sync.Mutex
	seen map[string]int
}

func (r *recordingRefresher) Refresh(_ context.Context, loc cityinfo.Location) (*cityinfo.Bundle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.seen == nil {
		r.seen = map[string]int{}
	}
	r.seen[loc.Key()]++
	if loc.City == "Cairo" {
		return nil, errors.New("upstream down")
	}
	return &cityinfo.Bundle{Location: loc}, nil
}

func (r *recordingRefresher) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.seen)
}

func TestWarmRefreshesEveryCity(t *testing.T) {
	r := &recordingRefresher{}
	cities := catalog.Cities()
	s := New(cities, time.Hour, r)

	s.Warm()

	assert.Equal(t, len(cities), r.count())
	assert.Equal(t, 1, r.seen["Cairo:Egypt"])
}

func TestStartRunsImmediately(t *testing.T) {
	r := &recordingRefresher{}
	s := New(catalog.Cities()[:3], time.Hour, r)
	require.NoError(t, s.Start())
	defer s.Stop()

	require.Eventually(t, func() bool { return r.count() == 3 }, 2*time.Second, 10*time.Millisecond)
}

func TestStartDisabled(t *testing.T) {
	r := &recordingRefresher{}
	s := New(catalog.Cities(), 0, r)
	require.NoError(t, s.Start())
	defer s.Stop()

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 0, r.count())
}
