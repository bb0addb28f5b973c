package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog/log"

	"github.com/TOLUWALASE007/worldclock/internal/catalog"
	"github.com/TOLUWALASE007/worldclock/internal/cityinfo"
)

// Refresher re-resolves a city bundle and stores it in the cache.
type Refresher interface {
	Refresh(ctx context.Context, loc cityinfo.Location) (*cityinfo.Bundle, error)
}

// Scheduler periodically warms the bundle cache for the catalog cities.
type Scheduler struct {
	scheduler   *gocron.Scheduler
	service     Refresher
	cities      []catalog.City
	interval    time.Duration
	timeout     time.Duration
	concurrency int
}

// New creates a new Scheduler. An interval <= 0 disables warming.
func New(cities []catalog.City, interval time.Duration, service Refresher) *Scheduler {
	return &Scheduler{
		scheduler:   gocron.NewScheduler(time.UTC),
		service:     service,
		cities:      cities,
		interval:    interval,
		timeout:     30 * time.Second,
		concurrency: 4,
	}
}

// Start schedules the warm-up job and starts the underlying scheduler. The
// first run happens immediately.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Info().Msg("scheduler: cache warming disabled")
		return nil
	}
	if len(s.cities) == 0 {
		log.Info().Msg("scheduler: no cities configured; nothing to schedule")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).SingletonMode().Do(s.Warm)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Warm refreshes every city once, a few at a time.
func (s *Scheduler) Warm() {
	log.Info().Int("cities", len(s.cities)).Msg("scheduler: warming city bundles")
	start := time.Now()

	sem := make(chan struct{}, s.concurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex
	failed := 0

	for _, city := range s.cities {
		city := city
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
			defer cancel()

			loc := cityinfo.Location{City: city.City, Country: city.Country}
			if _, err := s.service.Refresh(ctx, loc); err != nil {
				mu.Lock()
				failed++
				mu.Unlock()
				log.Warn().Err(err).Str("city", loc.Key()).Msg("scheduler: warm-up failed")
			}
		}()
	}
	wg.Wait()

	log.Info().Int("failed", failed).Dur("elapsed", time.Since(start)).Msg("scheduler: completed warm-up")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
