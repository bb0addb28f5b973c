package cityinfo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/TOLUWALASE007/worldclock/internal/catalog"
	"github.com/TOLUWALASE007/worldclock/internal/metrics"
)

var (
	// ErrUnavailable is returned when a bundle could not be settled at all.
	ErrUnavailable = errors.New("city information unavailable")
	// ErrNoProvider is returned when an optional provider was not configured.
	ErrNoProvider = errors.New("provider not configured")
)

// Providers groups the upstream sources used by the Service.
type Providers struct {
	Photos    PhotoResolver
	Countries CountryProvider
	Rates     ExchangeRateProvider
	Summaries SummaryProvider
	Holidays  HolidayProvider
	Weather   WeatherProvider
	Zones     ZoneProvider
}

// Options tunes bundle resolution.
type Options struct {
	// Timeout bounds one bundle resolution (0 = unbounded).
	Timeout time.Duration
	// CacheTTL is how long resolved bundles are reused (0 = no caching).
	CacheTTL time.Duration
}

// Service resolves city bundles by querying all providers concurrently.
type Service struct {
	providers Providers
	cache     Cache
	opts      Options

	group singleflight.Group
	now   func() time.Time
}

// NewService creates a new Service. cache may be nil.
func NewService(providers Providers, cache Cache, opts Options) *Service {
	return &Service{
		providers: providers,
		cache:     cache,
		opts:      opts,
		now:       time.Now,
	}
}

// Resolve returns the bundle for loc, from cache when possible. Concurrent
// calls for the same location share one resolution. An error means the
// bundle as a whole is unavailable; failed sections are nil fields instead.
func (s *Service) Resolve(ctx context.Context, loc Location) (*Bundle, error) {
	if b, ok := s.cached(ctx, loc); ok {
		return b, nil
	}
	return s.shared(ctx, loc)
}

// Refresh resolves loc bypassing the cache and stores the result.
func (s *Service) Refresh(ctx context.Context, loc Location) (*Bundle, error) {
	return s.shared(ctx, loc)
}

func (s *Service) cached(ctx context.Context, loc Location) (*Bundle, bool) {
	if s.cache == nil || s.opts.CacheTTL <= 0 {
		return nil, false
	}
	b, err := s.cache.Get(ctx, loc.Key())
	if err != nil {
		metrics.BundleCacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}
	metrics.BundleCacheLookups.WithLabelValues("hit").Inc()
	return &b, true
}

func (s *Service) shared(ctx context.Context, loc Location) (*Bundle, error) {
	ch := s.group.DoChan(loc.Key(), func() (interface{}, error) {
		// The resolution outlives any single waiter; its own timeout bounds it.
		rctx := context.WithoutCancel(ctx)
		if s.opts.Timeout > 0 {
			var cancel context.CancelFunc
			rctx, cancel = context.WithTimeout(rctx, s.opts.Timeout)
			defer cancel()
		}
		return s.resolve(rctx, loc)
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		b := *res.Val.(*Bundle)
		return &b, nil
	}
}

func (s *Service) resolve(ctx context.Context, loc Location) (*Bundle, error) {
	start := time.Now()
	code := catalog.CountryCode(loc.Country)

	b := &Bundle{
		RequestID:   uuid.NewString(),
		Location:    loc,
		CountryCode: code,
	}
	logger := log.With().
		Str("request_id", b.RequestID).
		Str("city", loc.City).
		Str("country", loc.Country).
		Logger()

	if code == "" {
		logger.Warn().Msg("country is not mapped to an ISO code; code-based queries skipped")
	}

	var wg sync.WaitGroup
	run := func(query string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					metrics.BundleQueryFailures.WithLabelValues(query).Inc()
					logger.Error().Interface("panic", r).Str("query", query).Msg("city info query panicked")
				}
			}()

			if err := fn(); err != nil {
				// Log and continue; one section failing must not fail the bundle.
				metrics.BundleQueryFailures.WithLabelValues(query).Inc()
				logger.Warn().Err(err).Str("query", query).Msg("city info query failed")
			}
		}()
	}

	run("photo", func() error {
		b.Photo = s.providers.Photos.Resolve(ctx, loc.City, loc.Country)
		return nil
	})
	run("country", func() error {
		var err error
		b.CountryInfo, err = s.providers.Countries.Country(ctx, code)
		return err
	})
	run("exchange_rate", func() error {
		var err error
		b.ExchangeRate, err = s.providers.Rates.Rate(ctx, code)
		return err
	})
	run("summary", func() error {
		var err error
		b.Summary, err = s.providers.Summaries.Summary(ctx, loc.City, loc.Country)
		return err
	})
	run("demographics", func() error {
		var err error
		b.Demographics, err = s.providers.Countries.Demographics(ctx, code)
		return err
	})
	run("holidays", func() error {
		var err error
		b.Holidays, err = s.providers.Holidays.Holidays(ctx, code, LocalNow(s.now(), loc).Year())
		return err
	})

	settled := make(chan struct{})
	go func() {
		wg.Wait()
		close(settled)
	}()

	select {
	case <-settled:
	case <-ctx.Done():
		logger.Error().Err(ctx.Err()).Msg("city bundle did not settle")
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, ctx.Err())
	}

	if b.Holidays == nil {
		b.Holidays = []Holiday{}
	}
	b.ResolvedAt = time.Now().UTC()
	metrics.BundleResolveDuration.Observe(time.Since(start).Seconds())

	if s.cache != nil && s.opts.CacheTTL > 0 {
		if err := s.cache.Put(ctx, loc.Key(), *b, s.opts.CacheTTL); err != nil {
			logger.Warn().Err(err).Msg("failed to cache city bundle")
		}
	}

	logger.Debug().Dur("elapsed", time.Since(start)).Msg("city bundle settled")
	return b, nil
}

// Holidays returns the display-ordered holidays of the current year for
// loc's country. The year and "today" are taken in loc's zone; loc.City may
// be empty.
func (s *Service) Holidays(ctx context.Context, loc Location) (HolidayList, error) {
	now := LocalNow(s.now(), loc)
	records, err := s.providers.Holidays.Holidays(ctx, catalog.CountryCode(loc.Country), now.Year())
	if err != nil {
		return HolidayList{}, err
	}
	return DisplayHolidays(records, now), nil
}

// Weather returns current weather for loc.
func (s *Service) Weather(ctx context.Context, loc Location) (*Weather, error) {
	if s.providers.Weather == nil {
		return nil, ErrNoProvider
	}
	return s.providers.Weather.Weather(ctx, loc.City, loc.Country)
}

// Zone describes a time zone using the remote zone provider.
func (s *Service) Zone(ctx context.Context, zone string) (*ZoneInfo, error) {
	if s.providers.Zones == nil {
		return nil, ErrNoProvider
	}
	return s.providers.Zones.Zone(ctx, zone)
}
