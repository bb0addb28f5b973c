package cityinfo

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePhotos struct{ url string }

func (f fakePhotos) Resolve(context.Context, string, string) string { return f.url }

type fakeCountries struct {
	calls int32
	block chan struct{}
}

func (f *fakeCountries) Country(ctx context.Context, code string) (*CountryFacts, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if code == "" {
		return nil, nil
	}
	return &CountryFacts{Name: "Nigeria", Capital: "Abuja", Population: "223,804,632", Region: "Africa"}, nil
}

func (f *fakeCountries) Demographics(ctx context.Context, code string) (*Demographics, error) {
	facts, err := f.Country(ctx, code)
	if err != nil || facts == nil {
		return nil, err
	}
	return &Demographics{CountryPopulation: facts.Population, Capital: facts.Capital, Region: facts.Region}, nil
}

type failingRates struct{}

func (failingRates) Rate(context.Context, string) (*ExchangeRate, error) {
	return nil, errors.New("upstream returned status 503")
}

type fakeRates struct{}

func (fakeRates) Rate(_ context.Context, code string) (*ExchangeRate, error) {
	if code == "" {
		return nil, nil
	}
	return &ExchangeRate{Base: "NGN", Quote: "USD", Rate: 0.00075}, nil
}

type fakeSummaries struct{}

func (fakeSummaries) Summary(_ context.Context, city, _ string) (*Summary, error) {
	return &Summary{Title: city, Extract: city + " is a city."}, nil
}

type panickingSummaries struct{}

func (panickingSummaries) Summary(context.Context, string, string) (*Summary, error) {
	panic("decoder exploded")
}

type fakeHolidays struct {
	records []Holiday
	err     error
}

func (f fakeHolidays) Holidays(context.Context, string, int) ([]Holiday, error) {
	return f.records, f.err
}

// yearHolidays records the year it was asked for and serves records as-is.
type yearHolidays struct {
	mu      sync.Mutex
	years   []int
	records []Holiday
}

func (f *yearHolidays) Holidays(_ context.Context, _ string, year int) ([]Holiday, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.years = append(f.years, year)
	return f.records, nil
}

func (f *yearHolidays) asked() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.years...)
}

type mapCache struct {
	mu   sync.Mutex
	data map[string]Bundle
}

func newMapCache() *mapCache { return &mapCache{data: map[string]Bundle{}} }

func (c *mapCache) Get(_ context.Context, key string) (Bundle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return Bundle{}, errors.New("not found")
	}
	return b, nil
}

func (c *mapCache) Put(_ context.Context, key string, b Bundle, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	return nil
}

func testProviders(countries *fakeCountries) Providers {
	return Providers{
		Photos:    fakePhotos{url: "https://example.com/lagos.jpg"},
		Countries: countries,
		Rates:     fakeRates{},
		Summaries: fakeSummaries{},
		Holidays:  fakeHolidays{records: []Holiday{{Name: "Independence Day", Date: "2024-10-01"}}},
	}
}

var lagos = Location{City: "Lagos", Country: "Nigeria"}

func TestResolvePopulatesEverySection(t *testing.T) {
	svc := NewService(testProviders(&fakeCountries{}), nil, Options{Timeout: time.Second})

	b, err := svc.Resolve(context.Background(), lagos)

	require.NoError(t, err)
	assert.NotEmpty(t, b.RequestID)
	assert.Equal(t, "NG", b.CountryCode)
	assert.Equal(t, "https://example.com/lagos.jpg", b.Photo)
	require.NotNil(t, b.CountryInfo)
	assert.Equal(t, "Abuja", b.CountryInfo.Capital)
	require.NotNil(t, b.ExchangeRate)
	assert.Equal(t, "USD", b.ExchangeRate.Quote)
	require.NotNil(t, b.Summary)
	require.NotNil(t, b.Demographics)
	assert.Len(t, b.Holidays, 1)
	assert.Equal(t, time.UTC, b.ResolvedAt.Location())
}

func TestResolveKeepsOtherSectionsWhenOneFails(t *testing.T) {
	p := testProviders(&fakeCountries{})
	p.Rates = failingRates{}
	p.Summaries = panickingSummaries{}
	p.Holidays = fakeHolidays{err: errors.New("boom")}
	svc := NewService(p, nil, Options{Timeout: time.Second})

	b, err := svc.Resolve(context.Background(), lagos)

	require.NoError(t, err)
	assert.Nil(t, b.ExchangeRate)
	assert.Nil(t, b.Summary)
	assert.NotNil(t, b.Holidays)
	assert.Empty(t, b.Holidays)
	assert.NotNil(t, b.CountryInfo)
	assert.NotNil(t, b.Demographics)
	assert.NotEmpty(t, b.Photo)
}

func TestResolveUnmappedCountrySkipsCodeQueries(t *testing.T) {
	svc := NewService(testProviders(&fakeCountries{}), nil, Options{})

	b, err := svc.Resolve(context.Background(), Location{City: "Atlantis", Country: "Oceania"})

	require.NoError(t, err)
	assert.Empty(t, b.CountryCode)
	assert.Nil(t, b.CountryInfo)
	assert.Nil(t, b.ExchangeRate)
	assert.Nil(t, b.Demographics)
	assert.NotNil(t, b.Summary)
	assert.NotEmpty(t, b.Photo)
}

func TestResolveUsesCache(t *testing.T) {
	countries := &fakeCountries{}
	svc := NewService(testProviders(countries), newMapCache(), Options{CacheTTL: time.Minute})

	first, err := svc.Resolve(context.Background(), lagos)
	require.NoError(t, err)
	second, err := svc.Resolve(context.Background(), lagos)
	require.NoError(t, err)

	assert.Equal(t, first.RequestID, second.RequestID)
	assert.Equal(t, int32(2), atomic.LoadInt32(&countries.calls))

	refreshed, err := svc.Refresh(context.Background(), lagos)
	require.NoError(t, err)
	assert.NotEqual(t, first.RequestID, refreshed.RequestID)
	assert.Equal(t, int32(4), atomic.LoadInt32(&countries.calls))
}

func TestResolveCallerCancellation(t *testing.T) {
	countries := &fakeCountries{block: make(chan struct{})}
	defer close(countries.block)
	svc := NewService(testProviders(countries), nil, Options{Timeout: 5 * time.Second})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	b, err := svc.Resolve(ctx, lagos)

	assert.Nil(t, b)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestResolveTimeout(t *testing.T) {
	countries := &fakeCountries{block: make(chan struct{})}
	defer close(countries.block)
	svc := NewService(testProviders(countries), nil, Options{Timeout: 20 * time.Millisecond})

	start := time.Now()
	b, err := svc.Resolve(context.Background(), lagos)

	assert.Nil(t, b)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Less(t, time.Since(start), time.Second)
}

func TestResolveSharesConcurrentCalls(t *testing.T) {
	countries := &fakeCountries{block: make(chan struct{})}
	svc := NewService(testProviders(countries), nil, Options{Timeout: time.Second})

	var wg sync.WaitGroup
	ids := make([]string, 4)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b, err := svc.Resolve(context.Background(), lagos)
			if assert.NoError(t, err) {
				ids[i] = b.RequestID
			}
		}(i)
	}
	require.Eventually(t, func() bool { return atomic.LoadInt32(&countries.calls) >= 2 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(countries.block)
	wg.Wait()

	assert.Equal(t, int32(2), atomic.LoadInt32(&countries.calls))
	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
}

func TestServiceHolidaysAreOrdered(t *testing.T) {
	p := testProviders(&fakeCountries{})
	p.Holidays = fakeHolidays{records: yearEnd}
	svc := NewService(p, nil, Options{})
	svc.now = func() time.Time { return time.Date(2024, 12, 1, 12, 0, 0, 0, time.UTC) }

	list, err := svc.Holidays(context.Background(), Location{City: "London", Country: "UK"})

	require.NoError(t, err)
	assert.Equal(t, 3, list.Total)
	assert.Equal(t, []string{"2024-12-25", "2024-12-31", "2024-01-01"}, holidayDates(list.Items))
}

func TestResolveAsksHolidaysForCityYear(t *testing.T) {
	// 2024-12-31 20:00 UTC is already 2025-01-01 in Tokyo.
	newYearsEve := time.Date(2024, 12, 31, 20, 0, 0, 0, time.UTC)

	tests := []struct {
		loc  Location
		year int
	}{
		{Location{City: "Tokyo", Country: "Japan"}, 2025},
		{Location{City: "New York", Country: "USA"}, 2024},
	}
	for _, tt := range tests {
		t.Run(tt.loc.City, func(t *testing.T) {
			h := &yearHolidays{}
			p := testProviders(&fakeCountries{})
			p.Holidays = h
			svc := NewService(p, nil, Options{Timeout: time.Second})
			svc.now = func() time.Time { return newYearsEve }

			_, err := svc.Resolve(context.Background(), tt.loc)

			require.NoError(t, err)
			assert.Equal(t, []int{tt.year}, h.asked())
		})
	}
}

func TestServiceHolidaysUseCityZone(t *testing.T) {
	h := &yearHolidays{records: []Holiday{
		{Name: "New Year's Eve", Date: "2024-12-31"},
		{Name: "New Year's Day", Date: "2025-01-01"},
		{Name: "Coming of Age Day", Date: "2025-01-13"},
	}}
	p := testProviders(&fakeCountries{})
	p.Holidays = h
	svc := NewService(p, nil, Options{})
	svc.now = func() time.Time { return time.Date(2024, 12, 31, 20, 0, 0, 0, time.UTC) }

	for _, loc := range []Location{{City: "Tokyo", Country: "Japan"}, {Country: "Japan"}} {
		list, err := svc.Holidays(context.Background(), loc)

		require.NoError(t, err)
		assert.Equal(t, 2, list.Total)
		require.Len(t, list.Items, 2)
		assert.Equal(t, "2025-01-13", list.Items[0].Date)
		assert.True(t, list.Items[0].IsUpcoming)
		assert.Equal(t, "2025-01-01", list.Items[1].Date)
		assert.True(t, list.Items[1].IsToday)
	}
	assert.Equal(t, []int{2025, 2025}, h.asked())
}

func TestLocalNowFallsBackToCountryThenInput(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "Asia/Tokyo", LocalNow(now, Location{City: "Tokyo", Country: "Japan"}).Location().String())
	assert.Equal(t, "America/New_York", LocalNow(now, Location{City: "Boston", Country: "USA"}).Location().String())
	assert.Equal(t, time.UTC, LocalNow(now, Location{City: "Atlantis", Country: "Atlantis"}).Location())
}

func TestServiceOptionalProviders(t *testing.T) {
	svc := NewService(testProviders(&fakeCountries{}), nil, Options{})

	_, err := svc.Weather(context.Background(), lagos)
	assert.ErrorIs(t, err, ErrNoProvider)
	_, err = svc.Zone(context.Background(), "Africa/Lagos")
	assert.ErrorIs(t, err, ErrNoProvider)
}
