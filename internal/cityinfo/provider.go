package cityinfo

import (
	"context"
	"time"
)

// PhotoResolver finds a photograph URL for a city. It never returns "".
type PhotoResolver interface {
	Resolve(ctx context.Context, city, country string) string
}

// CountryProvider returns country facts for an ISO 3166-1 alpha-2 code.
// An empty code yields (nil, nil) without any upstream call.
type CountryProvider interface {
	Country(ctx context.Context, code string) (*CountryFacts, error)
	Demographics(ctx context.Context, code string) (*Demographics, error)
}

// ExchangeRateProvider returns the USD value of a country's currency.
type ExchangeRateProvider interface {
	Rate(ctx context.Context, code string) (*ExchangeRate, error)
}

// SummaryProvider returns the encyclopedia excerpt for a city.
type SummaryProvider interface {
	Summary(ctx context.Context, city, country string) (*Summary, error)
}

// HolidayProvider returns public holidays of a year for a country code.
type HolidayProvider interface {
	Holidays(ctx context.Context, code string, year int) ([]Holiday, error)
}

// WeatherProvider returns current weather for a city.
type WeatherProvider interface {
	Weather(ctx context.Context, city, country string) (*Weather, error)
}

// ZoneProvider describes a time zone from a remote source.
type ZoneProvider interface {
	Zone(ctx context.Context, zone string) (*ZoneInfo, error)
}

// Cache is the contract the bundle caches (memory, Redis) must satisfy.
type Cache interface {
	Get(ctx context.Context, key string) (Bundle, error)
	Put(ctx context.Context, key string, b Bundle, ttl time.Duration) error
}
