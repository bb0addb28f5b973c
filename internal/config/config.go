package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type AppConfig struct {
	Port string

	// Outbound calls.
	HTTPTimeout        time.Duration
	UpstreamMaxRetries int
	BackoffInitial     time.Duration
	BackoffMax         time.Duration
	OpenWeatherAPIKey  string

	// BundleTimeout bounds one city bundle resolution (0 = unbounded).
	BundleTimeout time.Duration

	// Bundle cache. Redis is used when RedisAddress is set.
	CacheTTL        time.Duration
	CacheMaxEntries int
	RedisAddress    string
	RedisUsername   string
	RedisPassword   string
	RedisDB         int

	// WarmInterval refreshes every catalog city's bundle (0 = disabled).
	WarmInterval  time.Duration
	ClockInterval time.Duration

	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Info().Err(err).Msg("no .env file loaded")
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.UpstreamMaxRetries = getenvInt("UPSTREAM_MAX_RETRIES", 0)
	if cfg.UpstreamMaxRetries < 0 {
		return nil, fmt.Errorf("invalid UPSTREAM_MAX_RETRIES: must not be negative")
	}
	cfg.CacheMaxEntries = getenvInt("CACHE_MAX_ENTRIES", 100)
	cfg.RedisAddress = os.Getenv("REDIS_ADDRESS")
	cfg.RedisUsername = os.Getenv("REDIS_USERNAME")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RedisDB = getenvInt("REDIS_DB", 0)
	cfg.LogLevel = getenvDefault("LOG_LEVEL", "info")
	cfg.LogFormat = getenvDefault("LOG_FORMAT", "console")

	durations := []struct {
		key string
		def string
		dst *time.Duration
	}{
		{"HTTP_TIMEOUT", "10s", &cfg.HTTPTimeout},
		{"UPSTREAM_BACKOFF_INITIAL", "500ms", &cfg.BackoffInitial},
		{"UPSTREAM_BACKOFF_MAX", "5s", &cfg.BackoffMax},
		{"BUNDLE_TIMEOUT", "20s", &cfg.BundleTimeout},
		{"CACHE_TTL", "10m", &cfg.CacheTTL},
		{"WARM_INTERVAL", "0", &cfg.WarmInterval},
		{"CLOCK_INTERVAL", "1s", &cfg.ClockInterval},
	}
	for _, d := range durations {
		v, err := getenvDuration(d.key, d.def)
		if err != nil {
			return nil, err
		}
		*d.dst = v
	}

	if cfg.BackoffInitial <= 0 {
		return nil, fmt.Errorf("invalid UPSTREAM_BACKOFF_INITIAL: must be positive")
	}
	if cfg.ClockInterval <= 0 {
		return nil, fmt.Errorf("invalid CLOCK_INTERVAL: must be positive")
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", key)
	}
	return d, nil
}
