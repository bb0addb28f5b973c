package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpapi "github.com/TOLUWALASE007/worldclock/internal/api/http"
	"github.com/TOLUWALASE007/worldclock/internal/catalog"
	"github.com/TOLUWALASE007/worldclock/internal/cityinfo"
	"github.com/TOLUWALASE007/worldclock/internal/cityinfo/providers"
	"github.com/TOLUWALASE007/worldclock/internal/config"
	"github.com/TOLUWALASE007/worldclock/internal/metrics"
	"github.com/TOLUWALASE007/worldclock/internal/scheduler"
	"github.com/TOLUWALASE007/worldclock/internal/store"
)

const (
	serviceName = "worldclock"
	version     = "1.0.0"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogging(cfg.LogLevel, cfg.LogFormat)
	metrics.Init(serviceName, version)

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}
	backoff := providers.BackoffConfig{
		MaxRetries:      cfg.UpstreamMaxRetries,
		InitialInterval: cfg.BackoffInitial,
		MaxInterval:     cfg.BackoffMax,
	}

	// Providers with resilience (backoff + circuit breaker).
	wiki := providers.NewWikipediaClient(httpClient, backoff)
	thumbnails, media := providers.NewWikipediaPhotoSources(wiki)
	photos := providers.NewPhotoChain(
		thumbnails,
		media,
		providers.NewCommonsPhotoSource(httpClient, backoff),
		providers.NewUnsplashPhotoSource(),
	)
	countries := providers.NewRestCountriesProvider(httpClient, backoff)

	provs := cityinfo.Providers{
		Photos:    photos,
		Countries: countries,
		Rates:     providers.NewExchangeRateProvider(httpClient, backoff),
		Summaries: wiki,
		Holidays:  providers.NewNagerProvider(httpClient, backoff),
		Weather:   providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey, backoff),
		Zones:     providers.NewWorldTimeProvider(httpClient, backoff),
	}
	if cfg.OpenWeatherAPIKey == "" {
		log.Warn().Msg("OPENWEATHER_API_KEY not set; weather readings will be synthetic")
	}

	// Bundle cache: Redis when configured, otherwise in memory.
	var cache cityinfo.Cache
	if cfg.RedisAddress != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rs, err := store.NewRedisStore(ctx, store.RedisOptions{
			Address:  cfg.RedisAddress,
			Username: cfg.RedisUsername,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		cancel()
		if err != nil {
			log.Fatal().Err(err).Str("address", cfg.RedisAddress).Msg("failed to connect to redis")
		}
		defer rs.Close()
		cache = rs
		log.Info().Str("address", cfg.RedisAddress).Msg("using redis bundle cache")
	} else {
		cache = store.NewMemoryStore(cfg.CacheMaxEntries)
	}

	// Core service resolving city bundles.
	service := cityinfo.NewService(provs, cache, cityinfo.Options{
		Timeout:  cfg.BundleTimeout,
		CacheTTL: cfg.CacheTTL,
	})

	// Scheduler that periodically warms the bundle cache.
	sched := scheduler.New(catalog.Cities(), cfg.WarmInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start scheduler")
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		// Display streams are long-lived; no write timeout.
		ErrorHandler: httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(httpapi.PrometheusMiddleware())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": serviceName,
			"version": version,
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service, httpapi.Options{ClockInterval: cfg.ClockInterval})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting http server")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error().Err(err).Msg("fiber server stopped")
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
}

func setupLogging(level, format string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339

	if format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
