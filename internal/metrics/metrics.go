package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worldclock_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "worldclock_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Upstream API calls, labelled by provider and outcome (ok, status, error, circuit_open).
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worldclock_upstream_requests_total",
			Help: "Total number of outbound requests to third-party APIs",
		},
		[]string{"provider", "outcome"},
	)

	PhotoSourceHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worldclock_photo_source_hits_total",
			Help: "Photos resolved per source of the fallback chain",
		},
		[]string{"source"},
	)

	BundleQueryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worldclock_bundle_query_failures_total",
			Help: "Failed sub-queries of city bundle resolution",
		},
		[]string{"query"},
	)

	BundleResolveDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "worldclock_bundle_resolve_duration_seconds",
			Help:    "Time to settle all queries of a city bundle",
			Buckets: prometheus.DefBuckets,
		},
	)

	BundleCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worldclock_bundle_cache_lookups_total",
			Help: "Bundle cache lookups by result (hit, miss)",
		},
		[]string{"result"},
	)

	ActiveStreams = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "worldclock_active_display_streams",
			Help: "Number of open display event streams",
		},
	)

	ApplicationInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worldclock_application_info",
			Help: "Application information",
		},
		[]string{"service", "version"},
	)
)

// Init sets static application info.
func Init(serviceName, version string) {
	ApplicationInfo.WithLabelValues(serviceName, version).Set(1)
}
