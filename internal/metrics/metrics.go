package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dstclan_http_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// Moderation
	ListingsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dstclan_listings_submitted_total",
			Help: "Listings submitted for moderation",
		},
	)

	ModerationDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dstclan_moderation_decisions_total",
			Help: "Moderation actions by action and outcome",
		},
		[]string{"action", "outcome"}, // approve|reject|delete, ok|illegal|not_found|error
	)

	// Auth
	AdminLogins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dstclan_admin_logins_total",
			Help: "Admin login attempts by result",
		},
		[]string{"result"},
	)

	// Cache
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dstclan_cache_lookups_total",
			Help: "Redis cache lookups by key family and result",
		},
		[]string{"family", "result"},
	)
)

// ObserveRequest records an API request
func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// RecordCache records a cache hit or miss
func RecordCache(family string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookups.WithLabelValues(family, result).Inc()
}
