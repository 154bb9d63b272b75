package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Cache outcomes.
const (
	OutcomeFresh     = "fresh"
	OutcomeRefreshed = "refreshed"
	OutcomeStale     = "stale_fallback"
	OutcomeNoData    = "no_data"
)

var (
	// Registry holds the application collectors.
	Registry = prometheus.NewRegistry()

	cacheReads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "showcase",
			Subsystem: "ownership_cache",
			Name:      "reads_total",
			Help:      "Ownership cache reads by instance and outcome.",
		},
		[]string{"cache", "outcome"},
	)

	sourceFetches = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "showcase",
			Subsystem: "ownership_source",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of external ownership fetches.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10), // 10ms to ~5s
		},
		[]string{"cache", "success"},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "showcase",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)
)

func init() {
	Registry.MustRegister(cacheReads, sourceFetches, httpRequests)
}

func RecordCacheRead(cache, outcome string) {
	cacheReads.WithLabelValues(cache, outcome).Inc()
}

func RecordSourceFetch(cache string, success bool, d time.Duration) {
	sourceFetches.WithLabelValues(cache, strconv.FormatBool(success)).Observe(d.Seconds())
}

func RecordHTTPRequest(method, path string, status int) {
	if path == "" {
		path = "unmatched"
	}
	httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

// Handler exposes Registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
