package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Counter: cache hits by tier (memory | disk).
	CacheHitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movieapp_cache_hits_total",
			Help: "Total number of cache hits by tier.",
		},
		[]string{"tier"},
	)

	// Counter: lookups that found nothing in either tier.
	CacheMissesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "movieapp_cache_misses_total",
			Help: "Total number of cache misses across both tiers.",
		},
	)

	// Counter: upstream fetches triggered by cache state or forced refresh.
	RevalidationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "movieapp_revalidations_total",
			Help: "Total number of upstream fetches.",
		},
	)

	// Counter: revalidations whose payload hash matched the cached one.
	RevalidationsUnchangedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "movieapp_revalidations_unchanged_total",
			Help: "Total number of revalidations that returned unchanged data.",
		},
	)

	// Counter: upstream failures by classification.
	FetchFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movieapp_fetch_failures_total",
			Help: "Total number of upstream fetch failures by kind.",
		},
		[]string{"kind"},
	)

	// Counter: persistent records removed by the expiry sweep.
	PrunedRecordsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "movieapp_pruned_records_total",
			Help: "Total number of expired cache records pruned.",
		},
	)

	// Histogram: persistent-store operation latency in seconds.
	StoreOpSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "movieapp_store_op_seconds",
			Help:    "Persistent cache store operation latency in seconds.",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"op"},
	)

	// Histogram: HTTP latency in seconds.
	HTTPLatencySeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "movieapp_http_latency_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"path", "method", "status_code"},
	)
)

// Register is called once in main() to register metrics.
func Register() {
	prometheus.MustRegister(
		CacheHitsTotal,
		CacheMissesTotal,
		RevalidationsTotal,
		RevalidationsUnchangedTotal,
		FetchFailuresTotal,
		PrunedRecordsTotal,
		StoreOpSeconds,
		HTTPLatencySeconds,
	)
}

// Handler exposes the /metrics endpoint for Prometheus to scrape.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware measures latency for each HTTP request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// capture status code
		rec := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rec, r)

		duration := time.Since(start).Seconds()

		HTTPLatencySeconds.
			WithLabelValues(r.URL.Path, r.Method, strconv.Itoa(rec.statusCode)).
			Observe(duration)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush forwards to the underlying writer so SSE handlers keep streaming.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
