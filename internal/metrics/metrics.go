package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Vote directions used as label values.
const (
	VoteUp   = "up"
	VoteDown = "down"
)

// Random selection outcomes used as label values.
const (
	TierHigh     = "high"
	TierLow      = "low"
	TierFallback = "fallback"
)

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "singme_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "singme_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "route"},
	)

	HTTPActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "singme_http_active_requests",
			Help: "Current number of in-flight HTTP requests",
		},
	)

	HTTPRateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "singme_http_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)

	// Domain
	RecommendationsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "singme_recommendations_created_total",
			Help: "Total number of recommendations created",
		},
	)

	RecommendationsPruned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "singme_recommendations_pruned_total",
			Help: "Total number of recommendations deleted after falling below the score threshold",
		},
	)

	VotesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "singme_votes_total",
			Help: "Total number of votes applied",
		},
		[]string{"direction"}, // "up", "down"
	)

	RandomSelections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "singme_random_selections_total",
			Help: "Total number of random selections by tier",
		},
		[]string{"tier"}, // "high", "low", "fallback"
	)

	// Client-side bulk import
	ImportItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "singme_import_items_total",
			Help: "Total number of recommendations processed by bulk import",
		},
		[]string{"result"}, // "created", "skipped", "failed"
	)
)

// RecordHTTPRequest records a completed request against its route pattern.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		HTTPActiveRequests.Inc()
	} else {
		HTTPActiveRequests.Dec()
	}
}

// RecordVote counts a vote in the given direction.
func RecordVote(direction string) {
	VotesTotal.WithLabelValues(direction).Inc()
}

// RecordCreated adds n newly created recommendations.
func RecordCreated(n int) {
	RecommendationsCreated.Add(float64(n))
}

// RecordPruned counts a recommendation removed by the downvote threshold.
func RecordPruned() {
	RecommendationsPruned.Inc()
}

// RecordRandomSelection counts a random pick from tier.
func RecordRandomSelection(tier string) {
	RandomSelections.WithLabelValues(tier).Inc()
}

// RecordImport counts one bulk import item by result.
func RecordImport(result string) {
	ImportItemsTotal.WithLabelValues(result).Inc()
}
