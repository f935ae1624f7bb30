package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPRequests counts served requests by route pattern and status.
var HTTPRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "movies_http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"method", "route", "status"},
)

// HTTPDuration observes request latency by route pattern.
var HTTPDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "movies_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// AuthEvents counts registration, login and auth gate outcomes.
var AuthEvents = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "movies_auth_events_total",
		Help: "Total number of authentication events by operation and outcome",
	},
	[]string{"operation", "outcome"},
)

// RateLimited counts requests rejected by the rate limiter.
var RateLimited = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "movies_rate_limited_total",
		Help: "Total number of requests rejected by the rate limiter",
	},
	[]string{"route"},
)

// RegisterMetrics registers the service metrics with reg.
// Panics if registration fails (following prometheus convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(HTTPRequests)
	reg.MustRegister(HTTPDuration)
	reg.MustRegister(AuthEvents)
	reg.MustRegister(RateLimited)
}

// RecordHTTP records one served request.
func RecordHTTP(method, route string, status int, duration time.Duration) {
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordAuth records an authentication outcome, e.g. ("login", "failure").
func RecordAuth(operation, outcome string) {
	AuthEvents.WithLabelValues(operation, outcome).Inc()
}

// RecordRateLimited records a rejected request.
func RecordRateLimited(route string) {
	RateLimited.WithLabelValues(route).Inc()
}
