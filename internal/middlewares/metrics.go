package middlewares

import (
	"net/http"
	"time"

	"github.com/sbilibin2017/gw-movie-streaming/internal/metrics"
)

// MetricsMiddleware records request count and latency labelled by route pattern.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		// the pattern is only complete once routing has finished
		metrics.RecordHTTP(r.Method, routeOf(r), rw.statusCode, time.Since(start))
	})
}
