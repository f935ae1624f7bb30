package middlewares

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/sbilibin2017/gw-movie-streaming/internal/apperrors"
	"github.com/sbilibin2017/gw-movie-streaming/internal/logger"
	"github.com/sbilibin2017/gw-movie-streaming/internal/metrics"
	"github.com/sbilibin2017/gw-movie-streaming/internal/response"
)

const rateLimitKeyPrefix = "ratelimit:"

// fixedWindow increments the counter for KEYS[1], starting the window on the
// first hit, and returns {count, remaining ttl in ms}.
var fixedWindow = redis.NewScript(`
local n = redis.call('INCR', KEYS[1])
if n == 1 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('PTTL', KEYS[1])
return {n, ttl}
`)

// RateLimit allows at most max requests per client IP and route within window.
// A nil client disables the limiter; Redis errors let the request through.
func RateLimit(client redis.Scripter, max int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if client == nil || max <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := routeOf(r)
			key := rateLimitKeyPrefix + route + ":" + clientIP(r)

			res, err := fixedWindow.Run(r.Context(), client, []string{key}, window.Milliseconds()).Int64Slice()
			if err != nil || len(res) != 2 {
				logger.Log.Warnw("rate limiter unavailable", "key", key, "err", err)
				next.ServeHTTP(w, r)
				return
			}
			count, ttl := res[0], time.Duration(res[1])*time.Millisecond
			if ttl < 0 {
				ttl = window
			}

			remaining := int64(max) - count
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(max))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(ttl).Unix(), 10))

			if count > int64(max) {
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(ttl.Seconds()))))
				metrics.RecordRateLimited(route)
				logger.Log.Infow("rate limit exceeded", "request_id", RequestIDFromContext(r.Context()), "key", key)
				response.Fail(w, http.StatusTooManyRequests, apperrors.ErrRateLimited.Message)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// routeOf returns the matched chi route pattern, falling back to the path.
func routeOf(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
