package chi

import (
	"net"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/kailas-cloud/gallformers/internal/metrics"
)

// RateLimiter hands out one token bucket per client IP. Buckets idle for
// longer than the eviction window are dropped.
type RateLimiter struct {
	limit   rate.Limit
	burst   int
	buckets *gocache.Cache
}

// NewRateLimiter creates a per-client limiter allowing rps requests per second with the given burst.
func NewRateLimiter(rps float64, burst int, idle time.Duration) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	if idle <= 0 {
		idle = 10 * time.Minute
	}
	return &RateLimiter{
		limit:   rate.Limit(rps),
		burst:   burst,
		buckets: gocache.New(idle, idle),
	}
}

// Allow reports whether the client may make a request now.
func (l *RateLimiter) Allow(client string) bool {
	return l.bucket(client).Allow()
}

func (l *RateLimiter) bucket(client string) *rate.Limiter {
	if v, ok := l.buckets.Get(client); ok {
		lim := v.(*rate.Limiter)
		l.buckets.SetDefault(client, lim) // refresh idle timer
		return lim
	}
	lim := rate.NewLimiter(l.limit, l.burst)
	// Add fails if another request created the bucket first; use that one.
	if err := l.buckets.Add(client, lim, gocache.DefaultExpiration); err != nil {
		if v, ok := l.buckets.Get(client); ok {
			return v.(*rate.Limiter)
		}
	}
	return lim
}

// Middleware rejects requests over the client's rate with 429.
// A nil limiter disables limiting.
func (l *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if l == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow(clientIP(r)) {
				metrics.RateLimitedTotal.Inc()
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, CodeRateLimited, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP is the host part of RemoteAddr. Put chi's RealIP middleware in
// front when running behind a trusted proxy.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
