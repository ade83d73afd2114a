package middleware

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"workout/internal/platform/metrics"
	dErrors "workout/pkg/domain-errors"
	"workout/pkg/platform/httputil"
	"workout/pkg/platform/middleware/metadata"
	"workout/pkg/requestcontext"
)

const (
	defaultIdleTTL       = 10 * time.Minute
	defaultJanitorPeriod = time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client key.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	limit   rate.Limit
	burst   int
	idleTTL time.Duration
	now     func() time.Time
}

// NewRateLimiter returns nil when rps is not positive; a nil limiter allows everything.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if rps <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		clients: make(map[string]*clientLimiter),
		limit:   rate.Limit(rps),
		burst:   burst,
		idleTTL: defaultIdleTTL,
		now:     time.Now,
	}
}

// Allow consumes one token for key. When the bucket is empty it reports how
// long the client should wait.
func (l *RateLimiter) Allow(key string) (bool, time.Duration) {
	if l == nil {
		return true, 0
	}
	now := l.now()

	l.mu.Lock()
	c, ok := l.clients[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = now
	l.mu.Unlock()

	res := c.limiter.ReserveN(now, 1)
	if !res.OK() {
		return false, time.Second
	}
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// Run evicts idle clients until ctx is done.
func (l *RateLimiter) Run(ctx context.Context) error {
	if l == nil {
		<-ctx.Done()
		return nil
	}
	ticker := time.NewTicker(defaultJanitorPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			l.evictIdle()
		}
	}
}

func (l *RateLimiter) evictIdle() int {
	cutoff := l.now().Add(-l.idleTTL)
	l.mu.Lock()
	defer l.mu.Unlock()
	evicted := 0
	for key, c := range l.clients {
		if c.lastSeen.Before(cutoff) {
			delete(l.clients, key)
			evicted++
		}
	}
	return evicted
}

// RateLimit rejects requests over the per-client budget with 429 and Retry-After.
func RateLimit(l *RateLimiter, logger *slog.Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if l == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			key := requestcontext.ClientIP(ctx)
			if key == "" {
				key = metadata.ClientIPFromRequest(r)
			}

			allowed, retryAfter := l.Allow(key)
			if !allowed {
				seconds := int(math.Ceil(retryAfter.Seconds()))
				if seconds < 1 {
					seconds = 1
				}
				if m != nil {
					m.IncrementRateLimited()
				}
				logger.WarnContext(ctx, "rate limit exceeded",
					"request_id", GetRequestID(ctx),
					"client_ip", key,
					"retry_after_seconds", seconds,
				)
				w.Header().Set("Retry-After", strconv.Itoa(seconds))
				httputil.WriteError(w, dErrors.New(dErrors.CodeTooManyRequests, "Muitas requisições, tente novamente mais tarde"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
