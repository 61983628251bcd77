/*
Package limiter throttles request rates per client IP address.

Each IP gets its own token bucket (rate.Limiter). Buckets that have fully refilled
are considered idle and swept periodically so the map does not grow without bound.
*/
package limiter

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"goldbook/internal/pkg/errs"
	"goldbook/internal/pkg/logx"
	"goldbook/internal/pkg/resp"
)

// sweepInterval is how often idle buckets are reclaimed.
const sweepInterval = 3 * time.Minute

// IPRateLimiter hands out one token bucket per client IP.
type IPRateLimiter struct {
	mu      sync.RWMutex
	buckets map[string]*rate.Limiter

	limit rate.Limit
	burst int
}

// NewIPRateLimiter creates a limiter allowing `limit` events per second with the
// given burst per IP, and starts the background sweep.
func NewIPRateLimiter(limit rate.Limit, burst int) *IPRateLimiter {
	l := &IPRateLimiter{
		buckets: make(map[string]*rate.Limiter),
		limit:   limit,
		burst:   burst,
	}

	go l.sweep()

	return l
}

// GetLimiter returns the bucket for an IP, creating it on first sight. The read
// path takes only the read lock; creation re-checks under the write lock.
func (l *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	l.mu.RLock()
	bucket, ok := l.buckets[ip]
	l.mu.RUnlock()

	if ok {
		return bucket
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if bucket, ok = l.buckets[ip]; !ok {
		bucket = rate.NewLimiter(l.limit, l.burst)
		l.buckets[ip] = bucket
	}

	return bucket
}

// sweep drops buckets whose tokens have fully refilled. A full bucket means the IP
// has been quiet for at least burst/limit seconds.
func (l *IPRateLimiter) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()

		l.mu.Lock()
		removed := 0
		for ip, bucket := range l.buckets {
			if bucket.TokensAt(now) >= float64(bucket.Burst()) {
				delete(l.buckets, ip)
				removed++
			}
		}
		active := len(l.buckets)
		l.mu.Unlock()

		logx.Debug("Rate limiter sweep finished", "removed", removed, "active", active)
	}
}

// Middleware rejects requests over the per-IP limit with 429 before they reach the handler.
func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if ip == "" {
			ip = "unknown_ip"
		}

		if !l.GetLimiter(ip).Allow() {
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		next.ServeHTTP(w, r)
	})
}
