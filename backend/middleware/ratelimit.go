// ABOUTME: Per-client fixed-window rate limiting for expensive API routes
// ABOUTME: Keys requests by client IP and answers 429 with Retry-After when exhausted

package middleware

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/markalston/gpu-tco-analyzer/backend/metrics"
)

// sweepInterval bounds how often expired windows are purged
const sweepInterval = time.Minute

type window struct {
	hits  int
	reset time.Time
}

// RateLimiter admits at most limit requests per key in each window
type RateLimiter struct {
	name   string
	limit  int
	period time.Duration
	now    func() time.Time

	mu        sync.Mutex
	windows   map[string]*window
	lastSweep time.Time
}

// NewRateLimiter builds a limiter for the named route class
func NewRateLimiter(name string, limit int, period time.Duration) *RateLimiter {
	return &RateLimiter{
		name:    name,
		limit:   limit,
		period:  period,
		now:     time.Now,
		windows: make(map[string]*window),
	}
}

// Allow records a hit for key. When the window is full it returns false and
// the time left until the window resets.
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) >= sweepInterval {
		for k, w := range rl.windows {
			if !now.Before(w.reset) {
				delete(rl.windows, k)
			}
		}
		rl.lastSweep = now
	}

	w, ok := rl.windows[key]
	if !ok || !now.Before(w.reset) {
		rl.windows[key] = &window{hits: 1, reset: now.Add(rl.period)}
		return true, 0
	}
	if w.hits < rl.limit {
		w.hits++
		return true, 0
	}
	return false, w.reset.Sub(now)
}

// Len reports how many client windows are tracked
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.windows)
}

// ClientIP returns the leftmost valid X-Forwarded-For address, else the
// RemoteAddr host.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip.String()
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit rejects requests over the limiter's budget. A nil limiter
// disables limiting.
func RateLimit(rl *RateLimiter) Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		if rl == nil {
			return next
		}
		return func(w http.ResponseWriter, r *http.Request) {
			ip := ClientIP(r)
			allowed, retryAfter := rl.Allow(ip)
			if allowed {
				next(w, r)
				return
			}

			seconds := int(math.Ceil(retryAfter.Seconds()))
			slog.Warn("Rate limit exceeded",
				"request_id", RequestIDFromContext(r.Context()),
				"class", rl.name,
				"client", ip,
				"path", sanitizePath(r.URL.Path),
				"retry_after", seconds,
			)
			metrics.RecordRateLimited(rl.name)

			w.Header().Set("Retry-After", strconv.Itoa(seconds))
			writeJSONError(w, "Rate limit exceeded", http.StatusTooManyRequests)
		}
	}
}
