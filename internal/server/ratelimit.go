package server

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"atsresume/internal/config"
	"atsresume/internal/errors"
)

// visitorIdleTimeout is how long a client may stay silent before its bucket is dropped
const visitorIdleTimeout = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client key. Keys look like
// "api:<key>" or "ip:<address>"; rejections are counted per prefix.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rejected map[string]int

	limit    rate.Limit
	burst    int
	requests int
	window   time.Duration

	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
	logger   *errors.Logger
}

// NewRateLimiter allows cfg.RequestsPerMin requests per cfg.Window (one
// minute when unset) with bursts of up to cfg.BurstCapacity. Close stops the
// background sweep of idle clients.
func NewRateLimiter(cfg config.RateLimitConfig, logger *errors.Logger) *RateLimiter {
	if logger == nil {
		logger = errors.Discard()
	}
	window := windowOrMinute(cfg.Window)
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		rejected: make(map[string]int),
		limit:    rate.Limit(float64(cfg.RequestsPerMin) / window.Seconds()),
		burst:    cfg.BurstCapacity,
		requests: cfg.RequestsPerMin,
		window:   window,
		now:      time.Now,
		stop:     make(chan struct{}),
		logger:   logger,
	}
	go rl.sweepLoop(visitorIdleTimeout)
	return rl
}

// Allow reports whether the client identified by key may proceed. It never blocks.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = rl.now()

	if v.limiter.AllowN(v.lastSeen, 1) {
		return true
	}
	rl.rejected[keyType(key)]++
	return false
}

// GetStats returns current rate limiter statistics
func (rl *RateLimiter) GetStats() map[string]any {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rejected := make(map[string]int, len(rl.rejected))
	for k, n := range rl.rejected {
		rejected[k] = n
	}
	return map[string]any{
		"active_clients":      len(rl.visitors),
		"requests_per_window": rl.requests,
		"window":              rl.window.String(),
		"burst_capacity":      rl.burst,
		"rejected":            rejected,
	}
}

func (rl *RateLimiter) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.sweep(interval)
		case <-rl.stop:
			return
		}
	}
}

// sweep forgets clients idle for longer than idle
func (rl *RateLimiter) sweep(idle time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-idle)
	for key, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, key)
		}
	}
	rl.logger.Debug("Rate limiter sweep completed", "remaining_clients", len(rl.visitors))
}

// Close stops the sweep goroutine. It is safe to call more than once.
func (rl *RateLimiter) Close() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// rateLimitMiddleware rejects requests over the per-client budget with 429
func (s *Server) rateLimitMiddleware() func(http.HandlerFunc) http.HandlerFunc {
	if s.RateLimiter == nil {
		return func(next http.HandlerFunc) http.HandlerFunc { return next }
	}

	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			key := getRateLimitKey(r, s.RateLimit.ByAPIKey, s.RateLimit.ByIP)
			if key == "" || s.RateLimiter.Allow(key) {
				next(w, r)
				return
			}

			s.om.RecordRateLimitHit(r.Context(), keyType(key))
			s.Logger.Info("Rate limit exceeded",
				"key_type", keyType(key),
				"endpoint", r.URL.Path,
				"client_ip", getClientIP(r))
			writeErrorResponse(w, "Rate limit exceeded", "Too many requests", http.StatusTooManyRequests)
		}
	}
}

func windowOrMinute(window time.Duration) time.Duration {
	if window <= 0 {
		return time.Minute
	}
	return window
}

func keyType(key string) string {
	prefix, _, _ := strings.Cut(key, ":")
	return prefix
}

// getRateLimitKey prefers the caller's API key and falls back to the client IP
func getRateLimitKey(r *http.Request, byAPIKey, byIP bool) string {
	if byAPIKey {
		if apiKey := requestAPIKey(r); apiKey != "" {
			return "api:" + apiKey
		}
	}
	if byIP {
		return "ip:" + getClientIP(r)
	}
	return ""
}

// requestAPIKey reads X-API-Key or a bearer token
func requestAPIKey(r *http.Request) string {
	if key := r.Header.Get("X-API-Key"); key != "" {
		return key
	}
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return token
	}
	return ""
}

// getClientIP checks X-Forwarded-For, then X-Real-IP, then the remote address
func getClientIP(r *http.Request) string {
	for ip := range strings.SplitSeq(r.Header.Get("X-Forwarded-For"), ",") {
		if ip = strings.TrimSpace(ip); net.ParseIP(ip) != nil {
			return ip
		}
	}

	if ip := r.Header.Get("X-Real-IP"); net.ParseIP(ip) != nil {
		return ip
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
