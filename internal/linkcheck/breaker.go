package linkcheck

import (
	"sync"

	"github.com/sony/gobreaker/v2"

	"atsresume/internal/config"
	"atsresume/internal/errors"
)

// HostBreakers keeps one circuit breaker per link host so a profile site that
// keeps failing stops receiving requests without affecting the others
type HostBreakers struct {
	cfg    config.CircuitBreakerConfig
	logger *errors.Logger

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker[string]
}

// NewHostBreakers creates the per-host breaker set. It returns nil when the
// circuit breaker is disabled, and a nil set executes requests directly.
func NewHostBreakers(cfg config.CircuitBreakerConfig, logger *errors.Logger) *HostBreakers {
	if !cfg.Enabled {
		return nil
	}
	if logger == nil {
		logger = errors.Discard()
	}
	return &HostBreakers{
		cfg:      cfg,
		logger:   logger,
		breakers: make(map[string]*gobreaker.CircuitBreaker[string]),
	}
}

func (hb *HostBreakers) get(host string) *gobreaker.CircuitBreaker[string] {
	hb.mu.Lock()
	defer hb.mu.Unlock()

	if cb, ok := hb.breakers[host]; ok {
		return cb
	}

	settings := gobreaker.Settings{
		Name:        "link-" + host,
		MaxRequests: hb.cfg.MaxRequests,
		Interval:    hb.cfg.Interval,
		Timeout:     hb.cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= hb.cfg.MinRequests &&
				failureRatio >= hb.cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			hb.logger.Info("Circuit breaker state changed",
				"name", name,
				"host", host,
				"from", from.String(),
				"to", to.String(),
				"failure_threshold", hb.cfg.FailureThreshold)
		},
	}
	cb := gobreaker.NewCircuitBreaker[string](settings)
	hb.breakers[host] = cb
	return cb
}

// Execute runs fn under the breaker for host
func (hb *HostBreakers) Execute(host string, fn func() (string, error)) (string, error) {
	if hb == nil {
		// If breaker is disabled/nil, just execute the function directly
		return fn()
	}
	return hb.get(host).Execute(fn)
}

// GetStats returns circuit breaker statistics keyed by host
func (hb *HostBreakers) GetStats() map[string]any {
	if hb == nil {
		return map[string]any{
			"enabled": false,
		}
	}

	hb.mu.Lock()
	defer hb.mu.Unlock()

	hosts := make(map[string]any, len(hb.breakers))
	for host, cb := range hb.breakers {
		hosts[host] = map[string]any{
			"name":   cb.Name(),
			"state":  cb.State().String(),
			"counts": cb.Counts(),
		}
	}
	return map[string]any{
		"enabled": true,
		"hosts":   hosts,
	}
}

// IsHealthy returns true if no host breaker is open
func (hb *HostBreakers) IsHealthy() bool {
	if hb == nil {
		return true // If no circuit breaker, consider it healthy
	}

	hb.mu.Lock()
	defer hb.mu.Unlock()
	for _, cb := range hb.breakers {
		if cb.State() == gobreaker.StateOpen {
			return false
		}
	}
	return true
}
