package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"atsresume/internal/config"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{RequestsPerMin: 2, BurstCapacity: 2, Window: time.Hour}, nil)
	defer rl.Close()

	clock := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return clock }

	assert.True(t, rl.Allow("ip:10.0.0.1"))
	assert.True(t, rl.Allow("ip:10.0.0.1"))
	assert.False(t, rl.Allow("ip:10.0.0.1"))
	assert.True(t, rl.Allow("api:k1"), "buckets are per key")

	// Two requests per hour refill one token every 30 minutes.
	clock = clock.Add(30 * time.Minute)
	assert.True(t, rl.Allow("ip:10.0.0.1"))
	assert.False(t, rl.Allow("ip:10.0.0.1"))

	stats := rl.GetStats()
	assert.Equal(t, map[string]int{"ip": 2}, stats["rejected"])
	assert.Equal(t, 2, stats["requests_per_window"])
	assert.Equal(t, "1h0m0s", stats["window"])
}

func TestRateLimiterSweep(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{RequestsPerMin: 60, BurstCapacity: 1}, nil)
	rl.Close()
	rl.Close()

	clock := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return clock }
	rl.Allow("ip:old")

	clock = clock.Add(5 * time.Minute)
	rl.Allow("ip:new")

	rl.sweep(3 * time.Minute)
	assert.Equal(t, 1, rl.GetStats()["active_clients"])
	assert.Contains(t, rl.visitors, "ip:new")
}
