package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  600,
		DefaultWindow: time.Minute,
		Whitelist:     make(map[string]bool),
		Blacklist:     make(map[string]bool),
		EndpointConfigs: []EndpointConfig{
			{Path: "/assess", Method: "POST", Limit: 20, Window: time.Hour, Burst: 2},
			{Path: "/assessments/", Method: "GET", Limit: 600, Window: time.Minute, Burst: 60},
		},
	}
}

func TestLimiter_BurstThenDeny(t *testing.T) {
	limiter := NewLimiter(testConfig())
	defer limiter.Stop()

	allowed, _ := limiter.Allow("1.2.3.4", "/assess", "POST")
	require.True(t, allowed)
	allowed, _ = limiter.Allow("1.2.3.4", "/assess", "POST")
	require.True(t, allowed)

	allowed, info := limiter.Allow("1.2.3.4", "/assess", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 20, info.Limit)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	limiter := NewLimiter(testConfig())
	defer limiter.Stop()

	limiter.Allow("1.2.3.4", "/assess", "POST")
	limiter.Allow("1.2.3.4", "/assess", "POST")

	allowed, _ := limiter.Allow("5.6.7.8", "/assess", "POST")
	assert.True(t, allowed, "a different client has its own bucket")
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for range 100 {
		allowed, _ := limiter.Allow("1.2.3.4", "/assess", "POST")
		require.True(t, allowed)
	}
}

func TestLimiter_Blacklist(t *testing.T) {
	cfg := testConfig()
	cfg.Blacklist["6.6.6.6"] = true
	limiter := NewLimiter(cfg)
	defer limiter.Stop()

	allowed, _ := limiter.Allow("6.6.6.6", "/health", "POST")
	assert.False(t, allowed)
}

func TestMatchEndpoint(t *testing.T) {
	configs := testConfig().EndpointConfigs

	match := MatchEndpoint("/assess", "POST", configs)
	require.NotNil(t, match)
	assert.Equal(t, 20, match.Limit)

	match = MatchEndpoint("/assessments/abc-123", "GET", configs)
	require.NotNil(t, match, "prefix patterns match path parameters")
	assert.Equal(t, 600, match.Limit)

	assert.Nil(t, MatchEndpoint("/timeline", "GET", configs))

	health := MatchEndpoint("/health", "GET", configs)
	require.NotNil(t, health)
	assert.Equal(t, 0, health.Limit, "health check is unlimited")
}
