package ratelimit

import (
	"net/http"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	// IdleTTL is how long a client's limiter survives without requests.
	IdleTTL         time.Duration
	EndpointConfigs []EndpointConfig
}

// Default values
const (
	DefaultLimit           = 300
	DefaultWindow          = time.Minute
	DefaultCleanupInterval = 5 * time.Minute
	DefaultIdleTTL         = time.Hour
	analysisBurst          = 3
)

// NewConfig returns an enabled configuration in which the expensive analysis
// endpoints allow analysisPerMinute requests per client per minute.
func NewConfig(analysisPerMinute int) *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    DefaultLimit,
		DefaultWindow:   DefaultWindow,
		CleanupInterval: DefaultCleanupInterval,
		IdleTTL:         DefaultIdleTTL,
		EndpointConfigs: DefaultEndpointConfigs(analysisPerMinute),
	}
}

// DefaultEndpointConfigs returns the endpoint-specific limits. Both analysis
// endpoints call the LLM, so they share the strict tier.
func DefaultEndpointConfigs(analysisPerMinute int) []EndpointConfig {
	if analysisPerMinute <= 0 {
		return nil
	}
	burst := min(analysisBurst, analysisPerMinute)
	return []EndpointConfig{
		{Path: "/api/analyze-resume", Method: http.MethodPost, Limit: analysisPerMinute, Window: time.Minute, Burst: burst},
		{Path: "/api/get-parsed-resume", Method: http.MethodPost, Limit: analysisPerMinute, Window: time.Minute, Burst: burst},
	}
}
