package ratelimit

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// LoadConfig reads RATE_LIMIT_* environment variables. Unparseable values fall back to defaults.
func LoadConfig() *Config {
	v := viper.New()
	v.SetEnvPrefix("RATE_LIMIT")
	v.AutomaticEnv()
	v.SetDefault("enabled", true)
	v.SetDefault("default_limit", 1000)
	v.SetDefault("default_window", time.Minute)
	v.SetDefault("cleanup_interval", 5*time.Minute)
	v.SetDefault("idle_ttl", time.Hour)

	if !v.GetBool("enabled") {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    positiveInt(v.GetInt("default_limit"), 1000),
		DefaultWindow:   positiveDuration(v.GetDuration("default_window"), time.Minute),
		CleanupInterval: positiveDuration(v.GetDuration("cleanup_interval"), 5*time.Minute),
		IdleTTL:         positiveDuration(v.GetDuration("idle_ttl"), time.Hour),
		Whitelist:       parseIPList(v.GetString("whitelist")),
		Blacklist:       parseIPList(v.GetString("blacklist")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the per-endpoint limits. Unlisted endpoints use the default.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// LLM-backed operations
		{Path: "/users/me/resume/parse", Method: "POST", Limit: 20, Window: time.Hour, Burst: 3},
		{Path: "/scores", Method: "POST", Limit: 60, Window: time.Hour, Burst: 10},

		// Credential endpoints
		{Path: "/auth/register", Method: "POST", Limit: 5, Window: time.Minute, Burst: 3},
		{Path: "/auth/login", Method: "POST", Limit: 10, Window: time.Minute, Burst: 5},
		{Path: "/auth/password", Method: "PUT", Limit: 5, Window: time.Minute, Burst: 2},

		// Writes
		{Path: "/users/me/resume", Method: "PUT", Limit: 100, Window: time.Minute, Burst: 10},
	}
}

func positiveInt(n, def int) int {
	if n <= 0 {
		return def
	}
	return n
}

func positiveDuration(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}

// parseIPList parses a comma-separated list of IP addresses into a map.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	if list == "" {
		return result
	}

	ips := strings.Split(list, ",")
	for _, ip := range ips {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			result[ip] = true
		}
	}

	return result
}

