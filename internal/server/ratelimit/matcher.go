package ratelimit

import (
	"strings"
)

var unlimited = EndpointConfig{}

// MatchEndpoint returns the configuration for a request, or nil to use the default.
// Exact paths win over prefixes; a config path ending in "/" matches everything below it.
// Health checks and CORS preflights are unlimited.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if (path == "/health" && method == "GET") || method == "OPTIONS" {
		u := unlimited
		return &u
	}

	for i := range configs {
		config := &configs[i]
		if config.Path == path && config.Method == method {
			return config
		}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasSuffix(config.Path, "/") {
			if strings.HasPrefix(path, config.Path) {
				return config
			}
		}
	}

	return nil
}
