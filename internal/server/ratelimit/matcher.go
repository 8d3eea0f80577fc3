package ratelimit

import (
	"strings"
)

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns nil if no configuration matches. Paths ending with "/" match by
// prefix, so "/assessments/" covers "/assessments/{id}".
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	// The health check endpoint is never limited.
	if path == "/health" && method == "GET" {
		return &EndpointConfig{}
	}

	for i := range configs {
		config := &configs[i]
		if config.Path == path && config.Method == method {
			return config
		}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasSuffix(config.Path, "/") && strings.HasPrefix(path, config.Path) {
			return config
		}
	}

	return nil
}
