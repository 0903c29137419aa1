package ratelimit

import "strings"

// MatchEndpoint resolves the limit configuration for a request. Exact
// path+method matches win; a config whose path ends in "/" matches any path
// under that prefix, which is how the per-document routes (/cvs/{id},
// /preview/{session}) are covered. Returns nil when only the default budget
// applies.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	// Health probes are never throttled.
	if path == "/health" && method == "GET" {
		return &EndpointConfig{}
	}

	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}

	for i := range configs {
		if configs[i].Method != method || !strings.HasSuffix(configs[i].Path, "/") {
			continue
		}
		if strings.HasPrefix(path, configs[i].Path) {
			return &configs[i]
		}
	}

	return nil
}
