package ratelimit

import (
	"net/http"
	"strings"
)

// unlimitedEndpoint is returned for requests that never consume tokens.
var unlimitedEndpoint = EndpointConfig{}

// MatchEndpoint matches a request path and method to an endpoint configuration.
// An exact path wins over a prefix ("/v1/render/" matches "/v1/render/text"),
// and the longest prefix wins among prefixes. An empty Method matches any
// method. Health checks and CORS preflights are unlimited.
// Returns nil if no configuration applies.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if method == http.MethodOptions || (path == "/health" && method == http.MethodGet) {
		limit := unlimitedEndpoint
		return &limit
	}

	var best *EndpointConfig
	for i := range configs {
		config := &configs[i]
		if config.Method != "" && !strings.EqualFold(config.Method, method) {
			continue
		}
		if config.Path == path {
			return config
		}
		if strings.HasSuffix(config.Path, "/") && strings.HasPrefix(path, config.Path) {
			if best == nil || len(config.Path) > len(best.Path) {
				best = config
			}
		}
	}
	return best
}
