// Package polarisclient provides the main entry point for creating Polaris API clients
package polarisclient

import (
	"strings"

	"github.com/fivetwenty-io/polaris/internal/client"
	"github.com/fivetwenty-io/polaris/pkg/polaris"
)

// New creates a new Polaris API client from the given configuration.
func New(config *polaris.Config) (polaris.Client, error) {
	if config == nil {
		return nil, polaris.ErrConfigRequired
	}

	if config.APIEndpoint == "" {
		return nil, polaris.ErrAPIEndpointRequired
	}

	if config.APIToken == "" {
		return nil, polaris.ErrAPITokenRequired
	}

	// Normalize API endpoint
	apiEndpoint := strings.TrimSuffix(config.APIEndpoint, "/")
	if !strings.HasPrefix(apiEndpoint, "http://") && !strings.HasPrefix(apiEndpoint, "https://") {
		apiEndpoint = "https://" + apiEndpoint
	}

	config.APIEndpoint = apiEndpoint

	return client.New(config), nil
}
