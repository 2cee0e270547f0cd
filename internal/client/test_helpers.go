package client

import (
	internalhttp "github.com/fivetwenty-io/polaris/internal/http"
)

// newTestHTTPClient creates an unauthenticated transport against a test
// server.
func newTestHTTPClient(baseURL string) *internalhttp.Client {
	return internalhttp.NewClient(baseURL, nil)
}
