package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/fivetwenty-io/polaris/internal/constants"
	"github.com/fivetwenty-io/polaris/internal/http"
	"github.com/fivetwenty-io/polaris/pkg/polaris"
)

// CodeAnalysisClient implements polaris.CodeAnalysisClient.
type CodeAnalysisClient struct {
	httpClient *http.Client
}

// NewCodeAnalysisClient creates a new code-analysis client.
func NewCodeAnalysisClient(httpClient *http.Client) *CodeAnalysisClient {
	return &CodeAnalysisClient{
		httpClient: httpClient,
	}
}

// EventsWithSource implements polaris.CodeAnalysisClient.EventsWithSource.
// The endpoint localizes event descriptions, so the language is pinned to
// English for stable output.
func (c *CodeAnalysisClient) EventsWithSource(ctx context.Context, opts polaris.EventsOptions) (*polaris.EventsResponse, error) {
	query := url.Values{}
	query.Set("finding-key", opts.FindingKey)
	query.Set("run-id", opts.RunID)

	if opts.OccurrenceNumber != nil {
		query.Set("occurrence-number", strconv.FormatUint(uint64(*opts.OccurrenceNumber), 10))
	}

	if opts.MaxDepth != nil {
		query.Set("max-depth", strconv.FormatUint(uint64(*opts.MaxDepth), 10))
	}

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method: "GET",
		Path:   constants.EventsWithSourcePath,
		Query:  query,
		Headers: map[string]string{
			"Accept":          "application/json",
			"Accept-Language": "en",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("getting events: %w", err)
	}

	var events polaris.EventsResponse

	err = http.Unmarshal(resp.Body, "events", &events)
	if err != nil {
		return nil, err
	}

	return &events, nil
}

// SourceCode implements polaris.CodeAnalysisClient.SourceCode. The body is
// plain text, not JSON:API.
func (c *CodeAnalysisClient) SourceCode(ctx context.Context, runID, path string) (string, error) {
	query := url.Values{}
	query.Set("run-id", runID)
	query.Set("path", path)

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method: "GET",
		Path:   constants.SourceCodePath,
		Query:  query,
		Headers: map[string]string{
			"Accept": "text/plain",
		},
	})
	if err != nil {
		return "", fmt.Errorf("getting source code: %w", err)
	}

	return string(resp.Body), nil
}
