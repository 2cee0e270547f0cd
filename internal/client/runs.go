package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/polaris/internal/constants"
	"github.com/fivetwenty-io/polaris/internal/http"
	"github.com/fivetwenty-io/polaris/pkg/polaris"
)

// RunsClient implements polaris.RunsClient.
type RunsClient struct {
	httpClient *http.Client
}

// NewRunsClient creates a new runs client.
func NewRunsClient(httpClient *http.Client) *RunsClient {
	return &RunsClient{
		httpClient: httpClient,
	}
}

// List implements polaris.RunsClient.List.
func (c *RunsClient) List(ctx context.Context, projectID, revisionID string, limit, offset uint32) (*polaris.PageEnvelope[polaris.Run], error) {
	query := pageQuery(url.Values{}, limit, offset)
	query.Set("filter[run][project][id][$eq]", projectID)

	if revisionID != "" {
		query.Set("filter[run][revision][id][$eq]", revisionID)
	}

	resp, err := c.httpClient.Get(ctx, constants.RunsPath, query)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}

	var page polaris.PageEnvelope[polaris.Run]

	err = http.Unmarshal(resp.Body, "runs page", &page)
	if err != nil {
		return nil, err
	}

	return &page, nil
}

// ListAll implements polaris.RunsClient.ListAll.
func (c *RunsClient) ListAll(ctx context.Context, projectID, revisionID string, pageSize uint32) (*polaris.PageEnvelope[polaris.Run], error) {
	return polaris.FetchAllPages(ctx, func(ctx context.Context, offset, limit uint32) (*polaris.PageEnvelope[polaris.Run], error) {
		return c.List(ctx, projectID, revisionID, limit, offset)
	}, pageSize)
}
