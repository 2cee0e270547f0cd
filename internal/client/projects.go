package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/polaris/internal/constants"
	"github.com/fivetwenty-io/polaris/internal/http"
	"github.com/fivetwenty-io/polaris/pkg/polaris"
)

// ProjectsClient implements polaris.ProjectsClient.
type ProjectsClient struct {
	httpClient *http.Client
}

// NewProjectsClient creates a new projects client.
func NewProjectsClient(httpClient *http.Client) *ProjectsClient {
	return &ProjectsClient{
		httpClient: httpClient,
	}
}

// List implements polaris.ProjectsClient.List. Branches are always
// side-loaded so callers can pick a main branch without a second round trip.
func (c *ProjectsClient) List(ctx context.Context, nameFilter string, limit, offset uint32) (*polaris.PageEnvelope[polaris.Project], error) {
	query := pageQuery(url.Values{}, limit, offset)
	query.Add("include[project][]", "branches")

	if nameFilter != "" {
		query.Set("filter[project][name][$eq]", nameFilter)
	}

	resp, err := c.httpClient.Get(ctx, constants.ProjectsPath, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	var page polaris.PageEnvelope[polaris.Project]

	err = http.Unmarshal(resp.Body, "projects page", &page)
	if err != nil {
		return nil, err
	}

	return &page, nil
}

// ListAll implements polaris.ProjectsClient.ListAll.
func (c *ProjectsClient) ListAll(ctx context.Context, nameFilter string, pageSize uint32) (*polaris.PageEnvelope[polaris.Project], error) {
	return polaris.FetchAllPages(ctx, func(ctx context.Context, offset, limit uint32) (*polaris.PageEnvelope[polaris.Project], error) {
		return c.List(ctx, nameFilter, limit, offset)
	}, pageSize)
}
