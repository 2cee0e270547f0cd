package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/polaris/internal/constants"
	"github.com/fivetwenty-io/polaris/internal/http"
	"github.com/fivetwenty-io/polaris/pkg/polaris"
)

// BranchesClient implements polaris.BranchesClient.
type BranchesClient struct {
	httpClient *http.Client
}

// NewBranchesClient creates a new branches client.
func NewBranchesClient(httpClient *http.Client) *BranchesClient {
	return &BranchesClient{
		httpClient: httpClient,
	}
}

// List implements polaris.BranchesClient.List.
func (c *BranchesClient) List(ctx context.Context, projectID string, limit, offset uint32) (*polaris.PageEnvelope[polaris.Branch], error) {
	query := pageQuery(url.Values{}, limit, offset)
	query.Set("filter[branch][project][id][$eq]", projectID)

	resp, err := c.httpClient.Get(ctx, constants.BranchesPath, query)
	if err != nil {
		return nil, fmt.Errorf("listing branches: %w", err)
	}

	var page polaris.PageEnvelope[polaris.Branch]

	err = http.Unmarshal(resp.Body, "branches page", &page)
	if err != nil {
		return nil, err
	}

	return &page, nil
}

// ListAll implements polaris.BranchesClient.ListAll.
func (c *BranchesClient) ListAll(ctx context.Context, projectID string, pageSize uint32) (*polaris.PageEnvelope[polaris.Branch], error) {
	return polaris.FetchAllPages(ctx, func(ctx context.Context, offset, limit uint32) (*polaris.PageEnvelope[polaris.Branch], error) {
		return c.List(ctx, projectID, limit, offset)
	}, pageSize)
}

// Main implements polaris.BranchesClient.Main: it drains the project's
// branches and returns the one flagged main-for-project.
func (c *BranchesClient) Main(ctx context.Context, projectID string) (*polaris.Branch, error) {
	branches, err := c.ListAll(ctx, projectID, constants.DefaultPageSize)
	if err != nil {
		return nil, err
	}

	for i := range branches.Data {
		branch := branches.Data[i]
		if branch.Attributes.MainForProject != nil && *branch.Attributes.MainForProject {
			return &branch, nil
		}
	}

	return nil, polaris.ErrNoMainBranch
}
