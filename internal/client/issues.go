package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/polaris/internal/constants"
	"github.com/fivetwenty-io/polaris/internal/http"
	"github.com/fivetwenty-io/polaris/pkg/polaris"
)

// issueListIncludes are the side-loaded resources needed to render an issue
// listing: display names arrive as relationship references only.
var issueListIncludes = []string{"severity", "issue-type", "tool-domain-service"}

// issueGetIncludes additionally pull the path and transition history of a
// single issue.
var issueGetIncludes = []string{"severity", "issue-type", "tool-domain-service", "path", "transitions"}

// IssuesClient implements polaris.IssuesClient.
type IssuesClient struct {
	httpClient *http.Client
}

// NewIssuesClient creates a new issues client.
func NewIssuesClient(httpClient *http.Client) *IssuesClient {
	return &IssuesClient{
		httpClient: httpClient,
	}
}

// List implements polaris.IssuesClient.List. The issue query service uses
// flat project-id/branch-id/run-id parameters rather than the $eq filter
// syntax of the common object service.
func (c *IssuesClient) List(ctx context.Context, opts polaris.IssueListOptions, limit, offset uint32) (*polaris.PageEnvelope[polaris.Issue], error) {
	query := pageQuery(url.Values{}, limit, offset)
	query.Set("project-id", opts.ProjectID)

	if opts.BranchID != "" {
		query.Set("branch-id", opts.BranchID)
	}

	for _, runID := range opts.RunIDs {
		query.Add("run-id[]", runID)
	}

	for _, include := range issueListIncludes {
		query.Add("include[issue][]", include)
	}

	resp, err := c.httpClient.Get(ctx, constants.IssuesPath, query)
	if err != nil {
		return nil, fmt.Errorf("listing issues: %w", err)
	}

	var page polaris.PageEnvelope[polaris.Issue]

	err = http.Unmarshal(resp.Body, "issues page", &page)
	if err != nil {
		return nil, err
	}

	return &page, nil
}

// ListAll implements polaris.IssuesClient.ListAll.
func (c *IssuesClient) ListAll(ctx context.Context, opts polaris.IssueListOptions, pageSize uint32) (*polaris.PageEnvelope[polaris.Issue], error) {
	return polaris.FetchAllPages(ctx, func(ctx context.Context, offset, limit uint32) (*polaris.PageEnvelope[polaris.Issue], error) {
		return c.List(ctx, opts, limit, offset)
	}, pageSize)
}

// Get implements polaris.IssuesClient.Get.
func (c *IssuesClient) Get(ctx context.Context, issueID, projectID, branchID string) (*polaris.SingleEnvelope, error) {
	query := url.Values{}
	query.Set("project-id", projectID)
	query.Set("branch-id", branchID)

	for _, include := range issueGetIncludes {
		query.Add("include[issue][]", include)
	}

	resp, err := c.httpClient.Get(ctx, constants.IssuesPath+"/"+issueID, query)
	if err != nil {
		return nil, fmt.Errorf("getting issue: %w", err)
	}

	var envelope polaris.SingleEnvelope

	err = http.Unmarshal(resp.Body, "issue", &envelope)
	if err != nil {
		return nil, err
	}

	return &envelope, nil
}
