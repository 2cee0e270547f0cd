package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/polaris/internal/constants"
	"github.com/fivetwenty-io/polaris/internal/http"
	"github.com/fivetwenty-io/polaris/pkg/polaris"
)

// TriageClient implements polaris.TriageClient.
type TriageClient struct {
	httpClient *http.Client
}

// NewTriageClient creates a new triage client.
func NewTriageClient(httpClient *http.Client) *TriageClient {
	return &TriageClient{
		httpClient: httpClient,
	}
}

// GetCurrent implements polaris.TriageClient.GetCurrent.
func (c *TriageClient) GetCurrent(ctx context.Context, projectID, issueKey string) (*polaris.PageEnvelope[polaris.TriageCurrent], error) {
	query := url.Values{}
	query.Set("filter[triage-current][project-id][$eq]", projectID)
	query.Set("filter[triage-current][issue-key][$eq]", issueKey)

	resp, err := c.httpClient.Get(ctx, constants.TriageCurrentPath, query)
	if err != nil {
		return nil, fmt.Errorf("getting triage: %w", err)
	}

	var page polaris.PageEnvelope[polaris.TriageCurrent]

	err = http.Unmarshal(resp.Body, "triage current", &page)
	if err != nil {
		return nil, err
	}

	return &page, nil
}

// triageIssuesRequest is the JSON:API command body of a triage update.
type triageIssuesRequest struct {
	Data triageIssuesData `json:"data"`
}

type triageIssuesData struct {
	Type       string                 `json:"type"`
	Attributes triageIssuesAttributes `json:"attributes"`
}

type triageIssuesAttributes struct {
	ProjectID    string            `json:"project-id"`
	IssueKeys    []string          `json:"issue-keys"`
	TriageValues map[string]string `json:"triage-values"`
}

// Update implements polaris.TriageClient.Update. Only the set fields of
// values are sent; the server leaves the rest untouched.
func (c *TriageClient) Update(ctx context.Context, projectID string, issueKeys []string, values polaris.TriageValues) error {
	if values.IsEmpty() {
		return polaris.ErrEmptyTriageUpdate
	}

	triageValues := make(map[string]string)
	if values.Dismiss != nil {
		triageValues["DISMISS"] = *values.Dismiss
	}

	if values.Owner != nil {
		triageValues["OWNER"] = *values.Owner
	}

	if values.Commentary != nil {
		triageValues["COMMENTARY"] = *values.Commentary
	}

	body := triageIssuesRequest{
		Data: triageIssuesData{
			Type: "triage-issues",
			Attributes: triageIssuesAttributes{
				ProjectID:    projectID,
				IssueKeys:    issueKeys,
				TriageValues: triageValues,
			},
		},
	}

	_, err := c.httpClient.Post(ctx, constants.TriageIssuesPath, body)
	if err != nil {
		return fmt.Errorf("updating triage: %w", err)
	}

	return nil
}

// History implements polaris.TriageClient.History. History items are served
// as generic resources; their attribute set varies by triage action.
func (c *TriageClient) History(ctx context.Context, projectID, issueKey string, limit, offset uint32) (*polaris.PageEnvelope[polaris.Resource], error) {
	query := pageQuery(url.Values{}, limit, offset)
	query.Set("filter[triage-history-items][project-id][$eq]", projectID)
	query.Set("filter[triage-history-items][issue-key][$eq]", issueKey)

	resp, err := c.httpClient.Get(ctx, constants.TriageHistoryPath, query)
	if err != nil {
		return nil, fmt.Errorf("getting triage history: %w", err)
	}

	var page polaris.PageEnvelope[polaris.Resource]

	err = http.Unmarshal(resp.Body, "triage history", &page)
	if err != nil {
		return nil, err
	}

	return &page, nil
}
