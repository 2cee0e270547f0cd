// Package client implements the polaris.Client interface on top of the
// internal HTTP transport and token manager.
package client

import (
	"context"

	"github.com/fivetwenty-io/polaris/internal/auth"
	"github.com/fivetwenty-io/polaris/internal/http"
	"github.com/fivetwenty-io/polaris/pkg/polaris"
)

// Client implements the polaris.Client interface.
type Client struct {
	httpClient   *http.Client
	tokenManager *auth.AccessTokenManager
	baseURL      string
	logger       polaris.Logger

	// Resource clients
	projects     polaris.ProjectsClient
	branches     polaris.BranchesClient
	runs         polaris.RunsClient
	issues       polaris.IssuesClient
	triage       polaris.TriageClient
	codeAnalysis polaris.CodeAnalysisClient
}

// New creates a new Polaris API client. The config is assumed to be
// validated and normalized by the caller (pkg/polarisclient does this).
func New(config *polaris.Config) *Client {
	tokenManager := auth.NewAccessTokenManager(config.APIEndpoint, config.APIToken)

	httpOptions := []http.Option{}
	if config.Logger != nil {
		httpOptions = append(httpOptions, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOptions = append(httpOptions, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOptions = append(httpOptions, http.WithUserAgent(config.UserAgent))
	}

	if config.RetryMax > 0 {
		httpOptions = append(httpOptions, http.WithRetryConfig(config.RetryMax, config.RetryWaitMin, config.RetryWaitMax))
	}

	if config.HTTPTimeout > 0 {
		httpOptions = append(httpOptions, http.WithTimeout(config.HTTPTimeout))
	}

	httpClient := http.NewClient(config.APIEndpoint, tokenManager, httpOptions...)

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		baseURL:      config.APIEndpoint,
		logger:       config.Logger,
	}

	client.projects = NewProjectsClient(httpClient)
	client.branches = NewBranchesClient(httpClient)
	client.runs = NewRunsClient(httpClient)
	client.issues = NewIssuesClient(httpClient)
	client.triage = NewTriageClient(httpClient)
	client.codeAnalysis = NewCodeAnalysisClient(httpClient)

	return client
}

// Projects returns the projects resource client.
func (c *Client) Projects() polaris.ProjectsClient {
	return c.projects
}

// Branches returns the branches resource client.
func (c *Client) Branches() polaris.BranchesClient {
	return c.branches
}

// Runs returns the runs resource client.
func (c *Client) Runs() polaris.RunsClient {
	return c.runs
}

// Issues returns the issues resource client.
func (c *Client) Issues() polaris.IssuesClient {
	return c.issues
}

// Triage returns the triage resource client.
func (c *Client) Triage() polaris.TriageClient {
	return c.triage
}

// CodeAnalysis returns the code-analysis resource client.
func (c *Client) CodeAnalysis() polaris.CodeAnalysisClient {
	return c.codeAnalysis
}

// Authenticate forces a fresh token exchange, overwriting the cached JWT.
func (c *Client) Authenticate(ctx context.Context) (string, error) {
	err := c.tokenManager.RefreshToken(ctx)
	if err != nil {
		return "", err
	}

	return c.tokenManager.GetToken(ctx)
}

// GetToken returns the cached JWT, exchanging the API token first if needed.
func (c *Client) GetToken(ctx context.Context) (string, error) {
	return c.tokenManager.GetToken(ctx)
}
