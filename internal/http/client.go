// Package http provides the HTTP transport used by the Polaris resource
// clients: bearer injection, JSON:API content negotiation, optional retries
// for transient failures, and conversion of non-success responses into the
// typed error taxonomy.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fivetwenty-io/polaris/internal/auth"
	"github.com/fivetwenty-io/polaris/internal/constants"
	"github.com/fivetwenty-io/polaris/pkg/polaris"
	"github.com/hashicorp/go-retryablehttp"
)

// Logger interface for HTTP request/response logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Request describes one API call.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Headers map[string]string
	// Body is JSON-marshaled when non-nil.
	Body any
}

// Response is the outcome of one API call.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client performs HTTP requests against a Polaris instance.
type Client struct {
	baseURL      string
	httpClient   *retryablehttp.Client
	tokenManager auth.TokenManager
	userAgent    string
	logger       Logger
	debug        bool
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for debug logging.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig enables retries for transient failures (connection errors,
// 429, 5xx).
func WithRetryConfig(retryMax int, retryWaitMin, retryWaitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = retryWaitMin
		c.httpClient.RetryWaitMax = retryWaitMax
	}
}

// WithTimeout bounds each HTTP exchange.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// NewClient creates a new HTTP client for the given base URL. tokenManager
// may be nil, in which case requests are sent unauthenticated. Retries are
// disabled unless configured via WithRetryConfig.
func NewClient(baseURL string, tokenManager auth.TokenManager, opts ...Option) *Client {
	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = 0
	httpClient.Logger = nil
	httpClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout

	client := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		httpClient:   httpClient,
		tokenManager: tokenManager,
		userAgent:    "polaris-go",
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Do executes a request. Non-2xx responses are returned together with a typed
// *polaris.APIError so callers can inspect both.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	resp, err := c.execute(ctx, req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return resp, polaris.NewAPIError(resp.StatusCode, resp.Body)
	}

	return resp, nil
}

// DoRaw executes a request without converting non-success statuses into
// errors. Status inspection is the caller's job; only transport-level
// failures are reported as errors.
func (c *Client) DoRaw(ctx context.Context, req *Request) (*Response, error) {
	return c.execute(ctx, req)
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

func (c *Client) execute(ctx context.Context, req *Request) (*Response, error) {
	requestURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		requestURL += "?" + req.Query.Encode()
	}

	var rawBody []byte

	if req.Body != nil {
		marshaled, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		rawBody = marshaled
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, requestURL, rawBody)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	httpReq.Header.Set("Accept", constants.ContentTypeJSONAPI)
	httpReq.Header.Set("User-Agent", c.userAgent)

	if rawBody != nil {
		httpReq.Header.Set("Content-Type", constants.ContentTypeJSONAPI)
	}

	if c.tokenManager != nil {
		token, err := c.tokenManager.GetToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("getting token: %w", err)
		}

		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    requestURL,
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &polaris.TransportError{Err: err}
	}
	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &polaris.TransportError{Err: err}
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status": httpResp.StatusCode,
			"bytes":  len(body),
		})
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}, nil
}

// Unmarshal decodes a response body, wrapping failures as protocol
// violations.
func Unmarshal(body []byte, what string, target any) error {
	err := json.Unmarshal(body, target)
	if err != nil {
		return &polaris.DeserializationError{What: what, Err: err}
	}

	return nil
}
