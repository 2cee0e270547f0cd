package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fivetwenty-io/polaris/internal/constants"
	"github.com/fivetwenty-io/polaris/pkg/polaris"
	"github.com/hashicorp/go-retryablehttp"
)

// RequestFunc performs a single HTTP exchange and reports the status and
// body. Implementations must not treat non-2xx statuses as errors; status
// inspection is the caller's job.
type RequestFunc func(ctx context.Context, method, requestURL string, headers map[string]string, body []byte) (int, []byte, error)

// authenticateResponse is the body of a successful token exchange. The schema
// is strict: any other field present is a protocol violation.
type authenticateResponse struct {
	JWT string `json:"jwt"`
}

// AccessTokenManager exchanges a long-lived Polaris API token for a JWT and
// caches the result in a single-slot store.
//
// Concurrent first-time callers are not serialized: two goroutines that both
// find the cache empty will both perform the exchange and the last write
// wins. The exchanges are idempotent and every caller still receives a
// usable token, so no single-flight de-duplication is done. Once any call
// completes, subsequent callers are served from the cache without network
// access.
type AccessTokenManager struct {
	baseURL  string
	apiToken string
	store    *TokenStore
	request  RequestFunc
}

// AccessTokenOption configures an AccessTokenManager.
type AccessTokenOption func(*AccessTokenManager)

// WithRequestFunc replaces the transport used for the exchange.
func WithRequestFunc(request RequestFunc) AccessTokenOption {
	return func(m *AccessTokenManager) {
		m.request = request
	}
}

// NewAccessTokenManager creates a token manager for the given Polaris
// instance and API token.
func NewAccessTokenManager(baseURL, apiToken string, opts ...AccessTokenOption) *AccessTokenManager {
	manager := &AccessTokenManager{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		apiToken: apiToken,
		store:    NewTokenStore(),
		request:  defaultRequestFunc(),
	}

	for _, opt := range opts {
		opt(manager)
	}

	return manager
}

// GetToken returns the cached JWT, exchanging the API token first if none is
// cached.
func (m *AccessTokenManager) GetToken(ctx context.Context) (string, error) {
	if token := m.store.Get(); token.Valid() {
		return token.AccessToken, nil
	}

	return m.authenticate(ctx)
}

// RefreshToken unconditionally performs the exchange, overwriting the cached
// JWT. Used by explicit login and verification flows.
func (m *AccessTokenManager) RefreshToken(ctx context.Context) error {
	_, err := m.authenticate(ctx)

	return err
}

// SetToken manually seeds the cached token.
func (m *AccessTokenManager) SetToken(token string, expiresAt time.Time) {
	m.store.Set(&Token{AccessToken: token, ExpiresAt: expiresAt})
}

// Clear drops the cached token so the next call re-authenticates.
func (m *AccessTokenManager) Clear() {
	m.store.Clear()
}

// authenticate posts the form-encoded API token and caches the returned JWT.
// Nothing is cached on failure, so a later call retries the exchange.
func (m *AccessTokenManager) authenticate(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("accesstoken", m.apiToken)

	headers := map[string]string{
		"Content-Type": constants.ContentTypeForm,
		"Accept":       "application/json",
	}

	status, body, err := m.request(ctx, http.MethodPost, m.baseURL+constants.AuthenticatePath, headers, []byte(form.Encode()))
	if err != nil {
		return "", &polaris.TransportError{Err: err}
	}

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return "", &polaris.AuthenticationError{Status: status, Body: string(body)}
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.DisallowUnknownFields()

	var resp authenticateResponse

	err = decoder.Decode(&resp)
	if err != nil {
		return "", &polaris.DeserializationError{What: "authenticate response", Err: err}
	}

	m.store.Set(&Token{AccessToken: resp.JWT})

	return resp.JWT, nil
}

// defaultRequestFunc builds the stock transport for the exchange: a
// retryablehttp client with retries disabled, matching the single-pass
// contract of the auth endpoint.
func defaultRequestFunc() RequestFunc {
	client := retryablehttp.NewClient()
	client.RetryMax = 0
	client.Logger = nil
	client.HTTPClient.Timeout = constants.DefaultHTTPTimeout

	return func(ctx context.Context, method, requestURL string, headers map[string]string, body []byte) (int, []byte, error) {
		req, err := retryablehttp.NewRequestWithContext(ctx, method, requestURL, body)
		if err != nil {
			return 0, nil, err
		}

		for key, value := range headers {
			req.Header.Set(key, value)
		}

		resp, err := client.Do(req)
		if err != nil {
			return 0, nil, err
		}
		defer func() { _ = resp.Body.Close() }()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return 0, nil, err
		}

		return resp.StatusCode, respBody, nil
	}
}
