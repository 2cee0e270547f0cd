package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fivetwenty-io/polaris/internal/auth"
	"github.com/fivetwenty-io/polaris/pkg/polaris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errConnRefused = errors.New("connection refused")

// fakeExchange scripts token exchange responses and records every request.
type fakeExchange struct {
	mu        sync.Mutex
	responses []exchangeResponse
	calls     int
	lastURL   string
	lastBody  string
}

type exchangeResponse struct {
	status int
	body   string
	err    error
}

func (f *fakeExchange) request(_ context.Context, method, requestURL string, headers map[string]string, body []byte) (int, []byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	resp := f.responses[f.calls]
	f.calls++
	f.lastURL = requestURL
	f.lastBody = string(body)

	if resp.err != nil {
		return 0, nil, resp.err
	}

	return resp.status, []byte(resp.body), nil
}

func newManager(exchange *fakeExchange) *auth.AccessTokenManager {
	return auth.NewAccessTokenManager("https://polaris.example.com", "api-token-123",
		auth.WithRequestFunc(exchange.request))
}

func TestAccessTokenManager_GetToken(t *testing.T) {
	t.Parallel()

	exchange := &fakeExchange{responses: []exchangeResponse{
		{status: http.StatusOK, body: `{"jwt":"jwt-abc"}`},
	}}
	manager := newManager(exchange)

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "jwt-abc", token)

	// The exchange posts the form-encoded API token to the auth endpoint.
	assert.Equal(t, "https://polaris.example.com/api/auth/v2/authenticate", exchange.lastURL)

	form, err := url.ParseQuery(exchange.lastBody)
	require.NoError(t, err)
	assert.Equal(t, "api-token-123", form.Get("accesstoken"))
}

func TestAccessTokenManager_GetToken_Cached(t *testing.T) {
	t.Parallel()

	exchange := &fakeExchange{responses: []exchangeResponse{
		{status: http.StatusOK, body: `{"jwt":"jwt-abc"}`},
	}}
	manager := newManager(exchange)

	for i := 0; i < 3; i++ {
		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "jwt-abc", token)
	}

	// Exactly one exchange no matter how many callers.
	assert.Equal(t, 1, exchange.calls)
}

func TestAccessTokenManager_AuthFailureNotCached(t *testing.T) {
	t.Parallel()

	exchange := &fakeExchange{responses: []exchangeResponse{
		{status: http.StatusUnauthorized, body: "bad token"},
		{status: http.StatusOK, body: `{"jwt":"jwt-after-retry"}`},
	}}
	manager := newManager(exchange)

	_, err := manager.GetToken(context.Background())
	require.Error(t, err)

	authErr := &polaris.AuthenticationError{}
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusUnauthorized, authErr.Status)
	assert.Equal(t, "bad token", authErr.Body)

	// Nothing was cached, so the next call retries the exchange.
	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "jwt-after-retry", token)
	assert.Equal(t, 2, exchange.calls)
}

func TestAccessTokenManager_TransportError(t *testing.T) {
	t.Parallel()

	exchange := &fakeExchange{responses: []exchangeResponse{
		{err: errConnRefused},
	}}
	manager := newManager(exchange)

	_, err := manager.GetToken(context.Background())
	require.Error(t, err)

	transportErr := &polaris.TransportError{}
	require.ErrorAs(t, err, &transportErr)
	require.ErrorIs(t, err, errConnRefused)
}

func TestAccessTokenManager_StrictResponseSchema(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "extra field", body: `{"jwt":"jwt-abc","expires":3600}`},
		{name: "not JSON", body: `<html>login page</html>`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			exchange := &fakeExchange{responses: []exchangeResponse{
				{status: http.StatusOK, body: tt.body},
			}}
			manager := newManager(exchange)

			_, err := manager.GetToken(context.Background())
			require.Error(t, err)

			desErr := &polaris.DeserializationError{}
			require.ErrorAs(t, err, &desErr)
			assert.True(t, strings.Contains(desErr.What, "authenticate"))
		})
	}
}

func TestAccessTokenManager_RefreshOverwrites(t *testing.T) {
	t.Parallel()

	exchange := &fakeExchange{responses: []exchangeResponse{
		{status: http.StatusOK, body: `{"jwt":"jwt-one"}`},
		{status: http.StatusOK, body: `{"jwt":"jwt-two"}`},
	}}
	manager := newManager(exchange)

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "jwt-one", token)

	// RefreshToken exchanges unconditionally even with a valid cached JWT.
	require.NoError(t, manager.RefreshToken(context.Background()))

	token, err = manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "jwt-two", token)
	assert.Equal(t, 2, exchange.calls)
}

func TestAccessTokenManager_SetToken(t *testing.T) {
	t.Parallel()

	exchange := &fakeExchange{}
	manager := newManager(exchange)

	manager.SetToken("seeded-jwt", time.Time{})

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "seeded-jwt", token)
	assert.Equal(t, 0, exchange.calls)
}

func TestAccessTokenManager_Clear(t *testing.T) {
	t.Parallel()

	exchange := &fakeExchange{responses: []exchangeResponse{
		{status: http.StatusOK, body: `{"jwt":"jwt-one"}`},
		{status: http.StatusOK, body: `{"jwt":"jwt-two"}`},
	}}
	manager := newManager(exchange)

	_, err := manager.GetToken(context.Background())
	require.NoError(t, err)

	manager.Clear()

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "jwt-two", token)
	assert.Equal(t, 2, exchange.calls)
}
