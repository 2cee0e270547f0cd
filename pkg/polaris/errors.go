package polaris

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Static errors for caller-side misuse.
var (
	ErrInvalidPageSize     = errors.New("page size must be greater than zero")
	ErrConfigRequired      = errors.New("config is required")
	ErrAPIEndpointRequired = errors.New("API endpoint is required")
	ErrAPITokenRequired    = errors.New("API token is required")
	ErrNoMainBranch        = errors.New("no main branch found for project")
	ErrEmptyTriageUpdate   = errors.New("triage update must set at least one value")
)

// TransportError wraps a network-level failure: the request could not be
// completed at all. Never produced for a response with a status code.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// AuthenticationError is a failed token exchange. It carries the HTTP status
// and the raw response body so callers can decide whether to prompt for a new
// API token.
type AuthenticationError struct {
	Status int
	Body   string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed: HTTP %d: %s", e.Status, e.Body)
}

// APIError is a non-success response from a resource endpoint, propagated
// verbatim.
type APIError struct {
	Status int    `json:"status" yaml:"status"`
	Detail string `json:"detail" yaml:"detail"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.Status, e.Detail)
}

// NotFound reports whether the error is the 404 specialization, letting
// callers distinguish "absent" from "broken".
func (e *APIError) NotFound() bool {
	return e.Status == http.StatusNotFound
}

// DeserializationError is a response body that did not match the expected
// shape. Treated as a protocol violation, never retried.
type DeserializationError struct {
	What string
	Err  error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("deserializing %s: %v", e.What, e.Err)
}

func (e *DeserializationError) Unwrap() error {
	return e.Err
}

// IsNotFound checks if the error is a 404 API error.
func IsNotFound(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.NotFound()
	}

	return false
}

// IsAuthenticationFailed checks if the error is a failed token exchange.
func IsAuthenticationFailed(err error) bool {
	authErr := &AuthenticationError{}

	return errors.As(err, &authErr)
}

// errorDocument is the JSON:API error body shape.
type errorDocument struct {
	Errors []struct {
		Detail string `json:"detail"`
	} `json:"errors"`
}

// NewAPIError builds an APIError from a non-success response. The detail is
// taken from the first JSON:API errors[].detail entry when the body parses as
// one, otherwise the raw body is carried as-is.
func NewAPIError(status int, body []byte) *APIError {
	var doc errorDocument
	if err := json.Unmarshal(body, &doc); err == nil && len(doc.Errors) > 0 && doc.Errors[0].Detail != "" {
		return &APIError{Status: status, Detail: doc.Errors[0].Detail}
	}

	return &APIError{Status: status, Detail: string(body)}
}
