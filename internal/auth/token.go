package auth

import (
	"context"
	"sync"
	"time"
)

// Token is a short-lived bearer credential obtained from the token exchange.
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

// expiryBuffer is subtracted from the expiry when checking validity so a
// token is not presented moments before it lapses.
const expiryBuffer = 30 * time.Second

// Valid reports whether the token can still be presented. A zero ExpiresAt
// means the token carries no expiry and stays valid for the process lifetime;
// the Polaris exchange does not report one.
func (t *Token) Valid() bool {
	if t == nil || t.AccessToken == "" {
		return false
	}

	if t.ExpiresAt.IsZero() {
		return true
	}

	return time.Now().Add(expiryBuffer).Before(t.ExpiresAt)
}

// TokenStore is a thread-safe single-slot token cache. Readers never observe
// a half-written value; concurrent writers are last-write-wins.
type TokenStore struct {
	mu    sync.RWMutex
	token *Token
}

// NewTokenStore creates an empty token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Get returns the stored token, or nil if none is cached.
func (s *TokenStore) Get() *Token {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

// Set stores a token, replacing any existing one.
func (s *TokenStore) Set(token *Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
}

// Clear removes the stored token.
func (s *TokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = nil
}

// TokenManager provides bearer tokens to the HTTP layer.
type TokenManager interface {
	// GetToken returns a valid token, performing an exchange if none is
	// cached.
	GetToken(ctx context.Context) (string, error)
	// RefreshToken unconditionally performs a fresh exchange, overwriting
	// the cached token.
	RefreshToken(ctx context.Context) error
	// SetToken manually seeds the cached token.
	SetToken(token string, expiresAt time.Time)
}
