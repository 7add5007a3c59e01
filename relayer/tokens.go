package relayer

import (
	"sync"
	"time"
)

// Token is a single bearer token paired with its absolute expiry.
type Token struct {
	Value  string
	Expiry time.Time
}

// Expired reports whether the token is no longer usable as of now.
func (t Token) Expired(now time.Time) bool {
	return t.Value == "" || !now.Before(t.Expiry)
}

// Tokens is the access/refresh token pair minted by the auth service.
type Tokens struct {
	Access  Token
	Refresh Token
}

// tokenCell is a mutex-guarded holder for the current Tokens: the whole
// pair is replaced atomically so AuthInterceptor never observes a
// half-updated token while maybeRefreshAuthTokens is writing a new one.
type tokenCell struct {
	mu     sync.Mutex
	tokens Tokens
}

func (c *tokenCell) get() Tokens {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tokens
}

func (c *tokenCell) set(t Tokens) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens = t
}
