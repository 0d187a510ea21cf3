package auth

import (
	"time"

	"github.com/goliatone/go-errors"
)

const (
	// DefaultAccessTTL is the access token lifetime
	DefaultAccessTTL = 15 * time.Minute
	// DefaultRefreshTTL is the refresh token lifetime
	DefaultRefreshTTL = 7 * 24 * time.Hour
	// DefaultIssuer identifies tokens minted by this service
	DefaultIssuer = "safestay"
	// DefaultContextKey is the router locals key the middleware stores claims under
	DefaultContextKey = "user"
	// DefaultTokenLookup tells the middleware where to find the raw token
	DefaultTokenLookup = "header:Authorization"
	// DefaultAuthScheme is the expected Authorization header scheme
	DefaultAuthScheme = "Bearer"
)

// Config holds the token service options. It is a plain value constructed by
// the caller; the library never reads the environment on its own.
type Config struct {
	// AccessSigningKey signs access tokens
	AccessSigningKey string
	// RefreshSigningKey signs refresh tokens, must differ from AccessSigningKey
	RefreshSigningKey string
	// AccessTTL is the access token lifetime, DefaultAccessTTL when zero
	AccessTTL time.Duration
	// RefreshTTL is the refresh token lifetime, DefaultRefreshTTL when zero
	RefreshTTL time.Duration
	// Issuer is stamped into the iss claim
	Issuer string
	// ContextKey overrides DefaultContextKey
	ContextKey string
	// TokenLookup overrides DefaultTokenLookup
	TokenLookup string
	// AuthScheme overrides DefaultAuthScheme
	AuthScheme string
}

// Validate ensures both signing keys are present and distinct. A shared key
// would let a refresh token pass as an access token at the middleware.
func (c Config) Validate() error {
	if c.AccessSigningKey == "" {
		return errors.New("access signing key is required", errors.CategoryBadInput).
			WithTextCode("MISSING_ACCESS_KEY")
	}

	if c.RefreshSigningKey == "" {
		return errors.New("refresh signing key is required", errors.CategoryBadInput).
			WithTextCode("MISSING_REFRESH_KEY")
	}

	if c.AccessSigningKey == c.RefreshSigningKey {
		return errors.New("access and refresh signing keys must differ", errors.CategoryBadInput).
			WithTextCode("SHARED_SIGNING_KEY")
	}

	return nil
}

// GetAccessTTL returns the configured access token lifetime or the default.
func (c Config) GetAccessTTL() time.Duration {
	if c.AccessTTL > 0 {
		return c.AccessTTL
	}
	return DefaultAccessTTL
}

// GetRefreshTTL returns the configured refresh token lifetime or the default.
func (c Config) GetRefreshTTL() time.Duration {
	if c.RefreshTTL > 0 {
		return c.RefreshTTL
	}
	return DefaultRefreshTTL
}

// GetIssuer returns the configured issuer or the default.
func (c Config) GetIssuer() string {
	if c.Issuer != "" {
		return c.Issuer
	}
	return DefaultIssuer
}

// GetContextKey returns the configured locals key or the default.
func (c Config) GetContextKey() string {
	if c.ContextKey != "" {
		return c.ContextKey
	}
	return DefaultContextKey
}

// GetTokenLookup returns the configured token lookup or the default.
func (c Config) GetTokenLookup() string {
	if c.TokenLookup != "" {
		return c.TokenLookup
	}
	return DefaultTokenLookup
}

// GetAuthScheme returns the configured auth scheme or the default.
func (c Config) GetAuthScheme() string {
	if c.AuthScheme != "" {
		return c.AuthScheme
	}
	return DefaultAuthScheme
}
