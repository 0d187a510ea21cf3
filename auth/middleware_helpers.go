package auth

import (
	"context"

	"github.com/YOUBAZ/SafeStay/auth/middleware/jwtware"
	"github.com/goliatone/go-router"
)

// ValidationListener aliases the jwtware listener so consumers can use auth helpers directly.
type ValidationListener = jwtware.ValidationListener

// ContextEnricherAdapter adapts jwtware.AuthClaims to auth.AuthClaims and
// stores the claims in the standard context for downstream usage.
func ContextEnricherAdapter(c context.Context, claims jwtware.AuthClaims) context.Context {
	authClaims, ok := claims.(AuthClaims)
	if !ok {
		return c
	}

	return WithClaimsContext(c, authClaims)
}

// RegisterValidationListeners appends listeners to a jwtware.Config in a safe, reusable way.
func RegisterValidationListeners(cfg *jwtware.Config, listeners ...ValidationListener) {
	if cfg == nil || len(listeners) == 0 {
		return
	}
	cfg.ValidationListeners = append(cfg.ValidationListeners, listeners...)
}

type jwtwareValidatorAdapter struct {
	inner TokenValidator
}

func (a jwtwareValidatorAdapter) Validate(token string) (jwtware.AuthClaims, error) {
	claims, err := a.inner.Validate(token)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// JWTwareValidator adapts an auth.TokenValidator to the middleware interface.
func JWTwareValidator(v TokenValidator) jwtware.TokenValidator {
	return jwtwareValidatorAdapter{inner: v}
}

// ProtectedRoute builds the access token gate for a route group: Bearer
// extraction, verification against the access secret, claims into router
// locals and the standard context.
func ProtectedRoute(cfg Config, ts TokenService, listeners ...ValidationListener) router.MiddlewareFunc {
	mwCfg := jwtware.Config{
		TokenValidator:  JWTwareValidator(AccessTokenValidator(ts)),
		ContextKey:      cfg.GetContextKey(),
		TokenLookup:     cfg.GetTokenLookup(),
		AuthScheme:      cfg.GetAuthScheme(),
		ContextEnricher: ContextEnricherAdapter,
	}
	RegisterValidationListeners(&mwCfg, listeners...)

	return jwtware.New(mwCfg)
}

// RequireRole composes with ProtectedRoute to gate a route to an allow list
// of roles. There is no hierarchy: admin passes only where admin is listed.
func RequireRole(cfg Config, roles ...UserRole) router.MiddlewareFunc {
	return jwtware.RequireRole(cfg.GetContextKey(), roles...)
}
