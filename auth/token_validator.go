package auth

// TokenValidator validates a raw token string into claims. The middleware
// depends on this narrow interface instead of the full TokenService.
type TokenValidator interface {
	Validate(token string) (AuthClaims, error)
}

// TokenValidatorFunc adapts a function to the TokenValidator interface.
type TokenValidatorFunc func(token string) (AuthClaims, error)

// Validate implements TokenValidator.
func (f TokenValidatorFunc) Validate(token string) (AuthClaims, error) {
	return f(token)
}

// AccessTokenValidator exposes the access token verification path as a
// TokenValidator. Refresh tokens fail here because the secrets differ, which
// keeps them out of protected routes.
func AccessTokenValidator(ts TokenService) TokenValidator {
	return TokenValidatorFunc(ts.VerifyAccessToken)
}
