package auth

import (
	"github.com/goliatone/go-errors"
)

// ErrInvalidCredentials is returned for unknown identifiers and wrong
// passwords alike, so login responses never reveal whether an account exists.
var ErrInvalidCredentials = errors.New("Invalid credentials", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("INVALID_CREDENTIALS")

// ErrMismatchedHashAndPassword is the password comparison failure. Callers
// surface it as ErrInvalidCredentials.
var ErrMismatchedHashAndPassword = errors.New("password does not match hash", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("PASSWORD_MISMATCH")

// ErrAccountDeactivated is returned when credentials check out but the
// account has been switched off.
var ErrAccountDeactivated = errors.New("Account is deactivated", errors.CategoryAuth).
	WithCode(errors.CodeForbidden).
	WithTextCode("ACCOUNT_DEACTIVATED")

// ErrTokenExpired signals an otherwise well-formed token past its exp claim.
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("TOKEN_EXPIRED")

// ErrTokenMalformed covers every other verification failure: bad signature,
// wrong signing method, garbage input, wrong token class.
var ErrTokenMalformed = errors.New("token is invalid", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("TOKEN_INVALID")

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = errors.New("identity not found", errors.CategoryNotFound).
	WithCode(errors.CodeNotFound).
	WithTextCode("IDENTITY_NOT_FOUND")

// ErrEmailTaken reports a registration against an email already on file.
var ErrEmailTaken = errors.New("User with this email already exists", errors.CategoryConflict).
	WithCode(errors.CodeBadRequest).
	WithTextCode("EMAIL_TAKEN")

// ErrPhoneTaken reports a registration against a phone number already on file.
var ErrPhoneTaken = errors.New("User with this phone number already exists", errors.CategoryConflict).
	WithCode(errors.CodeBadRequest).
	WithTextCode("PHONE_TAKEN")

// ErrTooManyLoginAttempts enforces the login attempt cool down window.
var ErrTooManyLoginAttempts = errors.New("too many login attempts", errors.CategoryRateLimit).
	WithCode(errors.CodeUnauthorized).
	WithTextCode("TOO_MANY_ATTEMPTS")

// ErrNoEmptyString rejects empty required inputs at the library boundary.
var ErrNoEmptyString = errors.New("value must not be an empty string", errors.CategoryBadInput).
	WithCode(errors.CodeBadRequest).
	WithTextCode("EMPTY_VALUE")

// IsAuthError reports whether err belongs to the auth or authz categories.
func IsAuthError(err error) bool {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return false
	}
	return richErr.Category == errors.CategoryAuth || richErr.Category == errors.CategoryAuthz
}

// IsConflictError reports whether err is a uniqueness conflict.
func IsConflictError(err error) bool {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return false
	}
	return richErr.Category == errors.CategoryConflict
}
