package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// TokenPair bundles the two tokens returned by login, register, and refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenServiceImpl implements the TokenService interface
type TokenServiceImpl struct {
	accessKey  []byte
	refreshKey []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	issuer     string
	logger     Logger
	now        func() time.Time
}

// TokenServiceOption mutates the service during construction.
type TokenServiceOption func(*TokenServiceImpl)

// WithTokenClock overrides the time source, mostly for expiry tests.
func WithTokenClock(now func() time.Time) TokenServiceOption {
	return func(ts *TokenServiceImpl) {
		if now != nil {
			ts.now = now
		}
	}
}

// WithTokenLogger overrides the default logger.
func WithTokenLogger(logger Logger) TokenServiceOption {
	return func(ts *TokenServiceImpl) {
		if logger != nil {
			ts.logger = logger
		}
	}
}

// NewTokenService creates a new TokenService instance
func NewTokenService(cfg Config, opts ...TokenServiceOption) (TokenService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ts := &TokenServiceImpl{
		accessKey:  []byte(cfg.AccessSigningKey),
		refreshKey: []byte(cfg.RefreshSigningKey),
		accessTTL:  cfg.GetAccessTTL(),
		refreshTTL: cfg.GetRefreshTTL(),
		issuer:     cfg.GetIssuer(),
		logger:     defLogger{},
		now:        time.Now,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(ts)
		}
	}

	return ts, nil
}

// IssueAccessToken mints a short lived token signed with the access key.
func (ts *TokenServiceImpl) IssueAccessToken(identity Identity) (string, error) {
	return ts.signClaims(ts.newClaims(identity, ts.accessTTL), ts.accessKey)
}

// IssueRefreshToken mints a long lived token signed with the refresh key.
func (ts *TokenServiceImpl) IssueRefreshToken(identity Identity) (string, error) {
	return ts.signClaims(ts.newClaims(identity, ts.refreshTTL), ts.refreshKey)
}

// IssueTokenPair mints both tokens for the given identity.
func (ts *TokenServiceImpl) IssueTokenPair(identity Identity) (TokenPair, error) {
	access, err := ts.IssueAccessToken(identity)
	if err != nil {
		return TokenPair{}, err
	}

	refresh, err := ts.IssueRefreshToken(identity)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyAccessToken parses and validates an access token, returning
// structured claims
func (ts *TokenServiceImpl) VerifyAccessToken(tokenString string) (AuthClaims, error) {
	return ts.verify(tokenString, ts.accessKey)
}

// VerifyRefreshToken parses and validates a refresh token, returning
// structured claims
func (ts *TokenServiceImpl) VerifyRefreshToken(tokenString string) (AuthClaims, error) {
	return ts.verify(tokenString, ts.refreshKey)
}

func (ts *TokenServiceImpl) newClaims(identity Identity, ttl time.Duration) *JWTClaims {
	now := ts.now()

	claims := &JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Subject:   identity.ID(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UID:       identity.ID(),
		UserEmail: identity.Email(),
		UserRole:  identity.Role(),
	}

	ensureTokenID(&claims.RegisteredClaims)

	return claims
}

func (ts *TokenServiceImpl) signClaims(claims *JWTClaims, key []byte) (string, error) {
	if claims == nil {
		return "", errors.New("claims must not be nil", errors.CategoryInternal)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedString, err := token.SignedString(key)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign JWT")
	}

	return signedString, nil
}

// verify is total over its input: any failure collapses into ErrTokenExpired
// or ErrTokenMalformed, never a panic or a raw parser error.
func (ts *TokenServiceImpl) verify(tokenString string, key []byte) (AuthClaims, error) {
	parserOptions := []jwt.ParserOption{}
	if ts.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(ts.issuer))
	}
	if ts.now != nil {
		parserOptions = append(parserOptions, jwt.WithTimeFunc(ts.now))
	}

	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService verify encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return key, nil
	}, parserOptions...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, errors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
			WithCode(errors.CodeUnauthorized).
			WithTextCode(ErrTokenMalformed.TextCode)
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	ts.logger.Error("TokenService verify could not decode or validate claims")
	return nil, ErrTokenMalformed
}

func ensureTokenID(claims *jwt.RegisteredClaims) {
	if claims.ID == "" {
		claims.ID = uuid.NewString()
	}
}
