package identity

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// TokenService signs and verifies access tokens
type TokenService interface {
	Issue(user *User, createdAt time.Time) (token string, expiresAt time.Time, err error)
	Validate(tokenString string) (*AccessClaims, error)
}

// TokenServiceImpl implements TokenService over a symmetric HS256 key
type TokenServiceImpl struct {
	signingKey      []byte
	expirationHours int
	issuer          string
	audience        jwt.ClaimStrings
	logger          Logger
}

var _ TokenService = (*TokenServiceImpl)(nil)

// NewTokenService builds a TokenService from validated configuration.
// A bad signing configuration is fatal here, before any request is served.
func NewTokenService(cfg Config, logger Logger) (*TokenServiceImpl, error) {
	if err := ValidateSigningConfig(cfg); err != nil {
		return nil, err
	}

	if logger == nil {
		logger = defLogger{}
	}

	return &TokenServiceImpl{
		signingKey:      []byte(cfg.GetSigningKey()),
		expirationHours: cfg.GetTokenExpiration(),
		issuer:          cfg.GetIssuer(),
		audience:        jwt.ClaimStrings(cfg.GetAudience()),
		logger:          logger,
	}, nil
}

// Issue mints a signed token for the user. The unique token id claim is
// freshly random per call; signing failures are configuration level and
// never retried.
func (ts *TokenServiceImpl) Issue(user *User, createdAt time.Time) (string, time.Time, error) {
	if user == nil {
		return "", time.Time{}, errors.New("user must not be nil", errors.CategoryInternal)
	}

	expiresAt := createdAt.Add(time.Duration(ts.expirationHours) * time.Hour)
	claims := NewAccessClaims(user, ts.issuer, ts.audience, createdAt, expiresAt)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, errors.CategoryInternal, "failed to sign JWT")
	}

	return signed, expiresAt, nil
}

// Validate parses and verifies a token string, returning typed claims.
// Issuer, audience, signature, and expiry are all required to match.
func (ts *TokenServiceImpl) Validate(tokenString string) (*AccessClaims, error) {
	parserOptions := []jwt.ParserOption{
		jwt.WithIssuer(ts.issuer),
	}
	if len(ts.audience) > 0 {
		parserOptions = append(parserOptions, jwt.WithAudience(ts.audience...))
	}

	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService validate encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	}, parserOptions...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, errors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
			WithTextCode(ErrTokenMalformed.TextCode)
	}

	if claims, ok := token.Claims.(*AccessClaims); ok && token.Valid {
		return claims, nil
	}

	ts.logger.Error("TokenService validate could not decode or validate claims")
	return nil, ErrUnableToDecodeSession
}

// ensureTokenID assigns a fresh random jti when the claim set has none
func ensureTokenID(claims *jwt.RegisteredClaims) {
	if claims.ID == "" {
		claims.ID = strings.ReplaceAll(uuid.NewString(), "-", "")
	}
}
