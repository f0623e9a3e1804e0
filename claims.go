package identity

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims is the signed claim set minted on every successful
// authentication. A fresh instance is built per issuance and never persisted.
//
// UserHash duplicates UserID under a second claim name. Deployed verifiers
// read the id from either key, so both are kept on the wire.
type AccessClaims struct {
	jwt.RegisteredClaims
	Email    string  `json:"email,omitempty"`
	Username string  `json:"username,omitempty"`
	UserID   string  `json:"user_id,omitempty"`
	UserHash string  `json:"userhash,omitempty"`
	Profile  Profile `json:"profile,omitempty"`
	Role     Profile `json:"role,omitempty"`
}

// NewAccessClaims builds the claim set for a user. The role claim always
// mirrors the profile claim.
func NewAccessClaims(user *User, issuer string, audience jwt.ClaimStrings, createdAt, expiresAt time.Time) *AccessClaims {
	id := user.ID.String()
	profile := user.UserProfile()

	var aud jwt.ClaimStrings
	if len(audience) > 0 {
		aud = make(jwt.ClaimStrings, len(audience))
		copy(aud, audience)
	}

	claims := &AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id,
			Audience:  aud,
			IssuedAt:  jwt.NewNumericDate(createdAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email:    user.Email,
		Username: user.Username(),
		UserID:   id,
		UserHash: id,
		Profile:  profile,
		Role:     profile,
	}

	ensureTokenID(&claims.RegisteredClaims)

	return claims
}

// Subject returns the subject claim
func (c *AccessClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// GetUserID returns the user id, falling back to the subject claim
func (c *AccessClaims) GetUserID() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.Subject()
}

// GetProfile returns the effective role claim
func (c *AccessClaims) GetProfile() Profile {
	if c.Profile != "" {
		return c.Profile
	}
	return c.Role
}

// TokenID returns the unique token id claim
func (c *AccessClaims) TokenID() string {
	return c.RegisteredClaims.ID
}

// Expires returns the expiration time
func (c *AccessClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// Issued returns the issued at time
func (c *AccessClaims) Issued() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
