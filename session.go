package identity

import (
	"time"

	"github.com/google/uuid"
)

// Session is the view of a verified token that downstream middleware
// consumes. Only the claim shape matters here; verification transport is a
// collaborator concern.
type Session interface {
	GetUserID() string
	GetUserUUID() (uuid.UUID, error)
	GetEmail() string
	GetUsername() string
	GetProfile() Profile
	GetIssuer() string
	GetAudience() []string
	GetIssuedAt() *time.Time
	GetTokenID() string
}

var _ Session = &SessionObject{}

type SessionObject struct {
	UserID         string     `json:"user_id,omitempty"`
	Email          string     `json:"email,omitempty"`
	Username       string     `json:"username,omitempty"`
	Profile        Profile    `json:"profile,omitempty"`
	Audience       []string   `json:"audience,omitempty"`
	Issuer         string     `json:"issuer,omitempty"`
	TokenID        string     `json:"token_id,omitempty"`
	IssuedAt       *time.Time `json:"issued_at,omitempty"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
}

func (s *SessionObject) GetUserID() string {
	return s.UserID
}

func (s *SessionObject) GetUserUUID() (uuid.UUID, error) {
	return uuid.Parse(s.UserID)
}

func (s *SessionObject) GetEmail() string {
	return s.Email
}

func (s *SessionObject) GetUsername() string {
	return s.Username
}

func (s *SessionObject) GetProfile() Profile {
	return s.Profile
}

func (s *SessionObject) GetAudience() []string {
	return s.Audience
}

func (s *SessionObject) GetIssuer() string {
	return s.Issuer
}

func (s *SessionObject) GetIssuedAt() *time.Time {
	return s.IssuedAt
}

func (s *SessionObject) GetTokenID() string {
	return s.TokenID
}

// SessionFromClaims converts verified access claims into a session object
func SessionFromClaims(claims *AccessClaims) (*SessionObject, error) {
	if claims == nil {
		return nil, ErrUnableToDecodeSession
	}

	session := &SessionObject{
		UserID:   claims.GetUserID(),
		Email:    claims.Email,
		Username: claims.Username,
		Profile:  claims.GetProfile(),
		Issuer:   claims.RegisteredClaims.Issuer,
		Audience: claims.RegisteredClaims.Audience,
		TokenID:  claims.TokenID(),
	}

	if claims.RegisteredClaims.IssuedAt != nil {
		issuedAt := claims.RegisteredClaims.IssuedAt.Time
		session.IssuedAt = &issuedAt
	}

	if claims.RegisteredClaims.ExpiresAt != nil {
		expiresAt := claims.RegisteredClaims.ExpiresAt.Time
		session.ExpirationDate = &expiresAt
	}

	return session, nil
}

// SessionFromToken verifies a raw token through the service and maps its
// claims into a session object
func SessionFromToken(tokens TokenService, raw string) (Session, error) {
	claims, err := tokens.Validate(raw)
	if err != nil {
		return nil, err
	}

	return SessionFromClaims(claims)
}
