package identity

import (
	"context"
	"strings"
	"time"
)

// TimestampLayout is the wire format for the created and expiration stamps
// in the response envelope
const TimestampLayout = "2006-01-02 15:04:05"

// AuthResponse is the envelope returned on successful authentication
type AuthResponse struct {
	UserID        string  `json:"user_id"`
	Email         string  `json:"email"`
	Expiration    string  `json:"expiration"`
	AccessToken   string  `json:"access_token"`
	Authenticated bool    `json:"authenticated"`
	Profile       Profile `json:"profile,omitempty"`
	Created       string  `json:"created"`
}

// Auther orchestrates hashing, criteria composition, the credential lookup,
// and token issuance. Stateless per request, safe for concurrent use.
type Auther struct {
	users  UserFinder
	tokens TokenService
	logger Logger
	now    func() time.Time
}

var _ Authenticator = (*Auther)(nil)

// NewAuthenticator returns a new Auther. Fails when the signing
// configuration is missing or undersized.
func NewAuthenticator(users UserFinder, cfg Config) (*Auther, error) {
	tokens, err := NewTokenService(cfg, defLogger{})
	if err != nil {
		return nil, err
	}

	return &Auther{
		users:  users,
		tokens: tokens,
		logger: defLogger{},
		now:    time.Now,
	}, nil
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	return s
}

// WithClock overrides the issuance timestamp source
func (s *Auther) WithClock(now func() time.Time) *Auther {
	if now != nil {
		s.now = now
	}
	return s
}

// TokenService returns the token service used by this authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokens
}

// Authenticate hashes the supplied password, resolves the single matching
// user through the composed credential filter, and mints a signed token.
// Unknown login and wrong password are indistinguishable in the result.
func (s *Auther) Authenticate(ctx context.Context, login, password string) (*AuthResponse, error) {
	if strings.TrimSpace(login) == "" || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidCredentialsInput
	}

	digest, err := HashSecret(password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindOneByCredentials(ctx, &UserFilter{
		Login:        login,
		PasswordHash: digest,
	})
	if err != nil {
		s.logger.Error("Authenticate credential lookup failed", "error", err)
		return nil, err
	}

	createdAt := s.now().UTC()

	token, expiresAt, err := s.tokens.Issue(user, createdAt)
	if err != nil {
		s.logger.Error("Authenticate token issuance failed", "error", err)
		return nil, err
	}

	return &AuthResponse{
		UserID:        user.ID.String(),
		Email:         user.Email,
		Expiration:    expiresAt.Format(TimestampLayout),
		AccessToken:   token,
		Authenticated: true,
		Profile:       user.UserProfile(),
		Created:       createdAt.Format(TimestampLayout),
	}, nil
}
