package identity

import (
	"fmt"

	"github.com/goliatone/go-errors"
)

// MinSigningKeyBytes is the minimum symmetric key size, 256 bits
const MinSigningKeyBytes = 32

// TokenConfig is the concrete signing configuration, loaded once for the
// process lifetime
type TokenConfig struct {
	SigningKey      string   `json:"-"`
	Issuer          string   `json:"issuer"`
	Audience        []string `json:"audience"`
	ExpirationHours int      `json:"expiration_hours"`
}

var _ Config = TokenConfig{}

func (c TokenConfig) GetSigningKey() string {
	return c.SigningKey
}

func (c TokenConfig) GetIssuer() string {
	return c.Issuer
}

func (c TokenConfig) GetAudience() []string {
	return c.Audience
}

func (c TokenConfig) GetTokenExpiration() int {
	return c.ExpirationHours
}

// ValidateSigningConfig fails fast on missing or undersized signing
// configuration. Called at construction time, never per request.
func ValidateSigningConfig(cfg Config) error {
	if cfg == nil {
		return configError("configuration is required")
	}

	if len([]byte(cfg.GetSigningKey())) < MinSigningKeyBytes {
		return configError(fmt.Sprintf("signing key must be at least %d bytes", MinSigningKeyBytes))
	}

	if cfg.GetIssuer() == "" {
		return configError("issuer is required")
	}

	if len(cfg.GetAudience()) == 0 {
		return configError("audience is required")
	}

	if cfg.GetTokenExpiration() <= 0 {
		return configError("token expiration hours must be positive")
	}

	return nil
}

func configError(msg string) error {
	return errors.Wrap(ErrInvalidSigningConfig, errors.CategoryValidation, msg).
		WithTextCode(TextCodeConfigInvalid)
}
