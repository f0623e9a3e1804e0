package identity

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashSecret derives the stored digest for a plaintext secret: SHA-256,
// lowercase hex. The output is deterministic so the credential lookup can be
// an exact match against the persisted hash.
func HashSecret(secret string) (string, error) {
	if secret == "" {
		return "", ErrNoEmptySecret
	}

	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:]), nil
}
