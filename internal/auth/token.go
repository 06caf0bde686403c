package auth

import (
	"crypto/rand"
	"encoding/base64"
)

// GenerateTokenKey creates a cryptographically secure bearer token key.
// 32 random bytes gives 256 bits of entropy, enough that keys are
// unguessable and collisions are not a practical concern.
func GenerateTokenKey() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}
