package token

import (
	"crypto/rand"
	"encoding/hex"
)

// SecretLength is the number of random bytes in a client secret (256 bits).
const SecretLength = 32

// GenerateBytes returns length bytes from the system CSPRNG.
func GenerateBytes(length int) ([]byte, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

// GenerateHex returns length random bytes encoded as lowercase hex.
func GenerateHex(length int) (string, error) {
	b, err := GenerateBytes(length)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// GenerateSecret returns a new hex-encoded client secret.
func GenerateSecret() (string, error) {
	return GenerateHex(SecretLength)
}
