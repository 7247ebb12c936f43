package adaptive

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters for passphrase-derived keys.
const (
	Argon2Memory      uint32 = 64 * 1024
	Argon2Time        uint32 = 3
	Argon2Parallelism uint8  = 2
	SaltSize                 = 16
)

const envelopeVersion byte = 1

var cipherIDs = map[CipherType]byte{
	CipherAESGCM:   1,
	CipherChaCha20: 2,
}

// ErrEnvelope is returned when a payload is not a valid encrypted envelope.
var ErrEnvelope = errors.New("adaptive: not an encrypted envelope")

// DeriveKey stretches passphrase and salt into a KeySize key.
func DeriveKey(passphrase string, salt []byte) []byte {
	return argon2.IDKey([]byte(passphrase), salt, Argon2Time, Argon2Memory, Argon2Parallelism, KeySize)
}

// SealString encrypts plaintext under passphrase with the preferred cipher
// and returns the text envelope.
func SealString(plaintext, passphrase string) (string, error) {
	return SealStringWithType(plaintext, passphrase, preferredType())
}

// SealStringWithType is SealString with an explicit cipher.
func SealStringWithType(plaintext, passphrase string, typ CipherType) (string, error) {
	id, ok := cipherIDs[typ]
	if !ok {
		return "", errors.New("adaptive: unknown cipher type: " + string(typ))
	}

	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	c, err := NewWithType(DeriveKey(passphrase, salt), typ)
	if err != nil {
		return "", err
	}

	header := append([]byte{envelopeVersion, id}, salt...)
	ct, err := c.Encrypt([]byte(plaintext), header)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(append(header, ct...)), nil
}

// OpenString reverses SealString. A wrong passphrase or any modification of
// the envelope yields an error.
func OpenString(envelope, passphrase string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(envelope)
	if err != nil || len(raw) < 2+SaltSize || raw[0] != envelopeVersion {
		return "", ErrEnvelope
	}

	var typ CipherType
	for t, id := range cipherIDs {
		if id == raw[1] {
			typ = t
		}
	}
	if typ == "" {
		return "", ErrEnvelope
	}

	header := raw[:2+SaltSize]
	c, err := NewWithType(DeriveKey(passphrase, header[2:]), typ)
	if err != nil {
		return "", err
	}

	pt, err := c.Decrypt(raw[len(header):], header)
	if err != nil {
		return "", fmt.Errorf("adaptive: decrypt: %w", err)
	}
	return string(pt), nil
}
