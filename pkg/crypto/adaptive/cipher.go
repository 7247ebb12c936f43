package adaptive

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"runtime"

	"golang.org/x/crypto/chacha20poly1305"
)

// KeySize is the key length for both supported ciphers.
const KeySize = 32

// CipherType identifies the cipher algorithm.
type CipherType string

const (
	CipherAESGCM   CipherType = "aes-gcm"
	CipherChaCha20 CipherType = "chacha20-poly1305"
)

var errCiphertextShort = errors.New("adaptive: ciphertext too short")

// Cipher is an AEAD that prepends its random nonce to the ciphertext.
type Cipher struct {
	typ  CipherType
	aead cipher.AEAD
}

// New creates the preferred cipher for this platform.
func New(key []byte) (*Cipher, error) {
	return NewWithType(key, preferredType())
}

// NewWithType creates a cipher of the given type. key must be KeySize bytes.
func NewWithType(key []byte, typ CipherType) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("adaptive: key must be %d bytes, got %d", KeySize, len(key))
	}

	var (
		aead cipher.AEAD
		err  error
	)
	switch typ {
	case CipherAESGCM:
		var block cipher.Block
		block, err = aes.NewCipher(key)
		if err == nil {
			aead, err = cipher.NewGCM(block)
		}
	case CipherChaCha20:
		aead, err = chacha20poly1305.New(key)
	default:
		return nil, errors.New("adaptive: unknown cipher type: " + string(typ))
	}
	if err != nil {
		return nil, err
	}
	return &Cipher{typ: typ, aead: aead}, nil
}

// Type returns the cipher type.
func (c *Cipher) Type() CipherType { return c.typ }

// Overhead returns nonce plus authentication tag size in bytes.
func (c *Cipher) Overhead() int { return c.aead.NonceSize() + c.aead.Overhead() }

// Encrypt seals plaintext; the output is nonce || ciphertext.
func (c *Cipher) Encrypt(plaintext, additionalData []byte) ([]byte, error) {
	nonce := make([]byte, c.aead.NonceSize(), c.aead.NonceSize()+len(plaintext)+c.aead.Overhead())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return c.aead.Seal(nonce, nonce, plaintext, additionalData), nil
}

// Decrypt opens nonce || ciphertext produced by Encrypt.
func (c *Cipher) Decrypt(ciphertext, additionalData []byte) ([]byte, error) {
	n := c.aead.NonceSize()
	if len(ciphertext) < n+c.aead.Overhead() {
		return nil, errCiphertextShort
	}
	return c.aead.Open(nil, ciphertext[:n], ciphertext[n:], additionalData)
}

// preferredType picks AES-GCM where Go's crypto/aes is hardware
// accelerated and ChaCha20-Poly1305 otherwise.
func preferredType() CipherType {
	switch runtime.GOARCH {
	case "amd64", "arm64":
		return CipherAESGCM
	default:
		return CipherChaCha20
	}
}
