package integrity

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
)

// Separator joins payload and checksum in the tag input.
const Separator = "-"

// Checksum returns the hex-encoded SHA-512 digest of payload.
func Checksum(payload string) string {
	sum := sha512.Sum512([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// Tag returns the hex-encoded HMAC-SHA-512 of payload and checksum keyed
// with secret.
func Tag(payload, checksum, secret string) string {
	return hex.EncodeToString(mac(payload, checksum, secret))
}

// Verify recomputes the tag for payload and checksum and compares its
// encoded form to tag in constant time. Only an exact match verifies, so
// an uppercase rendering of a valid tag is rejected.
func Verify(payload, checksum, tag, secret string) bool {
	return hmac.Equal([]byte(Tag(payload, checksum, secret)), []byte(tag))
}

// Sealed is a payload with its checksum and tag.
type Sealed struct {
	Payload  string
	Checksum string
	Tag      string
}

// Seal computes checksum and tag for payload in one step.
func Seal(payload, secret string) Sealed {
	checksum := Checksum(payload)
	return Sealed{
		Payload:  payload,
		Checksum: checksum,
		Tag:      Tag(payload, checksum, secret),
	}
}

func mac(payload, checksum, secret string) []byte {
	h := hmac.New(sha512.New, []byte(secret))
	h.Write([]byte(payload))
	h.Write([]byte(Separator))
	h.Write([]byte(checksum))
	return h.Sum(nil)
}
