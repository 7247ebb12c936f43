package token

import (
	"crypto/sha256"
	"encoding/hex"
)

// fingerprintLength is the number of hex characters kept in a fingerprint.
const fingerprintLength = 12

// Fingerprint returns a short, non-reversible identifier for a credential.
// Empty input yields an empty fingerprint.
func Fingerprint(credential string) string {
	if credential == "" {
		return ""
	}
	h := sha256.Sum256([]byte(credential))
	return hex.EncodeToString(h[:])[:fingerprintLength]
}
