// Package token provides random credential generation for SealSlot.
//
// Client secrets are 32 bytes from crypto/rand, hex encoded (64
// characters). The hex string itself is the HMAC key that client and
// server share, so it must be transmitted and stored verbatim.
//
// Fingerprints are short SHA-256 prefixes that identify a credential in
// logs and metrics without revealing it.
package token
