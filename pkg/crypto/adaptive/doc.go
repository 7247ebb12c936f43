// Package adaptive provides authenticated encryption for payloads that a
// client wants to keep opaque to the SealSlot server.
//
// The cipher is chosen by hardware: AES-256-GCM where Go uses AES
// instructions (amd64, arm64), ChaCha20-Poly1305 elsewhere. Keys come
// from a passphrase through Argon2id.
//
// SealString produces a self-describing text envelope:
//
//	base64url( version | cipher id | salt(16) | nonce | ciphertext+tag )
//
// so the reader needs only the passphrase. The server sees the envelope
// as an ordinary payload string and checksums/tags it like any other.
package adaptive
