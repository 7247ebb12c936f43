// Package integrity implements the SealSlot checksum and tag codec.
//
// A record is protected twice:
//
//   - Checksum: SHA-512 of the payload, hex encoded. Detects accidental
//     corruption and needs no key.
//   - Tag: HMAC-SHA-512 over payload + "-" + checksum, keyed with the
//     client secret, hex encoded. Detects both corruption and forgery by
//     anyone who does not hold the secret.
//
// Verify is the single authority on whether a record is trustworthy. It
// does not check the checksum separately: any change to payload or
// checksum after sealing changes the tag input, so the tag comparison
// fails.
//
// Client and server must produce byte-identical tags, so the separator,
// the encoding and the use of the secret string's raw bytes as the HMAC
// key are part of the wire contract.
package integrity
