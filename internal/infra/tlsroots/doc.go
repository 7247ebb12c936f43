// Package tlsroots manages TLS material for SealSlot.
//
// Pool builds client configurations that trust a custom CA, used by
// sealslot-cli against servers with self-signed certificates.
// CertReloader serves the server key pair and swaps it in place when the
// files change, so certificates can be rotated without a restart.
package tlsroots
