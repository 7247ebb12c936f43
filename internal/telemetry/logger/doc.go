// Package logger provides structured logging for SealSlot.
//
// It wraps log/slog:
//
//   - logger.go: handler setup, dynamic level, package-level helpers
//   - context.go: request ID and client fingerprint propagation
//   - redact.go: masking of secrets, tokens and integrity tags
//
// Output is JSON by default. Values that look like client secrets (64 hex
// characters) or client tokens (UUIDs) are masked wherever they appear,
// and any attribute whose key names a credential is fully redacted.
package logger
