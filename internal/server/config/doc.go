// Package config provides server configuration for SealSlot.
//
//   - spec.go: ServerConfig struct definition
//   - default.go: default values
//   - verify.go: validation (addresses, TLS pairs, limits)
//   - sanitize.go: masking of secrets for logging
//
// Configuration is loaded via internal/infra/confloader from a YAML file
// and SEALSLOT_ environment variables.
package config
