// Package main provides the entry point for sealslot-server.
//
// The server holds one shared, tamper-evident record and its history:
//
//   - POST /init registers a client and returns its token and secret
//   - GET / and POST / read and replace the record
//   - GET /recover returns the newest superseded record
//   - /health, /ready and /metrics for operations
//
// Usage:
//
//	sealslot-server [flags]
//	sealslot-server --config /path/to/config.yaml
//
// Configuration is read from the YAML file and SEALSLOT_ environment
// variables. The config file and TLS key pair are watched; log level and
// certificates are reloaded without a restart.
package main
