// Package httpserver provides the HTTP/HTTPS server for SealSlot.
//
// This package implements the external API using stdlib net/http:
//
//   - Protocol endpoints: POST /init, GET /, POST /, GET /recover
//   - Health endpoints: /health, /ready, /metrics
//
// Features:
//
//   - TLS support with certificate hot reload
//   - Middleware chain: RequestID, CORS, Audit, RateLimit, MaxBytes, ClientAuth
//   - Graceful shutdown with configurable timeout
//   - Prometheus metrics integration
package httpserver
