// Package handler provides HTTP request handlers for SealSlot.
//
// This package contains handlers for all HTTP endpoints:
//
//   - protocol.go: register, read, write and recover
//   - health.go: health and readiness checks
//   - encoding.go: JSON and protobuf response encoding
//
// All handlers follow a consistent pattern:
//
//   - Resolve the calling client
//   - Parse the request body, if any
//   - Call the protocol service
//   - Return the standard envelope, mapping domain error codes to statuses
package handler
