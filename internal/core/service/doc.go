// Package service provides domain services for SealSlot.
//
// Domain services contain the business logic and orchestrate operations
// on domain models. They define interfaces for storage dependencies,
// allowing for dependency injection and testability.
//
// This package contains:
//
//   - RegistryService: client registration and token authentication
//   - ProtocolService: the register/read/write/recover session protocol
//   - RateLimiterRegistry: per-caller request budgets
//
// Services hold no request state and are safe for concurrent use.
package service
