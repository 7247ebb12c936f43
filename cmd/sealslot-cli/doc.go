// Package main provides the entry point for sealslot-cli.
//
// The CLI registers clients against a SealSlot server and works with the
// sealed record:
//
//   - register: obtain a token and secret (--save stores them)
//   - read / recover: fetch the current or previous record and verify it
//   - write: seal a value with the client secret and store it
//   - health: check liveness or readiness
//
// Usage:
//
//	sealslot-cli register --save
//	sealslot-cli write "Hello again"
//	sealslot-cli read -o json
//
// A --passphrase on write and read adds client-side encryption of the
// payload on top of the integrity seal.
package main
