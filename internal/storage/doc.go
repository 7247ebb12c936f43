// Package storage groups the SealSlot storage backends.
//
// The only backend is memory: the client registry and the single record
// slot with its history live in process memory and are lost on restart.
// Backends implement service.ClientRepository and service.RecordRepository.
package storage
