// Package buildinfo reports the version of the running binary.
//
// Release builds inject values via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/sealslot-go/internal/infra/buildinfo.Version=v1.0.0"
//
// Values left unset fall back to what the Go toolchain embedded in the
// binary (module version, VCS revision and time).
package buildinfo
