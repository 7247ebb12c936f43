// Package config provides CLI configuration for SealSlot.
//
// The CLI keeps the server address, output format, TLS options and the
// credentials returned by "register --save" in ~/.sealslot/cli.yaml. The
// file holds the client secret, so it is written with mode 0600.
package config
