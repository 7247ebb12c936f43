// Package command provides CLI command definitions for sealslot-cli.
//
// It uses urfave/cli/v2 for command parsing. Connection settings and
// credentials come from ~/.sealslot/cli.yaml, overridden by environment
// variables and flags.
package command
