// Package output renders sealslot-cli results as a table, JSON or YAML.
package output
