// Package confloader loads configuration with koanf and watches the
// config file for changes with fsnotify.
//
// Sources, lowest priority first:
//
//  1. Defaults already present in the target struct
//  2. YAML configuration file
//  3. Environment variables (SEALSLOT_ prefix)
//  4. Explicit maps, typically from command-line flags
//
// Environment variable names use a double underscore between levels so
// that single underscores survive inside key names:
//
//	SEALSLOT_SERVER__HTTP__MAX_BODY_BYTES=65536  ->  server.http.max_body_bytes
package confloader
