package config

import "time"

// ServerConfig is the root configuration for sealslot-server.
type ServerConfig struct {
	Server ServerSection `koanf:"server"`
	Store  StoreSection  `koanf:"store"`
	Log    LogSection    `koanf:"log"`
}

// ServerSection configures the server process.
type ServerSection struct {
	HTTP HTTPConfig `koanf:"http"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// HTTPConfig configures the HTTP server.
type HTTPConfig struct {
	Addr        string `koanf:"addr"`
	TLSCertFile string `koanf:"tls_cert_file"`
	TLSKeyFile  string `koanf:"tls_key_file"`

	// MaxBodyBytes caps request bodies; larger bodies get 413.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`

	// CORSAllowedOrigins lists allowed origins; "*" allows any.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`

	RateLimit RateLimitConfig `koanf:"rate_limit"`

	// Audit enables one access log line per request.
	Audit bool `koanf:"audit"`

	// MetricsEnabled exposes GET /metrics.
	MetricsEnabled bool `koanf:"metrics_enabled"`

	// MetricsToken, if set, is required as a bearer token on /metrics.
	MetricsToken string `koanf:"metrics_token"`
}

// RateLimitConfig configures per-IP rate limiting. Requests <= 0 disables it.
type RateLimitConfig struct {
	Requests int           `koanf:"requests"`
	Window   time.Duration `koanf:"window"`
}

// StoreSection configures the record store.
type StoreSection struct {
	// SeedPayload is the payload of the initial record.
	SeedPayload string `koanf:"seed_payload"`

	// HistoryLimit caps history entries; 0 keeps every entry.
	HistoryLimit int `koanf:"history_limit"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// TLSEnabled reports whether both TLS files are configured.
func (c HTTPConfig) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}
