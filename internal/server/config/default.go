package config

import "time"

// Default configuration values.
const (
	DefaultHTTPAddr        = "127.0.0.1:8080"
	DefaultMaxBodyBytes    = 1 << 20
	DefaultRateLimit       = 100
	DefaultRateLimitWindow = 15 * time.Minute
	DefaultShutdownTimeout = 30 * time.Second

	DefaultSeedPayload = "Hello World"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			HTTP: HTTPConfig{
				Addr:               DefaultHTTPAddr,
				MaxBodyBytes:       DefaultMaxBodyBytes,
				CORSAllowedOrigins: []string{"*"},
				RateLimit: RateLimitConfig{
					Requests: DefaultRateLimit,
					Window:   DefaultRateLimitWindow,
				},
				Audit:          true,
				MetricsEnabled: true,
			},
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Store: StoreSection{
			SeedPayload: DefaultSeedPayload,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
