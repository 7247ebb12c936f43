package config

// CLIConfig is the configuration for sealslot-cli.
type CLIConfig struct {
	Server string `yaml:"server"`
	Output string `yaml:"output"` // table, json, yaml

	// TLS options for https servers.
	CACert   string `yaml:"ca_cert,omitempty"`
	Insecure bool   `yaml:"insecure,omitempty"`

	// Credentials saved by "register --save".
	Token  string `yaml:"token,omitempty"`
	Secret string `yaml:"secret,omitempty"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		Server: "http://127.0.0.1:8080",
		Output: "table",
	}
}

// HasCredentials reports whether both token and secret are set.
func (c *CLIConfig) HasCredentials() bool {
	return c.Token != "" && c.Secret != ""
}
