package command

import (
	"crypto/tls"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/sealslot-go/internal/cli/config"
	"github.com/yndnr/sealslot-go/internal/cli/connection"
	"github.com/yndnr/sealslot-go/internal/cli/output"
	"github.com/yndnr/sealslot-go/internal/infra/buildinfo"
	"github.com/yndnr/sealslot-go/internal/infra/tlsroots"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "sealslot-cli",
		Usage:   "SealSlot command-line client",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			RegisterCommand(),
			ReadCommand(),
			WriteCommand(),
			RecoverCommand(),
			HealthCommand(),
		},
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "CLI config file",
			EnvVars: []string{"SEALSLOT_CLI_CONFIG"},
			Value:   config.DefaultConfigPath(),
		},
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "SealSlot server address (e.g., http://127.0.0.1:8080)",
			EnvVars: []string{"SEALSLOT_SERVER"},
		},
		&cli.StringFlag{
			Name:    "token",
			Aliases: []string{"t"},
			Usage:   "Client token",
			EnvVars: []string{"SEALSLOT_TOKEN"},
		},
		&cli.StringFlag{
			Name:    "secret",
			Usage:   "Client secret used to seal and verify records",
			EnvVars: []string{"SEALSLOT_SECRET"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
		},
		&cli.StringFlag{
			Name:  "ca-cert",
			Usage: "PEM file with an extra CA to trust for https servers",
		},
		&cli.BoolFlag{
			Name:  "insecure",
			Usage: "Skip TLS certificate verification",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Enable verbose output",
		},
	}
}

// Settings is the config file merged with flags and environment.
type Settings struct {
	*config.CLIConfig

	ConfigPath string
	Verbose    bool
}

// LoadSettings reads the config file and applies any flags that were set.
func LoadSettings(c *cli.Context) (*Settings, error) {
	path := c.String("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	override := func(name string, dst *string) {
		if c.IsSet(name) {
			*dst = c.String(name)
		}
	}
	override("server", &cfg.Server)
	override("token", &cfg.Token)
	override("secret", &cfg.Secret)
	override("output", &cfg.Output)
	override("ca-cert", &cfg.CACert)
	if c.IsSet("insecure") {
		cfg.Insecure = c.Bool("insecure")
	}

	if _, err := output.ParseFormat(cfg.Output); err != nil {
		return nil, err
	}

	return &Settings{
		CLIConfig:  cfg,
		ConfigPath: path,
		Verbose:    c.Bool("verbose"),
	}, nil
}

// EnsureConnected loads settings and returns a client for the server.
func EnsureConnected(c *cli.Context) (*connection.HTTPClient, *Settings, error) {
	s, err := LoadSettings(c)
	if err != nil {
		return nil, nil, err
	}

	var tlsCfg *tls.Config
	if strings.HasPrefix(s.Server, "https://") || s.CACert != "" || s.Insecure {
		tlsCfg, err = tlsroots.ClientConfig(s.CACert, s.Insecure)
		if err != nil {
			return nil, nil, fmt.Errorf("tls: %w", err)
		}
		if s.Insecure {
			PrintWarning(c, "TLS certificate verification is disabled")
		}
	}

	client := connection.NewHTTPClient(s.Server, s.Token, tlsCfg)
	if s.Verbose {
		fmt.Fprintf(errWriter(c), "server: %s\n", client.BaseURL())
	}
	return client, s, nil
}

// requireToken fails early when no client token is configured.
func requireToken(s *Settings) error {
	if s.Token == "" {
		return cli.Exit("no client token: run \"sealslot-cli register --save\" or set --token", 2)
	}
	return nil
}

// render writes data in the configured output format.
func render(c *cli.Context, s *Settings, data any) error {
	format, err := output.ParseFormat(s.Output)
	if err != nil {
		return err
	}
	return output.NewFormatter(format).Format(writer(c), data)
}

func writer(c *cli.Context) io.Writer {
	if c.App != nil && c.App.Writer != nil {
		return c.App.Writer
	}
	return os.Stdout
}

func errWriter(c *cli.Context) io.Writer {
	if c.App != nil && c.App.ErrWriter != nil {
		return c.App.ErrWriter
	}
	return os.Stderr
}

// PrintWarning prints a warning message to stderr.
func PrintWarning(c *cli.Context, format string, args ...any) {
	fmt.Fprintf(errWriter(c), "warning: "+format+"\n", args...)
}
