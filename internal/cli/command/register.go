package command

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/sealslot-go/internal/cli/config"
)

const requestTimeout = 30 * time.Second

// RegisterCommand returns the register command.
func RegisterCommand() *cli.Command {
	return &cli.Command{
		Name:    "register",
		Aliases: []string{"init"},
		Usage:   "Register a new client and print its token and secret",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "save",
				Usage: "Store the credentials in the CLI config file",
			},
		},
		Action: registerClient,
	}
}

func registerClient(c *cli.Context) error {
	client, s, err := EnsureConnected(c)
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	creds, err := client.Register(ctx)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}

	if c.Bool("save") {
		s.Token = creds.Token
		s.Secret = creds.Secret
		if err := config.Save(s.CLIConfig, s.ConfigPath); err != nil {
			return fmt.Errorf("save credentials: %w", err)
		}
		fmt.Fprintf(errWriter(c), "credentials saved to %s\n", s.ConfigPath)
	} else {
		PrintWarning(c, "the secret is shown only once; store it now or rerun with --save")
	}

	return render(c, s, creds)
}

func requestContext(c *cli.Context) (context.Context, context.CancelFunc) {
	parent := c.Context
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, requestTimeout)
}
