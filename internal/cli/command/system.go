package command

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// HealthCommand returns the health command.
func HealthCommand() *cli.Command {
	return &cli.Command{
		Name:  "health",
		Usage: "Check server health",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "ready",
				Usage: "Query the readiness endpoint, which reports store state",
			},
		},
		Action: systemHealth,
	}
}

func systemHealth(c *cli.Context) error {
	client, s, err := EnsureConnected(c)
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	health, err := client.Health(ctx, c.Bool("ready"))
	if err != nil {
		return fmt.Errorf("server unhealthy: %w", err)
	}
	return render(c, s, health)
}
