package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/clerk/internal/core/skills"
)

type StatusCmd struct {
	flags *Flags
	json  bool
}

func NewStatusCmd(flags *Flags) *StatusCmd {
	return &StatusCmd{flags: flags}
}

func (cmd *StatusCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "status",
		Usage:     "Report vault health and folder counts",
		UsageText: "clerk status [options]",
		Description: `Runs the health and inventory checks once and prints the result.
Exits non-zero when the vault is degraded, so it can back a cron alert.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "emit machine-readable output",
				Destination: &cmd.json,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *StatusCmd) run(ctx context.Context, c *cli.Command) error {
	app, err := buildApp(cmd.flags.Config, log.Logger)
	if err != nil {
		return err
	}

	health, err := app.registry.Run(ctx, skills.NameHealth, "")
	if err != nil {
		return fmt.Errorf("health check: %w", err)
	}

	inventory, err := app.registry.Run(ctx, skills.NameInventory, "")
	if err != nil {
		return fmt.Errorf("inventory: %w", err)
	}

	out := c.Root().Writer
	if cmd.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(map[string]any{"health": health, "inventory": inventory}); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(out, "Vault:  %s\n", app.vault.Root)
		fmt.Fprintf(out, "Status: %s (%v in inbox)\n", health.Str("status"), health["inbox_pending"])
		fmt.Fprintf(out, "Files:  %v across watched folders\n", inventory["total_files"])
	}

	if health.Str("status") != skills.StatusHealthy {
		return fmt.Errorf("vault is %s", health.Str("status"))
	}
	return nil
}
