package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/clerk/internal/core/skills"
)

type InitCmd struct {
	flags *Flags
	force bool
}

func NewInitCmd(flags *Flags) *InitCmd {
	return &InitCmd{flags: flags}
}

func (cmd *InitCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "init",
		Usage:     "Create the vault folder tree and a starter config file",
		UsageText: "clerk init [options]",
		Description: `Creates the vault folders (Inbox, Needs_Action, Plans, Pending_Approval,
Approved, Rejected, Done, Logs, Briefings) under the vault directory, seeds
System_Logs.md and Dashboard.md, and writes a commented starter config file
if none exists.

Existing files are never overwritten unless --force is given.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "force",
				Aliases:     []string{"f"},
				Usage:       "overwrite an existing config file",
				Destination: &cmd.force,
			},
		},
		Action: cmd.run,
	})
	return app
}

const starterConfig = `# clerk configuration
watch:
  # wait this long after a file appears before reading it
  settle_delay: 500ms
  ignore: [".*", "*.tmp", "*.lock", "*.swp", "*~"]

orchestrator:
  interval: 10s

schedule:
  health_check: 5m
  briefing: 24h
  social_queue: 30m
  dashboard: 1m

routing:
  # tasks containing any of these words are routed to Pending_Approval
  approval_keywords: [payment, invoice, send, post, delete, urgent]

# outbound actions are simulated until real transports exist
dry_run: true
`

func (cmd *InitCmd) run(ctx context.Context, c *cli.Command) error {
	app, err := buildApp(cmd.flags.Config, log.Logger)
	if err != nil {
		return fmt.Errorf("create vault tree: %w", err)
	}

	// Render the first dashboard so the vault is complete from the start.
	if _, err := app.registry.Run(ctx, skills.NameDashboard, ""); err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}

	out := c.Root().Writer
	fmt.Fprintf(out, "Vault initialized at %s\n", app.vault.Root)
	for _, dir := range app.vault.Folders() {
		fmt.Fprintf(out, "  %s/\n", filepath.Base(dir))
	}

	path := cmd.flags.ConfigPath
	if _, err := os.Stat(path); err == nil && !cmd.force {
		fmt.Fprintf(out, "Config already exists at %s (use --force to overwrite)\n", path)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(starterConfig), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Fprintf(out, "Config written to %s\n", path)
	return nil
}
