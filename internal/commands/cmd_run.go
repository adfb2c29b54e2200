package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

type RunCmd struct {
	flags *Flags
}

func NewRunCmd(flags *Flags) *RunCmd {
	return &RunCmd{flags: flags}
}

func (cmd *RunCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "run",
		Usage:     "Run a single skill against a file",
		UsageText: "clerk run <skill> [file]",
		Description: `Dispatches one skill by name and prints its result as JSON. The file
argument is resolved against the vault's Needs_Action folder when it is not
an absolute path; skills that aggregate over the whole vault take no file.

Run 'clerk skills' for the list of skill names.`,
		Action: cmd.run,
	})
	return app
}

func (cmd *RunCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() == 0 {
		return fmt.Errorf("missing skill name. Run 'clerk skills' for the list")
	}

	app, err := buildApp(cmd.flags.Config, log.Logger)
	if err != nil {
		return err
	}

	name := c.Args().First()

	file := c.Args().Get(1)
	if file != "" && !filepath.IsAbs(file) {
		file = filepath.Join(app.vault.NeedsAction, file)
	}

	result, err := app.registry.Run(ctx, name, file)
	if err != nil {
		return fmt.Errorf("run %s: %w", name, err)
	}

	enc := json.NewEncoder(c.Root().Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
