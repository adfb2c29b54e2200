package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

type SkillsCmd struct {
	flags *Flags
}

func NewSkillsCmd(flags *Flags) *SkillsCmd {
	return &SkillsCmd{flags: flags}
}

func (cmd *SkillsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "skills",
		Usage:     "List the available skills",
		UsageText: "clerk skills",
		Action:    cmd.run,
	})
	return app
}

func (cmd *SkillsCmd) run(ctx context.Context, c *cli.Command) error {
	app, err := buildApp(cmd.flags.Config, log.Logger)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(c.Root().Writer, 0, 4, 2, ' ', 0)
	for _, name := range app.registry.Names() {
		s, err := app.registry.Get(name)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\n", name, s.Describe())
	}
	return w.Flush()
}
