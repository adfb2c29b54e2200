package commands

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

type OrchestrateCmd struct {
	flags *Flags
	once  bool
}

func NewOrchestrateCmd(flags *Flags) *OrchestrateCmd {
	return &OrchestrateCmd{flags: flags}
}

func (cmd *OrchestrateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "orchestrate",
		Usage:     "Poll the vault folders on an interval",
		UsageText: "clerk orchestrate [options]",
		Description: `Runs the polling loop: every interval, process Needs_Action, execute
Approved, sweep Rejected, and refresh the dashboard. Slower to react than
'clerk watch' but has no dependency on filesystem notifications, which
matters on network mounts.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "once",
				Usage:       "run a single cycle and exit",
				Destination: &cmd.once,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *OrchestrateCmd) run(ctx context.Context, c *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := buildApp(cmd.flags.Config, log.Logger)
	if err != nil {
		return err
	}

	interval := cmd.flags.Config.Orchestra.Interval
	log.Info().Str("vault", app.vault.Root).Dur("interval", interval).Msg("orchestrator started")

	app.pipeline.Cycle(ctx)
	if cmd.once {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("orchestrator stopped")
			return nil
		case <-ticker.C:
			app.pipeline.Cycle(ctx)
		}
	}
}
