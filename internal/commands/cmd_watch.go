package commands

import (
	"context"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/clerk/internal/core/skills"
	"github.com/hay-kot/clerk/internal/core/watch"
)

type WatchCmd struct {
	flags *Flags
}

func NewWatchCmd(flags *Flags) *WatchCmd {
	return &WatchCmd{flags: flags}
}

func (cmd *WatchCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "watch",
		Usage:     "Watch the vault and react to file events",
		UsageText: "clerk watch",
		Description: `Runs the event-driven loop. Files dropped in Inbox are pulled into
Needs_Action and processed through the full skill chain. Files a human moves
into Approved are executed and archived; Rejected is swept on the same
events. Runs until interrupted.`,
		Action: cmd.run,
	})
	return app
}

func (cmd *WatchCmd) run(ctx context.Context, c *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := buildApp(cmd.flags.Config, log.Logger)
	if err != nil {
		return err
	}

	cfg := cmd.flags.Config

	inboxWatch, err := watch.New(app.vault.Inbox, cfg.Watch.SettleDelay, cfg.Watch.Ignore, log.Logger)
	if err != nil {
		return err
	}
	defer inboxWatch.Close()

	approvedWatch, err := watch.New(app.vault.Approved, cfg.Watch.SettleDelay, cfg.Watch.Ignore, log.Logger)
	if err != nil {
		return err
	}
	defer approvedWatch.Close()

	log.Info().Str("vault", app.vault.Root).Msg("watching vault")

	// Anything already sitting in the folders predates the watchers.
	app.pipeline.Cycle(ctx)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		inboxWatch.Run(ctx, func(ctx context.Context, path string) {
			if err := app.pipeline.Intake(ctx, path); err != nil {
				log.Error().Err(err).Str("path", path).Msg("intake failed")
			}
		})
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		approvedWatch.Run(ctx, func(ctx context.Context, _ string) {
			app.pipeline.ResolveApproved(ctx)
			app.pipeline.ResolveRejected(ctx)
			if _, err := app.registry.Run(ctx, skills.NameDashboard, ""); err != nil {
				log.Warn().Err(err).Msg("dashboard update failed")
			}
		})
	}()

	// Rejections are a move into a folder nobody watches, so sweep them on
	// a slow ticker rather than a third watcher.
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(cfg.Orchestra.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				app.pipeline.ResolveRejected(ctx)
			}
		}
	}()

	wg.Wait()
	log.Info().Msg("watch stopped")
	return nil
}
