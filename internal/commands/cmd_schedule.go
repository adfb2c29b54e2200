package commands

import (
	"context"
	"os/signal"
	"sync"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/clerk/internal/core/sched"
	"github.com/hay-kot/clerk/internal/core/skills"
	"github.com/hay-kot/clerk/internal/core/sources"
)

type ScheduleCmd struct {
	flags *Flags
}

func NewScheduleCmd(flags *Flags) *ScheduleCmd {
	return &ScheduleCmd{flags: flags}
}

func (cmd *ScheduleCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "schedule",
		Usage:     "Run the recurring jobs and source pollers",
		UsageText: "clerk schedule",
		Description: `Runs the recurring work: health checks, the daily briefing, dashboard
refreshes, and polling of the email and LinkedIn drop folders. Intervals
come from the schedule section of the config; a zero interval disables a
job. Runs until interrupted.

Meant to run alongside 'clerk watch' or 'clerk orchestrate', which own the
task pipeline itself.`,
		Action: cmd.run,
	})
	return app
}

func (cmd *ScheduleCmd) run(ctx context.Context, c *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := buildApp(cmd.flags.Config, log.Logger)
	if err != nil {
		return err
	}

	cfg := cmd.flags.Config

	runSkill := func(name string) func(context.Context) {
		return func(ctx context.Context) {
			if _, err := app.registry.Run(ctx, name, ""); err != nil {
				log.Error().Err(err).Str("skill", name).Msg("scheduled skill failed")
			}
		}
	}

	scheduler := sched.New(log.Logger)
	scheduler.Add(sched.Job{Name: "health_check", Interval: cfg.Schedule.HealthCheck, Fn: runSkill(skills.NameHealth)})
	scheduler.Add(sched.Job{Name: "ceo_briefing", Interval: cfg.Schedule.Briefing, Fn: runSkill(skills.NameBriefing)})
	scheduler.Add(sched.Job{Name: "update_dashboard", Interval: cfg.Schedule.Dashboard, Fn: runSkill(skills.NameDashboard)})

	var wg sync.WaitGroup

	// The drop-folder pollers run on their own tickers so a slow source
	// never delays the scheduled jobs.
	if cfg.Schedule.SocialQueue > 0 {
		email, err := sources.NewEmailSource(app.vault)
		if err != nil {
			return err
		}
		social, err := sources.NewSocialSource(app.vault)
		if err != nil {
			return err
		}

		for _, src := range []sources.Source{email, social} {
			runner := sources.NewRunner(src, cfg.Schedule.SocialQueue, app.audit, log.Logger)
			wg.Add(1)
			go func() {
				defer wg.Done()
				runner.Run(ctx)
			}()
		}
	}

	log.Info().Str("vault", app.vault.Root).Int("jobs", len(scheduler.Jobs())).Msg("scheduler started")

	scheduler.Run(ctx)
	wg.Wait()

	log.Info().Msg("scheduler stopped")
	return nil
}
