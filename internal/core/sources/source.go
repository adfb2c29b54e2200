// Package sources implements the inbound watchers: pollers over external
// feeds that render actionable task files into Needs_Action for the
// pipeline to pick up. Only the dry-run feeds (drop folders inside the
// vault) are implemented; live transports sit behind the same interface.
package sources

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/hay-kot/clerk/internal/core/audit"
)

// Item is one inbound unit fetched from a source.
type Item struct {
	ID      string
	Kind    string
	From    string
	Subject string
	Content string
	Tags    []string
}

// Source checks an external feed for new items and renders them as action
// files. Implementations track which item IDs they already handled.
type Source interface {
	Name() string
	Check(ctx context.Context) ([]Item, error)
	WriteAction(item Item) (string, error)
}

// Runner polls a Source on a fixed interval, audit-logging its lifecycle,
// until the context is cancelled. Errors are logged and the loop continues.
type Runner struct {
	source   Source
	interval time.Duration
	audit    *audit.Log
	log      zerolog.Logger
}

// NewRunner wraps source in a polling loop.
func NewRunner(source Source, interval time.Duration, auditLog *audit.Log, log zerolog.Logger) *Runner {
	return &Runner{
		source:   source,
		interval: interval,
		audit:    auditLog,
		log:      log.With().Str("component", source.Name()).Logger(),
	}
}

// Run blocks until ctx is cancelled. The source is checked immediately,
// then once per interval.
func (r *Runner) Run(ctx context.Context) {
	r.log.Info().Dur("interval", r.interval).Msg("source watcher starting")
	r.record("watcher_start", r.source.Name()+" started", "success")

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		r.poll(ctx)

		select {
		case <-ctx.Done():
			r.record("watcher_stop", "stopped", "success")
			return
		case <-ticker.C:
		}
	}
}

func (r *Runner) poll(ctx context.Context) {
	items, err := r.source.Check(ctx)
	if err != nil {
		r.log.Error().Err(err).Msg("source check failed")
		r.record("watcher_error", err.Error(), "error")
		return
	}

	for _, item := range items {
		path, err := r.source.WriteAction(item)
		if err != nil {
			r.log.Error().Err(err).Str("item", item.ID).Msg("action file failed")
			r.record("watcher_error", err.Error(), "error")
			continue
		}

		r.log.Info().Str("file", path).Msg("action file created")
		r.record("action_file_created", "Created "+path, "success")
	}
}

func (r *Runner) record(action, details, result string) {
	_, err := r.audit.Append(audit.Entry{
		ActionType: action,
		Actor:      r.source.Name(),
		Target:     "system",
		Details:    details,
		Result:     result,
	})
	if err != nil {
		r.log.Warn().Err(err).Msg("audit append failed")
	}
}
