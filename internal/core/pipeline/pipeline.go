// Package pipeline drives the task lifecycle: Inbox intake, the
// classify/plan/route chain over Needs_Action, and resolution of the
// approval folders. Folder membership is the state machine; this package
// only performs the transitions.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hay-kot/clerk/internal/core/outbound"
	"github.com/hay-kot/clerk/internal/core/skills"
	"github.com/hay-kot/clerk/internal/core/vault"
)

// Pipeline applies skills to task files as they move through the vault.
type Pipeline struct {
	vault    *vault.Vault
	registry *skills.Registry
	mailer   outbound.Mailer
	log      zerolog.Logger

	// processed guards the orchestrator cycle against re-processing a
	// Needs_Action file it already handled, keyed by file name. Files
	// parked there awaiting approval stay put across cycles.
	processed map[string]struct{}
}

// New builds a pipeline over v dispatching through registry. A nil mailer
// defaults to the dry-run collaborator.
func New(v *vault.Vault, registry *skills.Registry, mailer outbound.Mailer, log zerolog.Logger) *Pipeline {
	if mailer == nil {
		mailer = outbound.DryRunMailer{Log: log}
	}
	return &Pipeline{
		vault:     v,
		registry:  registry,
		mailer:    mailer,
		log:       log,
		processed: make(map[string]struct{}),
	}
}

// syslog mirrors a message to System_Logs.md and the process logger.
func (p *Pipeline) syslog(msg string) {
	if err := p.vault.Log(msg); err != nil {
		p.log.Warn().Err(err).Msg("system log append failed")
	}
	p.log.Info().Msg(msg)
}

// Intake handles a file newly created in Inbox: relocate it to
// Needs_Action (collision-safe) and run the processing chain.
func (p *Pipeline) Intake(ctx context.Context, src string) error {
	p.syslog(fmt.Sprintf("File detected: %s", filepath.Base(src)))

	dest, err := vault.MoveInto(src, p.vault.NeedsAction)
	if err != nil {
		return fmt.Errorf("intake %s: %w", filepath.Base(src), err)
	}

	return p.Process(ctx, dest)
}

// Process runs the fixed skill sequence over one Needs_Action file:
// classify, plan, route to approval or archive, audit, dashboard.
func (p *Pipeline) Process(ctx context.Context, file string) error {
	if _, err := p.registry.Run(ctx, skills.NameClassify, file); err != nil {
		return fmt.Errorf("classify: %w", err)
	}

	plan, err := p.registry.Run(ctx, skills.NamePlanCreator, file)
	if err != nil {
		return fmt.Errorf("plan: %w", err)
	}

	// The plan's approval flag is the routing decision.
	auditTarget := file
	if plan.Bool("needs_approval") {
		if _, err := p.registry.Run(ctx, skills.NameHumanApproval, file); err != nil {
			return fmt.Errorf("approval: %w", err)
		}
		p.syslog(fmt.Sprintf("Routed to approval: %s", filepath.Base(file)))
	} else {
		res, err := p.registry.Run(ctx, skills.NameMoveToDone, file)
		if err != nil {
			return fmt.Errorf("archive: %w", err)
		}
		auditTarget = res.Str("destination")
		p.syslog(fmt.Sprintf("Auto-completed: %s", filepath.Base(file)))
	}

	if _, err := p.registry.Run(ctx, skills.NameAuditLog, auditTarget); err != nil {
		p.log.Warn().Err(err).Msg("audit log failed")
	}
	if _, err := p.registry.Run(ctx, skills.NameDashboard, ""); err != nil {
		p.log.Warn().Err(err).Msg("dashboard update failed")
	}

	return nil
}

// Cycle runs one orchestration pass: pending tasks, then both approval
// outcomes, then the dashboard. Per-file failures are logged and skipped;
// a cycle never aborts half way because one file misbehaved.
func (p *Pipeline) Cycle(ctx context.Context) {
	p.ProcessNeedsAction(ctx)
	p.ResolveApproved(ctx)
	p.ResolveRejected(ctx)

	if _, err := p.registry.Run(ctx, skills.NameDashboard, ""); err != nil {
		p.log.Warn().Err(err).Msg("dashboard update failed")
	}
}

// ProcessNeedsAction processes every not-yet-seen file in Needs_Action.
func (p *Pipeline) ProcessNeedsAction(ctx context.Context) {
	for _, e := range vault.Files(p.vault.NeedsAction) {
		if _, seen := p.processed[e.Name]; seen {
			continue
		}
		p.processed[e.Name] = struct{}{}

		p.syslog(fmt.Sprintf("Processing: %s", e.Name))
		if err := p.Process(ctx, e.Path); err != nil {
			p.log.Error().Err(err).Str("file", e.Name).Msg("processing failed")
		}
	}
}

// ResolveApproved executes and archives every file an external actor moved
// into Approved. Any file appearing there is treated as authoritative.
func (p *Pipeline) ResolveApproved(ctx context.Context) {
	for _, e := range vault.Files(p.vault.Approved) {
		if err := p.resolveApproved(ctx, e); err != nil {
			p.log.Error().Err(err).Str("file", e.Name).Msg("approved action failed")
		}
	}
}

func (p *Pipeline) resolveApproved(ctx context.Context, e vault.Entry) error {
	p.syslog(fmt.Sprintf("Executing approved action: %s", e.Name))

	content := strings.ToLower(vault.ReadFile(e.Path))
	name := strings.ToLower(e.Name)

	switch {
	case strings.Contains(content, "linkedin") || strings.Contains(name, "linkedin"):
		if _, err := p.registry.Run(ctx, skills.NameSocialPost, e.Path); err != nil {
			return fmt.Errorf("social post: %w", err)
		}
	case strings.Contains(content, "email") || strings.Contains(name, "email"):
		if err := p.sendEmail(ctx, e.Path); err != nil {
			return fmt.Errorf("email send: %w", err)
		}
	}

	if _, err := p.registry.Run(ctx, skills.NameAuditLog, e.Path); err != nil {
		p.log.Warn().Err(err).Msg("audit log failed")
	}

	if _, err := vault.MoveInto(e.Path, p.vault.Done); err != nil {
		return err
	}

	p.syslog(fmt.Sprintf("Approved action completed: %s", e.Name))
	return nil
}

// sendEmail drafts from the approved file and hands the draft to the
// mailer collaborator. In dry-run mode the send is simulated.
func (p *Pipeline) sendEmail(ctx context.Context, file string) error {
	res, err := p.registry.Run(ctx, skills.NameEmailDraft, file)
	if err != nil {
		return err
	}

	content := vault.ReadFile(file)
	body := ""
	if i := strings.Index(content, "\n"); i >= 0 {
		body = strings.TrimSpace(content[i+1:])
	}

	receipt, err := p.mailer.Send(ctx, "", res.Str("subject"), body)
	if err != nil {
		return err
	}

	p.log.Info().
		Str("message_id", receipt.ID).
		Str("mode", receipt.Mode).
		Msg("email dispatched")
	return nil
}

// ResolveRejected archives every file an external actor moved into
// Rejected, audit-logging only; no domain action runs for rejections.
func (p *Pipeline) ResolveRejected(ctx context.Context) {
	for _, e := range vault.Files(p.vault.Rejected) {
		p.syslog(fmt.Sprintf("Action rejected: %s", e.Name))

		if _, err := p.registry.Run(ctx, skills.NameAuditLog, e.Path); err != nil {
			p.log.Warn().Err(err).Msg("audit log failed")
		}

		if _, err := vault.MoveIntoPrefixed(e.Path, p.vault.Done, "REJECTED_"); err != nil {
			p.log.Error().Err(err).Str("file", e.Name).Msg("reject archive failed")
		}
	}
}
