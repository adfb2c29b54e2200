// Package skills implements the named, stateless operations the pipeline
// dispatches against a vault: classification, planning, approval routing,
// archival, dashboards, drafts, and audit logging.
//
// The skill set is closed. DefaultRegistry builds the full map at startup;
// there is no runtime registration surface beyond it.
package skills

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/hay-kot/clerk/internal/core/audit"
	"github.com/hay-kot/clerk/internal/core/outbound"
	"github.com/hay-kot/clerk/internal/core/vault"
)

// ErrUnknownSkill is returned when dispatching a name no skill carries.
var ErrUnknownSkill = errors.New("unknown skill")

// Skill names, as dispatched by the pipeline and the run command.
const (
	NameClassify       = "classify"
	NameTaskPlanner    = "task_planner"
	NamePlanCreator    = "plan_creator"
	NameHumanApproval  = "human_approval"
	NameMoveToDone     = "move_to_done"
	NameDashboard      = "update_dashboard"
	NameBriefing       = "ceo_briefing"
	NameAuditLog       = "audit_log"
	NameEmailDraft     = "email_draft"
	NameSocialDraft    = "social_draft"
	NameSocialPost     = "social_post"
	NameInventory      = "vault_inventory"
	NameHealth         = "vault_health"
	NameApprovalStatus = "approval_status"
	NameScheduleReport = "schedule_report"
)

// Result carries the structured outcome of one skill invocation.
type Result map[string]any

// Str returns the string value under key, or "" if absent or not a string.
func (r Result) Str(key string) string {
	s, _ := r[key].(string)
	return s
}

// Bool returns the bool value under key, false if absent.
func (r Result) Bool(key string) bool {
	b, _ := r[key].(bool)
	return b
}

// Skill is a single named, stateless operation. file is the task file the
// skill operates on; skills that aggregate over the whole vault ignore it.
type Skill interface {
	Name() string
	Describe() string
	Execute(ctx context.Context, file string) (Result, error)
}

// base carries what every skill needs: the vault it mutates and a logger.
type base struct {
	vault *vault.Vault
	log   zerolog.Logger
}

// syslog writes to System_Logs.md and mirrors to the process logger.
// System log failures are downgraded to a warning; a skill never fails
// because the activity table could not be appended.
func (b base) syslog(msg string) {
	if err := b.vault.Log(msg); err != nil {
		b.log.Warn().Err(err).Msg("system log append failed")
	}
	b.log.Info().Msg(msg)
}

// Options configures the closed skill set.
type Options struct {
	Audit  *audit.Log
	Poster outbound.Poster
	// ApprovalKeywords overrides the built-in approval keyword table.
	ApprovalKeywords []string
	// Jobs describes the scheduler configuration for the report skill.
	Jobs []JobInfo
}

// Registry is the name-to-skill map the pipeline dispatches through.
type Registry struct {
	skills map[string]Skill
}

// DefaultRegistry builds the registry with every skill wired against v.
func DefaultRegistry(v *vault.Vault, log zerolog.Logger, opts Options) *Registry {
	b := base{vault: v, log: log}

	if opts.Audit == nil {
		opts.Audit = audit.NewLog(v.Logs)
	}
	if opts.Poster == nil {
		opts.Poster = outbound.DryRunPoster{Log: log}
	}

	r := &Registry{skills: map[string]Skill{}}
	for _, s := range []Skill{
		&ClassifySkill{base: b},
		&TaskPlannerSkill{base: b},
		&PlanCreatorSkill{base: b, keywords: opts.ApprovalKeywords},
		&HumanApprovalSkill{base: b},
		&MoveToDoneSkill{base: b},
		&DashboardSkill{base: b},
		&BriefingSkill{base: b},
		&AuditLogSkill{base: b, log: opts.Audit},
		&EmailDraftSkill{base: b},
		&SocialDraftSkill{base: b},
		&SocialPostSkill{base: b, poster: opts.Poster},
		&InventorySkill{base: b},
		&HealthSkill{base: b},
		&ApprovalStatusSkill{base: b},
		&ScheduleReportSkill{base: b, jobs: opts.Jobs},
	} {
		r.skills[s.Name()] = s
	}

	return r
}

// Get returns the skill registered under name.
func (r *Registry) Get(name string) (Skill, error) {
	s, ok := r.skills[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSkill, name)
	}
	return s, nil
}

// Run dispatches a skill by name against file.
func (r *Registry) Run(ctx context.Context, name, file string) (Result, error) {
	s, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return s.Execute(ctx, file)
}

// Names returns the registered skill names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.skills))
	for name := range r.skills {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
