package skills

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hay-kot/clerk/internal/core/vault"
)

// Vault health statuses.
const (
	StatusHealthy  = "HEALTHY"
	StatusDegraded = "DEGRADED"
)

// InventorySkill lists every file across the task-bearing folders.
type InventorySkill struct {
	base
}

func (s *InventorySkill) Name() string { return NameInventory }

func (s *InventorySkill) Describe() string {
	return "List files across all vault folders"
}

func (s *InventorySkill) Execute(_ context.Context, _ string) (Result, error) {
	folders := map[string]string{
		"inbox":            s.vault.Inbox,
		"needs_action":     s.vault.NeedsAction,
		"done":             s.vault.Done,
		"plans":            s.vault.Plans,
		"pending_approval": s.vault.PendingApproval,
	}

	inventory := map[string][]string{}
	total := 0
	for key, dir := range folders {
		names := []string{}
		for _, e := range vault.Files(dir) {
			names = append(names, e.Name)
		}
		inventory[key] = names
		total += len(names)
	}

	s.syslog(fmt.Sprintf("Vault inventory: %d files across all folders", total))
	return Result{"inventory": inventory, "total_files": total}, nil
}

// HealthSkill reports whether the vault tree is intact. Missing folders
// degrade the status rather than fail the check.
type HealthSkill struct {
	base
}

func (s *HealthSkill) Name() string { return NameHealth }

func (s *HealthSkill) Describe() string {
	return "Check the vault tree and report folder health"
}

func (s *HealthSkill) Execute(_ context.Context, _ string) (Result, error) {
	health := map[string]bool{
		"inbox_exists":            dirExists(s.vault.Inbox),
		"needs_action_exists":     dirExists(s.vault.NeedsAction),
		"done_exists":             dirExists(s.vault.Done),
		"plans_exists":            dirExists(s.vault.Plans),
		"pending_approval_exists": dirExists(s.vault.PendingApproval),
		"approved_exists":         dirExists(s.vault.Approved),
		"rejected_exists":         dirExists(s.vault.Rejected),
		"logs_exists":             fileExists(s.vault.SystemLogs),
		"dashboard_exists":        fileExists(s.vault.Dashboard),
	}

	status := StatusHealthy
	for _, ok := range health {
		if !ok {
			status = StatusDegraded
			break
		}
	}

	inboxCount := vault.Count(s.vault.Inbox)
	pending := "Inbox clear"
	if inboxCount > 0 {
		pending = fmt.Sprintf("%d files waiting in Inbox", inboxCount)
	}

	s.syslog(fmt.Sprintf("Vault health check: %s (%s)", status, pending))
	return Result{"status": status, "health": health, "inbox_pending": inboxCount}, nil
}

// ApprovalStatusSkill reports the contents of the approval workflow folders.
type ApprovalStatusSkill struct {
	base
}

func (s *ApprovalStatusSkill) Name() string { return NameApprovalStatus }

func (s *ApprovalStatusSkill) Describe() string {
	return "Report the pending, approved, and rejected queues"
}

func (s *ApprovalStatusSkill) Execute(_ context.Context, _ string) (Result, error) {
	names := func(dir string) []string {
		out := []string{}
		for _, e := range vault.Files(dir) {
			out = append(out, e.Name)
		}
		return out
	}

	pending := names(s.vault.PendingApproval)
	approved := names(s.vault.Approved)
	rejected := names(s.vault.Rejected)

	s.syslog(fmt.Sprintf(
		"Approval status: %d pending, %d approved, %d rejected",
		len(pending), len(approved), len(rejected),
	))

	return Result{
		"pending":        pending,
		"approved":       approved,
		"rejected":       rejected,
		"pending_count":  len(pending),
		"approved_count": len(approved),
		"rejected_count": len(rejected),
	}, nil
}

// JobInfo describes one recurring scheduler job for reporting.
type JobInfo struct {
	Name     string        `json:"name"`
	Interval time.Duration `json:"interval"`
}

// ScheduleReportSkill reports the configured recurring jobs.
type ScheduleReportSkill struct {
	base
	jobs []JobInfo
}

func (s *ScheduleReportSkill) Name() string { return NameScheduleReport }

func (s *ScheduleReportSkill) Describe() string {
	return "List the configured recurring jobs"
}

func (s *ScheduleReportSkill) Execute(_ context.Context, _ string) (Result, error) {
	schedules := make([]map[string]any, 0, len(s.jobs))
	for _, j := range s.jobs {
		schedules = append(schedules, map[string]any{
			"name":      j.Name,
			"frequency": fmt.Sprintf("every %s", j.Interval),
			"status":    "active",
		})
	}

	s.syslog(fmt.Sprintf("Scheduler report: %d active tasks", len(schedules)))
	return Result{"schedules": schedules, "total": len(schedules)}, nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
