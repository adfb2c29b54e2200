package skills

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hay-kot/clerk/pkg/tmpl"

	"github.com/hay-kot/clerk/internal/core/vault"
)

// recentCompletedCap bounds the completed-tasks table in the dashboard.
const recentCompletedCap = 20

const dashboardTmpl = `# Dashboard — Task Vault

## System Status

| Field | Value |
|---|---|
| **Status** | ONLINE |
| **Last Updated** | {{ stamp .Now }} |
| **Total Completed** | {{ .DoneCount }} |

## File Counts

| Folder | Count |
|---|---|
| Inbox | {{ .InboxCount }} |
| Needs_Action | {{ .ActionCount }} |
| Done | {{ .DoneCount }} |
| Plans | {{ .PlansCount }} |
| Pending Approval | {{ .PendingCount }} |
| Approved | {{ .ApprovedCount }} |
| Rejected | {{ .RejectedCount }} |

## Approval Queue

| Status | Count |
|---|---|
| Pending | {{ .PendingCount }} |
| Approved | {{ .ApprovedCount }} |
| Rejected | {{ .RejectedCount }} |

## Recent Completed Tasks

| File | Urgency |
|---|---|
{{ range .Tasks }}| {{ .Name }} | {{ .Urgency }} |
{{ else }}| — | — |
{{ end }}`

type completedTask struct {
	Name    string
	Urgency string
}

// DashboardSkill fully regenerates Dashboard.md from the current folder
// snapshot. It is a pure function of folder state plus the clock.
type DashboardSkill struct {
	base
}

func (s *DashboardSkill) Name() string { return NameDashboard }

func (s *DashboardSkill) Describe() string {
	return "Rebuild Dashboard.md with file counts, completed tasks, and the approval queue"
}

func (s *DashboardSkill) Execute(_ context.Context, _ string) (Result, error) {
	done := vault.Files(s.vault.Done)

	var tasks []completedTask
	for _, e := range done {
		if len(tasks) == recentCompletedCap {
			break
		}
		tasks = append(tasks, completedTask{
			Name:    e.Name,
			Urgency: UrgencyOf(vault.ReadFile(e.Path)),
		})
	}

	out, err := tmpl.Render(dashboardTmpl, map[string]any{
		"Now":           time.Now(),
		"InboxCount":    vault.Count(s.vault.Inbox),
		"ActionCount":   vault.Count(s.vault.NeedsAction),
		"DoneCount":     len(done),
		"PlansCount":    vault.Count(s.vault.Plans),
		"PendingCount":  vault.Count(s.vault.PendingApproval),
		"ApprovedCount": vault.Count(s.vault.Approved),
		"RejectedCount": vault.Count(s.vault.Rejected),
		"Tasks":         tasks,
	})
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(s.vault.Dashboard, []byte(out), 0o644); err != nil {
		return nil, fmt.Errorf("write dashboard: %w", err)
	}

	s.syslog("Dashboard updated.")
	return Result{
		"done_count":        len(done),
		"pending_approvals": vault.Count(s.vault.PendingApproval),
	}, nil
}
