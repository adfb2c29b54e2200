package skills

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hay-kot/clerk/pkg/tmpl"

	"github.com/hay-kot/clerk/internal/core/vault"
)

// briefingRecentCap bounds the completed-task checklist in a briefing.
const briefingRecentCap = 10

// Thresholds for the briefing's textual heuristics.
const (
	staleActionThreshold  = 3
	autoApproveSuggestion = 5
)

// BriefingHeader is the YAML front matter of a daily briefing.
type BriefingHeader struct {
	Generated string `yaml:"generated"`
	Period    string `yaml:"period"`
}

const briefingTmpl = `# CEO Briefing — {{ .DayLong }}

## Executive Summary
Task vault status report. {{ .DoneCount }} tasks completed, {{ .ActionCount }} pending action, {{ .PendingCount }} awaiting approval.

## Activity Summary
| Metric | Value |
|--------|-------|
| Tasks Completed | {{ .DoneCount }} |
| Pending Action | {{ .ActionCount }} |
| Awaiting Approval | {{ .PendingCount }} |
| Active Plans | {{ .PlansCount }} |
| Inbox Items | {{ .InboxCount }} |

## Completed Tasks
{{ range .Completed }}- [x] {{ . }}
{{ else }}- No completed tasks this period
{{ end }}
## Bottlenecks
{{ if gt .PendingCount 0 }}- {{ .PendingCount }} items awaiting human approval
{{ else }}- No bottlenecks detected
{{ end }}{{ if .StaleAction }}- {{ .ActionCount }} items pending in Needs_Action
{{ end }}
## Proactive Suggestions
- Review pending approval items to unblock workflow
- Check if any Needs_Action items are stale
{{ if .SuggestAutoApprove }}- High volume in Needs_Action — consider auto-approve rules for low-risk items
{{ end }}`

// BriefingSkill writes one briefing document per calendar day under
// Briefings/. Re-running on the same day overwrites that day's file.
type BriefingSkill struct {
	base
}

func (s *BriefingSkill) Name() string { return NameBriefing }

func (s *BriefingSkill) Describe() string {
	return "Generate a daily briefing with activity summary and suggestions"
}

func (s *BriefingSkill) Execute(_ context.Context, _ string) (Result, error) {
	now := time.Now()

	if err := os.MkdirAll(s.vault.Briefings, 0o755); err != nil {
		return nil, fmt.Errorf("create briefings dir: %w", err)
	}

	done := vault.Files(s.vault.Done)
	actionCount := vault.Count(s.vault.NeedsAction)
	pendingCount := vault.Count(s.vault.PendingApproval)

	var completed []string
	for _, e := range done {
		if len(completed) == briefingRecentCap {
			break
		}
		completed = append(completed, e.Name)
	}

	body, err := tmpl.Render(briefingTmpl, map[string]any{
		"DayLong":            now.Format("Monday, January 2, 2006"),
		"DoneCount":          len(done),
		"ActionCount":        actionCount,
		"PendingCount":       pendingCount,
		"PlansCount":         vault.Count(s.vault.Plans),
		"InboxCount":         vault.Count(s.vault.Inbox),
		"Completed":          completed,
		"StaleAction":        actionCount > staleActionThreshold,
		"SuggestAutoApprove": actionCount > autoApproveSuggestion,
	})
	if err != nil {
		return nil, err
	}

	head, err := yaml.Marshal(BriefingHeader{
		Generated: now.Format(time.RFC3339),
		Period:    now.Format("2006-01-02"),
	})
	if err != nil {
		return nil, fmt.Errorf("encode header: %w", err)
	}

	name := now.Format("2006-01-02") + "_Briefing.md"
	doc := fmt.Sprintf("---\n%s---\n\n%s", head, body)
	if err := os.WriteFile(filepath.Join(s.vault.Briefings, name), []byte(doc), 0o644); err != nil {
		return nil, fmt.Errorf("write briefing: %w", err)
	}

	s.syslog(fmt.Sprintf("CEO Briefing generated: %s", name))
	return Result{
		"briefing_file": name,
		"done_count":    len(done),
		"pending_count": pendingCount,
	}, nil
}
