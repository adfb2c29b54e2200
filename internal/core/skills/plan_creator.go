package skills

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hay-kot/clerk/pkg/tmpl"

	"github.com/hay-kot/clerk/internal/core/vault"
)

// defaultApprovalKeywords mark a task as requiring human sign-off before
// execution. Any one of them in the lowercased content is enough.
var defaultApprovalKeywords = []string{
	"payment", "invoice", "send", "post", "delete", "urgent",
}

// Plan statuses recorded in the plan document header.
const (
	PlanStatusReady           = "ready"
	PlanStatusPendingApproval = "pending_approval"
)

// NeedsApproval reports whether content contains any of the given
// keywords, case-insensitive. An empty keyword set means the defaults.
func NeedsApproval(content string, keywords []string) bool {
	if len(keywords) == 0 {
		keywords = defaultApprovalKeywords
	}
	lower := strings.ToLower(content)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// PlanHeader is the YAML front matter of a generated plan document.
type PlanHeader struct {
	Created          string `yaml:"created"`
	SourceFile       string `yaml:"source_file"`
	Status           string `yaml:"status"`
	ApprovalRequired bool   `yaml:"approval_required"`
}

const planBody = `## Objective
Process task from: {{ .Source }}

## Steps
{{ range $i, $s := .Steps }}- [ ] Step {{ add1 $i }}: {{ $s }}
{{ end }}
## Status
- **Created:** {{ .CreatedStamp }}
- **Steps:** {{ len .Steps }}
- **Approval Required:** {{ yesno .NeedsApproval }}

## Notes
{{ .Note }}
`

// PlanCreatorSkill writes a standalone plan document into Plans/ for a task
// file, flagging it for approval when sensitive keywords appear.
type PlanCreatorSkill struct {
	base
	keywords []string
}

func (s *PlanCreatorSkill) Name() string { return NamePlanCreator }

func (s *PlanCreatorSkill) Describe() string {
	return "Create a structured plan document with steps and approval requirements"
}

func (s *PlanCreatorSkill) Execute(_ context.Context, file string) (Result, error) {
	content := vault.ReadFile(file)
	now := time.Now()

	needsApproval := NeedsApproval(content, s.keywords)
	status := PlanStatusReady
	note := "This plan can be auto-executed."
	if needsApproval {
		status = PlanStatusPendingApproval
		note = "This plan requires human approval before execution."
	}

	steps := taskLines(content, true)
	if len(steps) == 0 {
		steps = []string{"Review task - no actionable content found"}
	}

	doc, err := renderDoc(PlanHeader{
		Created:          now.Format(time.RFC3339),
		SourceFile:       filepath.Base(file),
		Status:           status,
		ApprovalRequired: needsApproval,
	}, planBody, map[string]any{
		"Source":        filepath.Base(file),
		"Steps":         steps,
		"CreatedStamp":  now.Format("2006-01-02 15:04"),
		"NeedsApproval": needsApproval,
		"Note":          note,
	})
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.vault.Plans, 0o755); err != nil {
		return nil, fmt.Errorf("create plans dir: %w", err)
	}

	name := fmt.Sprintf("PLAN_%s_%s.md", vault.Stem(filepath.Base(file)), now.Format(vault.TimestampLayout))
	planFile := filepath.Join(s.vault.Plans, name)
	if err := os.WriteFile(planFile, []byte(doc), 0o644); err != nil {
		return nil, fmt.Errorf("write plan: %w", err)
	}

	s.syslog(fmt.Sprintf("Plan created: %s (%d steps)", name, len(steps)))
	return Result{
		"plan_file":      name,
		"steps":          len(steps),
		"needs_approval": needsApproval,
		"status":         status,
	}, nil
}

// renderDoc builds a frontmattered Markdown document: YAML header between
// --- fences, then the rendered body template.
func renderDoc(header any, bodyTmpl string, data any) (string, error) {
	head, err := yaml.Marshal(header)
	if err != nil {
		return "", fmt.Errorf("encode header: %w", err)
	}

	body, err := tmpl.Render(bodyTmpl, data)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("---\n%s---\n\n%s", head, body), nil
}
