package skills

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hay-kot/clerk/internal/core/vault"
)

// Action types an approval request can carry.
const (
	ActionEmailSend    = "email_send"
	ActionLinkedInPost = "linkedin_post"
	ActionPayment      = "payment"
	ActionGeneral      = "general"
)

// actionRules is the ordered action-type table. Email is checked before
// linkedin, so content mentioning both classifies as email_send.
var actionRules = []struct {
	keywords []string
	action   string
}{
	{[]string{"email"}, ActionEmailSend},
	{[]string{"linkedin"}, ActionLinkedInPost},
	{[]string{"payment", "invoice"}, ActionPayment},
}

// ClassifyAction derives the approval action type from task content.
func ClassifyAction(content string) string {
	lower := strings.ToLower(content)
	for _, rule := range actionRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.action
			}
		}
	}
	return ActionGeneral
}

// excerptLen bounds how much task content an approval request quotes.
const excerptLen = 500

// ApprovalHeader is the YAML front matter of an approval request document.
type ApprovalHeader struct {
	Type       string `yaml:"type"`
	Action     string `yaml:"action"`
	SourceFile string `yaml:"source_file"`
	Created    string `yaml:"created"`
	Expires    string `yaml:"expires"`
	Status     string `yaml:"status"`
}

const approvalBody = `## Approval Required — {{ title .Action }}

### Original Content
{{ .Excerpt }}

### Action Details
- **Type:** {{ .Action }}
- **Source:** {{ .Source }}
- **Created:** {{ stamp .Created }}

### To Approve
Move this file to the ` + "`/Approved`" + ` folder.

### To Reject
Move this file to the ` + "`/Rejected`" + ` folder.
`

// HumanApprovalSkill parks a task in the approval queue: it files an
// approval request in Pending_Approval and tags the task itself. The
// request's expiry is informational only; nothing enforces it.
type HumanApprovalSkill struct {
	base
}

func (s *HumanApprovalSkill) Name() string { return NameHumanApproval }

func (s *HumanApprovalSkill) Describe() string {
	return "Flag a task for human approval and create an approval request"
}

func (s *HumanApprovalSkill) Execute(_ context.Context, file string) (Result, error) {
	now := time.Now()
	content := vault.ReadFile(file)
	action := ClassifyAction(content)

	// The task waits in Needs_Action while its request is pending.
	if filepath.Dir(file) != s.vault.NeedsAction {
		moved, err := vault.MoveInto(file, s.vault.NeedsAction)
		if err != nil {
			return nil, err
		}
		file = moved
	}

	excerpt := content
	if len(excerpt) > excerptLen {
		excerpt = excerpt[:excerptLen]
	}

	doc, err := renderDoc(ApprovalHeader{
		Type:       "approval_request",
		Action:     action,
		SourceFile: filepath.Base(file),
		Created:    now.Format(time.RFC3339),
		Expires:    now.Format("2006-01-02") + "T23:59:59Z",
		Status:     "pending",
	}, approvalBody, map[string]any{
		"Action":  action,
		"Excerpt": excerpt,
		"Source":  filepath.Base(file),
		"Created": now,
	})
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.vault.PendingApproval, 0o755); err != nil {
		return nil, fmt.Errorf("create pending approval dir: %w", err)
	}

	name := fmt.Sprintf("APPROVAL_%s_%s.md", vault.Stem(filepath.Base(file)), now.Format(vault.TimestampLayout))
	if err := os.WriteFile(filepath.Join(s.vault.PendingApproval, name), []byte(doc), 0o644); err != nil {
		return nil, fmt.Errorf("write approval request: %w", err)
	}

	marker := fmt.Sprintf(
		"\n--- AWAITING HUMAN APPROVAL ---\nFlagged at: %s\nStatus: PENDING REVIEW\nApproval file: %s\n",
		now.Format("2006-01-02 15:04"), name,
	)
	if err := vault.AppendTo(file, marker); err != nil {
		return nil, err
	}

	s.syslog(fmt.Sprintf("Human approval required: %s → %s", filepath.Base(file), name))
	return Result{
		"status":        "awaiting_approval",
		"file":          filepath.Base(file),
		"approval_file": name,
		"action_type":   action,
	}, nil
}
