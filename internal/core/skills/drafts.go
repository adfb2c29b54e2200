package skills

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hay-kot/clerk/internal/core/vault"
)

// EmailDraft is the JSON record for a composed email.
type EmailDraft struct {
	To         string `json:"to"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
	SourceFile string `json:"source_file"`
}

// SocialDraft is the JSON record for a composed social post.
type SocialDraft struct {
	Content    string `json:"content"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
	SourceFile string `json:"source_file"`
	CharCount  int    `json:"char_count"`
}

// EmailDraftSkill composes an email draft from a task file: first line is
// the subject, the rest the body. The draft lands in the vault root.
type EmailDraftSkill struct {
	base
}

func (s *EmailDraftSkill) Name() string { return NameEmailDraft }

func (s *EmailDraftSkill) Describe() string {
	return "Generate an email draft from task file content"
}

func (s *EmailDraftSkill) Execute(_ context.Context, file string) (Result, error) {
	content := vault.ReadFile(file)
	lines := strings.Split(content, "\n")

	subject := "No Subject"
	body := ""
	if len(lines) > 0 && content != "" {
		subject = lines[0]
		body = strings.TrimSpace(strings.Join(lines[1:], "\n"))
	}

	draft := EmailDraft{
		Subject:    subject,
		Body:       body,
		Status:     "draft",
		CreatedAt:  time.Now().Format("2006-01-02 15:04"),
		SourceFile: filepath.Base(file),
	}

	name := fmt.Sprintf("email_draft_%s.json", vault.Stem(filepath.Base(file)))
	if err := writeJSON(filepath.Join(s.vault.Root, name), draft); err != nil {
		return nil, err
	}

	s.syslog(fmt.Sprintf("Email draft created: %s (from %s)", name, filepath.Base(file)))
	return Result{"draft_file": name, "subject": subject, "status": "draft"}, nil
}

// SocialDraftSkill composes a social post draft, stripping the annotation
// lines earlier skills appended to the task.
type SocialDraftSkill struct {
	base
}

func (s *SocialDraftSkill) Name() string { return NameSocialDraft }

func (s *SocialDraftSkill) Describe() string {
	return "Generate a social post draft from task file content"
}

func (s *SocialDraftSkill) Execute(_ context.Context, file string) (Result, error) {
	content := vault.ReadFile(file)

	var postLines []string
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "Urgency:") || strings.HasPrefix(line, "---") {
			continue
		}
		postLines = append(postLines, line)
	}
	body := strings.TrimSpace(strings.Join(postLines, "\n"))

	draft := SocialDraft{
		Content:    body,
		Status:     "draft",
		CreatedAt:  time.Now().Format("2006-01-02 15:04"),
		SourceFile: filepath.Base(file),
		CharCount:  len(body),
	}

	name := fmt.Sprintf("linkedin_draft_%s.json", vault.Stem(filepath.Base(file)))
	if err := writeJSON(filepath.Join(s.vault.Root, name), draft); err != nil {
		return nil, err
	}

	s.syslog(fmt.Sprintf("LinkedIn draft created: %s (%d chars)", name, len(body)))
	return Result{"draft_file": name, "char_count": len(body), "status": "draft"}, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
