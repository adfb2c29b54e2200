package skills

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hay-kot/clerk/internal/core/outbound"
	"github.com/hay-kot/clerk/internal/core/vault"
)

// PostRecord is the JSON receipt archived under Done/linkedin_posted/.
type PostRecord struct {
	Content   string `json:"content"`
	CharCount int    `json:"char_count"`
	PostedAt  string `json:"posted_at"`
	Mode      string `json:"mode"`
	Status    string `json:"status"`
	MessageID string `json:"message_id"`
}

// SocialPostSkill publishes approved content through the Poster
// collaborator and archives a post record.
type SocialPostSkill struct {
	base
	poster outbound.Poster
}

func (s *SocialPostSkill) Name() string { return NameSocialPost }

func (s *SocialPostSkill) Describe() string {
	return "Post approved content through the social collaborator"
}

func (s *SocialPostSkill) Execute(ctx context.Context, file string) (Result, error) {
	content := vault.ReadFile(file)
	body := extractPostBody(content)

	receipt, err := s.poster.Post(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("post content: %w", err)
	}

	excerpt := body
	if len(excerpt) > excerptLen {
		excerpt = excerpt[:excerptLen]
	}

	record := PostRecord{
		Content:   excerpt,
		CharCount: len(body),
		PostedAt:  receipt.PostedAt,
		Mode:      receipt.Mode,
		Status:    receipt.Status,
		MessageID: receipt.ID,
	}

	postedDir := filepath.Join(s.vault.Done, vault.DirPostedRecords)
	if err := os.MkdirAll(postedDir, 0o755); err != nil {
		return nil, fmt.Errorf("create posted dir: %w", err)
	}

	name := fmt.Sprintf("post_%s.json", time.Now().Format(vault.TimestampLayout))
	if err := writeJSON(filepath.Join(postedDir, name), record); err != nil {
		return nil, err
	}

	preview := body
	if len(preview) > 80 {
		preview = preview[:80]
	}
	s.syslog(fmt.Sprintf("LinkedIn post (%s): %s...", receipt.Mode, preview))

	return Result{
		"record_file": name,
		"char_count":  len(body),
		"mode":        receipt.Mode,
		"status":      receipt.Status,
	}, nil
}

// extractPostBody pulls the post content out of an approval or draft
// document: the section under a content heading when one exists, otherwise
// everything that is not a metadata line. Falls back to the raw content.
func extractPostBody(content string) string {
	var lines []string
	inContent := false

scan:
	for _, line := range strings.Split(content, "\n") {
		switch {
		case strings.Contains(line, "## LinkedIn Post Content") || strings.Contains(line, "## Content"):
			inContent = true
		case inContent && strings.HasPrefix(line, "##"):
			// Section ended; everything after belongs to other headings.
			break scan
		case inContent:
			lines = append(lines, line)
		case !strings.HasPrefix(line, "---") &&
			!strings.HasPrefix(line, "type:") &&
			!strings.HasPrefix(line, "status:"):
			lines = append(lines, line)
		}
	}

	body := strings.TrimSpace(strings.Join(lines, "\n"))
	if body == "" {
		body = strings.TrimSpace(content)
	}
	return body
}
