package sources

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

// snippetLen bounds how much of an inbound message the action file quotes.
const snippetLen = 200

// EmailSource simulates an email feed from a drop folder inside Inbox.
// Dropping a .txt/.md/.json file there stands in for an unread message;
// a live Gmail client would implement the same Source interface.
type EmailSource struct {
	vault     *vault.Vault
	dropDir   string
	processed map[string]struct{}
}

// NewEmailSource creates the source and its drop folder.
func NewEmailSource(v *vault.Vault) (*EmailSource, error) {
	dropDir := filepath.Join(v.Inbox, "email_drops")
	if err := os.MkdirAll(dropDir, 0o755); err != nil {
		return nil, fmt.Errorf("create email drop dir: %w", err)
	}
	return &EmailSource{
		vault:     v,
		dropDir:   dropDir,
		processed: make(map[string]struct{}),
	}, nil
}

func (s *EmailSource) Name() string { return "email_watcher" }

// Check returns one item per unseen drop file.
func (s *EmailSource) Check(_ context.Context) ([]Item, error) {
	var items []Item
	for _, e := range vault.Files(s.dropDir) {
		ext := filepath.Ext(e.Name)
		if ext != ".txt" && ext != ".md" && ext != ".json" {
			continue
		}

		id := vault.Stem(e.Name)
		if _, seen := s.processed[id]; seen {
			continue
		}

		content := vault.ReadFile(e.Path)
		snippet := content
		if len(snippet) > snippetLen {
			snippet = snippet[:snippetLen]
		}

		items = append(items, Item{
			ID:      id,
			Kind:    "email",
			From:    "simulated@example.com",
			Subject: subjectFromStem(id),
			Content: snippet,
		})
	}
	return items, nil
}

// emailHeader is the front matter of an email action file.
type emailHeader struct {
	Type     string `yaml:"type"`
	From     string `yaml:"from"`
	Subject  string `yaml:"subject"`
	Received string `yaml:"received"`
	Priority string `yaml:"priority"`
	Status   string `yaml:"status"`
}

const emailActionBody = `## Email Content
{{ .Snippet }}

## Suggested Actions
- [ ] Reply to sender
- [ ] Forward to relevant party
- [ ] Archive after processing
`

// WriteAction renders the standardized email action file into Needs_Action.
func (s *EmailSource) WriteAction(item Item) (string, error) {
	now := time.Now()

	doc, err := frontmatterDoc(emailHeader{
		Type:     "email",
		From:     item.From,
		Subject:  item.Subject,
		Received: now.Format(time.RFC3339),
		Priority: "high",
		Status:   "pending",
	}, emailActionBody, map[string]any{"Snippet": item.Content})
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("EMAIL_%s_%s.md", item.ID, now.Format(vault.TimestampLayout))
	path := filepath.Join(s.vault.NeedsAction, name)
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return "", fmt.Errorf("write action file: %w", err)
	}

	s.processed[item.ID] = struct{}{}
	return name, nil
}

// subjectFromStem turns a drop file stem into a display subject,
// e.g. "follow_up_note" -> "Follow Up Note".
func subjectFromStem(stem string) string {
	words := strings.Split(strings.ReplaceAll(stem, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// frontmatterDoc renders a YAML header plus templated body.
func frontmatterDoc(header any, bodyTmpl string, data any) (string, error) {
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
