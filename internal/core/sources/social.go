package sources

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

// SocialSource watches two drop folders inside Inbox: linkedin_posts/ for
// content queued for publishing, and linkedin_notifications/ for simulated
// inbound activity. Queued posts become pending-approval action files, so
// nothing is ever published without passing the approval queue.
type SocialSource struct {
	vault     *vault.Vault
	queueDir  string
	notifDir  string
	processed map[string]struct{}
}

// NewSocialSource creates the source and its drop folders.
func NewSocialSource(v *vault.Vault) (*SocialSource, error) {
	queueDir := filepath.Join(v.Inbox, "linkedin_posts")
	notifDir := filepath.Join(v.Inbox, "linkedin_notifications")
	for _, dir := range []string{queueDir, notifDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create drop dir: %w", err)
		}
	}
	return &SocialSource{
		vault:     v,
		queueDir:  queueDir,
		notifDir:  notifDir,
		processed: make(map[string]struct{}),
	}, nil
}

func (s *SocialSource) Name() string { return "linkedin_watcher" }

// queuedPost is the optional JSON shape of a queued post drop file.
type queuedPost struct {
	Content  string   `json:"content"`
	Hashtags []string `json:"hashtags"`
}

// Check returns queued posts and inbound notifications not yet handled.
func (s *SocialSource) Check(_ context.Context) ([]Item, error) {
	var items []Item

	for _, e := range vault.Files(s.queueDir) {
		ext := filepath.Ext(e.Name)
		if ext != ".txt" && ext != ".md" && ext != ".json" {
			continue
		}

		id := vault.Stem(e.Name)
		if _, seen := s.processed[id]; seen {
			continue
		}

		content := vault.ReadFile(e.Path)
		item := Item{ID: id, Kind: "post", Content: content}

		if ext == ".json" {
			var post queuedPost
			if err := json.Unmarshal([]byte(content), &post); err == nil {
				item.Content = post.Content
				item.Tags = post.Hashtags
			}
		} else {
			item.Tags = extractHashtags(content)
		}

		items = append(items, item)
	}

	for _, e := range vault.Files(s.notifDir) {
		id := vault.Stem(e.Name)
		if _, seen := s.processed[id]; seen {
			continue
		}
		items = append(items, Item{ID: id, Kind: "notification", Content: vault.ReadFile(e.Path)})
	}

	return items, nil
}

// WriteAction renders the action file matching the item kind.
func (s *SocialSource) WriteAction(item Item) (string, error) {
	if item.Kind == "notification" {
		return s.writeNotification(item)
	}
	return s.writePost(item)
}

type postHeader struct {
	Type    string `yaml:"type"`
	Status  string `yaml:"status"`
	Created string `yaml:"created"`
	Source  string `yaml:"source"`
}

const postActionBody = `## LinkedIn Post Content
{{ .Content }}

## Hashtags
{{ .Hashtags }}

## Post Status
- [ ] Content reviewed
- [ ] Approved for posting
- [ ] Posted to LinkedIn
`

func (s *SocialSource) writePost(item Item) (string, error) {
	now := time.Now()

	hashtags := strings.Join(item.Tags, " ")
	if hashtags == "" {
		hashtags = "No hashtags specified"
	}

	doc, err := frontmatterDoc(postHeader{
		Type:    "linkedin_post",
		Status:  "pending_approval",
		Created: now.Format(time.RFC3339),
		Source:  item.ID,
	}, postActionBody, map[string]any{
		"Content":  item.Content,
		"Hashtags": hashtags,
	})
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("LINKEDIN_POST_%s_%s.md", item.ID, now.Format(vault.TimestampLayout))
	if err := os.WriteFile(filepath.Join(s.vault.NeedsAction, name), []byte(doc), 0o644); err != nil {
		return "", fmt.Errorf("write action file: %w", err)
	}

	if err := s.writeApprovalRequest(item, now); err != nil {
		return "", err
	}

	s.processed[item.ID] = struct{}{}
	return name, nil
}

type approveHeader struct {
	Type    string `yaml:"type"`
	Action  string `yaml:"action"`
	Created string `yaml:"created"`
	Status  string `yaml:"status"`
}

const approveBody = `## LinkedIn Post Content
{{ .Content }}

## Approval
Move this file to Approved to publish, or Rejected to discard.
`

// writeApprovalRequest queues the post for human sign-off. The approval file
// carries the full content so publishing it never depends on the action file
// still being in place.
func (s *SocialSource) writeApprovalRequest(item Item, now time.Time) error {
	doc, err := frontmatterDoc(approveHeader{
		Type:    "approval_request",
		Action:  "linkedin_post",
		Created: now.Format(time.RFC3339),
		Status:  "pending",
	}, approveBody, map[string]any{"Content": item.Content})
	if err != nil {
		return err
	}

	name := fmt.Sprintf("APPROVE_LINKEDIN_%s.md", item.ID)
	if err := os.WriteFile(filepath.Join(s.vault.PendingApproval, name), []byte(doc), 0o644); err != nil {
		return fmt.Errorf("write approval request: %w", err)
	}
	return nil
}

type notifHeader struct {
	Type     string `yaml:"type"`
	Status   string `yaml:"status"`
	Received string `yaml:"received"`
}

const notifActionBody = `## LinkedIn Notification
{{ .Content }}

## Suggested Actions
- [ ] Review notification
- [ ] Respond if needed
- [ ] Archive
`

func (s *SocialSource) writeNotification(item Item) (string, error) {
	now := time.Now()

	doc, err := frontmatterDoc(notifHeader{
		Type:     "linkedin_notification",
		Status:   "pending",
		Received: now.Format(time.RFC3339),
	}, notifActionBody, map[string]any{"Content": item.Content})
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("LINKEDIN_NOTIF_%s_%s.md", item.ID, now.Format(vault.TimestampLayout))
	if err := os.WriteFile(filepath.Join(s.vault.NeedsAction, name), []byte(doc), 0o644); err != nil {
		return "", fmt.Errorf("write action file: %w", err)
	}

	s.processed[item.ID] = struct{}{}
	return name, nil
}

func extractHashtags(content string) []string {
	var tags []string
	for _, word := range strings.Fields(content) {
		if strings.HasPrefix(word, "#") {
			tags = append(tags, word)
		}
	}
	return tags
}
