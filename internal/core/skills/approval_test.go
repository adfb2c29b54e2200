package skills

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/clerk/internal/core/vault"
)

func TestClassifyAction(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"email", "Send an EMAIL to the client", ActionEmailSend},
		{"linkedin", "Draft a linkedin update", ActionLinkedInPost},
		{"payment", "Schedule the payment", ActionPayment},
		{"invoice", "Approve invoice #9", ActionPayment},
		{"nothing sensitive", "File the meeting notes", ActionGeneral},
		// Table order is the priority: email outranks linkedin.
		{"email and linkedin", "email the linkedin stats", ActionEmailSend},
		{"linkedin and payment", "linkedin ad payment", ActionLinkedInPost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyAction(tt.content))
		})
	}
}

func TestHumanApprovalSkill(t *testing.T) {
	v := newTestVault(t)
	r := newTestRegistry(t, v)

	file := writeTask(t, v.NeedsAction, "bill.md", "Process the payment for invoice #42\n")

	res, err := r.Run(context.Background(), NameHumanApproval, file)
	require.NoError(t, err)

	assert.Equal(t, "awaiting_approval", res.Str("status"))
	assert.Equal(t, ActionPayment, res.Str("action_type"))

	// The request lives in Pending_Approval with the APPROVAL_ prefix.
	approvalName := res.Str("approval_file")
	assert.True(t, strings.HasPrefix(approvalName, "APPROVAL_bill_"))

	approvalContent := readFile(t, filepath.Join(v.PendingApproval, approvalName))

	var header ApprovalHeader
	require.True(t, vault.ParseFrontmatter(approvalContent, &header))
	assert.Equal(t, "approval_request", header.Type)
	assert.Equal(t, ActionPayment, header.Action)
	assert.Equal(t, "bill.md", header.SourceFile)
	assert.Equal(t, "pending", header.Status)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}T23:59:59Z$`, header.Expires)

	assert.Contains(t, approvalContent, "Process the payment for invoice #42")
	assert.Contains(t, approvalContent, "`/Approved`")

	// The task itself stays in Needs_Action, tagged with the marker.
	taskContent := readFile(t, file)
	assert.Contains(t, taskContent, "--- AWAITING HUMAN APPROVAL ---")
	assert.Contains(t, taskContent, approvalName)
}

func TestHumanApprovalSkill_RelocatesStray(t *testing.T) {
	v := newTestVault(t)
	r := newTestRegistry(t, v)

	// A file flagged while still sitting in Inbox moves to Needs_Action.
	file := writeTask(t, v.Inbox, "ad.md", "Post the linkedin ad\n")

	res, err := r.Run(context.Background(), NameHumanApproval, file)
	require.NoError(t, err)

	assert.Equal(t, ActionLinkedInPost, res.Str("action_type"))
	assert.Equal(t, 0, vault.Count(v.Inbox))
	assert.FileExists(t, filepath.Join(v.NeedsAction, "ad.md"))
}

func TestHumanApprovalSkill_TruncatesExcerpt(t *testing.T) {
	v := newTestVault(t)
	r := newTestRegistry(t, v)

	long := strings.Repeat("pay ", 400) // well past the excerpt bound
	file := writeTask(t, v.NeedsAction, "long.md", long)

	res, err := r.Run(context.Background(), NameHumanApproval, file)
	require.NoError(t, err)

	content := readFile(t, filepath.Join(v.PendingApproval, res.Str("approval_file")))
	_, after, found := strings.Cut(content, "### Original Content\n")
	require.True(t, found)
	quoted, _, _ := strings.Cut(after, "\n### Action Details")
	assert.LessOrEqual(t, len(strings.TrimSpace(quoted)), excerptLen)
}
