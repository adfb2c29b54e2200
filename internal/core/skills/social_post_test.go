package skills

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/clerk/internal/core/vault"
)

func TestExtractPostBody(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "content section",
			content: "---\ntype: linkedin_post\n---\n\n## LinkedIn Post Content\nBig news today!\n\n## Hashtags\n#go #release\n",
			want:    "Big news today!",
		},
		{
			name:    "generic content heading",
			content: "## Content\nplain announcement\n",
			want:    "plain announcement",
		},
		{
			name:    "no headings drops metadata lines",
			content: "type: linkedin_post\nstatus: pending\nJust the post text\n",
			want:    "Just the post text",
		},
		{
			name:    "falls back to raw content",
			content: "status: pending\n",
			want:    "status: pending",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractPostBody(tt.content))
		})
	}
}

func TestSocialPostSkill(t *testing.T) {
	v := newTestVault(t)
	r := newTestRegistry(t, v)

	file := writeTask(t, v.Approved, "APPROVE_LINKEDIN_launch.md",
		"---\ntype: approval_request\n---\n\n## LinkedIn Post Content\nWe shipped v2 today.\n\n## Approval\nMove to Approved.\n")

	res, err := r.Run(context.Background(), NameSocialPost, file)
	require.NoError(t, err)

	assert.Equal(t, "dry_run", res.Str("mode"))
	assert.Equal(t, "posted", res.Str("status"))
	assert.Equal(t, len("We shipped v2 today."), res["char_count"])

	recordPath := filepath.Join(v.Done, vault.DirPostedRecords, res.Str("record_file"))
	data, err := os.ReadFile(recordPath)
	require.NoError(t, err)

	var record PostRecord
	require.NoError(t, json.Unmarshal(data, &record))
	assert.Equal(t, "We shipped v2 today.", record.Content)
	assert.Equal(t, "dry_run", record.Mode)
	assert.NotEmpty(t, record.MessageID)
	assert.NotEmpty(t, record.PostedAt)
}
