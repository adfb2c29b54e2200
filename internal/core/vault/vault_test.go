package vault

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureTree(t *testing.T) {
	v := New(filepath.Join(t.TempDir(), "vault"))
	require.NoError(t, v.EnsureTree())

	for _, dir := range v.Folders() {
		info, err := os.Stat(dir)
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir())
	}

	// System log is seeded with the table header.
	data, err := os.ReadFile(v.SystemLogs)
	require.NoError(t, err)
	assert.Contains(t, string(data), "| Time | Event |")

	// Idempotent, and the seeded log is not rewritten.
	require.NoError(t, v.Log("first entry"))
	require.NoError(t, v.EnsureTree())
	data, err = os.ReadFile(v.SystemLogs)
	require.NoError(t, err)
	assert.Contains(t, string(data), "first entry")
}

func TestFiles_NewestFirst(t *testing.T) {
	dir := t.TempDir()

	old := filepath.Join(dir, "old.md")
	recent := filepath.Join(dir, "recent.md")
	require.NoError(t, os.WriteFile(old, []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(recent, []byte("b"), 0o644))

	base := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(old, base, base))
	require.NoError(t, os.Chtimes(recent, base.Add(time.Minute), base.Add(time.Minute)))

	// Subdirectories are not entries.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	entries := Files(dir)
	require.Len(t, entries, 2)
	assert.Equal(t, "recent.md", entries[0].Name)
	assert.Equal(t, "old.md", entries[1].Name)

	assert.Equal(t, 2, Count(dir))
}

func TestFiles_MissingDir(t *testing.T) {
	assert.Nil(t, Files(filepath.Join(t.TempDir(), "nope")))
	assert.Equal(t, 0, Count(filepath.Join(t.TempDir(), "nope")))
}

func TestStem(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"task.md", "task"},
		{"report.final.txt", "report.final"},
		{"noext", "noext"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Stem(tt.name))
	}
}

func TestLog_AppendsTableRow(t *testing.T) {
	v := New(t.TempDir())
	require.NoError(t, v.EnsureTree())

	require.NoError(t, v.Log("File detected: task.md"))
	require.NoError(t, v.Log("Classified: task.md"))

	data, err := os.ReadFile(v.SystemLogs)
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "| File detected: task.md |")
	assert.Contains(t, content, "| Classified: task.md |")
	assert.Regexp(t, `\| \[\d{4}-\d{2}-\d{2} \d{2}:\d{2}\] \|`, content)
}

func TestAppendTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "task.md")
	require.NoError(t, os.WriteFile(path, []byte("Pay the invoice\n"), 0o644))

	require.NoError(t, AppendTo(path, "\nUrgency: High\n"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Pay the invoice\n\nUrgency: High\n", string(data))
}

func TestParseFrontmatter(t *testing.T) {
	type header struct {
		Status string `yaml:"status"`
		Action string `yaml:"action"`
	}

	tests := []struct {
		name    string
		content string
		ok      bool
		want    header
	}{
		{
			name:    "valid",
			content: "---\nstatus: pending\naction: payment\n---\n\nbody text\n",
			ok:      true,
			want:    header{Status: "pending", Action: "payment"},
		},
		{
			name:    "no front matter",
			content: "just a task\n",
			ok:      false,
		},
		{
			name:    "unterminated fence",
			content: "---\nstatus: pending\n",
			ok:      true,
			want:    header{Status: "pending"},
		},
		{
			name:    "empty fence",
			content: "---\n---\nbody\n",
			ok:      false,
		},
		{
			name:    "malformed yaml",
			content: "---\n: : :\n---\n",
			ok:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got header
			ok := ParseFrontmatter(tt.content, &got)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
