package vault

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuffixName(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	tests := []struct {
		name string
		want string
	}{
		{"task.md", "task_20260314092653.md"},
		{"report.final.txt", "report.final_20260314092653.txt"},
		{"noext", "noext_20260314092653"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SuffixName(tt.name, at))
	}
}

func TestMoveInto(t *testing.T) {
	srcDir := t.TempDir()
	destDir := t.TempDir()

	src := filepath.Join(srcDir, "task.md")
	require.NoError(t, os.WriteFile(src, []byte("content"), 0o644))

	dest, err := MoveInto(src, destDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(destDir, "task.md"), dest)

	// Moved, not copied.
	_, err = os.Stat(src)
	assert.True(t, os.IsNotExist(err))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestMoveInto_Collision(t *testing.T) {
	srcDir := t.TempDir()
	destDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(destDir, "task.md"), []byte("original"), 0o644))

	src := filepath.Join(srcDir, "task.md")
	require.NoError(t, os.WriteFile(src, []byte("incoming"), 0o644))

	dest, err := MoveInto(src, destDir)
	require.NoError(t, err)

	// The existing file is untouched; the incoming one gains a suffix.
	assert.NotEqual(t, filepath.Join(destDir, "task.md"), dest)
	assert.Regexp(t, `task_\d{14}\.md$`, dest)

	data, err := os.ReadFile(filepath.Join(destDir, "task.md"))
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))

	data, err = os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "incoming", string(data))
}

func TestMoveIntoPrefixed(t *testing.T) {
	srcDir := t.TempDir()
	destDir := t.TempDir()

	src := filepath.Join(srcDir, "request.md")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))

	dest, err := MoveIntoPrefixed(src, destDir, "REJECTED_")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(destDir, "REJECTED_request.md"), dest)

	_, err = os.Stat(dest)
	assert.NoError(t, err)
}

func TestMoveInto_MissingSource(t *testing.T) {
	_, err := MoveInto(filepath.Join(t.TempDir(), "ghost.md"), t.TempDir())
	assert.Error(t, err)
}
