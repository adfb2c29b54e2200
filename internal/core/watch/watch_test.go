package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldIgnore(t *testing.T) {
	w := &Watcher{ignore: []string{".*", "*.tmp", "*~"}}

	tests := []struct {
		path string
		want bool
	}{
		{"/vault/Inbox/.hidden", true},
		{"/vault/Inbox/partial.tmp", true},
		{"/vault/Inbox/backup~", true},
		{"/vault/Inbox/task.md", false},
		// Patterns match the base name only, not the full path.
		{"/vault/.git/task.md", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, w.shouldIgnore(tt.path), tt.path)
	}
}

func TestWatcher_DeliversCreatedFiles(t *testing.T) {
	dir := t.TempDir()

	w, err := New(dir, 10*time.Millisecond, []string{".*"}, zerolog.Nop())
	require.NoError(t, err)
	defer w.Close()

	got := make(chan string, 2)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx, func(_ context.Context, path string) {
		got <- filepath.Base(path)
	})

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".ignored"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "task.md"), []byte("content"), 0o644))

	select {
	case name := <-got:
		assert.Equal(t, "task.md", name)
	case <-time.After(5 * time.Second):
		t.Fatal("no event delivered")
	}
}

func TestNew_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")

	w, err := New(dir, time.Millisecond, nil, zerolog.Nop())
	require.NoError(t, err)
	defer w.Close()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
