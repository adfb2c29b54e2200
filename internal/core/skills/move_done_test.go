package skills

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveToDoneSkill(t *testing.T) {
	v := newTestVault(t)
	r := newTestRegistry(t, v)

	file := writeTask(t, v.NeedsAction, "task.md", "done with this\n")

	res, err := r.Run(context.Background(), NameMoveToDone, file)
	require.NoError(t, err)

	dest := res.Str("destination")
	assert.Equal(t, filepath.Join(v.Done, "task.md"), dest)

	_, err = os.Stat(file)
	assert.True(t, os.IsNotExist(err), "source must be moved, not copied")
	assert.FileExists(t, dest)
}

func TestMoveToDoneSkill_Collision(t *testing.T) {
	v := newTestVault(t)
	r := newTestRegistry(t, v)

	writeTask(t, v.Done, "task.md", "earlier run")
	file := writeTask(t, v.NeedsAction, "task.md", "second run")

	res, err := r.Run(context.Background(), NameMoveToDone, file)
	require.NoError(t, err)

	dest := res.Str("destination")
	assert.Regexp(t, `task_\d{14}\.md$`, dest)
	assert.Equal(t, "earlier run", readFile(t, filepath.Join(v.Done, "task.md")))
	assert.Equal(t, "second run", readFile(t, dest))
}
