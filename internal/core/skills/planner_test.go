package skills

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskLines(t *testing.T) {
	content := "Step one\n\n  Step two  \nUrgency: High\n--- Action Plan ---\nStep three\n"

	assert.Equal(t,
		[]string{"Step one", "Step two", "--- Action Plan ---", "Step three"},
		taskLines(content, false))

	assert.Equal(t,
		[]string{"Step one", "Step two", "Step three"},
		taskLines(content, true))
}

func TestTaskPlannerSkill(t *testing.T) {
	v := newTestVault(t)
	r := newTestRegistry(t, v)

	file := writeTask(t, v.NeedsAction, "task.md", "Call the vendor\nConfirm the quote\n")

	res, err := r.Run(context.Background(), NameTaskPlanner, file)
	require.NoError(t, err)
	assert.Equal(t, 2, res["step_count"])

	content := readFile(t, file)
	assert.Contains(t, content, "--- Action Plan ---")
	assert.Contains(t, content, "Step 1: Call the vendor")
	assert.Contains(t, content, "Step 2: Confirm the quote")
}

func TestTaskPlannerSkill_EmptyTask(t *testing.T) {
	v := newTestVault(t)
	r := newTestRegistry(t, v)

	file := writeTask(t, v.NeedsAction, "empty.md", "")

	res, err := r.Run(context.Background(), NameTaskPlanner, file)
	require.NoError(t, err)
	assert.Equal(t, 1, res["step_count"])
	assert.Contains(t, readFile(t, file), "Step 1: Review empty task - no content found")
}
