package skills

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyUrgency(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"urgent keyword", "This is URGENT, drop everything", UrgencyHigh},
		{"soon keyword", "Please handle this soon", UrgencyMedium},
		{"no keyword", "Routine cleanup task", UrgencyLow},
		{"empty content", "", UrgencyLow},
		{"urgent beats soon", "soon would be nice but this is urgent", UrgencyHigh},
		{"keyword inside word", "Sooner is better", UrgencyMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyUrgency(tt.content))
		})
	}
}

func TestClassifySkill_AnnotatesFile(t *testing.T) {
	v := newTestVault(t)
	r := newTestRegistry(t, v)

	file := writeTask(t, v.NeedsAction, "task.md", "Handle this urgent request\n")

	res, err := r.Run(context.Background(), NameClassify, file)
	require.NoError(t, err)
	assert.Equal(t, UrgencyHigh, res.Str("urgency"))

	content := readFile(t, file)
	assert.Contains(t, content, "Urgency: High")
	assert.Equal(t, UrgencyHigh, UrgencyOf(content))

	// Activity landed in the system log.
	assert.Contains(t, readFile(t, v.SystemLogs), "Classified: task.md")
}

func TestUrgencyOf(t *testing.T) {
	assert.Equal(t, UrgencyMedium, UrgencyOf("line one\nUrgency: Medium\n"))
	assert.Equal(t, UrgencyLow, UrgencyOf("no annotation here"))
}
