package skills

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hay-kot/clerk/internal/core/vault"
)

// taskLines splits content into trimmed non-blank lines, dropping the
// annotation lines earlier skills appended.
func taskLines(content string, dropMarkers bool) []string {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "Urgency:") {
			continue
		}
		if dropMarkers && strings.HasPrefix(line, "---") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// TaskPlannerSkill renders a numbered action plan and appends it to the
// task file itself.
type TaskPlannerSkill struct {
	base
}

func (s *TaskPlannerSkill) Name() string { return NameTaskPlanner }

func (s *TaskPlannerSkill) Describe() string {
	return "Break down a task file into an ordered action plan"
}

func (s *TaskPlannerSkill) Execute(_ context.Context, file string) (Result, error) {
	content := vault.ReadFile(file)

	var steps []string
	for i, line := range taskLines(content, false) {
		steps = append(steps, fmt.Sprintf("Step %d: %s", i+1, line))
	}
	if len(steps) == 0 {
		steps = append(steps, "Step 1: Review empty task - no content found")
	}

	plan := strings.Join(steps, "\n")
	if err := vault.AppendTo(file, fmt.Sprintf("\n--- Action Plan ---\n%s\n", plan)); err != nil {
		return nil, err
	}

	s.syslog(fmt.Sprintf("Task planned: %s (%d steps)", filepath.Base(file), len(steps)))
	return Result{"steps": steps, "step_count": len(steps)}, nil
}
