package skills

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hay-kot/clerk/internal/core/vault"
)

// MoveToDoneSkill archives a task file. This is the sole terminal
// transition for auto-approved and approval-approved tasks.
type MoveToDoneSkill struct {
	base
}

func (s *MoveToDoneSkill) Name() string { return NameMoveToDone }

func (s *MoveToDoneSkill) Describe() string {
	return "Move a completed file to the Done folder"
}

func (s *MoveToDoneSkill) Execute(_ context.Context, file string) (Result, error) {
	dest, err := vault.MoveInto(file, s.vault.Done)
	if err != nil {
		return nil, err
	}

	s.syslog(fmt.Sprintf("Task completed: %s", filepath.Base(file)))
	return Result{"destination": dest}, nil
}
