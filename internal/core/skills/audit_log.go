package skills

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hay-kot/clerk/internal/core/audit"
	"github.com/hay-kot/clerk/internal/core/vault"
)

// detailLen bounds how much task content an audit entry records.
const detailLen = 200

// AuditLogSkill appends one JSON record to the per-day audit log. With no
// file it records a bare system entry.
type AuditLogSkill struct {
	base
	log *audit.Log
}

func (s *AuditLogSkill) Name() string { return NameAuditLog }

func (s *AuditLogSkill) Describe() string {
	return "Create a JSON audit log entry for an action"
}

func (s *AuditLogSkill) Execute(_ context.Context, file string) (Result, error) {
	action := "unknown"
	target := "system"
	details := ""

	if file != "" {
		if _, err := os.Stat(file); err == nil {
			target = filepath.Base(file)
			action = audit.ClassifyTarget(target)
			details = vault.ReadFile(file)
			if len(details) > detailLen {
				details = details[:detailLen]
			}
		}
	}

	count, err := s.log.Append(audit.Entry{
		ActionType: action,
		Actor:      "ai_employee",
		Target:     target,
		Details:    details,
		Result:     "success",
	})
	if err != nil {
		return nil, err
	}

	s.syslog(fmt.Sprintf("Audit log: %s (%s)", action, target))
	return Result{"action_type": action, "entries_count": count}, nil
}
