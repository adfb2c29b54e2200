package skills

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hay-kot/clerk/internal/core/vault"
)

// Urgency levels assigned by classification.
const (
	UrgencyHigh   = "High"
	UrgencyMedium = "Medium"
	UrgencyLow    = "Low"
)

// urgencyRules is the ordered keyword table; the first matching row wins,
// so "urgent" beats "soon" regardless of where either appears.
var urgencyRules = []struct {
	keyword string
	level   string
}{
	{"urgent", UrgencyHigh},
	{"soon", UrgencyMedium},
}

// ClassifyUrgency is the pure classification function: case-insensitive
// substring match over the ordered rule table. Empty content is Low.
func ClassifyUrgency(content string) string {
	lower := strings.ToLower(content)
	for _, rule := range urgencyRules {
		if strings.Contains(lower, rule.keyword) {
			return rule.level
		}
	}
	return UrgencyLow
}

// ClassifySkill reads a task file and appends an urgency annotation.
type ClassifySkill struct {
	base
}

func (s *ClassifySkill) Name() string { return NameClassify }

func (s *ClassifySkill) Describe() string {
	return "Classify file urgency based on content keywords"
}

func (s *ClassifySkill) Execute(_ context.Context, file string) (Result, error) {
	content := vault.ReadFile(file)
	urgency := ClassifyUrgency(content)

	if err := vault.AppendTo(file, fmt.Sprintf("\nUrgency: %s\n", urgency)); err != nil {
		return nil, err
	}

	s.syslog(fmt.Sprintf("Classified: %s → Urgency: %s", filepath.Base(file), urgency))
	return Result{"urgency": urgency}, nil
}

// UrgencyOf scans annotated task content for its trailing urgency tag.
// Untagged content reads as Low.
func UrgencyOf(content string) string {
	for _, line := range strings.Split(content, "\n") {
		if rest, ok := strings.CutPrefix(line, "Urgency:"); ok {
			return strings.TrimSpace(rest)
		}
	}
	return UrgencyLow
}
