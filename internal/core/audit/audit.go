// Package audit maintains the per-day JSON activity log under Logs/.
//
// Each calendar day is one file named YYYY-MM-DD.json holding a JSON array
// of entries. Appending is read-modify-write on the whole array, so all
// writers in a process must share one Log instance; the internal mutex
// serializes them. Writers in other processes are not protected; that
// hazard is inherent to the file format and documented rather than hidden.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Entry is one immutable audit record.
type Entry struct {
	Timestamp  string `json:"timestamp"`
	ActionType string `json:"action_type"`
	Actor      string `json:"actor"`
	Target     string `json:"target"`
	Details    string `json:"details"`
	Result     string `json:"result"`
}

// DefaultActor is recorded when no explicit actor is given.
const DefaultActor = "clerk"

// Log appends entries to the day-keyed files in dir.
type Log struct {
	dir string
	mu  sync.Mutex
	now func() time.Time
}

// NewLog returns a Log writing to dir. The directory is created lazily on
// first append.
func NewLog(dir string) *Log {
	return &Log{dir: dir, now: time.Now}
}

// Append adds e to today's log file, filling a zero Timestamp and Actor.
// Returns the number of entries in the file after the append.
func (l *Log) Append(e Entry) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if e.Timestamp == "" {
		e.Timestamp = now.Format(time.RFC3339)
	}
	if e.Actor == "" {
		e.Actor = DefaultActor
	}

	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return 0, fmt.Errorf("create log dir: %w", err)
	}

	path := l.dayFile(now)
	entries := readEntries(path)
	entries = append(entries, e)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("encode audit log: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, fmt.Errorf("write audit log: %w", err)
	}

	return len(entries), nil
}

// Day returns the entries recorded on the given day. A missing or
// malformed file reads as empty.
func (l *Log) Day(t time.Time) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return readEntries(l.dayFile(t))
}

func (l *Log) dayFile(t time.Time) string {
	return filepath.Join(l.dir, t.Format("2006-01-02")+".json")
}

// readEntries loads the array in path. Corrupt JSON is treated as an empty
// log rather than an error; the old content is lost on the next append.
func readEntries(path string) []Entry {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil
	}

	return entries
}

// ClassifyTarget derives an action type from a target file name by
// case-insensitive substring, first match wins.
func ClassifyTarget(name string) string {
	lower := strings.ToLower(name)
	for _, c := range []struct{ keyword, action string }{
		{"email", "email_action"},
		{"linkedin", "linkedin_action"},
		{"approval", "approval_action"},
		{"plan", "plan_action"},
	} {
		if strings.Contains(lower, c.keyword) {
			return c.action
		}
	}
	return "file_action"
}
