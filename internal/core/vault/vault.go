// Package vault defines the on-disk layout of a clerk vault and the
// primitive file operations the pipeline is built from.
//
// A vault is a plain folder tree. Folder membership is task state: a file
// sitting in Pending_Approval is a pending approval, a file in Done is an
// archived task. Nothing here keeps state in memory beyond a path set.
package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Folder names inside the vault root.
const (
	DirInbox           = "Inbox"
	DirNeedsAction     = "Needs_Action"
	DirPlans           = "Plans"
	DirPendingApproval = "Pending_Approval"
	DirApproved        = "Approved"
	DirRejected        = "Rejected"
	DirDone            = "Done"
	DirLogs            = "Logs"
	DirBriefings       = "Briefings"

	FileSystemLogs = "System_Logs.md"
	FileDashboard  = "Dashboard.md"

	// DirPostedRecords is the Done subfolder holding social post receipts.
	DirPostedRecords = "linkedin_posted"
)

// Vault holds the resolved paths of one vault tree.
type Vault struct {
	Root            string
	Inbox           string
	NeedsAction     string
	Plans           string
	PendingApproval string
	Approved        string
	Rejected        string
	Done            string
	Logs            string
	Briefings       string
	SystemLogs      string
	Dashboard       string
}

// New resolves the vault path set under root. It does not touch the disk;
// call EnsureTree to create missing folders.
func New(root string) *Vault {
	return &Vault{
		Root:            root,
		Inbox:           filepath.Join(root, DirInbox),
		NeedsAction:     filepath.Join(root, DirNeedsAction),
		Plans:           filepath.Join(root, DirPlans),
		PendingApproval: filepath.Join(root, DirPendingApproval),
		Approved:        filepath.Join(root, DirApproved),
		Rejected:        filepath.Join(root, DirRejected),
		Done:            filepath.Join(root, DirDone),
		Logs:            filepath.Join(root, DirLogs),
		Briefings:       filepath.Join(root, DirBriefings),
		SystemLogs:      filepath.Join(root, FileSystemLogs),
		Dashboard:       filepath.Join(root, FileDashboard),
	}
}

// Folders returns every directory that EnsureTree manages.
func (v *Vault) Folders() []string {
	return []string{
		v.Inbox, v.NeedsAction, v.Plans, v.PendingApproval,
		v.Approved, v.Rejected, v.Done, v.Logs, v.Briefings,
	}
}

// EnsureTree creates any missing vault folders and seeds the system log
// header so the activity table renders from the first appended row.
func (v *Vault) EnsureTree() error {
	for _, dir := range v.Folders() {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	if _, err := os.Stat(v.SystemLogs); err != nil {
		header := "# System Logs\n\n| Time | Event |\n|---|---|\n"
		if err := os.WriteFile(v.SystemLogs, []byte(header), 0o644); err != nil {
			return fmt.Errorf("seed system log: %w", err)
		}
	}

	return nil
}

// Entry describes one file inside a vault folder.
type Entry struct {
	Name    string
	Path    string
	ModTime time.Time
}

// Files returns the regular files directly inside dir, newest first.
// A missing folder yields an empty slice, matching the degraded-but-running
// posture of every reader in the pipeline.
func Files(dir string) []Entry {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	entries := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		if d.IsDir() {
			continue
		}
		info, err := d.Info()
		if err != nil {
			continue
		}
		entries = append(entries, Entry{
			Name:    d.Name(),
			Path:    filepath.Join(dir, d.Name()),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ModTime.After(entries[j].ModTime)
	})

	return entries
}

// Count returns the number of regular files directly inside dir.
// Missing folders count as zero.
func Count(dir string) int {
	return len(Files(dir))
}

// Stem returns the file name without its extension.
func Stem(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}
