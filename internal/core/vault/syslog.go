package vault

import (
	"fmt"
	"os"
	"time"
)

// logStampLayout matches the pipe-delimited table rows in System_Logs.md.
const logStampLayout = "[2006-01-02 15:04]"

// Log appends one pipe-delimited row to System_Logs.md. Failures are
// returned but every caller in the pipeline treats them as non-fatal.
func (v *Vault) Log(message string) error {
	f, err := os.OpenFile(v.SystemLogs, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open system log: %w", err)
	}
	defer func() { _ = f.Close() }()

	line := fmt.Sprintf("| %s | %s |\n", time.Now().Format(logStampLayout), message)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("append system log: %w", err)
	}

	return nil
}

// AppendTo appends text to an existing task file, used by the skills that
// annotate a task in place (urgency tag, action plan, approval marker).
func AppendTo(path, text string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteString(text); err != nil {
		return fmt.Errorf("append %s: %w", path, err)
	}

	return nil
}
