package config

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
)

// Validate performs structural validation of the configuration.
func (c *Config) Validate() error {
	if c.VaultDir == "" {
		return fmt.Errorf("vault directory is required")
	}

	if info, err := os.Stat(c.VaultDir); err == nil && !info.IsDir() {
		return fmt.Errorf("vault path %s exists but is not a directory", c.VaultDir)
	}

	if c.Watch.SettleDelay < 0 {
		return fmt.Errorf("watch.settle_delay must not be negative")
	}
	if c.Orchestra.Interval < 0 {
		return fmt.Errorf("orchestrator.interval must not be negative")
	}

	for i, pattern := range c.Watch.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("watch.ignore[%d]: invalid glob pattern %q", i, pattern)
		}
	}

	for i, kw := range c.Routing.Approval {
		if kw == "" {
			return fmt.Errorf("routing.approval_keywords[%d]: keyword must not be empty", i)
		}
	}

	return nil
}
