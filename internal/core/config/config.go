// Package config handles configuration loading and validation for clerk.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Watch     WatchConfig     `yaml:"watch"`
	Orchestra OrchestraConfig `yaml:"orchestrator"`
	Schedule  ScheduleConfig  `yaml:"schedule"`
	Routing   RoutingConfig   `yaml:"routing"`
	DryRun    *bool           `yaml:"dry_run"` // nil = dry-run (safe default)
	VaultDir  string          `yaml:"-"`       // set by caller, not from config file
}

// WatchConfig controls the inbox and approval folder watchers.
type WatchConfig struct {
	// SettleDelay is how long to wait after a create event before reading
	// the file, giving the producing process time to finish writing.
	SettleDelay time.Duration `yaml:"settle_delay"`
	// Ignore holds glob patterns for files the watcher skips.
	Ignore []string `yaml:"ignore"`
}

// OrchestraConfig controls the polling orchestrator.
type OrchestraConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// ScheduleConfig holds intervals for the recurring scheduler jobs.
// A zero interval disables the job.
type ScheduleConfig struct {
	HealthCheck time.Duration `yaml:"health_check"`
	Briefing    time.Duration `yaml:"briefing"`
	SocialQueue time.Duration `yaml:"social_queue"`
	Dashboard   time.Duration `yaml:"dashboard"`
}

// RoutingConfig holds the keyword tables driving classification and
// approval routing. Empty slices fall back to the built-in defaults.
type RoutingConfig struct {
	// Approval keywords mark a task as requiring human sign-off.
	Approval []string `yaml:"approval_keywords"`
}

// DryRunEnabled reports whether outbound actions are simulated.
// Unset defaults to true so a fresh install never sends anything.
func (c *Config) DryRunEnabled() bool {
	return c.DryRun == nil || *c.DryRun
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Watch: WatchConfig{
			SettleDelay: 500 * time.Millisecond,
			Ignore:      []string{".*", "*.tmp", "*.lock", "*.swp", "*~"},
		},
		Orchestra: OrchestraConfig{
			Interval: 10 * time.Second,
		},
		Schedule: ScheduleConfig{
			HealthCheck: 5 * time.Minute,
			Briefing:    24 * time.Hour,
			SocialQueue: 30 * time.Minute,
			Dashboard:   time.Minute,
		},
		Routing: RoutingConfig{},
	}
}

// Load reads configuration from the given path and sets the vault directory.
// If configPath is empty or doesn't exist, returns defaults with the provided vaultDir.
func Load(configPath, vaultDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.VaultDir = vaultDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set vaultDir since Unmarshal may have cleared it
			cfg.VaultDir = vaultDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills zero values with the built-in defaults.
func (c *Config) applyDefaults() {
	def := DefaultConfig()

	if c.Watch.SettleDelay == 0 {
		c.Watch.SettleDelay = def.Watch.SettleDelay
	}
	if len(c.Watch.Ignore) == 0 {
		c.Watch.Ignore = def.Watch.Ignore
	}
	if c.Orchestra.Interval == 0 {
		c.Orchestra.Interval = def.Orchestra.Interval
	}
}
