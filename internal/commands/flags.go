package commands

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"

	"github.com/hay-kot/clerk/internal/core/audit"
	"github.com/hay-kot/clerk/internal/core/config"
	"github.com/hay-kot/clerk/internal/core/outbound"
	"github.com/hay-kot/clerk/internal/core/pipeline"
	"github.com/hay-kot/clerk/internal/core/skills"
	"github.com/hay-kot/clerk/internal/core/vault"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	VaultDir   string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "clerk", "config.yaml")
}

// DefaultVaultDir returns the default vault location: AI_Employee_Vault in
// the current working directory, so running clerk inside a project picks up
// the vault beside it.
func DefaultVaultDir() string {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	return filepath.Join(wd, "AI_Employee_Vault")
}

// DefaultLogFile returns the default log file path using the system's state directory.
// On macOS: ~/Library/Logs/clerk/clerk.log
// On Linux: $XDG_STATE_HOME/clerk/clerk.log (defaults to ~/.local/state/clerk/clerk.log)
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, "clerk", "clerk.log")
	}

	home, _ := os.UserHomeDir()

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "clerk", "clerk.log")
	}

	return filepath.Join(home, ".local", "state", "clerk", "clerk.log")
}

// app bundles the wired vault, registry, audit log, and pipeline a command
// operates on.
type app struct {
	vault    *vault.Vault
	audit    *audit.Log
	registry *skills.Registry
	pipeline *pipeline.Pipeline
}

// buildApp wires the application from loaded config. Live transports are not
// shipped, so dry_run: false still uses the simulated mailer and poster; the
// warning makes that visible instead of silently pretending to send.
func buildApp(cfg *config.Config, log zerolog.Logger) (*app, error) {
	v := vault.New(cfg.VaultDir)
	if err := v.EnsureTree(); err != nil {
		return nil, err
	}

	if !cfg.DryRunEnabled() {
		log.Warn().Msg("dry_run disabled but no live transports are configured; outbound actions remain simulated")
	}

	auditLog := audit.NewLog(v.Logs)
	registry := skills.DefaultRegistry(v, log, skills.Options{
		Audit:            auditLog,
		Poster:           outbound.DryRunPoster{Log: log},
		ApprovalKeywords: cfg.Routing.Approval,
		Jobs:             scheduleJobs(cfg),
	})
	pipe := pipeline.New(v, registry, outbound.DryRunMailer{Log: log}, log)

	return &app{vault: v, audit: auditLog, registry: registry, pipeline: pipe}, nil
}

// scheduleJobs flattens the schedule config for the report skill. Disabled
// jobs (zero interval) are omitted.
func scheduleJobs(cfg *config.Config) []skills.JobInfo {
	all := []skills.JobInfo{
		{Name: "health_check", Interval: cfg.Schedule.HealthCheck},
		{Name: "ceo_briefing", Interval: cfg.Schedule.Briefing},
		{Name: "social_queue", Interval: cfg.Schedule.SocialQueue},
		{Name: "update_dashboard", Interval: cfg.Schedule.Dashboard},
	}

	jobs := make([]skills.JobInfo, 0, len(all))
	for _, j := range all {
		if j.Interval > 0 {
			jobs = append(jobs, j)
		}
	}
	return jobs
}
