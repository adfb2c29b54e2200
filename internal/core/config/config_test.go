package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	vaultDir := t.TempDir()

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), vaultDir)
	require.NoError(t, err)

	assert.Equal(t, vaultDir, cfg.VaultDir)
	assert.Equal(t, 500*time.Millisecond, cfg.Watch.SettleDelay)
	assert.Equal(t, 10*time.Second, cfg.Orchestra.Interval)
	assert.NotEmpty(t, cfg.Watch.Ignore)
	assert.True(t, cfg.DryRunEnabled(), "unset dry_run must default to simulated sends")
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	vaultDir := t.TempDir()
	path := filepath.Join(t.TempDir(), "config.yaml")

	content := `
watch:
  settle_delay: 2s
orchestrator:
  interval: 30s
routing:
  approval_keywords: [wire, refund]
dry_run: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path, vaultDir)
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, cfg.Watch.SettleDelay)
	assert.Equal(t, 30*time.Second, cfg.Orchestra.Interval)
	assert.Equal(t, []string{"wire", "refund"}, cfg.Routing.Approval)
	assert.False(t, cfg.DryRunEnabled())

	// Unset sections keep their defaults.
	assert.NotEmpty(t, cfg.Watch.Ignore)
	assert.Equal(t, vaultDir, cfg.VaultDir)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("watch: [not: a: map"), 0o644))

	_, err := Load(path, t.TempDir())
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := DefaultConfig()
	valid.VaultDir = t.TempDir()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing vault dir",
			mutate:  func(c *Config) { c.VaultDir = "" },
			wantErr: "vault directory is required",
		},
		{
			name:    "negative settle delay",
			mutate:  func(c *Config) { c.Watch.SettleDelay = -time.Second },
			wantErr: "settle_delay",
		},
		{
			name:    "negative interval",
			mutate:  func(c *Config) { c.Orchestra.Interval = -time.Second },
			wantErr: "interval",
		},
		{
			name:    "bad ignore glob",
			mutate:  func(c *Config) { c.Watch.Ignore = []string{"[unclosed"} },
			wantErr: "invalid glob pattern",
		},
		{
			name:    "empty approval keyword",
			mutate:  func(c *Config) { c.Routing.Approval = []string{"payment", ""} },
			wantErr: "keyword must not be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidate_VaultPathIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	cfg := DefaultConfig()
	cfg.VaultDir = path

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}
