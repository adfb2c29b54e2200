package skills

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/clerk/internal/core/vault"
)

func newTestVault(t *testing.T) *vault.Vault {
	t.Helper()
	v := vault.New(t.TempDir())
	require.NoError(t, v.EnsureTree())
	return v
}

func newTestRegistry(t *testing.T, v *vault.Vault) *Registry {
	t.Helper()
	return DefaultRegistry(v, zerolog.Nop(), Options{})
}

func writeTask(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
