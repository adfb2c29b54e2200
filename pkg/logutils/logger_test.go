package logutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_BadLevel(t *testing.T) {
	_, _, err := New("loud", "")
	assert.Error(t, err)
}

func TestNew_FileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "clerk.log")

	logger, closer, err := New("info", path)
	require.NoError(t, err)
	logger.Info().Msg("first run")
	closer()

	logger, closer, err = New("info", path)
	require.NoError(t, err)
	logger.Info().Msg("second run")
	closer()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "first run")
	assert.Contains(t, string(data), "second run")
}
