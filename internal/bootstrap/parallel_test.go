package bootstrap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ubytes/appplatform/internal/infrastructure/config"
)

func setXDG(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("ENV", "")
	return dir
}

func TestRunParallelInit_PreparesFilesystem(t *testing.T) {
	dir := setXDG(t)
	cfg := config.DefaultConfig()
	cfg.Permissions.DatabasePath = filepath.Join(dir, "db", "nested", "permissions.sqlite")
	configFile := filepath.Join(dir, "custom", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(configFile), 0o755))

	result, err := RunParallelInit(testCtx(), ParallelInitInput{Config: cfg, ConfigFile: configFile})

	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(dir, "db", "nested"))
	assert.DirExists(t, filepath.Join(dir, "config", "appplatform"))
	assert.DirExists(t, filepath.Join(dir, "data", "appplatform"))
	assert.Equal(t, config.SchemaFileFor(configFile), result.SchemaFile)
	assert.FileExists(t, result.SchemaFile)
}

func TestRunParallelInit_WithoutConfigFile(t *testing.T) {
	setXDG(t)

	result, err := RunParallelInit(testCtx(), ParallelInitInput{Config: config.DefaultConfig()})

	require.NoError(t, err)
	assert.Empty(t, result.SchemaFile)
}
