package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ubytes/appplatform/internal/domain/build"
	"github.com/ubytes/appplatform/internal/domain/entity"
	"github.com/ubytes/appplatform/internal/infrastructure/persistence/sqlite"
)

type testEnv struct {
	dir        string
	configFile string
	dbFile     string
}

func setupEnv(t *testing.T) testEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("ENV", "")
	t.Setenv("APPPLATFORM_LOG_LEVEL", "error")
	return testEnv{
		dir:        dir,
		configFile: filepath.Join(dir, "config", "appplatform", "config.toml"),
		dbFile:     filepath.Join(dir, "data", "appplatform", "permissions.sqlite"),
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetIn(&bytes.Buffer{})
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func seedPermissions(t *testing.T, path string, records ...*entity.PermissionRecord) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	lazy := sqlite.NewLazyDB(path)
	repo := sqlite.NewLazyPermissionRepository(lazy)
	for _, rec := range records {
		require.NoError(t, repo.Set(context.Background(), rec))
	}
	require.NoError(t, lazy.Close())
}

func TestVersion(t *testing.T) {
	setupEnv(t)
	SetBuildInfo(build.Info{Version: "v1.2.3", Commit: "abc1234", BuildDate: "2026-01-02", GoVersion: "go1.25"})
	t.Cleanup(func() { SetBuildInfo(build.Info{}) })

	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "v1.2.3")
	assert.Contains(t, out, "abc1234")
	assert.Contains(t, out, "headless")
	assert.Contains(t, out, build.RepoURL())
}

func TestVersion_DoesNotCreateConfig(t *testing.T) {
	env := setupEnv(t)

	_, err := execute(t, "about")

	require.NoError(t, err)
	assert.NoFileExists(t, env.configFile)
}

func TestConfigInit(t *testing.T) {
	env := setupEnv(t)

	out, err := execute(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote config")
	assert.FileExists(t, env.configFile)
	assert.FileExists(t, filepath.Join(filepath.Dir(env.configFile), "config.schema.json"))

	require.NoError(t, os.WriteFile(env.configFile, []byte("[window]\ntitle = \"mine\"\n"), 0o644))

	out, err = execute(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "already exists")
	data, err := os.ReadFile(env.configFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "mine")

	_, err = execute(t, "config", "init", "--force")
	require.NoError(t, err)
	data, err = os.ReadFile(env.configFile)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "mine")
}

func TestConfigInit_ExplicitFile(t *testing.T) {
	env := setupEnv(t)
	file := filepath.Join(env.dir, "elsewhere", "app.toml")

	_, err := execute(t, "--config", file, "config", "init")

	require.NoError(t, err)
	assert.FileExists(t, file)
	assert.FileExists(t, filepath.Join(env.dir, "elsewhere", "config.schema.json"))
	assert.NoFileExists(t, env.configFile)
}

func TestConfigShow(t *testing.T) {
	setupEnv(t)
	t.Setenv("APPPLATFORM_BACKEND", "headless")

	out, err := execute(t, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "[backend]")
	assert.Contains(t, out, "name = 'headless'")
	assert.Contains(t, out, "[permissions]")
}

func TestConfigPath(t *testing.T) {
	env := setupEnv(t)

	out, err := execute(t, "config", "path")

	require.NoError(t, err)
	assert.Contains(t, out, env.configFile)
	assert.Contains(t, out, "config.schema.json")
	assert.Contains(t, out, env.dbFile)
}

func TestConfigSchema(t *testing.T) {
	env := setupEnv(t)
	schema := filepath.Join(filepath.Dir(env.configFile), "config.schema.json")

	out, err := execute(t, "config", "schema", "--stdout")
	require.NoError(t, err)
	assert.Contains(t, out, `"backend"`)

	require.NoError(t, os.Remove(schema))
	out, err = execute(t, "config", "schema")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote schema")
	assert.FileExists(t, schema)
}

func TestPermissionsList_Empty(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "permissions", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No stored permission decisions")
}

func TestPermissionsList(t *testing.T) {
	env := setupEnv(t)
	now := time.Now().Unix()
	seedPermissions(t, env.dbFile,
		&entity.PermissionRecord{Origin: "https://meet.example.com", Type: entity.PermissionTypeCamera, Decision: entity.PermissionGranted, UpdatedAt: now},
		&entity.PermissionRecord{Origin: "https://maps.example.com", Type: entity.PermissionTypeGeolocation, Decision: entity.PermissionDenied, UpdatedAt: now},
	)

	out, err := execute(t, "permissions", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "https://meet.example.com")
	assert.Contains(t, out, "https://maps.example.com")
	assert.Contains(t, out, "2 stored decisions")

	out, err = execute(t, "permissions", "list", "meet.example.com/room/42")
	require.NoError(t, err)
	assert.Contains(t, out, "camera")
	assert.NotContains(t, out, "maps.example.com")
}

func TestPermissionsClear(t *testing.T) {
	env := setupEnv(t)
	now := time.Now().Unix()
	seedPermissions(t, env.dbFile,
		&entity.PermissionRecord{Origin: "https://meet.example.com", Type: entity.PermissionTypeCamera, Decision: entity.PermissionGranted, UpdatedAt: now},
		&entity.PermissionRecord{Origin: "https://meet.example.com", Type: entity.PermissionTypeMicrophone, Decision: entity.PermissionGranted, UpdatedAt: now},
		&entity.PermissionRecord{Origin: "https://maps.example.com", Type: entity.PermissionTypeGeolocation, Decision: entity.PermissionDenied, UpdatedAt: now},
	)

	out, err := execute(t, "permissions", "clear", "https://meet.example.com", "--type", "camera")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared 1")

	out, err = execute(t, "permissions", "clear", "meet.example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared 1")

	out, err = execute(t, "permissions", "clear", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared 1")
	assert.Contains(t, out, "all origins")

	out, err = execute(t, "permissions", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No stored permission decisions")
}

func TestPermissionsClear_InvalidInput(t *testing.T) {
	setupEnv(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "no scope outside a terminal", args: []string{"permissions", "clear"}, want: "give an origin or --all"},
		{name: "type without origin", args: []string{"permissions", "clear", "--type", "camera"}, want: "--type requires an origin"},
		{name: "all with origin", args: []string{"permissions", "clear", "--all", "example.com"}, want: "--all does not take an origin"},
		{name: "all with type", args: []string{"permissions", "clear", "--all", "--type", "camera"}, want: "--type requires an origin"},
		{name: "unknown type", args: []string{"permissions", "clear", "example.com", "--type", "telepathy"}, want: "unknown permission type"},
		{name: "not an origin", args: []string{"permissions", "clear", "hello world"}, want: "invalid origin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, isTerminal(&bytes.Buffer{}))

	f, err := os.CreateTemp(t.TempDir(), "stdin")
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, isTerminal(f))
}

func TestRun_InvalidFlags(t *testing.T) {
	env := setupEnv(t)

	_, err := execute(t, "run", "--backend", "qt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown backend")

	_, err = execute(t, "run", "--backend", "headless", "--script", filepath.Join(env.dir, "missing.js"), "app://main")
	require.Error(t, err)
}

func TestParseOrigin(t *testing.T) {
	got, err := parseOrigin("https://Meet.Example.com:8443/room")
	require.NoError(t, err)
	assert.Equal(t, "https://meet.example.com:8443", got)

	got, err = parseOrigin("example.com")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", got)

	_, err = parseOrigin("about:blank")
	assert.Error(t, err)
}

func TestSkipsApp(t *testing.T) {
	root := NewRootCmd()
	initCmd, _, err := root.Find([]string{"config", "init"})
	require.NoError(t, err)
	assert.True(t, skipsApp(initCmd))

	show, _, err := root.Find([]string{"config", "show"})
	require.NoError(t, err)
	assert.False(t, skipsApp(show))
}
