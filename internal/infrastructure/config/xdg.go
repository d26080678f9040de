package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appName        = "appplatform"
	configFileName = "config.toml"
	schemaFileName = "config.schema.json"
	databaseName   = "permissions.sqlite"

	dirPerm  = 0o755
	filePerm = 0o644
)

// XDGDirs holds the XDG Base Directory paths for the application.
type XDGDirs struct {
	ConfigHome string
	DataHome   string
	StateHome  string
}

// GetXDGDirs returns $XDG_CONFIG_HOME/appplatform, $XDG_DATA_HOME/appplatform
// and $XDG_STATE_HOME/appplatform, with the usual ~/.config, ~/.local/share
// and ~/.local/state fallbacks. ENV=dev keeps everything under ./.dev.
func GetXDGDirs() (*XDGDirs, error) {
	if os.Getenv("ENV") == "dev" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		devDir := filepath.Join(cwd, ".dev", appName)
		return &XDGDirs{ConfigHome: devDir, DataHome: devDir, StateHome: devDir}, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	return &XDGDirs{
		ConfigHome: xdgDir("XDG_CONFIG_HOME", homeDir, ".config"),
		DataHome:   xdgDir("XDG_DATA_HOME", homeDir, ".local", "share"),
		StateHome:  xdgDir("XDG_STATE_HOME", homeDir, ".local", "state"),
	}, nil
}

func xdgDir(env, home string, fallback ...string) string {
	base := os.Getenv(env)
	if base == "" {
		base = filepath.Join(append([]string{home}, fallback...)...)
	}
	return filepath.Join(base, appName)
}

// GetConfigDir returns the config directory.
func GetConfigDir() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return dirs.ConfigHome, nil
}

// GetConfigFile returns the path of config.toml.
func GetConfigFile() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// GetSchemaFile returns the path the JSON schema is written to.
func GetSchemaFile() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, schemaFileName), nil
}

// SchemaFileFor returns the schema path that sits next to configFile.
func SchemaFileFor(configFile string) string {
	return filepath.Join(filepath.Dir(configFile), schemaFileName)
}

// GetLogDir returns the directory logging.file writes to.
func GetLogDir() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return filepath.Join(dirs.StateHome, "logs"), nil
}

// GetDatabaseFile returns the default permission database path.
func GetDatabaseFile() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return filepath.Join(dirs.DataHome, databaseName), nil
}

// EnsureDirectories creates the config, data and state directories.
func EnsureDirectories() error {
	dirs, err := GetXDGDirs()
	if err != nil {
		return err
	}
	for _, dir := range []string{dirs.ConfigHome, dirs.DataHome, dirs.StateHome} {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}
