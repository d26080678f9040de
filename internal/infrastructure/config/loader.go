package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	file      string
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool

	// skipNextReload swallows the fsnotify event caused by our own Save.
	skipNextReload bool
}

// NewManager creates a manager reading config.toml from the XDG config
// directory, falling back to the current directory.
func NewManager() (*Manager, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	return newManager(v, "")
}

// NewManagerForFile creates a manager bound to an explicit config file.
func NewManagerForFile(path string) (*Manager, error) {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetConfigFile(path)
	return newManager(v, path)
}

func newManager(v *viper.Viper, file string) (*Manager, error) {
	v.SetEnvPrefix("APPPLATFORM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Short names shared with logging.NewFromEnv.
	bindings := map[string]string{
		"logging.level":  "APPPLATFORM_LOG_LEVEL",
		"logging.format": "APPPLATFORM_LOG_FORMAT",
		"backend.name":   "APPPLATFORM_BACKEND",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	return &Manager{
		viper:     v,
		file:      file,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables,
// writing a default file first if none exists.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.file == "" {
		if err := EnsureDirectories(); err != nil {
			return fmt.Errorf("failed to ensure directories: %w", err)
		}
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.unmarshalConfig()
	if err != nil {
		return err
	}
	if err := ensureDatabasePath(config); err != nil {
		return err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("backend.name", string(defaults.Backend.Name))
	m.viper.SetDefault("backend.strict_preconditions", defaults.Backend.StrictPreconditions)

	m.viper.SetDefault("window.title", defaults.Window.Title)
	m.viper.SetDefault("window.width", defaults.Window.Width)
	m.viper.SetDefault("window.height", defaults.Window.Height)
	m.viper.SetDefault("window.borderless", defaults.Window.Borderless)
	m.viper.SetDefault("window.maximized", defaults.Window.Maximized)
	m.viper.SetDefault("window.background", defaults.Window.Background)

	m.viper.SetDefault("webview.start_url", defaults.WebView.StartURL)
	m.viper.SetDefault("webview.user_agent", defaults.WebView.UserAgent)
	m.viper.SetDefault("webview.developer_extras", defaults.WebView.DeveloperExtras)
	m.viper.SetDefault("webview.transparent_background", defaults.WebView.TransparentBackground)
	m.viper.SetDefault("webview.elastic_overscroll", defaults.WebView.ElasticOverscroll)
	m.viper.SetDefault("webview.draggable_regions", defaults.WebView.DraggableRegions)
	m.viper.SetDefault("webview.background", defaults.WebView.Background)

	m.viper.SetDefault("accelerators.bindings", defaults.Accelerators.Bindings)

	m.viper.SetDefault("permissions.database_path", defaults.Permissions.DatabasePath)
	m.viper.SetDefault("permissions.policy", string(defaults.Permissions.Policy))
	m.viper.SetDefault("permissions.allow", defaults.Permissions.Allow)
	m.viper.SetDefault("permissions.deny", defaults.Permissions.Deny)
	m.viper.SetDefault("permissions.remember", defaults.Permissions.Remember)

	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.file", defaults.Logging.File)
	m.viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	m.viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)

	m.viper.SetDefault("debug.echo_messages", defaults.Debug.EchoMessages)
	m.viper.SetDefault("debug.thread_check", defaults.Debug.ThreadCheck)
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", m.configPath(), err)
	}

	if createErr := m.createDefaultConfig(); createErr != nil {
		return fmt.Errorf(
			"failed to create default config at %s: %w\nTry creating the directory manually or check permissions",
			m.configPath(),
			createErr,
		)
	}
	if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
		return fmt.Errorf("failed to read newly created config file: %w", rereadErr)
	}
	return nil
}

func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.configPath(),
			err,
		)
	}
	return config, nil
}

// configPath is the file in use, or the one Load would create.
func (m *Manager) configPath() string {
	if used := m.viper.ConfigFileUsed(); used != "" {
		return used
	}
	if m.file != "" {
		return m.file
	}
	path, err := GetConfigFile()
	if err != nil {
		return configFileName
	}
	return path
}

// createDefaultConfig writes DefaultConfig and its JSON schema next to it.
func (m *Manager) createDefaultConfig() error {
	path := m.configPath()
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return err
	}
	if err := WriteConfigOrdered(DefaultConfig(), path); err != nil {
		return err
	}
	if m.file == "" {
		m.viper.SetConfigFile(path)
	}
	return GenerateSchemaFile(SchemaFileFor(path))
}

func ensureDatabasePath(config *Config) error {
	if config.Permissions.DatabasePath != "" {
		return nil
	}
	dbPath, err := GetDatabaseFile()
	if err != nil {
		return fmt.Errorf("failed to get database path: %w", err)
	}
	config.Permissions.DatabasePath = dbPath
	return nil
}

func normalizeConfig(config *Config) {
	switch BackendName(strings.ToLower(strings.TrimSpace(string(config.Backend.Name)))) {
	case "", BackendAuto:
		config.Backend.Name = BackendAuto
	case BackendWebKitGTK:
		config.Backend.Name = BackendWebKitGTK
	case BackendHeadless:
		config.Backend.Name = BackendHeadless
	}

	switch PermissionPolicy(strings.ToLower(strings.TrimSpace(string(config.Permissions.Policy)))) {
	case "", PolicyDefault:
		config.Permissions.Policy = PolicyDefault
	case PolicyAllow:
		config.Permissions.Policy = PolicyAllow
	case PolicyDeny:
		config.Permissions.Policy = PolicyDeny
	}
	config.Permissions.Allow = normalizeList(config.Permissions.Allow)
	config.Permissions.Deny = normalizeList(config.Permissions.Deny)

	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	if config.Logging.Level == "" {
		config.Logging.Level = defaultLogLevel
	}
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))
	if config.Logging.Format == "" {
		config.Logging.Format = defaultLogFormat
	}

	config.Window.Background = strings.TrimSpace(config.Window.Background)
	if config.Window.Background == "" {
		config.Window.Background = defaultBackground
	}
	config.WebView.Background = strings.TrimSpace(config.WebView.Background)
	config.WebView.StartURL = strings.TrimSpace(config.WebView.StartURL)

	bindings := make(map[string]string, len(config.Accelerators.Bindings))
	for action, chord := range config.Accelerators.Bindings {
		bindings[strings.ToLower(strings.TrimSpace(action))] = strings.ToLower(strings.TrimSpace(chord))
	}
	config.Accelerators.Bindings = bindings
}

func normalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Accelerators.Bindings = maps.Clone(c.Accelerators.Bindings)
	out.Permissions.Allow = slices.Clone(c.Permissions.Allow)
	out.Permissions.Deny = slices.Clone(c.Permissions.Deny)
	return &out
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	return m.config.Clone()
}

// Save validates cfg, writes it to the config file and makes it current.
func (m *Manager) Save(cfg *Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	next := cfg.Clone()
	normalizeConfig(next)
	if err := validateConfig(next); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	if err := WriteConfigOrdered(next, m.configPath()); err != nil {
		return err
	}
	if m.watching {
		m.skipNextReload = true
	} else if err := m.viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to re-read config after save: %w", err)
	}

	m.config = next
	return nil
}

// ConfigFile returns the path to the configuration file being used.
func (m *Manager) ConfigFile() string {
	return m.configPath()
}
