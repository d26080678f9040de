// Package config loads, validates and watches the appplatform TOML configuration.
package config

// Config is the root configuration.
type Config struct {
	Backend      BackendConfig      `mapstructure:"backend" toml:"backend" json:"backend"`
	Window       WindowConfig       `mapstructure:"window" toml:"window" json:"window"`
	WebView      WebViewConfig      `mapstructure:"webview" toml:"webview" json:"webview"`
	Accelerators AcceleratorsConfig `mapstructure:"accelerators" toml:"accelerators" json:"accelerators"`
	Permissions  PermissionsConfig  `mapstructure:"permissions" toml:"permissions" json:"permissions"`
	Logging      LoggingConfig      `mapstructure:"logging" toml:"logging" json:"logging"`
	Debug        DebugConfig        `mapstructure:"debug" toml:"debug" json:"debug"`
}

// BackendName selects the platform driver.
type BackendName string

const (
	BackendAuto      BackendName = "auto"
	BackendWebKitGTK BackendName = "webkitgtk"
	BackendHeadless  BackendName = "headless"
)

// BackendConfig controls driver selection.
type BackendConfig struct {
	Name BackendName `mapstructure:"name" toml:"name" json:"name" jsonschema:"enum=auto,enum=webkitgtk,enum=headless"`
	// StrictPreconditions panics on misuse instead of logging and returning an error.
	StrictPreconditions bool `mapstructure:"strict_preconditions" toml:"strict_preconditions" json:"strict_preconditions"`
}

// WindowConfig describes the main window.
type WindowConfig struct {
	Title      string `mapstructure:"title" toml:"title" json:"title"`
	Width      int    `mapstructure:"width" toml:"width" json:"width" jsonschema:"minimum=1"`
	Height     int    `mapstructure:"height" toml:"height" json:"height" jsonschema:"minimum=1"`
	Borderless bool   `mapstructure:"borderless" toml:"borderless" json:"borderless"`
	Maximized  bool   `mapstructure:"maximized" toml:"maximized" json:"maximized"`
	// Background is "#rrggbb" or "#rrggbbaa".
	Background string `mapstructure:"background" toml:"background" json:"background"`
}

// WebViewConfig holds settings applied when the web view is set up.
type WebViewConfig struct {
	StartURL              string `mapstructure:"start_url" toml:"start_url" json:"start_url"`
	UserAgent             string `mapstructure:"user_agent" toml:"user_agent" json:"user_agent"`
	DeveloperExtras       bool   `mapstructure:"developer_extras" toml:"developer_extras" json:"developer_extras"`
	TransparentBackground bool   `mapstructure:"transparent_background" toml:"transparent_background" json:"transparent_background"`
	ElasticOverscroll     bool   `mapstructure:"elastic_overscroll" toml:"elastic_overscroll" json:"elastic_overscroll"`
	DraggableRegions      bool   `mapstructure:"draggable_regions" toml:"draggable_regions" json:"draggable_regions"`
	// Background overrides the window background inside the web view when set.
	Background string `mapstructure:"background" toml:"background" json:"background,omitempty"`
}

// AcceleratorsConfig maps application actions to key chords such as "ctrl+shift+b".
type AcceleratorsConfig struct {
	Bindings map[string]string `mapstructure:"bindings" toml:"bindings" json:"bindings"`
}

// Known accelerator actions.
const (
	ActionReload           = "reload"
	ActionQuit             = "quit"
	ActionToggleMaximize   = "toggle_maximize"
	ActionMinimize         = "minimize"
	ActionToggleBorderless = "toggle_borderless"
)

// PermissionPolicy is the fallback answer for permission requests.
type PermissionPolicy string

const (
	PolicyDefault PermissionPolicy = "default"
	PolicyAllow   PermissionPolicy = "allow"
	PolicyDeny    PermissionPolicy = "deny"
)

// PermissionsConfig controls how permission requests are answered and stored.
type PermissionsConfig struct {
	DatabasePath string           `mapstructure:"database_path" toml:"database_path" json:"database_path"`
	Policy       PermissionPolicy `mapstructure:"policy" toml:"policy" json:"policy" jsonschema:"enum=default,enum=allow,enum=deny"`
	// Allow and Deny list permission kinds (e.g. "camera") answered without consulting Policy.
	Allow []string `mapstructure:"allow" toml:"allow" json:"allow"`
	Deny  []string `mapstructure:"deny" toml:"deny" json:"deny"`
	// Remember stores user-initiated decisions so later requests skip the policy.
	Remember bool `mapstructure:"remember" toml:"remember" json:"remember"`
}

// LoggingConfig controls the zerolog output.
type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error"`
	Format string `mapstructure:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json"`
	// File also writes JSON logs to $XDG_STATE_HOME/appplatform/logs.
	File       bool `mapstructure:"file" toml:"file" json:"file"`
	MaxSizeMB  int  `mapstructure:"max_size_mb" toml:"max_size_mb" json:"max_size_mb" jsonschema:"minimum=1"`
	MaxBackups int  `mapstructure:"max_backups" toml:"max_backups" json:"max_backups" jsonschema:"minimum=0"`
}

// DebugConfig holds development switches.
type DebugConfig struct {
	// EchoMessages logs every web message at debug level.
	EchoMessages bool `mapstructure:"echo_messages" toml:"echo_messages" json:"echo_messages"`
	// ThreadCheck verifies UI calls come from the thread that initialized the driver.
	ThreadCheck bool `mapstructure:"thread_check" toml:"thread_check" json:"thread_check"`
}
