package config

import "maps"

// Default configuration constants
const (
	defaultTitle      = "appplatform"
	defaultWidth      = 1024
	defaultHeight     = 768
	defaultBackground = "#ffffff"
	defaultStartURL   = "about:blank"

	defaultLogLevel      = "info"
	defaultLogFormat     = "console"
	defaultLogMaxSizeMB  = 10
	defaultLogMaxBackups = 3
)

var defaultBindings = map[string]string{
	ActionReload:           "ctrl+r",
	ActionQuit:             "ctrl+q",
	ActionToggleMaximize:   "f11",
	ActionMinimize:         "ctrl+m",
	ActionToggleBorderless: "ctrl+shift+b",
}

// DefaultConfig returns the configuration written on first run.
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			Name: BackendAuto,
		},
		Window: WindowConfig{
			Title:      defaultTitle,
			Width:      defaultWidth,
			Height:     defaultHeight,
			Background: defaultBackground,
		},
		WebView: WebViewConfig{
			StartURL: defaultStartURL,
		},
		Accelerators: AcceleratorsConfig{
			Bindings: maps.Clone(defaultBindings),
		},
		Permissions: PermissionsConfig{
			Policy:   PolicyDefault,
			Allow:    []string{},
			Deny:     []string{},
			Remember: true,
		},
		Logging: LoggingConfig{
			Level:      defaultLogLevel,
			Format:     defaultLogFormat,
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
		},
	}
}
