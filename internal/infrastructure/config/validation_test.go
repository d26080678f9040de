package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfig_Defaults(t *testing.T) {
	require.NoError(t, validateConfig(DefaultConfig()))
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "zero log size",
			mutate:  func(c *Config) { c.Logging.MaxSizeMB = 0 },
			wantErr: "logging.max_size_mb",
		},
		{
			name:    "negative log backups",
			mutate:  func(c *Config) { c.Logging.MaxBackups = -1 },
			wantErr: "logging.max_backups",
		},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.Backend.Name = "cocoa" },
			wantErr: "backend.name",
		},
		{
			name:    "zero height",
			mutate:  func(c *Config) { c.Window.Height = 0 },
			wantErr: "window.height",
		},
		{
			name:    "bad window color",
			mutate:  func(c *Config) { c.Window.Background = "#12345" },
			wantErr: "window.background",
		},
		{
			name:   "rgba window color",
			mutate: func(c *Config) { c.Window.Background = "#11223344" },
		},
		{
			name:    "bad webview color",
			mutate:  func(c *Config) { c.WebView.Background = "blue" },
			wantErr: "webview.background",
		},
		{
			name:    "relative start url",
			mutate:  func(c *Config) { c.WebView.StartURL = "index.html" },
			wantErr: "webview.start_url",
		},
		{
			name:    "unknown action",
			mutate:  func(c *Config) { c.Accelerators.Bindings["launch"] = "ctrl+l" },
			wantErr: "unknown action",
		},
		{
			name:    "bad chord",
			mutate:  func(c *Config) { c.Accelerators.Bindings[ActionQuit] = "ctrl+" },
			wantErr: "accelerators.bindings.quit",
		},
		{
			name: "duplicate chord",
			mutate: func(c *Config) {
				c.Accelerators.Bindings[ActionQuit] = "ctrl+r"
			},
			wantErr: "already bound",
		},
		{
			name:   "unbound action",
			mutate: func(c *Config) { c.Accelerators.Bindings[ActionMinimize] = "" },
		},
		{
			name:    "unknown policy",
			mutate:  func(c *Config) { c.Permissions.Policy = "ask" },
			wantErr: "permissions.policy",
		},
		{
			name:    "unknown permission kind",
			mutate:  func(c *Config) { c.Permissions.Deny = []string{"teleport"} },
			wantErr: "permissions.deny",
		},
		{
			name: "kind in allow and deny",
			mutate: func(c *Config) {
				c.Permissions.Allow = []string{"camera"}
				c.Permissions.Deny = []string{"camera"}
			},
			wantErr: "both allow and deny",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "logging.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := validateConfig(cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateConfig_CollectsAllErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Window.Width = 0
	cfg.Logging.Level = "chatty"

	err := validateConfig(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "window.width")
	assert.Contains(t, err.Error(), "logging.level")
}
