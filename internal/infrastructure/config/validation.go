package config

import (
	"fmt"
	"net/url"
	"slices"
	"sort"
	"strings"

	"github.com/ubytes/appplatform/pkg/core"
	"github.com/ubytes/appplatform/pkg/platform"
)

var knownActions = []string{ActionReload, ActionQuit, ActionToggleMaximize, ActionMinimize, ActionToggleBorderless}

// validateConfig validates configuration values.
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateBackend(config)...)
	validationErrors = append(validationErrors, validateWindow(config)...)
	validationErrors = append(validationErrors, validateWebView(config)...)
	validationErrors = append(validationErrors, validateAccelerators(config)...)
	validationErrors = append(validationErrors, validatePermissions(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}

func validateBackend(config *Config) []string {
	switch config.Backend.Name {
	case BackendAuto, BackendWebKitGTK, BackendHeadless:
		return nil
	}
	return []string{fmt.Sprintf("backend.name must be one of auto, webkitgtk, headless (got: %q)", config.Backend.Name)}
}

func validateWindow(config *Config) []string {
	var errs []string
	if config.Window.Width <= 0 {
		errs = append(errs, fmt.Sprintf("window.width must be positive (got: %d)", config.Window.Width))
	}
	if config.Window.Height <= 0 {
		errs = append(errs, fmt.Sprintf("window.height must be positive (got: %d)", config.Window.Height))
	}
	if _, err := core.ParseHexColor(config.Window.Background); err != nil {
		errs = append(errs, fmt.Sprintf("window.background: %v", err))
	}
	return errs
}

func validateWebView(config *Config) []string {
	var errs []string
	if config.WebView.Background != "" {
		if _, err := core.ParseHexColor(config.WebView.Background); err != nil {
			errs = append(errs, fmt.Sprintf("webview.background: %v", err))
		}
	}
	if config.WebView.StartURL != "" {
		u, err := url.Parse(config.WebView.StartURL)
		if err != nil || u.Scheme == "" {
			errs = append(errs, fmt.Sprintf("webview.start_url must be an absolute URL (got: %q)", config.WebView.StartURL))
		}
	}
	return errs
}

func validateAccelerators(config *Config) []string {
	var errs []string
	seen := make(map[string]string)

	actions := make([]string, 0, len(config.Accelerators.Bindings))
	for action := range config.Accelerators.Bindings {
		actions = append(actions, action)
	}
	sort.Strings(actions)

	for _, action := range actions {
		chord := config.Accelerators.Bindings[action]
		if !slices.Contains(knownActions, action) {
			errs = append(errs, fmt.Sprintf("accelerators.bindings.%s: unknown action (known: %s)", action, strings.Join(knownActions, ", ")))
			continue
		}
		if chord == "" {
			continue
		}
		key, err := platform.ParseAccelerator(chord)
		if err != nil {
			errs = append(errs, fmt.Sprintf("accelerators.bindings.%s: %v", action, err))
			continue
		}
		canonical := key.String()
		if other, dup := seen[canonical]; dup {
			errs = append(errs, fmt.Sprintf("accelerators.bindings.%s: chord %q already bound to %s", action, canonical, other))
			continue
		}
		seen[canonical] = action
	}
	return errs
}

func validatePermissions(config *Config) []string {
	var errs []string
	switch config.Permissions.Policy {
	case PolicyDefault, PolicyAllow, PolicyDeny:
	default:
		errs = append(errs, fmt.Sprintf("permissions.policy must be one of default, allow, deny (got: %q)", config.Permissions.Policy))
	}

	for _, field := range []struct {
		name  string
		kinds []string
	}{
		{"permissions.allow", config.Permissions.Allow},
		{"permissions.deny", config.Permissions.Deny},
	} {
		for _, kind := range field.kinds {
			if _, err := platform.ParsePermissionKind(kind); err != nil {
				errs = append(errs, fmt.Sprintf("%s: %v", field.name, err))
			}
		}
	}
	for _, kind := range config.Permissions.Allow {
		if slices.Contains(config.Permissions.Deny, kind) {
			errs = append(errs, fmt.Sprintf("permissions: %q is listed in both allow and deny", kind))
		}
	}
	return errs
}

func validateLogging(config *Config) []string {
	var errs []string
	switch config.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("logging.level must be one of trace, debug, info, warn, error (got: %q)", config.Logging.Level))
	}
	switch config.Logging.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Sprintf("logging.format must be console or json (got: %q)", config.Logging.Format))
	}
	if config.Logging.MaxSizeMB < 1 {
		errs = append(errs, fmt.Sprintf("logging.max_size_mb must be at least 1 (got: %d)", config.Logging.MaxSizeMB))
	}
	if config.Logging.MaxBackups < 0 {
		errs = append(errs, fmt.Sprintf("logging.max_backups must not be negative (got: %d)", config.Logging.MaxBackups))
	}
	return errs
}
