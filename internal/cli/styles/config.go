package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// ConfigRenderer renders config command output.
type ConfigRenderer struct {
	theme *Theme
}

// NewConfigRenderer creates a new config renderer with the given theme.
func NewConfigRenderer(theme *Theme) *ConfigRenderer {
	return &ConfigRenderer{theme: theme}
}

// RenderPaths renders where the config, schema and permission database live.
func (r *ConfigRenderer) RenderPaths(configFile, schemaFile, databaseFile string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	keyStyle := r.theme.Subtle
	pathStyle := r.theme.Normal

	return fmt.Sprintf(
		"\n  %s %s %s\n  %s %s %s\n  %s %s %s\n",
		iconStyle.Render(IconConfig), keyStyle.Render("Config  "), pathStyle.Render(configFile),
		iconStyle.Render(IconInfo), keyStyle.Render("Schema  "), pathStyle.Render(schemaFile),
		iconStyle.Render(IconDatabase), keyStyle.Render("Database"), pathStyle.Render(databaseFile),
	)
}

// RenderWritten renders the message after a file was (re)written.
func (r *ConfigRenderer) RenderWritten(what, path string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)

	return fmt.Sprintf(
		"\n  %s Wrote %s %s\n",
		iconStyle.Render(IconCheck),
		what,
		r.theme.Subtle.Render(path),
	)
}

// RenderExists renders the refusal to overwrite an existing config.
func (r *ConfigRenderer) RenderExists(path string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Warning)

	return fmt.Sprintf(
		"\n  %s Config %s already exists\n  %s\n",
		iconStyle.Render(IconWarning),
		r.theme.Subtle.Render(path),
		r.theme.Subtle.Render("Use --force to overwrite it with defaults."),
	)
}

// RenderError renders an error message.
func (r *ConfigRenderer) RenderError(err error) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Error)

	return fmt.Sprintf(
		"\n  %s Config error: %v\n",
		iconStyle.Render(IconX),
		err,
	)
}
