// Package styles renders CLI output with lipgloss.
package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconVersion   = "\uf02b" // tag
	IconGitBranch = "\ue725" // git branch
	IconCalendar  = "\uf073" // calendar
	IconGithub    = "\uf09b" // github
	IconGo        = "\ue627" // go gopher
	IconDesktop   = "\uf108" // desktop

	IconCheck   = "\uf00c" // check
	IconX       = "\uf00d" // x
	IconWarning = "\uf071" // warning
	IconInfo    = "\uf05a" // info

	IconTrash    = "\uf1f8" // trash
	IconConfig   = "\ue615" // config
	IconDatabase = "\uf1c0" // database
	IconShield   = "\uf132" // shield
	IconCursor   = "\uf054" // chevron-right

	IconCheckboxEmpty   = "\uf096" // square-o
	IconCheckboxChecked = "\uf046" // check-square-o
)
