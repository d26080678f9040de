package styles

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/ubytes/appplatform/internal/domain/entity"
)

// DecisionBadge renders a stored permission decision.
func (t *Theme) DecisionBadge(decision entity.PermissionDecision) string {
	switch decision {
	case entity.PermissionGranted:
		return t.StatusBadge("granted", t.Background, t.Success)
	case entity.PermissionDenied:
		return t.StatusBadge("denied", t.Text, t.Error)
	default:
		return t.BadgeMuted.Render(string(decision))
	}
}

// AccentBadge renders a badge with accent color.
func (t *Theme) AccentBadge(text string) string {
	return t.Badge.Render(text)
}

// MutedBadge renders a badge with muted colors.
func (t *Theme) MutedBadge(text string) string {
	return t.BadgeMuted.Render(text)
}

// StatusBadge renders a status badge with custom colors.
func (t *Theme) StatusBadge(text string, fg, bg lipgloss.Color) string {
	style := lipgloss.NewStyle().
		Foreground(fg).
		Background(bg).
		Padding(0, 1)
	return style.Render(text)
}

// RelativeTime formats a time as a human-readable relative string.
func RelativeTime(tm time.Time) string {
	return relativeTime(time.Since(tm))
}

func relativeTime(diff time.Duration) string {
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	case diff < 365*24*time.Hour:
		return fmt.Sprintf("%dmo ago", int(diff.Hours()/(24*30)))
	default:
		return fmt.Sprintf("%dy ago", int(diff.Hours()/(24*365)))
	}
}
