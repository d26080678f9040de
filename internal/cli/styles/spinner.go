package styles

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// NewSpinner returns a dot spinner in the accent color.
func NewSpinner(theme *Theme) spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.Accent)
	return s
}

// LoadingModel is a spinner followed by a message.
type LoadingModel struct {
	Spinner spinner.Model
	Message string
	theme   *Theme
}

func NewLoading(theme *Theme, message string) LoadingModel {
	return LoadingModel{Spinner: NewSpinner(theme), Message: message, theme: theme}
}

func (m LoadingModel) View() string {
	return lipgloss.JoinHorizontal(lipgloss.Center, m.Spinner.View(), " ", m.theme.Subtle.Render(m.Message))
}
