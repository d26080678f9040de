package styles

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ubytes/appplatform/internal/domain/entity"
)

// PickerItem is a stored decision with its selection state.
type PickerItem struct {
	*entity.PermissionRecord
	Selected bool
}

// PermissionPicker is a multi-select list of stored decisions.
type PermissionPicker struct {
	Items     []PickerItem
	Cursor    int
	Confirmed bool
	Canceled  bool
	theme     *Theme
}

// PickerKeyMap holds the picker key bindings.
type PickerKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	ToggleAll key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
}

func DefaultPickerKeyMap() PickerKeyMap {
	return PickerKeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		ToggleAll: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "toggle all")),
		Confirm:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "clear selected")),
		Cancel:    key.NewBinding(key.WithKeys("esc", "q", "ctrl+c"), key.WithHelp("esc", "cancel")),
	}
}

// NewPermissionPicker lists records with nothing selected.
func NewPermissionPicker(theme *Theme, records []*entity.PermissionRecord) PermissionPicker {
	items := make([]PickerItem, 0, len(records))
	for _, rec := range records {
		items = append(items, PickerItem{PermissionRecord: rec})
	}
	return PermissionPicker{Items: items, theme: theme}
}

// Update handles key presses. The picker is finished once Done reports true.
func (m PermissionPicker) Update(msg tea.Msg) (PermissionPicker, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.Done() {
		return m, nil
	}

	keys := DefaultPickerKeyMap()
	switch {
	case key.Matches(keyMsg, keys.Up):
		m.move(-1)
	case key.Matches(keyMsg, keys.Down):
		m.move(1)
	case key.Matches(keyMsg, keys.Toggle):
		if m.Cursor < len(m.Items) {
			m.Items[m.Cursor].Selected = !m.Items[m.Cursor].Selected
		}
	case key.Matches(keyMsg, keys.ToggleAll):
		m.toggleAll()
	case key.Matches(keyMsg, keys.Confirm):
		m.Confirmed = true
	case key.Matches(keyMsg, keys.Cancel):
		m.Canceled = true
	}
	return m, nil
}

func (m *PermissionPicker) move(delta int) {
	if len(m.Items) == 0 {
		return
	}
	m.Cursor = (m.Cursor + delta + len(m.Items)) % len(m.Items)
}

func (m *PermissionPicker) toggleAll() {
	anyUnselected := m.SelectedCount() < len(m.Items)
	for i := range m.Items {
		m.Items[i].Selected = anyUnselected
	}
}

func (m PermissionPicker) Done() bool {
	return m.Confirmed || m.Canceled
}

func (m PermissionPicker) SelectedCount() int {
	n := 0
	for _, it := range m.Items {
		if it.Selected {
			n++
		}
	}
	return n
}

// Selected returns the chosen records in list order.
func (m PermissionPicker) Selected() []*entity.PermissionRecord {
	var out []*entity.PermissionRecord
	for _, it := range m.Items {
		if it.Selected {
			out = append(out, it.PermissionRecord)
		}
	}
	return out
}

func (m PermissionPicker) View() string {
	t := m.theme

	rows := make([]string, 0, len(m.Items))
	originWidth := 0
	for _, it := range m.Items {
		originWidth = max(originWidth, lipgloss.Width(it.Origin))
	}
	accent := lipgloss.NewStyle().Foreground(t.Accent)
	for i, it := range m.Items {
		cursor := "  "
		if i == m.Cursor {
			cursor = IconCursor + " "
		}
		checkbox := IconCheckboxEmpty
		if it.Selected {
			checkbox = IconCheckboxChecked
		}
		rows = append(rows, lipgloss.JoinHorizontal(
			lipgloss.Left,
			accent.Render(cursor),
			accent.Render(checkbox),
			" ",
			t.Normal.Render(padRight(it.Origin, originWidth+2)),
			t.Subtle.Render(padRight(string(it.Type), 22)),
			t.DecisionBadge(it.Decision),
		))
	}

	summary := t.Subtle.Render(fmt.Sprintf("%d of %d selected", m.SelectedCount(), len(m.Items)))
	help := t.Subtle.Render("↑/↓ j/k move • space toggle • a all • enter clear • esc cancel")

	return t.Box.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		t.Title.Render(IconShield+" Stored permissions"),
		t.Subtle.Render("Select decisions to forget"),
		"",
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		"",
		summary,
		"",
		help,
	))
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + fmt.Sprintf("%*s", width-w, "")
	}
	return s + " "
}
