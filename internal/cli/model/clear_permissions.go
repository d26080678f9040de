// Package model holds the interactive bubbletea programs of the CLI.
package model

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ubytes/appplatform/internal/application/usecase"
	"github.com/ubytes/appplatform/internal/cli/styles"
	"github.com/ubytes/appplatform/internal/domain/entity"
)

// ClearPermissionsModel lets the user pick stored decisions and forgets them.
type ClearPermissionsModel struct {
	picker  styles.PermissionPicker
	spinner styles.LoadingModel
	manage  *usecase.ManagePermissionsUseCase

	loading  bool
	clearing bool
	done     bool

	results []clearResult
	info    string
	err     error

	theme *styles.Theme
	ctx   context.Context
}

type clearResult struct {
	Record *entity.PermissionRecord
	Err    error
}

type permissionsLoadedMsg struct {
	records []*entity.PermissionRecord
	err     error
}

type permissionsClearedMsg struct {
	results []clearResult
}

func NewClearPermissionsModel(ctx context.Context, theme *styles.Theme, manage *usecase.ManagePermissionsUseCase) ClearPermissionsModel {
	return ClearPermissionsModel{
		spinner: styles.NewLoading(theme, "Loading stored permissions..."),
		manage:  manage,
		loading: true,
		theme:   theme,
		ctx:     ctx,
	}
}

// Init implements tea.Model.
func (m ClearPermissionsModel) Init() tea.Cmd {
	return tea.Batch(m.loadRecords(), m.spinner.Spinner.Tick)
}

func (m ClearPermissionsModel) loadRecords() tea.Cmd {
	return func() tea.Msg {
		records, err := m.manage.List(m.ctx, "")
		return permissionsLoadedMsg{records: records, err: err}
	}
}

// Update implements tea.Model.
func (m ClearPermissionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case permissionsLoadedMsg:
		return m.handleLoaded(msg), nil
	case permissionsClearedMsg:
		m.clearing = false
		m.done = true
		m.results = msg.results
		return m, nil
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner.Spinner, cmd = m.spinner.Spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if m.done {
			return m, tea.Quit
		}
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.loading || m.clearing {
			return m, nil
		}
		return m.updatePicker(msg)
	}
	return m, nil
}

func (m ClearPermissionsModel) handleLoaded(msg permissionsLoadedMsg) ClearPermissionsModel {
	m.loading = false
	switch {
	case msg.err != nil:
		m.err = msg.err
		m.done = true
	case len(msg.records) == 0:
		m.info = "No stored permission decisions"
		m.done = true
	default:
		m.picker = styles.NewPermissionPicker(m.theme, msg.records)
	}
	return m
}

func (m ClearPermissionsModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	picker, cmd := m.picker.Update(msg)
	m.picker = picker

	switch {
	case m.picker.Canceled:
		return m, tea.Quit
	case !m.picker.Confirmed:
		return m, cmd
	}

	selected := m.picker.Selected()
	if len(selected) == 0 {
		m.done = true
		m.info = "Nothing selected"
		return m, nil
	}
	m.clearing = true
	m.spinner.Message = "Clearing..."
	return m, m.clear(selected)
}

func (m ClearPermissionsModel) clear(records []*entity.PermissionRecord) tea.Cmd {
	return func() tea.Msg {
		results := make([]clearResult, 0, len(records))
		for _, rec := range records {
			_, err := m.manage.Clear(m.ctx, usecase.ClearInput{Origin: rec.Origin, Type: rec.Type})
			results = append(results, clearResult{Record: rec, Err: err})
		}
		return permissionsClearedMsg{results: results}
	}
}

// Cleared reports how many decisions were removed.
func (m ClearPermissionsModel) Cleared() int {
	n := 0
	for _, r := range m.results {
		if r.Err == nil {
			n++
		}
	}
	return n
}

// Err is the load error, or the last clear error.
func (m ClearPermissionsModel) Err() error {
	if m.err != nil {
		return m.err
	}
	for i := len(m.results) - 1; i >= 0; i-- {
		if m.results[i].Err != nil {
			return m.results[i].Err
		}
	}
	return nil
}

// View implements tea.Model.
func (m ClearPermissionsModel) View() string {
	t := m.theme
	pressAnyKey := t.Subtle.Render("Press any key to exit")

	switch {
	case m.loading || m.clearing:
		return t.Box.Render(m.spinner.View())
	case m.done && m.err != nil:
		return t.Box.Render(lipgloss.JoinVertical(lipgloss.Left,
			t.ErrorStyle.Render("Error: "+m.err.Error()), "", pressAnyKey))
	case m.done && m.info != "":
		return t.Box.Render(lipgloss.JoinVertical(lipgloss.Left,
			t.Subtle.Render(m.info), "", pressAnyKey))
	case m.done:
		return m.renderResults()
	}
	return m.picker.View()
}

func (m ClearPermissionsModel) renderResults() string {
	t := m.theme
	lines := []string{t.Title.Render("Permissions cleared")}
	failed := 0
	for _, r := range m.results {
		label := fmt.Sprintf("%s %s", r.Record.Origin, r.Record.Type)
		if r.Err != nil {
			failed++
			lines = append(lines, fmt.Sprintf("%s %s: %v", t.ErrorStyle.Render(styles.IconX), label, r.Err))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s %s", t.SuccessStyle.Render(styles.IconCheck), label))
	}
	lines = append(lines,
		"",
		t.Subtle.Render(fmt.Sprintf("%d cleared, %d failed", len(m.results)-failed, failed)),
		"",
		t.Subtle.Render("Press any key to exit"),
	)
	return t.Box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

var _ tea.Model = ClearPermissionsModel{}
