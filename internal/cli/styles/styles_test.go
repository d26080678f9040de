package styles

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ubytes/appplatform/internal/domain/build"
	"github.com/ubytes/appplatform/internal/domain/entity"
)

func TestPermissionsRenderer_RenderList(t *testing.T) {
	now := time.Unix(1700003600, 0)
	r := NewPermissionsRenderer(NewTheme())
	r.now = func() time.Time { return now }

	out := r.RenderList([]*entity.PermissionRecord{
		{Origin: "https://a.example", Type: entity.PermissionTypeCamera, Decision: entity.PermissionGranted, UpdatedAt: 1700000000},
		{Origin: "https://b.example", Type: entity.PermissionTypeMicrophone, Decision: entity.PermissionDenied, UpdatedAt: 1700003590},
	})

	require.Contains(t, out, "ORIGIN")
	require.Contains(t, out, "https://a.example")
	require.Contains(t, out, "camera")
	require.Contains(t, out, "granted")
	require.Contains(t, out, "denied")
	require.Contains(t, out, "1h ago")
	require.Contains(t, out, "just now")
	require.Contains(t, out, "2 stored decisions")
}

func TestPermissionsRenderer_Empty(t *testing.T) {
	r := NewPermissionsRenderer(NewTheme())

	assert.Contains(t, r.RenderList(nil), "No stored permission decisions")
	assert.Contains(t, r.RenderCleared(3, "https://a.example"), "https://a.example")
}

func TestConfigRenderer(t *testing.T) {
	r := NewConfigRenderer(NewTheme())

	out := r.RenderPaths("/tmp/app/config.toml", "/tmp/app/config.schema.json", "/tmp/data/permissions.sqlite")
	assert.Contains(t, out, "config.toml")
	assert.Contains(t, out, "config.schema.json")
	assert.Contains(t, out, "permissions.sqlite")

	assert.Contains(t, r.RenderExists("/tmp/app/config.toml"), "--force")
	assert.Contains(t, r.RenderError(errors.New("boom")), "boom")
}

func TestAboutRenderer(t *testing.T) {
	r := NewAboutRenderer(NewTheme())

	out := r.Render(build.Info{Version: "1.2.3", Commit: "abc123", BuildDate: "today", GoVersion: "go1.25"}, []string{"headless"})

	assert.Contains(t, out, "1.2.3")
	assert.Contains(t, out, "abc123")
	assert.Contains(t, out, "headless")
	assert.Contains(t, out, build.RepoURL())
}

func TestRelativeTime(t *testing.T) {
	tests := []struct {
		diff time.Duration
		want string
	}{
		{10 * time.Second, "just now"},
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
		{4 * 24 * time.Hour, "4d ago"},
		{60 * 24 * time.Hour, "2mo ago"},
		{800 * 24 * time.Hour, "2y ago"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, relativeTime(tt.diff))
	}
}

func TestPermissionPicker_Keys(t *testing.T) {
	records := []*entity.PermissionRecord{
		{Origin: "https://a.example", Type: entity.PermissionTypeCamera, Decision: entity.PermissionGranted},
		{Origin: "https://b.example", Type: entity.PermissionTypeNotifications, Decision: entity.PermissionDenied},
	}
	m := NewPermissionPicker(NewTheme(), records)
	press := func(msg tea.KeyMsg) {
		m, _ = m.Update(msg)
	}

	press(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, m.Cursor, "cursor wraps to the last row")
	press(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Equal(t, []*entity.PermissionRecord{records[1]}, m.Selected())

	press(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	assert.Equal(t, 2, m.SelectedCount())
	press(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	assert.Zero(t, m.SelectedCount())

	view := m.View()
	assert.Contains(t, view, "https://b.example")
	assert.Contains(t, view, "notifications")
	assert.Contains(t, view, "0 of 2 selected")

	press(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.Confirmed)
	assert.True(t, m.Done())

	press(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Zero(t, m.SelectedCount(), "a finished picker ignores keys")
}

func TestPermissionPicker_Cancel(t *testing.T) {
	m := NewPermissionPicker(NewTheme(), nil)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Zero(t, m.Cursor)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.Canceled)
	assert.Empty(t, m.Selected())
}

func TestLoadingModel_View(t *testing.T) {
	assert.Contains(t, NewLoading(NewTheme(), "Loading stored permissions...").View(), "Loading stored permissions...")
}
