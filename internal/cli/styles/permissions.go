package styles

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ubytes/appplatform/internal/domain/entity"
)

// PermissionsRenderer renders stored permission decisions.
type PermissionsRenderer struct {
	theme *Theme
	now   func() time.Time
}

func NewPermissionsRenderer(theme *Theme) *PermissionsRenderer {
	return &PermissionsRenderer{theme: theme, now: time.Now}
}

// RenderList renders records as a table of origin, kind, decision and age.
func (r *PermissionsRenderer) RenderList(records []*entity.PermissionRecord) string {
	if len(records) == 0 {
		return r.RenderEmpty()
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.Origin,
			string(rec.Type),
			r.theme.DecisionBadge(rec.Decision),
			relativeTime(r.now().Sub(time.Unix(rec.UpdatedAt, 0))),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(r.theme.Border)).
		Headers("ORIGIN", "PERMISSION", "DECISION", "UPDATED").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.theme.TableHeader
			}
			return r.theme.TableCell
		})

	return fmt.Sprintf("\n%s\n  %s\n", t.Render(), r.theme.Subtle.Render(fmt.Sprintf("%d stored decisions", len(records))))
}

// RenderEmpty renders the message shown when nothing is stored.
func (r *PermissionsRenderer) RenderEmpty() string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	return fmt.Sprintf("\n  %s %s\n", iconStyle.Render(IconShield), r.theme.Subtle.Render("No stored permission decisions"))
}

// RenderCleared renders how many decisions were removed.
func (r *PermissionsRenderer) RenderCleared(count int64, scope string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)
	return fmt.Sprintf(
		"\n  %s Cleared %s for %s\n",
		iconStyle.Render(IconTrash),
		r.theme.Highlight.Render(fmt.Sprintf("%d", count)),
		scope,
	)
}
