package tui

import (
	"fmt"
	"strings"
	"time"

	btable "github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/orderguide/internal/export"
	"github.com/jask/orderguide/internal/guide"
)

func (a *App) vendorChoices() []string {
	return append([]string{guide.All}, a.session.VendorNames()...)
}

func (a *App) categoryChoices() []string {
	return append([]string{guide.All}, a.session.Categories()...)
}

func (a *App) criteria() guide.Criteria {
	vendors, categories := a.vendorChoices(), a.categoryChoices()
	if a.vendorChoice >= len(vendors) {
		a.vendorChoice = 0
	}
	if a.categoryChoice >= len(categories) {
		a.categoryChoice = 0
	}
	return guide.Criteria{
		Search:   a.searchInput.Value(),
		Vendor:   vendors[a.vendorChoice],
		Category: categories[a.categoryChoice],
	}
}

func (a *App) sortColumn() string {
	g, ok := a.session.Guide()
	if !ok || a.sortChoice <= 0 || a.sortChoice > len(g.Columns) {
		return ""
	}
	return g.Columns[a.sortChoice-1]
}

func (a *App) cycleSort() {
	g, ok := a.session.Guide()
	if !ok {
		return
	}
	a.sortChoice = (a.sortChoice + 1) % (len(g.Columns) + 1)
	a.refreshGuide()
}

// refreshGuide recomputes the visible rows from the filters and sort and
// loads them into the grid, keeping the cursor where it can.
func (a *App) refreshGuide() {
	g, ok := a.session.Guide()
	if !ok {
		a.rows = nil
		a.grid.SetRows(nil)
		return
	}
	idx := guide.Match(g, a.criteria())
	if col := a.sortColumn(); col != "" {
		if order, err := guide.Order(g.Pick(idx), col, a.sortDesc); err == nil {
			sorted := make([]int, len(order))
			for i, o := range order {
				sorted[i] = idx[o]
			}
			idx = sorted
		}
	}
	a.rows = idx

	sortCol := a.sortColumn()
	cols := make([]btable.Column, 0, len(g.Columns)+1)
	cols = append(cols, btable.Column{Title: "✓", Width: 2})
	for _, name := range g.Columns {
		title := name
		if name == sortCol {
			title += " " + a.sortArrow()
		}
		cols = append(cols, btable.Column{Title: title, Width: a.cfg.UI.ColumnWidth})
	}
	rows := make([]btable.Row, len(idx))
	for i, r := range idx {
		mark := ""
		if a.selected[r] {
			mark = "✓"
		}
		rows[i] = append(btable.Row{mark}, g.Rows[r]...)
	}

	cursor := a.grid.Cursor()
	// rows must be cleared first so the grid never renders old rows
	// against a narrower column set
	a.grid.SetRows(nil)
	a.grid.SetColumns(cols)
	a.grid.SetRows(rows)
	if cursor >= len(rows) {
		cursor = len(rows) - 1
	}
	a.grid.SetCursor(max(cursor, 0))
}

func (a *App) sortArrow() string {
	if a.sortDesc {
		return "▼"
	}
	return "▲"
}

func (a *App) toggleSelect() {
	if len(a.rows) == 0 {
		return
	}
	r := a.rows[a.grid.Cursor()]
	if a.selected[r] {
		delete(a.selected, r)
	} else {
		a.selected[r] = true
	}
	a.refreshGuide()
}

// visibleSelection returns the selected rows as positions within a.rows.
func (a *App) visibleSelection() []int {
	var out []int
	for i, r := range a.rows {
		if a.selected[r] {
			out = append(out, i)
		}
	}
	return out
}

// exportCmd exports the selected visible rows, or every visible row when
// nothing visible is selected.
func (a *App) exportCmd() tea.Cmd {
	g, ok := a.session.Guide()
	if !ok || a.busy {
		return nil
	}
	if a.exporter == nil {
		a.setNotice(noticeError, "Export is not configured.")
		return nil
	}
	snap := export.Snapshot{
		SessionID:  a.session.ID,
		Vendors:    a.session.Vendors(),
		Table:      export.Visible(g.Pick(a.rows), a.visibleSelection()),
		Criteria:   a.criteria(),
		SortColumn: a.sortColumn(),
		Descending: a.sortDesc,
		ExportedAt: time.Now(),
	}
	a.busy = true
	a.setNotice(noticeInfo, fmt.Sprintf("Exporting %d rows as %s...", snap.Table.Len(), a.exporter.Format()))
	ctx, exporter := a.ctx, a.exporter
	return func() tea.Msg {
		path, err := exporter.Export(ctx, snap)
		return exportDoneMsg{sessionID: snap.SessionID, path: path, rows: snap.Table.Len(), err: err}
	}
}

func (a *App) renderGuideStep() string {
	var b strings.Builder
	b.WriteString(stepHeaderStyle.Render("Step 4: View and Filter Order Guide"))
	b.WriteString("\n")

	c := a.criteria()
	search := labelStyle.Render("Search: ")
	if a.searchInput.Focused() {
		search = focusLabelStyle.Render("Search: ")
	}
	sortLabel := "none"
	if col := a.sortColumn(); col != "" {
		sortLabel = col + " " + a.sortArrow()
	}
	b.WriteString(search + a.searchInput.View())
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s\n",
		labelStyle.Render("Vendor:"), c.Vendor,
		labelStyle.Render("Category:"), c.Category,
		labelStyle.Render("Sort:"), sortLabel,
	))
	if a.session.GuideStale() {
		b.WriteString(noticeWarning.style().Render("A price sheet changed after this guide was generated; go back to step 3 to regenerate."))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(a.grid.View())
	b.WriteString("\n")

	g, _ := a.session.Guide()
	b.WriteString(subtleStyle.Render(fmt.Sprintf("Showing %d of %d items · %d selected",
		len(a.rows), g.Len(), len(a.selected))))
	b.WriteString("\n")
	b.WriteString(a.renderNotice())
	if a.lastExport != "" && a.notice == "" {
		b.WriteString(subtleStyle.Render("Last export: " + a.lastExport))
		b.WriteString("\n")
	}
	return b.String()
}
