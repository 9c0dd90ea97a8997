package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"

	"github.com/jask/orderguide/internal/table"
	"github.com/jask/orderguide/internal/wizard"
)

func (a *App) View() string {
	var b strings.Builder
	b.WriteString(a.renderHeader())
	b.WriteString("\n")

	if msg := a.wizard.Guard(); msg != "" {
		b.WriteString(a.renderGuard(msg))
	} else {
		switch a.wizard.Current() {
		case wizard.AddVendor:
			b.WriteString(a.renderVendorStep())
		case wizard.UploadPriceSheet:
			b.WriteString(a.renderUploadStep())
		case wizard.GenerateGuide:
			b.WriteString(a.renderGenerateStep())
		default:
			b.WriteString(a.renderGuideStep())
		}
	}
	if a.modal == modalConfirmReset {
		b.WriteString("\n\n")
		b.WriteString(modalStyle.Render(titleStyle.Render("Reset session?") +
			"\nAll vendors, price sheets and the order guide will be discarded.\n[y] Yes  [n] No"))
	}
	b.WriteString("\n\n")
	b.WriteString(a.help.ShortHelpView(a.keys.HelpBindings(a.scope())))
	return b.String()
}

func (a *App) renderHeader() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Order Guide Setup Wizard"))
	b.WriteString("\n")
	b.WriteString(a.progress.ViewAs(a.wizard.Progress()))
	b.WriteString("\n")
	parts := make([]string, 0, 4)
	for _, s := range a.wizard.Steps() {
		label := fmt.Sprintf("Step %d: %s", s.Step, s.Label)
		switch s.Status {
		case wizard.StatusDone:
			parts = append(parts, stepDoneStyle.Render("✅ "+label))
		case wizard.StatusCurrent:
			parts = append(parts, stepActiveStyle.Render("👉 "+label))
		default:
			parts = append(parts, stepIdleStyle.Render(label))
		}
	}
	b.WriteString(strings.Join(parts, "   "))
	b.WriteString("\n")
	width := a.width
	if width <= 0 || width > 100 {
		width = 100
	}
	b.WriteString(dividerStyle.Render(strings.Repeat("─", width)))
	b.WriteString("\n")
	return b.String()
}

var backLabels = map[wizard.Step]string{
	wizard.UploadPriceSheet: "← Back to Add Vendor",
	wizard.GenerateGuide:    "← Back to Upload Price Sheets",
	wizard.ViewGuide:        "← Back to Generate Order Guide",
}

func (a *App) renderGuard(msg string) string {
	return noticeWarning.style().Render(msg) + "\n" +
		subtleStyle.Render("b  "+backLabels[a.wizard.Current()])
}

func (a *App) renderNotice() string {
	var b strings.Builder
	if a.notice != "" {
		b.WriteString(a.kind.style().Render(a.notice))
		b.WriteString("\n")
	}
	if a.hint != "" {
		b.WriteString(noticeWarning.style().Render(a.hint))
		b.WriteString("\n")
	}
	return b.String()
}

// renderTable draws at most limit rows of t as a bordered table.
func renderTable(t table.Table, limit int) string {
	head := t.Head(limit)
	lt := lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorderStyle).
		Headers(head.Columns...).
		Rows(head.Rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == lgtable.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		})
	return lt.String()
}
