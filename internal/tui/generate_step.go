package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jask/orderguide/internal/session"
)

func (a *App) generate() {
	g, err := a.session.GenerateGuide()
	if err != nil {
		if errors.Is(err, session.ErrNoPriceSheets) {
			a.setNotice(noticeWarning, "Please upload at least one price sheet first.")
			return
		}
		a.setNotice(noticeError, fmt.Sprintf("Error generating order guide: %v", err))
		return
	}
	a.selected = make(map[int]bool)
	a.categoryChoice = 0
	a.sortChoice = 0
	a.setNotice(noticeSuccess, fmt.Sprintf("Order guide generated successfully! %d items from %d price sheets.",
		g.Len(), a.session.PriceSheetCount()))
}

func (a *App) renderGenerateStep() string {
	var b strings.Builder
	b.WriteString(stepHeaderStyle.Render("Step 3: Generate Order Guide"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%d price sheets ready. Press g to generate the order guide.\n",
		a.session.PriceSheetCount()))
	b.WriteString(a.renderNotice())

	if g, ok := a.session.Guide(); ok {
		if a.session.GuideStale() {
			b.WriteString(noticeWarning.style().Render("A price sheet changed after this guide was generated. Press g to regenerate."))
			b.WriteString("\n")
		}
		b.WriteString("\nPreview:\n")
		b.WriteString(renderTable(g, a.cfg.UI.PreviewRows))
		b.WriteString("\n")
		b.WriteString(subtleStyle.Render("b  ← Back to Upload Price Sheets    n  Next: View Order Guide →"))
		return b.String()
	}
	b.WriteString(subtleStyle.Render("b  ← Back to Upload Price Sheets"))
	return b.String()
}
