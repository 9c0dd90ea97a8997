package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// uploadCmd reads the file named in the path input off the update loop. The
// sheet itself is stored when sheetReadMsg comes back.
func (a *App) uploadCmd() tea.Cmd {
	vendors := a.session.Vendors()
	if len(vendors) == 0 || a.busy {
		return nil
	}
	v := vendors[a.vendorCursor]
	path := expandHome(strings.TrimSpace(a.pathInput.Value()))
	if path == "" {
		a.setNotice(noticeError, "Enter the path of a CSV price sheet.")
		return nil
	}
	a.busy = true
	a.setNotice(noticeInfo, "Reading "+path+"...")
	sess, id := a.session, a.session.ID
	return func() tea.Msg {
		raw, err := sess.ReadPriceSheetFile(path)
		return sheetReadMsg{sessionID: id, vendorID: v.ID, vendorName: v.Name, path: path, raw: raw, err: err}
	}
}

func (a *App) applyUpload(m sheetReadMsg) {
	if m.err != nil {
		a.setNotice(noticeError, fmt.Sprintf("Error reading CSV: %v", m.err))
		return
	}
	sheet, err := a.session.UploadPriceSheet(m.vendorID, m.raw)
	if err != nil {
		a.log.Debug("upload rejected", zap.String("path", m.path), zap.Error(err))
		a.setNotice(noticeError, fmt.Sprintf("Error reading CSV: %v", err))
		return
	}
	preview := sheet.Head(a.cfg.UI.PreviewRows)
	a.preview = &preview
	a.pathInput.SetValue("")
	a.setNotice(noticeSuccess, fmt.Sprintf("Price sheet for %s uploaded successfully!", m.vendorName))
	if a.session.GuideStale() {
		a.hint = "The order guide is out of date; regenerate it in step 3."
	}
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

func (a *App) renderUploadStep() string {
	var b strings.Builder
	b.WriteString(stepHeaderStyle.Render("Step 2: Upload Price Sheets"))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Select Vendor"))
	b.WriteString("\n")
	for i, v := range a.session.Vendors() {
		line := "  " + v.Name
		if i == a.vendorCursor {
			line = cursorRowStyle.Render("> " + v.Name)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	label := labelStyle
	if a.pathInput.Focused() {
		label = focusLabelStyle
	}
	b.WriteString("\n")
	b.WriteString(label.Render("Upload Price Sheet (CSV path)"))
	b.WriteString("\n")
	b.WriteString(a.pathInput.View())
	b.WriteString("\n")
	b.WriteString(a.renderNotice())

	if a.preview != nil {
		b.WriteString("\nPreview:\n")
		b.WriteString(renderTable(*a.preview, a.cfg.UI.PreviewRows))
		b.WriteString("\n")
	}

	if a.session.PriceSheetCount() > 0 {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("Uploaded Price Sheets"))
		b.WriteString("\n")
		for _, v := range a.session.Vendors() {
			if !a.session.HasPriceSheet(v.ID) {
				continue
			}
			b.WriteString(fmt.Sprintf("✅ %s: %d items\n", v.Name, a.session.PriceSheetSize(v.ID)))
		}
		b.WriteString(subtleStyle.Render("b  ← Back to Add Vendor    n  Next: Generate Order Guide →"))
	} else {
		b.WriteString(subtleStyle.Render("b  ← Back to Add Vendor"))
	}
	return b.String()
}
