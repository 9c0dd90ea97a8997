package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/orderguide/internal/config"
	"github.com/jask/orderguide/internal/export"
	"github.com/jask/orderguide/internal/session"
	"github.com/jask/orderguide/internal/table"
	"github.com/jask/orderguide/internal/testdata"
	"github.com/jask/orderguide/internal/wizard"
)

func flowKey(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+n":
		return tea.KeyMsg{Type: tea.KeyCtrlN}
	case "ctrl+b":
		return tea.KeyMsg{Type: tea.KeyCtrlB}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func flowApplyMsg(t *testing.T, a *App, msg tea.Msg) *App {
	t.Helper()
	next, cmd := a.Update(msg)
	got, ok := next.(*App)
	if !ok {
		t.Fatalf("Update returned %T, want *App", next)
	}
	return flowDrainCmd(t, got, cmd)
}

func flowPress(t *testing.T, a *App, keys ...string) *App {
	t.Helper()
	for _, k := range keys {
		a = flowApplyMsg(t, a, flowKey(k))
	}
	return a
}

func flowType(t *testing.T, a *App, input string) *App {
	t.Helper()
	for _, r := range input {
		a = flowApplyMsg(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return a
}

func flowDrainCmd(t *testing.T, a *App, cmd tea.Cmd) *App {
	t.Helper()
	for i := 0; cmd != nil && i < 32; i++ {
		msg := cmd()
		if msg == nil {
			return a
		}
		if _, quit := msg.(tea.QuitMsg); quit {
			return a
		}
		next, nextCmd := a.Update(msg)
		a = next.(*App)
		cmd = nextCmd
	}
	if cmd != nil {
		t.Fatal("command chain exceeded max depth")
	}
	return a
}

func newFlowApp(t *testing.T, format string) (*App, *session.Session, string) {
	t.Helper()
	dir := t.TempDir()
	exporter, err := export.New(format, dir, nil)
	require.NoError(t, err)
	sess := session.New(session.Options{})
	cfg := config.Config{UI: config.UIConfig{GridHeight: 10, ColumnWidth: 14, PreviewRows: 5}}
	a := New(context.Background(), cfg, sess, exporter, nil)
	return a, sess, dir
}

func writeSheet(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestFlowAddUploadGenerateExport(t *testing.T) {
	a, sess, exportDir := newFlowApp(t, export.FormatCSV)
	require.Equal(t, wizard.AddVendor, a.wizard.Current())
	require.Contains(t, a.View(), "👉 Step 1: Add Vendor")

	a = flowType(t, a, "GFS")
	a = flowPress(t, a, "tab")
	a = flowType(t, a, "$50 minimum")
	a = flowPress(t, a, "enter")
	require.Equal(t, 1, sess.VendorCount())
	require.Equal(t, "$50 minimum", sess.Vendors()[0].MinOrder)
	require.Contains(t, a.notice, "Vendor 'GFS' added successfully!")

	a = flowPress(t, a, "ctrl+n")
	require.Equal(t, wizard.UploadPriceSheet, a.wizard.Current())
	require.True(t, a.pathInput.Focused())

	path := writeSheet(t, "gfs.csv", "Product name,Category,Price\nFlank steak,Meat,$12.40\nYellow onion,Produce,$28.50\n")
	a = flowType(t, a, path)
	a = flowPress(t, a, "enter")
	require.Equal(t, 2, sess.PriceSheetSize(1))
	require.Contains(t, a.notice, "Price sheet for GFS uploaded successfully!")
	require.Contains(t, a.View(), "✅ GFS: 2 items")

	a = flowPress(t, a, "esc", "n")
	require.Equal(t, wizard.GenerateGuide, a.wizard.Current())
	a = flowPress(t, a, "n")
	require.Equal(t, wizard.GenerateGuide, a.wizard.Current())
	require.Equal(t, wizard.MsgNeedGuide, a.notice)

	a = flowPress(t, a, "g", "n")
	require.Equal(t, wizard.ViewGuide, a.wizard.Current())
	require.Len(t, a.rows, 2)

	a = flowPress(t, a, "/")
	a = flowType(t, a, "steak")
	require.Len(t, a.rows, 1)
	a = flowPress(t, a, "enter", "space", "e")
	require.NotEmpty(t, a.lastExport)
	require.Equal(t, exportDir, filepath.Dir(a.lastExport))

	raw, err := os.ReadFile(a.lastExport)
	require.NoError(t, err)
	exported, err := table.ParseCSV(raw)
	require.NoError(t, err)
	require.Equal(t, 1, exported.Len())
	require.Equal(t, "Flank steak", exported.Value(0, "Product name"))
	require.Equal(t, "GFS", exported.Value(0, "Vendor"))
}

func TestFlowNextBlockedWithoutVendor(t *testing.T) {
	a, _, _ := newFlowApp(t, export.FormatCSV)

	a = flowPress(t, a, "ctrl+n")
	require.Equal(t, wizard.AddVendor, a.wizard.Current())
	require.Equal(t, wizard.MsgNeedVendor, a.notice)

	a = flowPress(t, a, "esc", "n")
	require.Equal(t, wizard.AddVendor, a.wizard.Current())
	require.Contains(t, a.View(), wizard.MsgNeedVendor)
}

func TestFlowTypingDoesNotNavigate(t *testing.T) {
	a, sess, _ := newFlowApp(t, export.FormatCSV)
	a = flowType(t, a, "Restaurant Depot")
	require.Equal(t, wizard.AddVendor, a.wizard.Current())
	require.Equal(t, "Restaurant Depot", a.form[fieldName].Value())

	a = flowPress(t, a, "enter")
	require.Equal(t, []string{"Restaurant Depot"}, sess.VendorNames())
	require.Empty(t, a.form[fieldName].Value())
}

func TestFlowBlankVendorName(t *testing.T) {
	a, sess, _ := newFlowApp(t, export.FormatCSV)
	a = flowType(t, a, "   ")
	a = flowPress(t, a, "enter")
	require.Equal(t, 0, sess.VendorCount())
	require.Equal(t, "Vendor name is required.", a.notice)
	require.Equal(t, noticeError, a.kind)
}

func TestFlowSimilarVendorHint(t *testing.T) {
	dir := t.TempDir()
	exporter, err := export.New(export.FormatCSV, dir, nil)
	require.NoError(t, err)
	sess := session.New(session.Options{SimilarityDistance: 2})
	a := New(context.Background(), config.Config{}, sess, exporter, nil)

	a = flowType(t, a, "Sysco")
	a = flowPress(t, a, "enter")
	a = flowType(t, a, "Sysko")
	a = flowPress(t, a, "enter")
	require.Equal(t, 2, sess.VendorCount())
	require.Equal(t, "Sysko looks similar to existing vendor Sysco", a.hint)
}

func TestFlowMalformedUploadKeepsStep(t *testing.T) {
	a, sess, _ := newFlowApp(t, export.FormatCSV)
	a = flowType(t, a, "GFS")
	a = flowPress(t, a, "enter", "ctrl+n")

	path := writeSheet(t, "bad.csv", "a,b\n1,2,3\n")
	a = flowType(t, a, path)
	a = flowPress(t, a, "enter")
	require.Equal(t, 0, sess.PriceSheetCount())
	require.Equal(t, noticeError, a.kind)
	require.True(t, strings.HasPrefix(a.notice, "Error reading CSV:"), a.notice)
	require.Equal(t, wizard.UploadPriceSheet, a.wizard.Current())

	a = flowPress(t, a, "esc", "n")
	require.Equal(t, wizard.MsgNeedPriceSheet, a.notice)

	a = flowPress(t, a, "b")
	require.Equal(t, wizard.AddVendor, a.wizard.Current())
}

func seededApp(t *testing.T, format string) (*App, *session.Session, string) {
	t.Helper()
	a, sess, dir := newFlowApp(t, format)
	require.NoError(t, testdata.Seed(sess))
	a = flowPress(t, a, "ctrl+n", "ctrl+n", "g", "n")
	require.Equal(t, wizard.ViewGuide, a.wizard.Current())
	return a, sess, dir
}

func TestFlowFilterAndSort(t *testing.T) {
	a, sess, _ := seededApp(t, export.FormatCSV)
	g, ok := sess.Guide()
	require.True(t, ok)
	require.Len(t, a.rows, g.Len())

	a = flowPress(t, a, "v")
	require.Len(t, a.rows, 4, "GFS only")
	a = flowPress(t, a, "c")
	require.Equal(t, "Meat", a.criteria().Category)
	require.Len(t, a.rows, 2)

	a = flowPress(t, a, "v", "v", "v")
	require.Equal(t, "All", a.criteria().Vendor)
	a = flowPress(t, a, "c", "c", "c", "c")
	require.Equal(t, "All", a.criteria().Category)
	require.Len(t, a.rows, g.Len())

	price := g.ColumnIndex("Price")
	for i := 0; i <= price; i++ {
		a = flowPress(t, a, "s")
	}
	require.Equal(t, "Price", a.sortColumn())
	require.Equal(t, "Roma tomatoes", g.Value(a.rows[0], "Product name"))

	a = flowPress(t, a, "S")
	require.Equal(t, "Canola oil", g.Value(a.rows[0], "Product name"))
	require.Contains(t, a.View(), "Price ▼")
}

func TestFlowSelectionExportsOnlySelectedRows(t *testing.T) {
	a, _, dir := seededApp(t, export.FormatSQLite)

	a = flowPress(t, a, "space", "down", "down", "space", "e")
	require.NotEmpty(t, a.lastExport, a.notice)
	require.Equal(t, ".db", filepath.Ext(a.lastExport))
	require.Equal(t, dir, filepath.Dir(a.lastExport))
	require.Contains(t, a.notice, "Exported 2 rows")

	a = flowPress(t, a, "x", "e")
	require.Contains(t, a.notice, "Exported 11 rows")
}

func TestFlowStaleGuideNotice(t *testing.T) {
	a, sess, _ := seededApp(t, export.FormatCSV)
	a = flowPress(t, a, "b", "b")
	require.Equal(t, wizard.UploadPriceSheet, a.wizard.Current())

	path := writeSheet(t, "gfs.csv", "Product name,Price\nButter,$3.10\n")
	a = flowType(t, a, path)
	a = flowPress(t, a, "enter")
	require.True(t, sess.GuideStale())
	require.NotEmpty(t, a.hint)

	a = flowPress(t, a, "ctrl+n", "ctrl+n")
	require.Equal(t, wizard.ViewGuide, a.wizard.Current())
	require.Contains(t, a.View(), "go back to step 3 to regenerate")
}

func TestFlowResetConfirm(t *testing.T) {
	a, sess, _ := seededApp(t, export.FormatCSV)
	oldID := sess.ID

	a = flowPress(t, a, "ctrl+r")
	require.Equal(t, modalConfirmReset, a.modal)
	require.Contains(t, a.View(), "Reset session?")
	a = flowPress(t, a, "n")
	require.Equal(t, modalNone, a.modal)
	require.Equal(t, wizard.ViewGuide, a.wizard.Current())

	a = flowPress(t, a, "ctrl+r", "y")
	require.Equal(t, modalNone, a.modal)
	require.Equal(t, wizard.AddVendor, a.wizard.Current())
	require.NotEqual(t, oldID, sess.ID)
	require.Equal(t, 0, sess.VendorCount())
	require.False(t, sess.HasGuide())
	require.Empty(t, a.rows)
}

func TestFlowResetDropsInFlightUpload(t *testing.T) {
	a, sess, _ := newFlowApp(t, export.FormatCSV)
	a = flowType(t, a, "GFS")
	a = flowPress(t, a, "enter", "ctrl+n")
	path := writeSheet(t, "gfs.csv", "Product name,Price\nFlank steak,$12.40\n")
	a = flowType(t, a, path)

	next, pending := a.Update(flowKey("enter"))
	a = next.(*App)
	require.NotNil(t, pending)
	require.True(t, a.busy)

	a = flowPress(t, a, "ctrl+r", "y")
	require.False(t, a.busy)
	a = flowType(t, a, "Sysco")
	a = flowPress(t, a, "enter")
	require.Equal(t, 1, sess.Vendors()[0].ID)

	a = flowApplyMsg(t, a, pending())
	require.Equal(t, 0, sess.PriceSheetCount())
	require.False(t, a.busy)
	require.NotContains(t, a.notice, "uploaded successfully")
}

func TestQuitKey(t *testing.T) {
	a, _, _ := newFlowApp(t, export.FormatCSV)
	_, cmd := a.Update(flowKey("ctrl+c"))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	require.True(t, ok)
}

func TestHeaderRendersProgressAndSteps(t *testing.T) {
	a, _, _ := seededApp(t, export.FormatCSV)
	view := a.View()
	require.Contains(t, view, "Order Guide Setup Wizard")
	require.Contains(t, view, "✅ Step 3: Generate Guide")
	require.Contains(t, view, "👉 Step 4: View Guide")
	require.Contains(t, view, "75%")
}
