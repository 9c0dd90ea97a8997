package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	btable "github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/orderguide/internal/config"
	"github.com/jask/orderguide/internal/export"
	"github.com/jask/orderguide/internal/session"
	"github.com/jask/orderguide/internal/table"
	"github.com/jask/orderguide/internal/wizard"
)

// App is the wizard's Bubble Tea model. Every session mutation happens in
// Update; commands only read files and write exports.
type App struct {
	ctx      context.Context
	cfg      config.Config
	log      *zap.Logger
	session  *session.Session
	wizard   *wizard.Controller
	exporter export.Exporter
	keys     *KeyRegistry
	help     help.Model
	progress progress.Model

	modal  modalState
	notice string
	kind   noticeKind
	hint   string
	width  int

	// step 1
	form      [fieldCount]textinput.Model
	formFocus int

	// step 2
	vendorCursor int
	pathInput    textinput.Model
	preview      *table.Table
	busy         bool

	// step 4
	searchInput    textinput.Model
	vendorChoice   int
	categoryChoice int
	sortChoice     int // 0 is unsorted, otherwise 1 + guide column index
	sortDesc       bool
	selected       map[int]bool // guide row positions
	rows           []int        // guide row positions in display order
	grid           btable.Model
	lastExport     string
}

type modalState string

const (
	modalNone         modalState = ""
	modalConfirmReset modalState = "confirmReset"
)

const (
	fieldName = iota
	fieldMinOrder
	fieldEmail
	fieldCount
)

// sheetReadMsg and exportDoneMsg carry the session they were started in;
// results arriving after a reset are dropped.
type sheetReadMsg struct {
	sessionID  string
	vendorID   int
	vendorName string
	path       string
	raw        []byte
	err        error
}

type exportDoneMsg struct {
	sessionID string
	path      string
	rows      int
	err       error
}

func New(ctx context.Context, cfg config.Config, sess *session.Session, exporter export.Exporter, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.UI.PreviewRows <= 0 {
		cfg.UI.PreviewRows = 5
	}
	if cfg.UI.GridHeight <= 0 {
		cfg.UI.GridHeight = 15
	}
	if cfg.UI.ColumnWidth <= 0 {
		cfg.UI.ColumnWidth = 18
	}
	a := &App{
		ctx:      ctx,
		cfg:      cfg,
		log:      logger,
		session:  sess,
		wizard:   wizard.New(sess),
		exporter: exporter,
		keys:     NewKeyRegistry(),
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(48)),
		selected: make(map[int]bool),
	}
	placeholders := [fieldCount]string{"GFS", "$50 minimum", "orders@vendor.example"}
	for i := range a.form {
		a.form[i] = newInput(placeholders[i], 80)
	}
	a.pathInput = newInput("~/Downloads/price-sheet.csv", 512)
	a.searchInput = newInput("Search products...", 120)

	styles := btable.DefaultStyles()
	styles.Header = styles.Header.Foreground(colorText).Bold(true)
	styles.Selected = cursorRowStyle.Bold(true)
	a.grid = btable.New(
		btable.WithHeight(cfg.UI.GridHeight),
		btable.WithFocused(true),
		btable.WithStyles(styles),
	)
	a.enterStep()
	return a
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

func (a *App) Init() tea.Cmd { return nil }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.help.Width = m.Width
		if w := m.Width - 4; w > 10 && w < 80 {
			a.progress.Width = w
		}
	case tea.KeyMsg:
		return a.handleKey(m)
	case sheetReadMsg:
		if m.sessionID != a.session.ID {
			a.log.Debug("dropped price sheet read from a previous session", zap.String("path", m.path))
			break
		}
		a.busy = false
		a.applyUpload(m)
	case exportDoneMsg:
		if m.sessionID != a.session.ID {
			a.log.Debug("dropped export result from a previous session", zap.String("path", m.path), zap.Error(m.err))
			break
		}
		a.busy = false
		if m.err != nil {
			a.log.Error("export failed", zap.Error(m.err))
			a.setNotice(noticeError, "Export failed: "+m.err.Error())
			break
		}
		a.lastExport = m.path
		a.setNotice(noticeSuccess, fmt.Sprintf("Exported %d rows to %s", m.rows, m.path))
	}
	return a, nil
}

// scope names the key scope of whatever currently owns the keyboard.
func (a *App) scope() string {
	if a.modal == modalConfirmReset {
		return scopeConfirm
	}
	if a.wizard.Guard() != "" {
		return scopeGuard
	}
	switch a.wizard.Current() {
	case wizard.AddVendor:
		if a.form[a.formFocus].Focused() {
			return scopeVendorForm
		}
		return scopeVendors
	case wizard.UploadPriceSheet:
		if a.pathInput.Focused() {
			return scopeUploadInput
		}
		return scopeUpload
	case wizard.GenerateGuide:
		return scopeGenerate
	default:
		if a.searchInput.Focused() {
			return scopeSearch
		}
		return scopeGuide
	}
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	scope := a.scope()
	b := a.keys.Lookup(m.String(), scope)
	if b == nil {
		a.updateInput(m)
		return a, nil
	}
	if scope == scopeConfirm && b.Action != actionConfirm && b.Action != actionCancel && b.Action != actionQuit {
		return a, nil
	}

	switch b.Action {
	case actionQuit:
		return a, tea.Quit
	case actionReset:
		a.modal = modalConfirmReset
	case actionConfirm:
		if scope == scopeConfirm {
			a.resetSession()
		} else {
			a.searchInput.Blur()
		}
	case actionCancel:
		a.modal = modalNone
	case actionNext:
		a.next()
	case actionBack:
		a.back()
	case actionLeave:
		a.blurInputs()
	case actionEdit:
		a.focusStepInput()
	case actionNextField:
		a.cycleField(1)
	case actionPrevField:
		a.cycleField(-1)
	case actionSubmit:
		if a.wizard.Current() == wizard.AddVendor {
			a.submitVendor()
			return a, nil
		}
		return a, a.uploadCmd()
	case actionUp:
		a.moveCursor(-1)
	case actionDown:
		a.moveCursor(1)
	case actionGenerate:
		a.generate()
	case actionSearch:
		a.searchInput.Focus()
	case actionClearSearch:
		a.searchInput.SetValue("")
		a.searchInput.Blur()
		a.refreshGuide()
	case actionFilterVendor:
		a.vendorChoice = (a.vendorChoice + 1) % len(a.vendorChoices())
		a.refreshGuide()
	case actionFilterCategory:
		a.categoryChoice = (a.categoryChoice + 1) % len(a.categoryChoices())
		a.refreshGuide()
	case actionSort:
		a.cycleSort()
	case actionSortDirection:
		a.sortDesc = !a.sortDesc
		a.refreshGuide()
	case actionToggleSelect:
		a.toggleSelect()
	case actionClearSelection:
		a.selected = make(map[int]bool)
		a.refreshGuide()
	case actionExport:
		return a, a.exportCmd()
	}
	return a, nil
}

// updateInput hands unbound keys to the focused text input.
func (a *App) updateInput(m tea.KeyMsg) {
	switch {
	case a.modal != modalNone:
	case a.wizard.Current() == wizard.AddVendor && a.form[a.formFocus].Focused():
		a.form[a.formFocus], _ = a.form[a.formFocus].Update(m)
	case a.wizard.Current() == wizard.UploadPriceSheet && a.pathInput.Focused():
		a.pathInput, _ = a.pathInput.Update(m)
	case a.wizard.Current() == wizard.ViewGuide && a.searchInput.Focused():
		before := a.searchInput.Value()
		a.searchInput, _ = a.searchInput.Update(m)
		if a.searchInput.Value() != before {
			a.refreshGuide()
		}
	}
}

func (a *App) next() {
	if msg := a.wizard.Next(); msg != "" {
		a.setNotice(noticeWarning, msg)
		return
	}
	a.enterStep()
}

func (a *App) back() {
	a.wizard.Back()
	a.enterStep()
}

// enterStep prepares the screen of the current step.
func (a *App) enterStep() {
	a.clearNotice()
	a.blurInputs()
	a.log.Debug("wizard step", zap.Stringer("step", a.wizard.Current()))
	switch a.wizard.Current() {
	case wizard.AddVendor:
		a.formFocus = fieldName
		a.form[fieldName].Focus()
	case wizard.UploadPriceSheet:
		if n := a.session.VendorCount(); a.vendorCursor >= n {
			a.vendorCursor = max(n-1, 0)
		}
		a.preview = nil
		a.pathInput.Focus()
	case wizard.ViewGuide:
		a.refreshGuide()
		a.grid.GotoTop()
	}
}

func (a *App) blurInputs() {
	for i := range a.form {
		a.form[i].Blur()
	}
	a.pathInput.Blur()
	a.searchInput.Blur()
}

func (a *App) focusStepInput() {
	switch a.wizard.Current() {
	case wizard.AddVendor:
		a.form[a.formFocus].Focus()
	case wizard.UploadPriceSheet:
		a.pathInput.Focus()
	}
}

func (a *App) moveCursor(delta int) {
	switch a.wizard.Current() {
	case wizard.UploadPriceSheet:
		n := a.session.VendorCount()
		if n == 0 {
			return
		}
		a.vendorCursor = (a.vendorCursor + delta + n) % n
	case wizard.ViewGuide:
		if delta < 0 {
			a.grid.MoveUp(-delta)
		} else {
			a.grid.MoveDown(delta)
		}
	}
}

func (a *App) resetSession() {
	a.modal = modalNone
	a.session.Reset()
	a.wizard.Reset()
	a.busy = false
	for i := range a.form {
		a.form[i].SetValue("")
	}
	a.pathInput.SetValue("")
	a.searchInput.SetValue("")
	a.vendorCursor, a.vendorChoice, a.categoryChoice, a.sortChoice = 0, 0, 0, 0
	a.sortDesc = false
	a.selected = make(map[int]bool)
	a.lastExport = ""
	a.refreshGuide()
	a.enterStep()
	a.setNotice(noticeInfo, "Session reset. Start by adding a vendor.")
}

func (a *App) setNotice(kind noticeKind, text string) {
	a.kind = kind
	a.notice = text
	a.hint = ""
}

func (a *App) clearNotice() {
	a.notice = ""
	a.hint = ""
	a.kind = noticeInfo
}
