package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha subset.
const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
)

const (
	colorBrand   = colorBlue
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorWarning = colorYellow
	colorInfo    = colorTeal
)

var (
	titleStyle      = lipgloss.NewStyle().Bold(true).Foreground(colorBrand)
	stepHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(colorBrand).MarginBottom(1)
	stepDoneStyle   = lipgloss.NewStyle().Foreground(colorSuccess)
	stepActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPink)
	stepIdleStyle   = lipgloss.NewStyle().Foreground(colorOverlay0)
	labelStyle      = lipgloss.NewStyle().Foreground(colorSubtext0)
	focusLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(colorFocus)
	subtleStyle     = lipgloss.NewStyle().Foreground(colorOverlay0)
	cursorRowStyle  = lipgloss.NewStyle().Foreground(colorPeach)
	modalStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorWarning).
			Padding(1, 2)
	tableBorderStyle = lipgloss.NewStyle().Foreground(colorSurface1)
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(colorText).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Foreground(colorText).Padding(0, 1)
	dividerStyle     = lipgloss.NewStyle().Foreground(colorSurface0)
)

type noticeKind int

const (
	noticeInfo noticeKind = iota
	noticeSuccess
	noticeWarning
	noticeError
)

func (k noticeKind) style() lipgloss.Style {
	switch k {
	case noticeSuccess:
		return lipgloss.NewStyle().Foreground(colorSuccess)
	case noticeWarning:
		return lipgloss.NewStyle().Foreground(colorWarning)
	case noticeError:
		return lipgloss.NewStyle().Bold(true).Foreground(colorError)
	default:
		return lipgloss.NewStyle().Foreground(colorInfo)
	}
}
