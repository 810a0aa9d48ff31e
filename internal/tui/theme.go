package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, the subset the form uses.
const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorPeach    lipgloss.Color = "#fab387"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
)

const (
	colorBrand   = colorPink
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorInfo    = colorTeal
)

var (
	titleStyle     = lipgloss.NewStyle().Foreground(colorBrand).Bold(true)
	labelStyle     = lipgloss.NewStyle().Foreground(colorSubtext0)
	focusLabel     = lipgloss.NewStyle().Foreground(colorFocus).Bold(true)
	valueStyle     = lipgloss.NewStyle().Foreground(colorText)
	mutedStyle     = lipgloss.NewStyle().Foreground(colorOverlay1)
	fieldErrStyle  = lipgloss.NewStyle().Foreground(colorError)
	successStyle   = lipgloss.NewStyle().Foreground(colorSuccess)
	errorStyle     = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	cursorStyle    = lipgloss.NewStyle().Foreground(colorPeach).Bold(true)
	spinnerStyle   = lipgloss.NewStyle().Foreground(colorInfo)
	panelStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorSurface1).Padding(0, 2)
	buttonStyle    = lipgloss.NewStyle().Foreground(colorText).Background(colorSurface1).Padding(0, 2)
	buttonFocus    = lipgloss.NewStyle().Foreground(colorSurface0).Background(colorFocus).Bold(true).Padding(0, 2)
	buttonDisabled = lipgloss.NewStyle().Foreground(colorOverlay1).Background(colorSurface0).Padding(0, 2)
)
