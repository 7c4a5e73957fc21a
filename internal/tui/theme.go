package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorText    lipgloss.Color = "#cdd6f4"
	colorSubtext lipgloss.Color = "#a6adc8"
	colorOverlay lipgloss.Color = "#6c7086"
	colorSurface lipgloss.Color = "#45475a"
	colorFocus   lipgloss.Color = "#b4befe"
	colorAccent  lipgloss.Color = "#f5c2e7"
	colorSuccess lipgloss.Color = "#a6e3a1"
	colorWarning lipgloss.Color = "#f9e2af"
	cellWidth                   = 14
	cellHeight                  = 3
	cellGap                     = 1
	headerHeight                = 2
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	statusStyle = lipgloss.NewStyle().Foreground(colorSubtext)
	helpStyle   = lipgloss.NewStyle().Foreground(colorOverlay)

	cellStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface).
			Foreground(colorText).
			Width(cellWidth).
			Align(lipgloss.Center)
	selectedCellStyle = cellStyle.
				BorderForeground(colorFocus).
				Foreground(colorFocus).
				Bold(true)
	disabledCellStyle = cellStyle.
				Foreground(colorOverlay).
				Faint(true)
	blankCellStyle = lipgloss.NewStyle().
			Width(cellWidth + 2).
			Height(cellHeight)
	onStyle  = lipgloss.NewStyle().Foreground(colorSuccess)
	offStyle = lipgloss.NewStyle().Foreground(colorWarning)
)
