// Package render draws view state as terminal text with lipgloss.
package render

import (
	"loanos-client/internal/workflow"

	"github.com/charmbracelet/lipgloss"
)

// Catppuccin Mocha.
const (
	colorRed      lipgloss.Color = "#f38ba8"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorSapphire lipgloss.Color = "#74c7ec"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorBase     lipgloss.Color = "#1e1e2e"
)

const (
	colorAccent  = colorBlue
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorWarning = colorYellow
	colorInfo    = colorSapphire
	colorMuted   = colorOverlay0
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	subtitleStyle = lipgloss.NewStyle().Foreground(colorSubtext0)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	labelStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorSubtext0)
	errorStyle    = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	noticeStyle   = lipgloss.NewStyle().Foreground(colorSuccess)
	cardStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorSurface1).Padding(0, 1)
	navStyle      = lipgloss.NewStyle().Foreground(colorText).Background(colorSurface0).Padding(0, 1)
	footerStyle   = lipgloss.NewStyle().Foreground(colorSubtext0).Background(colorSurface0).Padding(0, 2)
	brandStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	brandAccent   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	cursorStyle   = lipgloss.NewStyle().Foreground(colorFocus).Bold(true)
)

// CategoryColor is the badge colour for a status category.
func CategoryColor(c workflow.Category) lipgloss.Color {
	switch c {
	case workflow.CategorySuccess:
		return colorSuccess
	case workflow.CategoryDanger:
		return colorError
	case workflow.CategoryInfo:
		return colorInfo
	case workflow.CategoryWarning:
		return colorWarning
	default:
		return colorMuted
	}
}
