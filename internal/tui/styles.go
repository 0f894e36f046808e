package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/staff-directory/internal/notify"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	hintStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC")).Width(12)
	focusedLabel   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true).Width(12)
	errorTextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	savingStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")).Bold(true)
	chipStyle      = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#5B8DEF")).
			Padding(0, 1).
			MarginRight(1)
	optionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#999999")).PaddingRight(2)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true).PaddingRight(2)
	panelStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)

	successBanner = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#4CAF50")).
			Padding(0, 1)
	errorBanner = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#D64545")).
			Padding(0, 1)
)

func bannerStyle(level notify.Level) lipgloss.Style {
	if level == notify.LevelError {
		return errorBanner
	}
	return successBanner
}

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#5B8DEF")).
		Bold(false)
	return s
}
