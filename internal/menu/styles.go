package menu

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/habitflow/habitflow/internal/models"
)

var (
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("27")).
			Padding(0, 1)

	alertStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("160")).
			Padding(0, 1)

	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	infoStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	dimStyle       = lipgloss.NewStyle().Faint(true)

	tierStyles = map[models.Tier]lipgloss.Style{
		models.TierHigh: successStyle,
		models.TierMid:  warnStyle,
		models.TierLow:  errorStyle,
	}
)

// progressBar renders the 10-cell bar, filled cells colored by tier.
func progressBar(pct int) string {
	filled := models.FilledCells(pct)
	bar := tierStyles[models.TierFor(pct)].Render(strings.Repeat("█", filled))
	return bar + dimStyle.Render(strings.Repeat("░", models.ProgressBarCells-filled))
}

func statusStyle(s models.Status) lipgloss.Style {
	if s == models.StatusCompleted {
		return successStyle
	}
	return warnStyle
}
