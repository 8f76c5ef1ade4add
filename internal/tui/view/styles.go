package view

import "github.com/charmbracelet/lipgloss"

// Color palette matching the HTML report.
var (
	colorGood    = lipgloss.Color("#22C55E")
	colorWarn    = lipgloss.Color("#F59E0B")
	colorBad     = lipgloss.Color("#EF4444")
	colorInfo    = lipgloss.Color("#3B82F6")
	colorMuted   = lipgloss.Color("#6B7280")
	colorPrimary = lipgloss.Color("#4A9EFF")
	colorDim     = lipgloss.Color("#9CA3AF")
	colorWhite   = lipgloss.Color("#F9FAFB")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(colorDim)

	sectionNameStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorWhite).
				MarginTop(1)

	sectionCountStyle = lipgloss.NewStyle().
				Foreground(colorDim)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(colorDim)

	summaryBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1).
			MarginBottom(1)

	goodStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorGood)
	warnStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorWarn)
	badStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorBad)
	infoStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorInfo)
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
	dimStyle   = lipgloss.NewStyle().Foreground(colorDim)
)
