// Package common provides shared TUI components and styling for the
// winposture setup wizard and report viewer.
package common

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	ColorPrimary = lipgloss.Color("#4A9EFF")
	ColorSuccess = lipgloss.Color("#22C55E")
	ColorDanger  = lipgloss.Color("#EF4444")
	ColorMuted   = lipgloss.Color("#6B7280")
	ColorWhite   = lipgloss.Color("#F9FAFB")
	ColorDim     = lipgloss.Color("#9CA3AF")
)

// Text styles.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	LabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	HintStyle = lipgloss.NewStyle().
			Foreground(ColorDim).
			Italic(true)

	HelpTextStyle = lipgloss.NewStyle().
			Foreground(ColorDim).
			Italic(true).
			PaddingLeft(4)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// Layout styles.
var (
	PageStyle = lipgloss.NewStyle().
			Padding(1, 2)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(ColorMuted).
			MarginBottom(1).
			PaddingBottom(1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorDim).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(ColorMuted).
			MarginTop(1).
			PaddingTop(1)
)

// Input prompt styles. The cursor indicator shows only when focused.
var (
	FocusedPrompt = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).Render("▸ ")
	BlurredPrompt = "  "
)
