package report

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	colorPrimary   = lipgloss.Color("86")  // Cyan
	colorSecondary = lipgloss.Color("240") // Gray
	colorSuccess   = lipgloss.Color("82")  // Green
	colorDanger    = lipgloss.Color("196") // Red
	colorMuted     = lipgloss.Color("245") // Light gray
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)

	// correct predictions on the confusion-matrix diagonal
	diagonalStyle = cellStyle.
			Foreground(colorSuccess).
			Bold(true)

	missStyle = cellStyle.
			Foreground(colorDanger)

	borderStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)
