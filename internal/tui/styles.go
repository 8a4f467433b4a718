// package tui provides the terminal user interface of the bakery console.
// This file defines the shared lipgloss styles used across the different
// views to keep one look and feel.
package tui // import "github.com/toeirei/panaderia/internal/tui"

import "github.com/charmbracelet/lipgloss"

// colorPalette defines the core colors used in the TUI.
const (
	colorSubtle    = lipgloss.Color("240") // Muted gray
	colorHighlight = lipgloss.Color("173") // Crust brown
	colorAccent    = lipgloss.Color("222") // Butter yellow
	colorSpecial   = lipgloss.Color("208") // Orange for special attention
	colorError     = lipgloss.Color("196")
	colorSuccess   = lipgloss.Color("40")
	colorWhite     = lipgloss.Color("231")
)

// Styles defines the reusable lipgloss styles for various UI components.
var (
	helpStyle = lipgloss.NewStyle().Foreground(colorSubtle)

	// Inactive records are struck through.
	inactiveItemStyle = lipgloss.NewStyle().
				Strikethrough(true).
				Foreground(colorSubtle)

	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	specialStyle = lipgloss.NewStyle().Foreground(colorSpecial)

	// Main title on the dashboard
	mainTitleStyle = lipgloss.NewStyle().
			Foreground(colorHighlight).
			Bold(true).
			Padding(1, 3)

	titleStyle = lipgloss.NewStyle().
			Foreground(colorHighlight).
			Bold(true).
			Padding(1, 2)

	paneTitleStyle = lipgloss.NewStyle().Bold(true)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(1, 2)

	// Lists
	itemStyle         = lipgloss.NewStyle()
	selectedItemStyle = lipgloss.NewStyle().Foreground(colorHighlight)

	// Form elements
	focusedStyle  = lipgloss.NewStyle().Foreground(colorAccent)
	disabledStyle = lipgloss.NewStyle().Foreground(colorSubtle)

	// Bar charts
	barStyle      = lipgloss.NewStyle().Foreground(colorHighlight)
	barValueStyle = lipgloss.NewStyle().Foreground(colorAccent)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Italic(true)

	// Toasts
	toastInfoStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(colorWhite).
			Background(colorHighlight)
	toastErrorStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(colorWhite).
			Background(colorError)

	unreadStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
)
