package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// AlignFooter returns a single-line string where `right` is right-aligned
// within `width` columns and `left` is at the start. If width is too small
// a single space separates the tokens.
func AlignFooter(left, right string, width int) string {
	spaces := width - lipgloss.Width(left) - lipgloss.Width(right)
	if spaces < 1 {
		spaces = 1
	}
	return left + strings.Repeat(" ", spaces) + right
}

// renderFooter styles a help line, with an optional right-hand token.
func renderFooter(left, right string, width int) string {
	// Padding(0,1) eats two columns.
	return footerStyle.Render(AlignFooter(left, right, width-2))
}
