// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

// Package frame holds small layout primitives shared by the console screens:
// footers, a selectable list, a titled pane and a confirmation dialog.
package frame

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Bakery palette used by the primitives.
var (
	colorCrust  = lipgloss.Color("173")
	colorFlour  = lipgloss.Color("231")
	colorOven   = lipgloss.Color("94")
	colorButton = lipgloss.Color("239")
	colorBorder = lipgloss.Color("240")
)

// Footer aligns right to the right edge of a width-column line and left to
// its start. Widths are display columns, so emoji count double. When both
// tokens do not fit, left is truncated.
func Footer(left, right string, width int) string {
	if width <= 0 {
		return left + " " + right
	}
	lw, rw := lipgloss.Width(left), lipgloss.Width(right)
	if lw+rw+1 <= width {
		return left + strings.Repeat(" ", width-lw-rw) + right
	}
	maxLeft := width - rw
	if maxLeft <= 0 {
		return ansi.Truncate(right, width, "")
	}
	left = ansi.Truncate(left, maxLeft, "")
	return left + strings.Repeat(" ", maxLeft-lipgloss.Width(left)) + right
}

// StatusBar renders Footer on the oven-brown background bar.
func StatusBar(left, right string, width int) string {
	return lipgloss.NewStyle().
		Foreground(colorFlour).
		Background(colorOven).
		Render(Footer(left, right, width))
}
