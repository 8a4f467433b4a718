// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package frame

import (
	"github.com/charmbracelet/lipgloss"
)

// Dialog is a modal yes/no box. The left button is focused first so a
// stray enter never confirms a deletion.
type Dialog struct {
	title       string
	message     string
	buttonLeft  string
	buttonRight string
	right       bool
	width       int
}

// NewDialog creates a dialog with the given title, message and button labels.
func NewDialog(title, message, buttonLeft, buttonRight string) *Dialog {
	return &Dialog{
		title:       title,
		message:     message,
		buttonLeft:  buttonLeft,
		buttonRight: buttonRight,
		width:       56,
	}
}

// SetWidth sets the outer width of the box.
func (d *Dialog) SetWidth(width int) { d.width = width }

func (d *Dialog) FocusRight() { d.right = true }

func (d *Dialog) FocusLeft() { d.right = false }

// IsFocusedRight reports whether the right button has the focus.
func (d *Dialog) IsFocusedRight() bool { return d.right }

// Render draws the box; its height follows the message.
func (d *Dialog) Render() string {
	header := lipgloss.NewStyle().
		Foreground(colorFlour).
		Background(colorOven).
		Bold(true).
		Width(d.width).
		Render(" " + d.title)
	message := lipgloss.NewStyle().
		Width(d.width-4).
		Padding(1, 2, 0, 2).
		Render(d.message)

	body := lipgloss.JoinVertical(lipgloss.Left, header, message, d.buttons())
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Width(d.width).
		Render(body)
}

func (d *Dialog) buttons() string {
	base := lipgloss.NewStyle().
		Foreground(colorFlour).
		Background(colorButton).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorButton).
		Padding(0, 3)
	focus := base.Background(colorCrust).BorderForeground(colorCrust)

	left, right := focus, base
	if d.right {
		left, right = base, focus
	}
	row := lipgloss.JoinHorizontal(lipgloss.Center,
		left.Render(d.buttonLeft), "  ", right.Render(d.buttonRight))
	return lipgloss.NewStyle().Padding(1, 2).Render(row)
}
