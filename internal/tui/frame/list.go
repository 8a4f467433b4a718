// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package frame

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// ListView is a vertical list with a selection cursor. Items may carry an
// icon; it is rendered in front of the label.
type ListView struct {
	Items    []ListItem
	Selected int
	Width    int
	Height   int
}

// ListItem is one row of a ListView.
type ListItem struct {
	Icon  string
	Label string
}

// NewList creates a ListView from plain labels.
func NewList(labels ...string) *ListView {
	l := &ListView{}
	for _, s := range labels {
		l.Items = append(l.Items, ListItem{Label: s})
	}
	return l
}

// SetSize sets the rendering width and height for the list.
func (l *ListView) SetSize(w, h int) {
	l.Width = w
	l.Height = h
}

func (l *ListView) MoveUp() {
	if l.Selected > 0 {
		l.Selected--
	}
}

func (l *ListView) MoveDown() {
	if l.Selected < len(l.Items)-1 {
		l.Selected++
	}
}

// Current returns the selected item, or false for an empty list.
func (l *ListView) Current() (ListItem, bool) {
	if len(l.Items) == 0 {
		return ListItem{}, false
	}
	return l.Items[l.Selected], true
}

// Render draws the visible window of the list. The window scrolls so the
// selection stays on screen.
func (l *ListView) Render() string {
	rows := l.Height
	if rows <= 0 || rows > len(l.Items) {
		rows = len(l.Items)
	}
	start := 0
	if l.Selected >= rows {
		start = l.Selected - rows + 1
	}
	selected := lipgloss.NewStyle().Foreground(colorCrust).Bold(true)

	var b strings.Builder
	for i := start; i < start+rows; i++ {
		it := l.Items[i]
		line := it.Label
		if it.Icon != "" {
			line = it.Icon + " " + line
		}
		prefix := "  "
		if i == l.Selected {
			prefix = "▸ "
		}
		line = prefix + line
		if l.Width > 0 {
			line = ansi.Truncate(line, l.Width, "…")
			line += strings.Repeat(" ", max(l.Width-lipgloss.Width(line), 0))
		}
		if i == l.Selected {
			line = selected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
