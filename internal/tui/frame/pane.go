// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package frame

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

// Pane stacks a title, a scrollable body and a status bar.
type Pane struct {
	Width  int
	Height int

	Title       string
	FooterLeft  string
	FooterRight string

	Viewport *viewport.Model
}

// NewPane creates a pane around vp.
func NewPane(title string, vp *viewport.Model) *Pane {
	return &Pane{Title: title, Viewport: vp}
}

// SetFooterTokens sets the left/right tokens of the status bar.
func (p *Pane) SetFooterTokens(left, right string) {
	p.FooterLeft = left
	p.FooterRight = right
}

// SetSize resizes the pane; the viewport gets what the title and the
// status bar leave over.
func (p *Pane) SetSize(width, height int) {
	p.Width = width
	p.Height = height
	if p.Viewport != nil {
		p.Viewport.Width = width
		p.Viewport.Height = max(height-lipgloss.Height(p.Title)-1, 1)
	}
}

func (p *Pane) View() string {
	title := lipgloss.NewStyle().Foreground(colorCrust).Bold(true).Render(p.Title)
	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	if p.Viewport != nil {
		b.WriteString(p.Viewport.View())
		b.WriteString("\n")
	}
	b.WriteString(StatusBar(p.FooterLeft, p.FooterRight, p.Width))
	return b.String()
}
