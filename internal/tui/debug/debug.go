// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

// Package debug is a development screen that shows the frame primitives
// with sample bakery data, without a backend.
package debug

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/panaderia/internal/tui/frame"
)

// EnvVar opens this screen instead of the console when set to "1".
const EnvVar = "PANADERIA_TUI_TEST"

// Launch runs the component screen. It does nothing unless EnvVar is "1".
func Launch() error {
	if os.Getenv(EnvVar) != "1" {
		return nil
	}
	if _, err := tea.NewProgram(newTestModel(), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("test screen: %w", err)
	}
	return nil
}

var sampleProducts = []struct {
	icon, name string
	price      string
}{
	{"🥖", "Pan francés", "0.30"},
	{"🥐", "Croissant de mantequilla", "3.50"},
	{"🎂", "Torta de chocolate", "65.00"},
	{"🍪", "Alfajor de maicena", "2.00"},
	{"🍞", "Pan de molde integral", "9.90"},
}

type testModel struct {
	vp     viewport.Model
	menu   *frame.ListView
	dialog *frame.Dialog
	width  int
	height int
}

func newTestModel() testModel {
	m := testModel{vp: viewport.New(20, 5)}
	m.menu = &frame.ListView{}
	for _, p := range sampleProducts {
		m.menu.Items = append(m.menu.Items, frame.ListItem{Icon: p.icon, Label: p.name})
	}
	m.syncReceipt()
	return m
}

// syncReceipt fills the viewport with a mock receipt for the selection.
func (m *testModel) syncReceipt() {
	p := sampleProducts[m.menu.Selected]
	var b strings.Builder
	fmt.Fprintf(&b, "Pedido #PED-0001\n\n")
	for i := 1; i <= 30; i++ {
		fmt.Fprintf(&b, "%2d × %-28s S/ %s\n", i, p.name, p.price)
	}
	b.WriteString("\nUnicode: ñ á é í ó ú ✓ 🎂\n")
	m.vp.SetContent(b.String())
	m.vp.GotoTop()
}

func (m testModel) Init() tea.Cmd { return nil }

func (m testModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.dialog != nil {
			switch msg.String() {
			case "left", "right", "tab":
				if m.dialog.IsFocusedRight() {
					m.dialog.FocusLeft()
				} else {
					m.dialog.FocusRight()
				}
			case "enter", "esc":
				m.dialog = nil
			}
			return m, nil
		}
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "j", "down":
			m.menu.MoveDown()
			m.syncReceipt()
		case "k", "up":
			m.menu.MoveUp()
			m.syncReceipt()
		case "pgdown", " ":
			m.vp.LineDown(m.vp.Height)
		case "pgup":
			m.vp.LineUp(m.vp.Height)
		case "d":
			it, _ := m.menu.Current()
			m.dialog = frame.NewDialog("Eliminar producto", "¿Desea eliminar "+it.Label+"?", "No", "Sí")
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m testModel) View() string {
	if m.dialog != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.dialog.Render())
	}
	leftWidth := 30
	if m.width < 60 {
		leftWidth = m.width / 3
	}
	bodyHeight := max(m.height-1, 3)
	m.menu.SetSize(leftWidth, bodyHeight-1)

	pane := frame.NewPane("🧾 Vista previa", &m.vp)
	pane.SetFooterTokens("j/k producto  d diálogo", fmt.Sprintf("%3.f%%", m.vp.ScrollPercent()*100))
	pane.SetSize(max(m.width-leftWidth-3, 10), bodyHeight)

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.menu.Render(), " │ ", pane.View())
	return body + "\n" + frame.StatusBar("🥖 Panadería – componentes", "q salir", m.width)
}
