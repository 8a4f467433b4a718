package debug

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func TestDebugScreen_StatusBarWidth80(t *testing.T) {
	m := newTestModel()
	nm, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	v := nm.View()
	lines := strings.Split(v, "\n")
	footer := lines[len(lines)-1]
	if got := lipgloss.Width(footer); got != 80 {
		t.Fatalf("status bar width mismatch: want=80 got=%d footer=%q", got, footer)
	}
}

func TestDebugScreen_SelectionUpdatesReceipt(t *testing.T) {
	m := newTestModel()
	nm, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	tm := nm.(testModel)
	if tm.menu.Selected != 1 {
		t.Fatalf("expected selection 1, got %d", tm.menu.Selected)
	}
	if !strings.Contains(tm.vp.View(), "Croissant") {
		t.Fatalf("expected receipt for the croissant, got %q", tm.vp.View())
	}
}

func TestDebugScreen_DialogOpensAndCloses(t *testing.T) {
	m := newTestModel()
	nm, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	tm := nm.(testModel)
	if tm.dialog == nil {
		t.Fatalf("expected dialog to open")
	}
	nm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if nm.(testModel).dialog != nil {
		t.Fatalf("expected dialog to close")
	}
}
