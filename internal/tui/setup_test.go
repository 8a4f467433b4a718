package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/toeirei/panaderia/internal/core"
	"github.com/toeirei/panaderia/internal/db"
	"github.com/toeirei/panaderia/internal/i18n"
	"github.com/toeirei/panaderia/internal/testutil"
)

var fixedToday = time.Date(2024, 5, 12, 10, 0, 0, 0, time.Local)

// newTestApp signs in to a fresh fake backend. An empty user leaves the
// session signed out.
func newTestApp(t *testing.T, user, password string) (*app, *testutil.Backend) {
	t.Helper()
	i18n.Init("es")
	b := testutil.NewBackend(t)
	svc, err := core.NewServices(b.APIConfig(), db.NewMemoryStore())
	if err != nil {
		t.Fatalf("NewServices: %v", err)
	}
	svc.SetClock(func() time.Time { return fixedToday })
	if user != "" {
		if _, err := svc.Login(context.Background(), user, []byte(password)); err != nil {
			t.Fatalf("login %s: %v", user, err)
		}
	}
	t.Cleanup(func() { _ = svc.Close() })

	prev := clipboardWriteAll
	clipboardWriteAll = func(string) error { return nil }
	t.Cleanup(func() { clipboardWriteAll = prev })

	return &app{svc: svc, opts: Options{ReportDir: t.TempDir()}}, b
}

func newAdminApp(t *testing.T) (*app, *testutil.Backend) {
	return newTestApp(t, "admin", "secreto123")
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// run executes cmd and returns its message, or nil. Batches are not
// expanded; tests only run single commands.
func run(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}
