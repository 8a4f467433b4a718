package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// toastDuration is how long a notice stays on screen.
var toastDuration = 4 * time.Second

// toastMsg asks the router to show a transient notice.
type toastMsg struct {
	text    string
	isError bool
}

// toastExpiredMsg hides the notice with the given sequence number.
type toastExpiredMsg struct{ seq int }

func infoToast(text string) toastMsg  { return toastMsg{text: text} }
func errorToast(text string) toastMsg { return toastMsg{text: text, isError: true} }

func toastCmd(t toastMsg) tea.Cmd {
	return func() tea.Msg { return t }
}

// toast is the single status line at the bottom of the screen. A newer
// notice replaces the current one; only the newest one's timer clears it.
type toast struct {
	text    string
	isError bool
	seq     int
}

func (t *toast) show(msg toastMsg) tea.Cmd {
	t.seq++
	t.text = msg.text
	t.isError = msg.isError
	seq := t.seq
	return tea.Tick(toastDuration, func(time.Time) tea.Msg { return toastExpiredMsg{seq: seq} })
}

func (t *toast) expire(msg toastExpiredMsg) {
	if msg.seq == t.seq {
		t.text = ""
		t.isError = false
	}
}

func (t toast) View(width int) string {
	if t.text == "" {
		return ""
	}
	style := toastInfoStyle
	if t.isError {
		style = toastErrorStyle
	}
	return style.Render(truncate(t.text, width-2))
}
