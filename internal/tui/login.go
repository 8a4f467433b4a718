// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/panaderia/internal/i18n"
	"github.com/toeirei/panaderia/internal/model"
	"github.com/toeirei/panaderia/internal/state"
)

type loginResultMsg struct {
	user *model.User
	err  error
}

// loginModel is the sign-in screen.
type loginModel struct {
	app        *app
	inputs     []textinput.Model // 0: username, 1: password
	focusIndex int
	err        string
	submitting bool
	width      int
	height     int
}

func newLoginModel(a *app, notice string) *loginModel {
	m := &loginModel{app: a, inputs: make([]textinput.Model, 2), err: notice}
	for i := range m.inputs {
		t := textinput.New()
		t.Cursor.Style = focusedStyle
		t.CharLimit = 64
		t.Width = 30
		switch i {
		case 0:
			t.Prompt = i18n.T("login.username") + " "
			t.Placeholder = "admin"
			t.Focus()
			t.PromptStyle = focusedStyle
			t.TextStyle = focusedStyle
		case 1:
			t.Prompt = i18n.T("login.password") + " "
			t.EchoMode = textinput.EchoPassword
			t.EchoCharacter = '•'
		}
		m.inputs[i] = t
	}
	// Keep prompts aligned.
	w := max(lipgloss.Width(m.inputs[0].Prompt), lipgloss.Width(m.inputs[1].Prompt))
	for i := range m.inputs {
		m.inputs[i].Prompt += strings.Repeat(" ", w-lipgloss.Width(m.inputs[i].Prompt))
	}
	return m
}

func (m *loginModel) Init() tea.Cmd { return textinput.Blink }

func (m *loginModel) focus(i int) {
	m.focusIndex = i
	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
			m.inputs[j].PromptStyle = focusedStyle
			m.inputs[j].TextStyle = focusedStyle
		} else {
			m.inputs[j].Blur()
			m.inputs[j].PromptStyle = lipgloss.NewStyle()
			m.inputs[j].TextStyle = lipgloss.NewStyle()
		}
	}
}

func (m *loginModel) submitCmd() tea.Cmd {
	username := strings.TrimSpace(m.inputs[0].Value())
	password := []byte(m.inputs[1].Value())
	if username == "" || len(password) == 0 {
		m.err = i18n.T("login.missing")
		return nil
	}
	m.err = ""
	m.submitting = true
	state.PasswordCache.Set(password)
	clear(password)
	svc := m.app.svc
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		u, err := svc.Login(ctx, username, state.PasswordCache.Take())
		return loginResultMsg{user: u, err: err}
	}
}

func (m *loginModel) Update(msg tea.Msg) (*loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case loginResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.err = msg.err.Error()
			m.inputs[1].SetValue("")
			m.focus(1)
		}
		return m, nil
	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "down", "shift+tab", "up":
			m.focus(1 - m.focusIndex)
			return m, nil
		case "enter":
			if m.focusIndex == 0 {
				m.focus(1)
				return m, nil
			}
			return m, m.submitCmd()
		}
	}
	var cmd tea.Cmd
	m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)
	return m, cmd
}

func (m *loginModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("🥖 " + i18n.T("login.title")))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(i18n.T("login.subtitle")))
	b.WriteString("\n\n")
	for i := range m.inputs {
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	if m.submitting {
		b.WriteString("\n" + helpStyle.Render(i18n.T("login.signing_in")))
	}
	if m.err != "" {
		b.WriteString("\n" + errorStyle.Render(m.err))
	}
	b.WriteString("\n\n" + helpStyle.Render(i18n.T("login.help")))

	box := paneStyle.Width(50).Render(b.String())
	if m.width == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
