// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/panaderia/internal/i18n"
	"github.com/toeirei/panaderia/internal/model"
)

// formField is one labelled input of a record form.
type formField struct {
	key         string
	label       string
	placeholder string
	value       string
	secret      bool
	readOnly    bool
	charLimit   int
	// hint renders a preview of the current value next to the input.
	hint func(value string) string
}

// formValues are the trimmed input values keyed by field key.
type formValues map[string]string

// formSavedMsg reports the outcome of a form submission. A failed save
// keeps the form open with the error shown under the inputs.
type formSavedMsg struct {
	resource string
	text     string
	err      error
}

// formCancelledMsg closes the form without saving.
type formCancelledMsg struct{}

// formModel is a vertical list of text inputs with a submit action.
type formModel struct {
	title      string
	fields     []formField
	inputs     []textinput.Model
	focusIndex int
	err        string
	submitting bool
	submit     func(formValues) tea.Cmd
	width      int
}

func newFormModel(title string, fields []formField, submit func(formValues) tea.Cmd) *formModel {
	m := &formModel{title: title, fields: fields, submit: submit, inputs: make([]textinput.Model, len(fields))}

	labelWidth := 0
	for _, f := range fields {
		if w := lipgloss.Width(f.label); w > labelWidth {
			labelWidth = w
		}
	}
	for i, f := range fields {
		t := textinput.New()
		t.Cursor.Style = focusedStyle
		t.CharLimit = 120
		if f.charLimit > 0 {
			t.CharLimit = f.charLimit
		}
		t.Width = 40
		t.Prompt = f.label + ":" + strings.Repeat(" ", labelWidth-lipgloss.Width(f.label)+1)
		t.Placeholder = f.placeholder
		t.SetValue(f.value)
		if f.secret {
			t.EchoMode = textinput.EchoPassword
			t.EchoCharacter = '•'
		}
		if f.readOnly {
			t.PromptStyle = disabledStyle
			t.TextStyle = disabledStyle
		}
		m.inputs[i] = t
	}
	m.focusIndex = m.nextEditable(-1, 1)
	m.applyFocus()
	return m
}

func (m *formModel) nextEditable(from, step int) int {
	n := len(m.inputs)
	if n == 0 {
		return 0
	}
	i := from
	for range n {
		i = (i + step + n) % n
		if !m.fields[i].readOnly {
			return i
		}
	}
	return 0
}

func (m *formModel) applyFocus() {
	for i := range m.inputs {
		if i == m.focusIndex {
			m.inputs[i].Focus()
			m.inputs[i].PromptStyle = focusedStyle
			m.inputs[i].TextStyle = focusedStyle
			continue
		}
		m.inputs[i].Blur()
		if m.fields[i].readOnly {
			continue
		}
		m.inputs[i].PromptStyle = lipgloss.NewStyle()
		m.inputs[i].TextStyle = lipgloss.NewStyle()
	}
}

// values collects the current input values.
func (m *formModel) values() formValues {
	out := make(formValues, len(m.fields))
	for i, f := range m.fields {
		out[f.key] = strings.TrimSpace(m.inputs[i].Value())
	}
	return out
}

// setValue is used by tests and by resource screens that prefill inputs.
func (m *formModel) setValue(key, value string) {
	for i, f := range m.fields {
		if f.key == key {
			m.inputs[i].SetValue(value)
			return
		}
	}
}

// fail shows err under the form. Validation errors list every field.
func (m *formModel) fail(err error) {
	m.submitting = false
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		msgs := make([]string, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			msgs = append(msgs, "• "+f.Message)
		}
		m.err = strings.Join(msgs, "\n")
		return
	}
	m.err = err.Error()
}

func (m *formModel) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.submitting {
		return nil
	}
	switch key.String() {
	case "esc":
		return func() tea.Msg { return formCancelledMsg{} }
	case "ctrl+s":
		return m.doSubmit()
	case "tab", "down":
		m.focusIndex = m.nextEditable(m.focusIndex, 1)
		m.applyFocus()
		return nil
	case "shift+tab", "up":
		m.focusIndex = m.nextEditable(m.focusIndex, -1)
		m.applyFocus()
		return nil
	case "enter":
		// Enter on the last editable input submits.
		if next := m.nextEditable(m.focusIndex, 1); next <= m.focusIndex {
			return m.doSubmit()
		}
		m.focusIndex = m.nextEditable(m.focusIndex, 1)
		m.applyFocus()
		return nil
	}
	if m.fields[m.focusIndex].readOnly {
		return nil
	}
	var cmd tea.Cmd
	m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)
	return cmd
}

func (m *formModel) doSubmit() tea.Cmd {
	m.err = ""
	m.submitting = true
	return m.submit(m.values())
}

func (m *formModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	for i := range m.inputs {
		b.WriteString(m.inputs[i].View())
		if h := m.fields[i].hint; h != nil {
			b.WriteString("  " + helpStyle.Render(h(m.inputs[i].Value())))
		}
		b.WriteString("\n")
	}
	if m.submitting {
		b.WriteString("\n" + helpStyle.Render(i18n.T("form.saving")) + "\n")
	}
	if m.err != "" {
		b.WriteString("\n" + errorStyle.Render(m.err) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render(i18n.T("form.help")))
	return b.String()
}
