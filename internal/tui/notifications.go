// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/panaderia/internal/core"
	"github.com/toeirei/panaderia/internal/i18n"
)

type notificationsLoadedMsg struct {
	items []core.Notification
	err   error
}

// notificationsModel is the birthday panel.
type notificationsModel struct {
	app     *app
	items   []core.Notification
	cursor  int
	loading bool
	width   int
}

func newNotificationsModel(a *app) *notificationsModel {
	return &notificationsModel{app: a, loading: true}
}

func (m *notificationsModel) Init() tea.Cmd { return m.loadCmd() }

func (m *notificationsModel) loadCmd() tea.Cmd {
	n := m.app.svc.Notifications
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		items, err := n.Refresh(ctx)
		return notificationsLoadedMsg{items: items, err: err}
	}
}

// sync re-reads the panel after a local change.
func (m *notificationsModel) sync() {
	m.items = m.app.svc.Notifications.Items.Get()
	if m.cursor >= len(m.items) {
		m.cursor = max(len(m.items)-1, 0)
	}
}

func (m *notificationsModel) Update(msg tea.Msg) (*notificationsModel, tea.Cmd) {
	n := m.app.svc.Notifications
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case notificationsLoadedMsg:
		m.loading = false
		m.items = msg.items
		m.cursor = 0
		if msg.err != nil {
			return m, toastCmd(errorToast(msg.err.Error()))
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc":
			return m, func() tea.Msg { return backToMenuMsg{} }
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "enter", " ":
			if m.cursor < len(m.items) {
				ctx, cancel := requestContext()
				n.MarkRead(ctx, m.items[m.cursor].ID)
				cancel()
				m.sync()
			}
		case "A":
			ctx, cancel := requestContext()
			n.MarkAllRead(ctx)
			cancel()
			m.sync()
			return m, toastCmd(infoToast(i18n.T("notifications.all_read")))
		case "x":
			n.Clear()
			m.sync()
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}
	return m, nil
}

func notificationIcon(nt core.Notification) string {
	if nt.Icon() == "cake" {
		return "🎂"
	}
	return "🔔"
}

func (m *notificationsModel) View() string {
	unread := m.app.svc.Notifications.UnreadCount()
	header := mainTitleStyle.Render("🔔 " + i18n.T("notifications.title", unread))

	var lines []string
	switch {
	case m.loading:
		lines = append(lines, helpStyle.Render(i18n.T("list.loading")))
	case len(m.items) == 0:
		lines = append(lines, helpStyle.Render(i18n.T("notifications.empty")))
	}
	for i, nt := range m.items {
		line := notificationIcon(nt) + " " + nt.Message
		style := itemStyle
		if !nt.Read {
			style = unreadStyle
		} else {
			line += "  " + i18n.T("notifications.read")
		}
		if i == m.cursor {
			lines = append(lines, selectedItemStyle.Render("▸ ")+style.Render(line))
		} else {
			lines = append(lines, "  "+style.Render(line))
		}
	}
	body := strings.Join(lines, "\n")
	return lipgloss.JoinVertical(lipgloss.Left, header, body, "", renderFooter(i18n.T("notifications.footer"), "", m.width))
}
