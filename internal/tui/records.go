// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/panaderia/internal/i18n"
	"github.com/toeirei/panaderia/internal/tui/frame"
)

// A message to signal that we should go back to the main menu.
type backToMenuMsg struct{}

// recordsLoadedMsg reports the end of a list load. The rows themselves are
// read from the service store.
type recordsLoadedMsg struct {
	resource string
	err      error
}

// actionDoneMsg reports a finished delete, restore, cancel or export.
type actionDoneMsg struct {
	resource string
	text     string
	err      error
}

// recordListConfig describes one resource table.
type recordListConfig[T any] struct {
	title   string
	columns []table.Column
	row     func(T) table.Row
	// filter applies the selected status and the search term.
	filter   func(items []T, status, search string) []T
	statuses []string
	// statusLabel names a filter value in the footer.
	statusLabel func(string) string
	details     func(T) string
}

// recordList is the list half shared by the resource screens: a table with
// a search box, a cycling status filter and the details and confirmation
// dialogs.
type recordList[T any] struct {
	cfg recordListConfig[T]

	table       table.Model
	items       []T
	displayed   []T
	status      string
	search      string
	isFiltering bool
	loading     bool

	details   string
	confirm   *frame.Dialog
	onConfirm tea.Cmd

	width, height int
}

func newRecordList[T any](cfg recordListConfig[T]) recordList[T] {
	t := table.New(
		table.WithColumns(cfg.columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorSubtle).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(colorWhite).
		Background(colorHighlight).
		Bold(false)
	t.SetStyles(s)

	l := recordList[T]{cfg: cfg, table: t, loading: true}
	if len(cfg.statuses) > 0 {
		l.status = cfg.statuses[0]
	}
	return l
}

func (l *recordList[T]) setItems(items []T) {
	l.items = items
	l.loading = false
	l.rebuild()
}

// rebuild filters the master list and populates the table.
func (l *recordList[T]) rebuild() {
	l.displayed = l.cfg.filter(l.items, l.status, l.search)
	rows := make([]table.Row, 0, len(l.displayed))
	for _, it := range l.displayed {
		rows = append(rows, l.cfg.row(it))
	}
	l.table.SetRows(rows)
	if l.table.Cursor() >= len(rows) {
		l.table.SetCursor(0)
	}
}

func (l *recordList[T]) selected() (T, bool) {
	var zero T
	i := l.table.Cursor()
	if i < 0 || i >= len(l.displayed) {
		return zero, false
	}
	return l.displayed[i], true
}

func (l *recordList[T]) cycleStatus() {
	if len(l.cfg.statuses) == 0 {
		return
	}
	l.status = nextStatus(l.cfg.statuses, l.status)
	l.table.GotoTop()
	l.rebuild()
}

func (l *recordList[T]) askConfirm(title, message string, onYes tea.Cmd) {
	l.confirm = frame.NewDialog(title, message, i18n.T("dialog.no"), i18n.T("dialog.yes"))
	l.onConfirm = onYes
}

func (l *recordList[T]) busy() bool {
	return l.confirm != nil || l.details != "" || l.isFiltering
}

func (l *recordList[T]) setSize(w, h int) {
	l.width, l.height = w, h
	// title(3) + status line(2) + footer(2)
	l.table.SetHeight(max(h-9, 3))
	l.table.SetWidth(max(w-4, 20))
}

// update handles the keys every list shares. It reports whether msg was
// consumed so the resource view can handle its own keys otherwise.
func (l *recordList[T]) update(msg tea.KeyMsg) (bool, tea.Cmd) {
	if l.confirm != nil {
		switch msg.String() {
		case "left", "h", "shift+tab":
			l.confirm.FocusLeft()
		case "right", "l", "tab":
			l.confirm.FocusRight()
		case "y":
			l.confirm.FocusRight()
			return true, l.closeConfirm()
		case "n", "esc", "q":
			l.confirm = nil
			l.onConfirm = nil
		case "enter":
			return true, l.closeConfirm()
		}
		return true, nil
	}

	if l.details != "" {
		switch msg.String() {
		case "esc", "q", "enter":
			l.details = ""
			return true, nil
		}
		// Copy shortcuts stay available while the dialog is open.
		return false, nil
	}

	if l.isFiltering {
		switch msg.Type {
		case tea.KeyEsc:
			l.isFiltering = false
			l.search = ""
			l.rebuild()
		case tea.KeyEnter:
			l.isFiltering = false
		case tea.KeyBackspace:
			if r := []rune(l.search); len(r) > 0 {
				l.search = string(r[:len(r)-1])
				l.rebuild()
			}
		case tea.KeyRunes, tea.KeySpace:
			l.search += string(msg.Runes)
			l.table.GotoTop()
			l.rebuild()
		}
		return true, nil
	}

	switch msg.String() {
	case "/":
		l.isFiltering = true
		l.search = ""
		l.rebuild()
		return true, nil
	case "s":
		l.cycleStatus()
		return true, nil
	case "enter":
		if it, ok := l.selected(); ok && l.cfg.details != nil {
			l.details = l.cfg.details(it)
		}
		return true, nil
	case "q", "esc":
		if l.search != "" {
			l.search = ""
			l.rebuild()
			return true, nil
		}
		return true, func() tea.Msg { return backToMenuMsg{} }
	case "up", "k", "down", "j", "pgup", "pgdown", "home", "end", "g", "G":
		var cmd tea.Cmd
		l.table, cmd = l.table.Update(msg)
		return true, cmd
	}
	return false, nil
}

func (l *recordList[T]) closeConfirm() tea.Cmd {
	var cmd tea.Cmd
	if l.confirm.IsFocusedRight() {
		cmd = l.onConfirm
	}
	l.confirm = nil
	l.onConfirm = nil
	return cmd
}

func (l *recordList[T]) statusLine() string {
	label := l.status
	if l.cfg.statusLabel != nil {
		label = l.cfg.statusLabel(l.status)
	}
	left := i18n.T("list.status", label, len(l.displayed), len(l.items))
	return helpStyle.Render(left + "  " + getFilterStatusLine(l.isFiltering, l.search, listFilterKeys))
}

// View renders the table, or a dialog on top of the screen when one is
// open. help is the resource's key help for the footer.
func (l *recordList[T]) View(help string) string {
	if l.confirm != nil {
		return lipgloss.Place(l.width, l.height, lipgloss.Center, lipgloss.Center, l.confirm.Render())
	}
	if l.details != "" {
		box := paneStyle.Width(min(max(l.width-8, 30), 80)).Render(l.details)
		hint := helpStyle.Render(i18n.T("details.help"))
		return lipgloss.Place(l.width, l.height, lipgloss.Center, lipgloss.Center,
			lipgloss.JoinVertical(lipgloss.Left, box, hint))
	}

	header := mainTitleStyle.Render(l.cfg.title)
	var body string
	switch {
	case l.loading:
		body = helpStyle.Render(i18n.T("list.loading"))
	case len(l.displayed) == 0 && l.search == "":
		body = helpStyle.Render(i18n.T("list.empty"))
	case len(l.displayed) == 0:
		body = helpStyle.Render(i18n.T("list.empty_filtered"))
	default:
		body = l.table.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, "", l.statusLine(), renderFooter(help, "", l.width))
}
