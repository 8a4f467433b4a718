// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/toeirei/panaderia/internal/api"
	"github.com/toeirei/panaderia/internal/core"
	"github.com/toeirei/panaderia/internal/db"
	"github.com/toeirei/panaderia/internal/i18n"
)

// recentExportsLimit caps the history shown on the reports screen.
const recentExportsLimit = 20

type exportsLoadedMsg struct {
	exports []db.ReportExport
	err     error
}

// exportReportCmd downloads the PDF report of resource into the configured
// report directory.
func exportReportCmd(a *app, resource string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		rec, err := a.svc.ExportReport(ctx, resource, core.ReportOptions{Dir: a.opts.ReportDir, Compress: a.opts.CompressReports})
		if err != nil {
			return actionDoneMsg{resource: resource, err: err}
		}
		return actionDoneMsg{resource: resource, text: i18n.T("reports.saved", rec.FilePath)}
	}
}

// reportsModel lists the saved reports and exports new ones.
type reportsModel struct {
	app     *app
	exports []db.ReportExport
	cursor  int
	loading bool
	err     error
	width   int
}

func newReportsModel(a *app) *reportsModel {
	return &reportsModel{app: a, loading: true}
}

func (m *reportsModel) Init() tea.Cmd { return m.loadCmd() }

func (m *reportsModel) loadCmd() tea.Cmd {
	svc := m.app.svc
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		list, err := svc.RecentExports(ctx, recentExportsLimit)
		return exportsLoadedMsg{exports: list, err: err}
	}
}

func (m *reportsModel) Update(msg tea.Msg) (*reportsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case exportsLoadedMsg:
		m.loading = false
		m.exports, m.err = msg.exports, msg.err
		if m.cursor >= len(m.exports) {
			m.cursor = 0
		}
	case actionDoneMsg:
		if msg.err != nil {
			return m, toastCmd(errorToast(msg.err.Error()))
		}
		return m, tea.Batch(toastCmd(infoToast(msg.text)), m.loadCmd())
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc":
			return m, func() tea.Msg { return backToMenuMsg{} }
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.exports)-1 {
				m.cursor++
			}
		case "c":
			return m, exportReportCmd(m.app, api.ResourceCustomer)
		case "p":
			return m, exportReportCmd(m.app, api.ResourceProduct)
		case "y":
			if m.cursor < len(m.exports) {
				return m, toastCmd(copyToClipboard(i18n.T("reports.path"), m.exports[m.cursor].FilePath))
			}
		}
	}
	return m, nil
}

func (m *reportsModel) View() string {
	header := mainTitleStyle.Render("📄 " + i18n.T("reports.title"))
	var lines []string
	switch {
	case m.loading:
		lines = append(lines, helpStyle.Render(i18n.T("list.loading")))
	case m.err != nil:
		lines = append(lines, errorStyle.Render(m.err.Error()))
	case len(m.exports) == 0:
		lines = append(lines, helpStyle.Render(i18n.T("reports.empty")))
	}
	for i, e := range m.exports {
		kind := "PDF"
		if e.Compressed {
			kind = "PDF+zstd"
		}
		line := fmt.Sprintf("%s  %-9s %-9s %8s  %s", e.ExportedAt.Format("02/01/2006 15:04"), e.Resource, kind,
			humanize.Bytes(uint64(e.SizeBytes)), e.FilePath)
		if i == m.cursor {
			lines = append(lines, selectedItemStyle.Render("▸ "+line))
		} else {
			lines = append(lines, itemStyle.Render("  "+line))
		}
	}
	body := strings.Join(lines, "\n")
	return lipgloss.JoinVertical(lipgloss.Left, header, body, "", renderFooter(i18n.T("reports.footer"), "", m.width))
}
