// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/panaderia/internal/core"
	"github.com/toeirei/panaderia/internal/i18n"
	"github.com/toeirei/panaderia/internal/model"
)

// dashboardDataMsg is a message containing the data for the main menu dashboard.
type dashboardDataMsg struct {
	data core.DashboardData
	err  error
}

// Menu entries after the role-filtered cards.
const (
	menuLanguage = "language"
	menuLogout   = "logout"
)

type menuEntry struct {
	title string
	icon  string
	route string
}

// menuModel holds the state for the main menu.
type menuModel struct {
	entries []menuEntry
	cursor  int
}

var cardIcons = map[string]string{
	"groups":        "👥",
	"shopping_cart": "🛒",
	"store":         "🥐",
	"group":         "🧑‍🍳",
	"person_add":    "➕",
	"add_business":  "➕",
	"notifications": "🔔",
	"assessment":    "📄",
	"trending_up":   "📈",
}

func newMenuModel(cards []core.MenuCard) menuModel {
	m := menuModel{}
	for _, c := range cards {
		icon := cardIcons[c.Icon]
		if icon == "" {
			icon = "•"
		}
		m.entries = append(m.entries, menuEntry{title: c.Title, icon: icon, route: c.Route})
	}
	m.entries = append(m.entries,
		menuEntry{title: i18n.T("menu.language"), icon: "🌐", route: menuLanguage},
		menuEntry{title: i18n.T("menu.logout"), icon: "🚪", route: menuLogout},
	)
	return m
}

// refreshDashboardCmd is a tea.Cmd that fetches summary data for the main menu.
func refreshDashboardCmd(a *app) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		data, err := a.svc.BuildDashboardData(ctx)
		return dashboardDataMsg{data: data, err: err}
	}
}

// formatLabelPadding pads label so values line up in a column.
func formatLabelPadding(label, value string, labelWidth int) string {
	if labelWidth <= 0 || lipgloss.Width(label) >= labelWidth {
		return label + " " + value
	}
	return label + strings.Repeat(" ", labelWidth-lipgloss.Width(label)) + " " + value
}

func statusBlock(items [][2]string) []string {
	w := 0
	for _, it := range items {
		w = max(w, lipgloss.Width(it[0]))
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, formatLabelPadding(it[0], it[1], w))
	}
	return out
}

func birthdayLine(cs []model.Customer) string {
	if len(cs) == 0 {
		return helpStyle.Render(i18n.T("dashboard.none"))
	}
	names := make([]string, 0, len(cs))
	for _, c := range cs {
		names = append(names, c.FullName())
	}
	return strings.Join(names, ", ")
}

// View renders the main menu and dashboard.
func (m menuModel) View(data core.DashboardData, loaded bool, width, height int) string {
	title := mainTitleStyle.Render("🥖 " + i18n.T("dashboard.title"))
	greeting := i18n.T("dashboard.subtitle")
	if data.UserName != "" {
		roles := make([]string, 0, len(data.Roles))
		for _, r := range data.Roles {
			roles = append(roles, model.RoleDisplayName(strings.TrimPrefix(r, "ROLE_")))
		}
		greeting = i18n.T("dashboard.greeting", data.UserName, strings.Join(roles, ", "))
	}
	header := lipgloss.JoinVertical(lipgloss.Left, title, helpStyle.Render("   "+greeting))

	// Menu List (Left Pane)
	menuItems := []string{paneTitleStyle.Render(i18n.T("menu.navigation")), ""}
	for i, e := range m.entries {
		line := e.icon + " " + e.title
		if e.route == "/notifications" && data.UnreadCount > 0 {
			line += " " + unreadStyle.Render(fmt.Sprintf("(%d)", data.UnreadCount))
		}
		if m.cursor == i {
			menuItems = append(menuItems, selectedItemStyle.Render("▸ ")+line)
		} else {
			menuItems = append(menuItems, itemStyle.Render("  "+line))
		}
	}
	menuContent := lipgloss.JoinVertical(lipgloss.Left, menuItems...)

	menuWidth := 34
	dashboardWidth := max(width-menuWidth-12, 30)

	// Dashboard (Right Pane)
	var dash []string
	if !loaded {
		dash = append(dash, helpStyle.Render(i18n.T("list.loading")))
	} else {
		dash = append(dash, paneTitleStyle.Render(i18n.T("dashboard.summary")), "")
		dash = append(dash, statusBlock([][2]string{
			{i18n.T("dashboard.customers"), i18n.T("dashboard.customers_value", data.Customers.Total, data.Customers.Active, data.NewCustomers)},
			{i18n.T("dashboard.products"), i18n.T("dashboard.products_value", data.Products.Total, data.Products.Active, data.Products.OutOfStock)},
			{i18n.T("dashboard.orders"), i18n.T("dashboard.orders_value", data.Orders.Total, data.Orders.Delivery, data.Orders.Local, data.Orders.PendingPayment)},
			{i18n.T("dashboard.employees"), i18n.T("dashboard.employees_value", data.Employees.Total, data.Employees.Active)},
		})...)

		dash = append(dash, "", paneTitleStyle.Render(i18n.T("dashboard.birthdays")), "")
		dash = append(dash, statusBlock([][2]string{
			{i18n.T("dashboard.birthdays_today"), birthdayLine(data.BirthdaysToday)},
			{i18n.T("dashboard.birthdays_soon"), birthdayLine(data.BirthdaysSoon)},
		})...)

		if len(data.WeeklySales.Values) > 0 {
			charts := lipgloss.JoinHorizontal(lipgloss.Top,
				renderBarChart(data.WeeklySales, dashboardWidth/2-2), "    ",
				renderBarChart(data.TopProducts, dashboardWidth/2-2))
			dash = append(dash, "", charts)
		}
		if len(data.PartialFailures) > 0 {
			dash = append(dash, "", specialStyle.Render(i18n.T("dashboard.partial", strings.Join(data.PartialFailures, ", "))))
		}
	}
	dashboardContent := lipgloss.JoinVertical(lipgloss.Left, dash...)

	paneHeight := max(height-lipgloss.Height(header)-4, 10)
	leftPane := paneStyle.Width(menuWidth).Height(paneHeight).Render(menuContent)
	rightPane := paneStyle.Width(dashboardWidth).Height(paneHeight).MarginLeft(2).Render(dashboardContent)
	mainArea := lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)

	footer := renderFooter(i18n.T("dashboard.footer"), "", width)
	return lipgloss.JoinVertical(lipgloss.Top, header, mainArea, footer)
}

// renderSalesView is the full-screen statistics page.
func renderSalesView(data core.DashboardData, width int) string {
	w := max(width-8, 40)
	body := lipgloss.JoinVertical(lipgloss.Left,
		renderBarChart(data.WeeklySales, w), "",
		helpStyle.Render(i18n.T("sales.total", data.WeeklySales.Sum().String())), "",
		renderBarChart(data.TopProducts, w),
	)
	return lipgloss.JoinVertical(lipgloss.Left,
		mainTitleStyle.Render("📈 "+i18n.T("sales.title")),
		paneStyle.Render(body),
		renderFooter(i18n.T("sales.footer"), "", width))
}
