// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

// Package tui provides the terminal user interface of the bakery console.
// This file holds the top-level model that routes between the screens.
package tui // import "github.com/toeirei/panaderia/internal/tui"

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/panaderia/internal/core"
	"github.com/toeirei/panaderia/internal/i18n"
	"github.com/toeirei/panaderia/internal/logging"
	tuidbg "github.com/toeirei/panaderia/internal/tui/debug"
)

// Options configures a TUI run.
type Options struct {
	// ReportDir is where exported reports are written.
	ReportDir       string
	CompressReports bool
	// SaveLanguage persists the language picked in the language menu.
	SaveLanguage func(lang string) error
	// LogFile receives log output while the TUI owns the terminal. Empty
	// discards it.
	LogFile string
}

// app is shared by every screen.
type app struct {
	svc  *core.Services
	opts Options
}

// viewState represents which part of the UI is currently active.
type viewState int

const (
	loginView viewState = iota
	// menuView is the main dashboard and navigation menu.
	menuView
	customersView
	employeesView
	productsView
	ordersView
	notificationsView
	reportsView
	salesView
	languageView
)

// routeChangedMsg carries a change of core.Services.Route into the program.
type routeChangedMsg struct{ path string }

type logoutDoneMsg struct{ err error }

// mainModel is the top-level model for the TUI. It acts as a state machine
// and router, delegating updates and view rendering to the active screen.
type mainModel struct {
	app           *app
	state         viewState
	login         *loginModel
	menu          menuModel
	customers     *customersModel
	employees     *employeesModel
	products      *productsModel
	orders        *ordersModel
	notifications *notificationsModel
	reports       *reportsModel
	language      languageModel
	dashboard     core.DashboardData
	loaded        bool
	toast         toast
	width         int
	height        int
}

func newMainModel(a *app) mainModel {
	m := mainModel{app: a}
	if a.svc.Session.IsAuthenticated() {
		m.state = menuView
		m.menu = newMenuModel(core.VisibleMenuCards(a.svc.Session))
	} else {
		m.state = loginView
		m.login = newLoginModel(a, "")
	}
	return m
}

// Init kicks off the dashboard load or the login cursor.
func (m mainModel) Init() tea.Cmd {
	if m.state == loginView {
		return m.login.Init()
	}
	return refreshDashboardCmd(m.app)
}

func (m mainModel) windowSize() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: m.width, Height: m.height}
}

func (m *mainModel) showLogin(notice string) tea.Cmd {
	m.state = loginView
	m.loaded = false
	m.dashboard = core.DashboardData{}
	m.login = newLoginModel(m.app, notice)
	m.login, _ = m.login.Update(m.windowSize())
	return m.login.Init()
}

func (m *mainModel) showMenu() tea.Cmd {
	m.state = menuView
	cursor := m.menu.cursor
	m.menu = newMenuModel(core.VisibleMenuCards(m.app.svc.Session))
	m.menu.cursor = min(cursor, len(m.menu.entries)-1)
	return refreshDashboardCmd(m.app)
}

// navigate opens the screen for path when the guard allows it.
func (m *mainModel) navigate(path string) tea.Cmd {
	d := m.app.svc.Navigate(path)
	if !d.Allowed {
		if d.Redirect == core.RouteLogin {
			return m.showLogin(i18n.T("session.expired"))
		}
		return toastCmd(errorToast(i18n.T("access.denied")))
	}
	size := m.windowSize()
	var cmd tea.Cmd
	switch d.Route.Path {
	case "/customers", "/customers/customer-form":
		m.state = customersView
		m.customers = newCustomersModel(m.app)
		m.customers, _ = m.customers.Update(size)
		if d.Route.Path == "/customers/customer-form" {
			m.customers.form = m.customers.newForm(nil)
		}
		cmd = m.customers.Init()
	case "/employees":
		m.state = employeesView
		m.employees = newEmployeesModel(m.app)
		m.employees, _ = m.employees.Update(size)
		cmd = m.employees.Init()
	case "/products", "/products/create":
		m.state = productsView
		m.products = newProductsModel(m.app)
		m.products, _ = m.products.Update(size)
		if d.Route.Path == "/products/create" {
			m.products.form = m.products.newForm(nil)
		}
		cmd = m.products.Init()
	case "/orders":
		m.state = ordersView
		m.orders = newOrdersModel(m.app)
		m.orders, _ = m.orders.Update(size)
		cmd = m.orders.Init()
	case "/notifications":
		m.state = notificationsView
		m.notifications = newNotificationsModel(m.app)
		m.notifications, _ = m.notifications.Update(size)
		cmd = m.notifications.Init()
	case "/reports":
		m.state = reportsView
		m.reports = newReportsModel(m.app)
		m.reports, _ = m.reports.Update(size)
		cmd = m.reports.Init()
	case core.RouteDashboard:
		m.state = salesView
		cmd = refreshDashboardCmd(m.app)
	default:
		cmd = m.showMenu()
	}
	return cmd
}

func (m *mainModel) logoutCmd() tea.Cmd {
	svc := m.app.svc
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		return logoutDoneMsg{err: svc.Logout(ctx)}
	}
}

// Update is the main message loop. Global messages are handled here; the
// rest goes to the active screen.
func (m mainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case toastMsg:
		return m, m.toast.show(msg)
	case toastExpiredMsg:
		m.toast.expire(msg)
		return m, nil
	case dashboardDataMsg:
		m.dashboard = msg.data
		m.loaded = true
		if msg.err != nil {
			return m.afterUpdate(toastCmd(errorToast(msg.err.Error())))
		}
		return m, nil
	case backToMenuMsg:
		return m.afterUpdate(m.showMenu())
	case loginResultMsg:
		if msg.err == nil {
			logging.Infof("tui: signed in as %s", msg.user.Username)
			return m, m.showMenu()
		}
	case logoutDoneMsg:
		if msg.err != nil {
			logging.Warnf("tui: logout: %v", msg.err)
		}
		return m, nil
	case languageChangedMsg:
		// Screens cache translated titles; rebuild the menu in the new language.
		cmd := m.showMenu()
		if msg.err != nil {
			return m, tea.Batch(cmd, toastCmd(errorToast(i18n.T("language.save_failed", msg.err))))
		}
		return m, cmd
	case routeChangedMsg:
		return m.afterUpdate(nil)
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	switch m.state {
	case loginView:
		m.login, cmd = m.login.Update(msg)
	case customersView:
		m.customers, cmd = m.customers.Update(msg)
	case employeesView:
		m.employees, cmd = m.employees.Update(msg)
	case productsView:
		m.products, cmd = m.products.Update(msg)
	case ordersView:
		m.orders, cmd = m.orders.Update(msg)
	case notificationsView:
		m.notifications, cmd = m.notifications.Update(msg)
	case reportsView:
		m.reports, cmd = m.reports.Update(msg)
	case languageView:
		m.language, cmd = m.language.Update(msg)
	case salesView:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "q", "esc":
				cmd = m.showMenu()
			case "r":
				cmd = refreshDashboardCmd(m.app)
			}
		}
	default: // menuView
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			cmd = m.updateMenu(keyMsg)
		}
	}
	return m.afterUpdate(cmd)
}

// afterUpdate sends the user back to the login screen once the session is
// gone, e.g. after the backend rejected the token.
func (m mainModel) afterUpdate(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if m.state != loginView && !m.app.svc.Session.IsAuthenticated() {
		logging.Debugf("tui: session lost, showing login")
		return m, m.showLogin(i18n.T("session.expired"))
	}
	return m, cmd
}

func (m *mainModel) updateMenu(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "up", "k":
		if m.menu.cursor > 0 {
			m.menu.cursor--
		}
	case "down", "j":
		if m.menu.cursor < len(m.menu.entries)-1 {
			m.menu.cursor++
		}
	case "r":
		return refreshDashboardCmd(m.app)
	case "n":
		return m.navigate("/notifications")
	case "L":
		m.state = languageView
		m.language = newLanguageModel(m.app)
	case "enter":
		if len(m.menu.entries) == 0 {
			return nil
		}
		switch route := m.menu.entries[m.menu.cursor].route; route {
		case menuLanguage:
			m.state = languageView
			m.language = newLanguageModel(m.app)
		case menuLogout:
			// Switch first so the route change from Logout finds us on the login screen.
			cmd := m.showLogin(i18n.T("login.signed_out"))
			return tea.Batch(cmd, m.logoutCmd())
		default:
			return m.navigate(route)
		}
	}
	return nil
}

// View renders the active screen with the toast line below it.
func (m mainModel) View() string {
	var body string
	switch m.state {
	case loginView:
		body = m.login.View()
	case customersView:
		body = m.customers.View()
	case employeesView:
		body = m.employees.View()
	case productsView:
		body = m.products.View()
	case ordersView:
		body = m.orders.View()
	case notificationsView:
		body = m.notifications.View()
	case reportsView:
		body = m.reports.View()
	case languageView:
		body = m.language.View()
	case salesView:
		body = renderSalesView(m.dashboard, m.width)
	default:
		body = m.menu.View(m.dashboard, m.loaded, m.width, m.height)
	}
	if t := m.toast.View(m.width); t != "" {
		return lipgloss.JoinVertical(lipgloss.Left, body, t)
	}
	return body
}

// Run is the main entrypoint for the TUI. It restores a stored session and
// runs the Bubble Tea program until the user quits.
func Run(svc *core.Services, opts Options) error {
	// PANADERIA_TUI_TEST=1 opens the component test screen instead.
	if os.Getenv(tuidbg.EnvVar) == "1" {
		return tuidbg.Launch()
	}

	var logOut io.Writer = io.Discard
	if opts.LogFile != "" {
		f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logging.SetOutput(logOut)
	defer logging.SetOutput(os.Stderr)

	if err := svc.Start(context.Background()); err != nil {
		logging.Warnf("tui: could not restore session: %v", err)
	}

	p := tea.NewProgram(newMainModel(&app{svc: svc, opts: opts}), tea.WithAltScreen())
	unsubscribe := svc.Route.Subscribe(func(path string) {
		// Send blocks until the program reads it; never call it from the
		// goroutine that runs Update.
		go p.Send(routeChangedMsg{path: path})
	})
	defer unsubscribe()

	if _, err := p.Run(); err != nil {
		logging.Errorf("TUI run error: %v", err)
		return err
	}
	return nil
}
