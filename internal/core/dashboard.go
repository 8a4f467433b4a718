// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"context"

	"github.com/toeirei/panaderia/internal/logging"
	"github.com/toeirei/panaderia/internal/model"
)

// DashboardData holds aggregated values for the main dashboard.
type DashboardData struct {
	UserName        string
	Roles           []string
	Customers       CustomerCounts
	NewCustomers    int
	Products        ProductCounts
	Orders          OrderStats
	Employees       EmployeeCounts
	BirthdaysToday  []model.Customer
	BirthdaysSoon   []model.Customer
	Notifications   []Notification
	UnreadCount     int
	WeeklySales     Series
	TopProducts     Series
	MenuCards       []MenuCard
	PartialFailures []string
}

// BuildDashboardData loads the lists the dashboard summarises and computes
// the counters. A failing resource leaves its counters at zero and is
// reported in PartialFailures; only a missing session is an error.
func (s *Services) BuildDashboardData(ctx context.Context) (DashboardData, error) {
	var out DashboardData

	user := s.Session.Current()
	if user == nil {
		return out, ErrNotAuthenticated
	}
	out.UserName = DisplayUserName(user.Username)
	out.Roles = user.Roles
	out.MenuCards = VisibleMenuCards(s.Session)

	step := func(name string, fn func(context.Context) error) {
		if err := fn(ctx); err != nil {
			logging.Warnf("dashboard: %s unavailable: %v", name, err)
			out.PartialFailures = append(out.PartialFailures, name)
		}
	}
	step("customers", s.Customers.Load)
	step("products", s.Products.Load)
	step("orders", s.Orders.Load)
	step("employees", s.Employees.Load)

	out.Customers = s.Customers.Counts()
	out.NewCustomers = out.Customers.New
	out.Products = s.Products.Counts()
	out.Orders = s.Orders.Stats.Get()
	out.Employees = s.Employees.Counts()

	report := CheckBirthdays(s.Customers.Store.Items.Get(), s.Customers.Now())
	out.BirthdaysToday = report.Today
	out.BirthdaysSoon = report.Upcoming

	if list, err := s.Notifications.Refresh(ctx); err == nil {
		out.Notifications = list
	}
	out.UnreadCount = s.Notifications.UnreadCount()

	out.WeeklySales = WeeklySales()
	out.TopProducts = TopProducts()
	return out, nil
}
