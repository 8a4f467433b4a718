// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

// Package core holds the business logic of the console: one service per
// backend resource, the pure filters and calendar helpers behind the list
// screens, birthday notifications, navigation guards and report export.
// The TUI and the CLI both drive the same Services value.
package core

import (
	"context"
	"time"

	"github.com/toeirei/panaderia/internal/api"
	"github.com/toeirei/panaderia/internal/config"
	"github.com/toeirei/panaderia/internal/db"
	"github.com/toeirei/panaderia/internal/logging"
	"github.com/toeirei/panaderia/internal/model"
	"github.com/toeirei/panaderia/internal/session"
	"github.com/toeirei/panaderia/internal/state"
)

// Services wires the REST client, the session and the local store into the
// resource services.
type Services struct {
	API           *api.Client
	Session       *session.Manager
	Store         db.Store
	Exports       db.ExportLog
	Customers     *CustomerService
	Employees     *EmployeeService
	Products      *ProductService
	Orders        *OrderService
	Notifications *Notifications

	// Route is the screen the console should show. A 401 from the backend
	// moves it to the login screen.
	Route *state.Signal[string]
	Now   func() time.Time
}

// NewServices builds the service graph. store may be nil to keep the
// session in memory.
func NewServices(cfg config.API, store db.Store, opts ...api.Option) (*Services, error) {
	s := &Services{
		Session: session.NewManager(store),
		Store:   store,
		Route:   state.NewSignal(RouteLogin),
		Now:     time.Now,
	}
	if el, ok := store.(db.ExportLog); ok {
		s.Exports = el
	}

	opts = append([]api.Option{
		api.WithTokenSource(s.Session.Token),
		api.WithUnauthorizedHandler(s.handleUnauthorized),
	}, opts...)
	client, err := api.New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	s.API = client

	s.Customers = NewCustomerService(client.Customers)
	s.Employees = NewEmployeeService(client.Employees)
	s.Products = NewProductService(client.Products)
	s.Orders = NewOrderService(client.Orders)
	s.Notifications = NewNotifications(s.Customers, store)
	return s, nil
}

// SetClock replaces the clock of every service. Tests use it to pin
// "today".
func (s *Services) SetClock(now func() time.Time) {
	s.Now = now
	s.Customers.Now = now
	s.Employees.Now = now
	s.Products.Now = now
	s.Notifications.Now = now
}

func (s *Services) handleUnauthorized() {
	user := ""
	if u := s.Session.Current(); u != nil {
		user = u.Username
	}
	logging.Warnf("session: backend rejected the token of %q, logging out", user)
	if err := s.Session.Clear(context.Background()); err != nil {
		logging.Errorf("session: %v", err)
	}
	s.Route.Set(RouteLogin)
}

// Start restores a stored session and picks the first screen.
func (s *Services) Start(ctx context.Context) error {
	if err := s.Session.Load(ctx); err != nil {
		return err
	}
	if s.Session.IsAuthenticated() {
		s.Route.Set(RouteDashboard)
	} else {
		s.Route.Set(RouteLogin)
	}
	return nil
}

// Navigate runs the guard for path and moves Route to the target or to the
// redirect.
func (s *Services) Navigate(path string) Decision {
	d := Guard(s.Session, path)
	if d.Allowed {
		s.Route.Set(path)
	} else {
		s.Route.Set(d.Redirect)
	}
	return d
}

// Login signs in and opens the dashboard.
func (s *Services) Login(ctx context.Context, username string, password []byte) (*model.User, error) {
	u, err := s.Session.Login(ctx, s.API.Auth, username, password)
	if err != nil {
		return nil, err
	}
	s.Route.Set(RouteDashboard)
	return u, nil
}

// Register creates a backend account without touching the session.
func (s *Services) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error) {
	return s.Session.Register(ctx, s.API.Auth, req)
}

// Logout ends the session and returns to the login screen.
func (s *Services) Logout(ctx context.Context) error {
	err := s.Session.Logout(ctx)
	s.Route.Set(RouteLogin)
	return err
}

// Close releases the local store.
func (s *Services) Close() error {
	if s.Store == nil {
		return nil
	}
	return s.Store.Close()
}
