// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"context"

	"github.com/toeirei/panaderia/internal/logging"
	"github.com/toeirei/panaderia/internal/model"
)

// Resolvers preload the data of a screen before it opens. List resolvers
// fall back to an empty list and detail resolvers to nil, so a failing
// backend never blocks navigation.

func statusOrActive(status string) string {
	if status == "" {
		return model.StatusActive
	}
	return status
}

func resolveList[T any](ctx context.Context, what, status string, fetch func(context.Context, string) ([]T, error)) []T {
	list, err := fetch(ctx, statusOrActive(status))
	if err != nil {
		logging.Warnf("Error loading %s: %v", what, err)
		return []T{}
	}
	return list
}

func resolveOne[T any](ctx context.Context, what string, id int, fetch func(context.Context, int) (*T, error)) *T {
	if id <= 0 {
		return nil
	}
	v, err := fetch(ctx, id)
	if err != nil {
		logging.Warnf("Error loading %s %d: %v", what, id, err)
		return nil
	}
	return v
}

// ResolveCustomers loads the customers with status, A when empty.
func (s *Services) ResolveCustomers(ctx context.Context, status string) []model.Customer {
	return resolveList(ctx, "customers", status, s.Customers.ByStatus)
}

// ResolveCustomer loads one customer with its derived fields.
func (s *Services) ResolveCustomer(ctx context.Context, id int) *model.Customer {
	return resolveOne(ctx, "customer", id, s.Customers.GetWithAge)
}

// ResolveEmployees loads the employees with status, A when empty.
func (s *Services) ResolveEmployees(ctx context.Context, status string) []model.Employee {
	return resolveList(ctx, "employees", status, s.Employees.ByStatus)
}

// ResolveEmployee loads one employee.
func (s *Services) ResolveEmployee(ctx context.Context, id int) *model.Employee {
	return resolveOne(ctx, "employee", id, s.Employees.Get)
}

// ResolveProducts loads the products with status, A when empty.
func (s *Services) ResolveProducts(ctx context.Context, status string) []model.Product {
	return resolveList(ctx, "products", status, s.Products.ByStatus)
}

// ResolveProduct loads one product.
func (s *Services) ResolveProduct(ctx context.Context, id int) *model.Product {
	return resolveOne(ctx, "product", id, s.Products.Get)
}

// ResolveOrders loads the orders with status, PE when empty.
func (s *Services) ResolveOrders(ctx context.Context, status string) []model.Order {
	if status == "" {
		status = model.OrderPending
	}
	return resolveList(ctx, "orders", status, s.Orders.ByStatus)
}

// ResolveOrder loads one order.
func (s *Services) ResolveOrder(ctx context.Context, id int) *model.Order {
	return resolveOne(ctx, "order", id, s.Orders.Get)
}
