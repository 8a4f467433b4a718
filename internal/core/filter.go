// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"strconv"
	"strings"

	"github.com/toeirei/panaderia/internal/model"
	"github.com/toeirei/panaderia/util/slicest"
)

// Every filter returns a new slice and keeps the input order unless noted.

// CustomerFilter holds the criteria of the customer list. An empty Status
// or StatusAll shows every record; nil age bounds are open.
type CustomerFilter struct {
	Status       string
	Search       string
	DocumentType string
	Gender       string
	MinAge       *int
	MaxAge       *int
}

// DefaultCustomerFilter shows active customers.
func DefaultCustomerFilter() CustomerFilter {
	return CustomerFilter{Status: model.StatusActive}
}

// FilterByStatus keeps the records whose status equals status. An empty
// status or StatusAll keeps everything.
func FilterByStatus[T any](items []T, status string, statusOf func(T) string) []T {
	return slicest.Filter(items, func(it T) bool {
		return status == "" || status == model.StatusAll || statusOf(it) == status
	})
}

// FilterCustomers applies f to customers.
func FilterCustomers(customers []model.Customer, f CustomerFilter) []model.Customer {
	out := FilterByStatus(customers, f.Status, func(c model.Customer) string { return c.Status })
	term := strings.TrimSpace(f.Search)

	kept := out[:0]
	for _, c := range out {
		if term != "" && !anyContains(term, c.FirstName, c.LastName, c.DocumentNumber, c.Phone, c.Email,
			c.Address.District, c.Address.AddrStreet, c.Address.Reference) {
			continue
		}
		if f.DocumentType != "" && model.DocumentTypeKey(c.DocumentType) != model.DocumentTypeKey(f.DocumentType) {
			continue
		}
		if f.Gender != "" && !strings.EqualFold(c.Gender, f.Gender) {
			continue
		}
		if f.MinAge != nil || f.MaxAge != nil {
			if c.Age == nil {
				continue
			}
			if f.MinAge != nil && *c.Age < *f.MinAge {
				continue
			}
			if f.MaxAge != nil && *c.Age > *f.MaxAge {
				continue
			}
		}
		kept = append(kept, c)
	}
	return kept
}

// FilterEmployees filters by status and a search over names, document,
// e-mail and role label.
func FilterEmployees(employees []model.Employee, status, search string) []model.Employee {
	out := FilterByStatus(employees, status, func(e model.Employee) string { return e.Status })
	term := strings.TrimSpace(search)
	if term == "" {
		return out
	}
	kept := out[:0]
	for _, e := range out {
		if anyContains(term, e.FirstName, e.LastName, e.DocumentNumber, e.Email, model.RoleDisplayName(e.RoleName)) {
			kept = append(kept, e)
		}
	}
	return kept
}

// FilterProducts filters by status, where "" means active, and a search
// over name, description, category, price and units. The result lists the
// newest products first, i.e. reverses the input order.
func FilterProducts(products []model.Product, status, search string) []model.Product {
	if status == "" {
		status = model.StatusActive
	}
	out := FilterByStatus(products, status, func(p model.Product) string { return p.Status })
	term := strings.TrimSpace(search)

	kept := make([]model.Product, 0, len(out))
	for i := len(out) - 1; i >= 0; i-- {
		p := out[i]
		if term != "" && !anyContains(term, p.NameProduct, p.Description, p.Category,
			p.Price.String(), strconv.Itoa(p.Units)) {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

// OrderQuickFilter selects a subset of the pending orders.
type OrderQuickFilter string

const (
	OrdersAll            OrderQuickFilter = "todos"
	OrdersDelivery       OrderQuickFilter = "domicilio"
	OrdersLocal          OrderQuickFilter = "local"
	OrdersPendingPayment OrderQuickFilter = "pendiente"
)

// PendingOrders keeps only orders that are still open.
func PendingOrders(orders []model.Order) []model.Order {
	return slicest.Filter(orders, func(o model.Order) bool { return o.OrderStatus == model.OrderPending })
}

// FilterOrders applies the quick filter and then the search term over
// customer name, order id, payment status label, delivery type, notes and
// advance payment method.
func FilterOrders(orders []model.Order, quick OrderQuickFilter, search string) []model.Order {
	term := strings.TrimSpace(search)
	out := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		switch quick {
		case OrdersDelivery:
			if o.DeliveryType != model.DeliveryHome {
				continue
			}
		case OrdersLocal:
			if o.DeliveryType != model.DeliveryLocal {
				continue
			}
		case OrdersPendingPayment:
			if o.PaymentStatus != model.PaymentPending {
				continue
			}
		}
		if term != "" {
			notes := ""
			if o.Notes != nil {
				notes = *o.Notes
			}
			if !anyContains(term, o.Customer.FullName(), strconv.Itoa(o.IDCustomerOrder),
				model.PaymentStatusText(o.PaymentStatus), o.DeliveryType, notes, o.AdvancePaymentMethod) {
				continue
			}
		}
		out = append(out, o)
	}
	return out
}

// OrderStats are the counters above the order list.
type OrderStats struct {
	Total          int
	Delivery       int
	Local          int
	PendingPayment int
}

// ComputeOrderStats counts orders by delivery type and payment state.
func ComputeOrderStats(orders []model.Order) OrderStats {
	return OrderStats{
		Total:          len(orders),
		Delivery:       slicest.Count(orders, func(o model.Order) bool { return o.DeliveryType == model.DeliveryHome }),
		Local:          slicest.Count(orders, func(o model.Order) bool { return o.DeliveryType == model.DeliveryLocal }),
		PendingPayment: slicest.Count(orders, func(o model.Order) bool { return o.PaymentStatus == model.PaymentPending }),
	}
}
