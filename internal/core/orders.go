// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/toeirei/panaderia/internal/api"
	"github.com/toeirei/panaderia/internal/logging"
	"github.com/toeirei/panaderia/internal/model"
	"github.com/toeirei/panaderia/internal/state"
)

// OrderBackend is the slice of the REST client used by OrderService.
type OrderBackend interface {
	List(ctx context.Context) ([]model.Order, error)
	ByStatus(ctx context.Context, status string) ([]model.Order, error)
	ByDeliveryType(ctx context.Context, deliveryType string) ([]model.Order, error)
	ByCustomer(ctx context.Context, customerID int) ([]model.Order, error)
	Cancelled(ctx context.Context) ([]model.Order, error)
	Get(ctx context.Context, id int) (*model.Order, error)
	Save(ctx context.Context, req model.OrderRequest) (*model.Order, error)
	Update(ctx context.Context, req model.OrderRequest) (*model.Order, error)
	Cancel(ctx context.Context, id int) error
	Restore(ctx context.Context, id int) error
	Items(ctx context.Context, id int) ([]model.OrderItem, error)
	FullDetails(ctx context.Context, id int) (*model.OrderDetails, error)
	Total(ctx context.Context, id int) (decimal.Decimal, error)
	Health(ctx context.Context) (string, error)
}

var _ OrderBackend = (*api.OrderAPI)(nil)

// OrderService keeps the order store in sync with the backend. The store
// holds every order; Pending is the view the order screen shows.
type OrderService struct {
	backend OrderBackend
	Store   *state.ListStore[model.Order]
	Pending state.Computed[[]model.Order]
	Stats   state.Computed[OrderStats]
}

// NewOrderService returns a service with an empty store.
func NewOrderService(b OrderBackend) *OrderService {
	s := &OrderService{backend: b, Store: state.NewListStore[model.Order]()}
	s.Pending = state.NewComputed(func() []model.Order { return PendingOrders(s.Store.Items.Get()) })
	s.Stats = state.NewComputed(func() OrderStats { return ComputeOrderStats(s.Pending.Get()) })
	return s
}

// Load fetches every order into the store.
func (s *OrderService) Load(ctx context.Context) error {
	if s.Store.Loading.Get() {
		return nil
	}
	s.Store.Begin()
	list, err := s.backend.List(ctx)
	if err != nil {
		s.Store.Fail(err)
		return err
	}
	s.Store.Finish(list, nil)
	logging.Debugf("orders: loaded %d records, %d pending", len(list), len(PendingOrders(list)))
	return nil
}

// Get fetches one order.
func (s *OrderService) Get(ctx context.Context, id int) (*model.Order, error) {
	return s.backend.Get(ctx, id)
}

// ByStatus fetches the orders with status.
func (s *OrderService) ByStatus(ctx context.Context, status string) ([]model.Order, error) {
	return s.backend.ByStatus(ctx, status)
}

// ByDeliveryType fetches the orders with deliveryType.
func (s *OrderService) ByDeliveryType(ctx context.Context, deliveryType string) ([]model.Order, error) {
	return s.backend.ByDeliveryType(ctx, deliveryType)
}

// ByCustomer fetches the orders of one customer.
func (s *OrderService) ByCustomer(ctx context.Context, customerID int) ([]model.Order, error) {
	return s.backend.ByCustomer(ctx, customerID)
}

// Cancelled fetches the cancelled orders.
func (s *OrderService) Cancelled(ctx context.Context) ([]model.Order, error) {
	return s.backend.Cancelled(ctx)
}

// Submit validates the draft and sends it: an order id means update,
// otherwise create. The stored order list follows the backend's answer.
func (s *OrderService) Submit(ctx context.Context, d *OrderDraft) (*model.Order, error) {
	req, err := d.Request()
	if err != nil {
		return nil, err
	}
	var saved *model.Order
	if req.IDCustomerOrder != 0 {
		saved, err = s.backend.Update(ctx, req)
	} else {
		saved, err = s.backend.Save(ctx, req)
	}
	if err != nil {
		s.Store.Fail(err)
		return nil, err
	}
	if !s.Store.Replace(func(o model.Order) bool { return o.IDCustomerOrder == saved.IDCustomerOrder }, *saved) {
		s.Store.Append(*saved)
	}
	logging.Infof("orders: saved %s", model.OrderNumber(saved.IDCustomerOrder))
	return saved, nil
}

// Cancel marks an order CA. It drops out of the pending view but stays in
// the store.
func (s *OrderService) Cancel(ctx context.Context, id int) error {
	if err := s.backend.Cancel(ctx, id); err != nil {
		s.Store.Fail(err)
		return err
	}
	s.setStatus(id, model.OrderCancelled)
	return nil
}

// Restore puts a cancelled order back to PE.
func (s *OrderService) Restore(ctx context.Context, id int) error {
	if err := s.backend.Restore(ctx, id); err != nil {
		s.Store.Fail(err)
		return err
	}
	s.setStatus(id, model.OrderPending)
	return nil
}

func (s *OrderService) setStatus(id int, status string) {
	s.Store.Modify(
		func(o model.Order) bool { return o.IDCustomerOrder == id },
		func(o model.Order) model.Order { o.OrderStatus = status; return o },
	)
	logging.Infof("orders: %s status set to %s", model.OrderNumber(id), status)
}

// Items fetches the item rows of an order.
func (s *OrderService) Items(ctx context.Context, id int) ([]model.OrderItem, error) {
	return s.backend.Items(ctx, id)
}

// FullDetails fetches an order together with its items.
func (s *OrderService) FullDetails(ctx context.Context, id int) (*model.OrderDetails, error) {
	d, err := s.backend.FullDetails(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("order %d details: %w", id, err)
	}
	return d, nil
}

// Total asks the backend for the total of an order.
func (s *OrderService) Total(ctx context.Context, id int) (decimal.Decimal, error) {
	return s.backend.Total(ctx, id)
}

// Health reports the order service status text.
func (s *OrderService) Health(ctx context.Context) (string, error) {
	return s.backend.Health(ctx)
}
