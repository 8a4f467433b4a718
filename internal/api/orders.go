// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
	"github.com/toeirei/panaderia/internal/model"
)

// OrderAPI covers the customer order endpoints.
type OrderAPI struct {
	c    *Client
	path string
}

func (a *OrderAPI) list(ctx context.Context, u string) ([]model.Order, error) {
	var out []model.Order
	err := a.c.get(ctx, ResourceOrder, u, &out)
	return out, err
}

func (a *OrderAPI) List(ctx context.Context) ([]model.Order, error) { return a.list(ctx, a.path) }

func (a *OrderAPI) ByStatus(ctx context.Context, status string) ([]model.Order, error) {
	return a.list(ctx, a.path+"/status/"+url.PathEscape(status))
}

func (a *OrderAPI) ByDeliveryType(ctx context.Context, deliveryType string) ([]model.Order, error) {
	return a.list(ctx, a.path+"/delivery-type/"+url.PathEscape(deliveryType))
}

func (a *OrderAPI) ByCustomer(ctx context.Context, customerID int) ([]model.Order, error) {
	return a.list(ctx, fmt.Sprintf("%s/customer/%d", a.path, customerID))
}

// Cancelled returns the cancelled orders.
func (a *OrderAPI) Cancelled(ctx context.Context) ([]model.Order, error) {
	return a.list(ctx, a.path+"/canceled")
}

func (a *OrderAPI) Get(ctx context.Context, id int) (*model.Order, error) {
	var out model.Order
	if err := a.c.get(ctx, ResourceOrder, fmt.Sprintf("%s/%d", a.path, id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *OrderAPI) Save(ctx context.Context, req model.OrderRequest) (*model.Order, error) {
	var out model.Order
	if err := a.c.send(ctx, http.MethodPost, ResourceOrder, a.path+"/save", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *OrderAPI) Update(ctx context.Context, req model.OrderRequest) (*model.Order, error) {
	var out model.Order
	if err := a.c.send(ctx, http.MethodPut, ResourceOrder, a.path+"/update", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Cancel marks an order cancelled on the backend.
func (a *OrderAPI) Cancel(ctx context.Context, id int) error {
	return a.c.send(ctx, http.MethodPatch, ResourceOrder, fmt.Sprintf("%s/delete/%d", a.path, id), struct{}{}, nil)
}

// Restore reopens a cancelled order.
func (a *OrderAPI) Restore(ctx context.Context, id int) error {
	return a.c.send(ctx, http.MethodPatch, ResourceOrder, fmt.Sprintf("%s/restore/%d", a.path, id), struct{}{}, nil)
}

// Items returns the product lines of an order.
func (a *OrderAPI) Items(ctx context.Context, id int) ([]model.OrderItem, error) {
	var out []model.OrderItem
	err := a.c.get(ctx, ResourceOrder, fmt.Sprintf("%s/items/%d", a.path, id), &out)
	return out, err
}

// FullDetails returns an order with its product lines.
func (a *OrderAPI) FullDetails(ctx context.Context, id int) (*model.OrderDetails, error) {
	var out model.OrderDetails
	if err := a.c.get(ctx, ResourceOrder, fmt.Sprintf("%s/full-details/%d", a.path, id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Total returns the backend's computed total of an order.
func (a *OrderAPI) Total(ctx context.Context, id int) (decimal.Decimal, error) {
	var out decimal.Decimal
	err := a.c.get(ctx, ResourceOrder, fmt.Sprintf("%s/total/%d", a.path, id), &out)
	return out, err
}

// Health returns the order service's health text.
func (a *OrderAPI) Health(ctx context.Context) (string, error) {
	var out string
	err := a.c.do(ctx, request{method: http.MethodGet, url: a.path + "/health", resource: ResourceOrder, accept: "text/plain"}, &out)
	return out, err
}
