// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/toeirei/panaderia/internal/model"
)

// CustomerAPI covers the customer endpoints.
type CustomerAPI struct {
	c    *Client
	path string
}

// List returns every customer.
func (a *CustomerAPI) List(ctx context.Context) ([]model.Customer, error) {
	var out []model.Customer
	err := a.c.get(ctx, ResourceCustomer, a.path, &out)
	return out, err
}

// ListWithRetry is List wrapped in the configured retry count. It is the
// only retried call of the client.
func (a *CustomerAPI) ListWithRetry(ctx context.Context) ([]model.Customer, error) {
	return Retry(ctx, a.c.Retries(), a.List)
}

// Get returns one customer.
func (a *CustomerAPI) Get(ctx context.Context, id int) (*model.Customer, error) {
	var out model.Customer
	if err := a.c.get(ctx, ResourceCustomer, fmt.Sprintf("%s/%d", a.path, id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ByStatus returns the customers with the given status code.
func (a *CustomerAPI) ByStatus(ctx context.Context, status string) ([]model.Customer, error) {
	var out []model.Customer
	err := a.c.get(ctx, ResourceCustomer, a.path+"/status/"+url.PathEscape(status), &out)
	return out, err
}

// Save creates a customer.
func (a *CustomerAPI) Save(ctx context.Context, cust model.Customer) (*model.Customer, error) {
	var out model.Customer
	if err := a.c.send(ctx, http.MethodPost, ResourceCustomer, a.path+"/save", cust, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces a customer. The id travels in the body.
func (a *CustomerAPI) Update(ctx context.Context, cust model.Customer) (*model.Customer, error) {
	var out model.Customer
	if err := a.c.send(ctx, http.MethodPut, ResourceCustomer, a.path+"/update", cust, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete soft-deletes a customer.
func (a *CustomerAPI) Delete(ctx context.Context, id int) error {
	return a.c.send(ctx, http.MethodPatch, ResourceCustomer, fmt.Sprintf("%s/delete/%d", a.path, id), struct{}{}, nil)
}

// Restore reactivates a soft-deleted customer.
func (a *CustomerAPI) Restore(ctx context.Context, id int) error {
	return a.c.send(ctx, http.MethodPatch, ResourceCustomer, fmt.Sprintf("%s/restore/%d", a.path, id), struct{}{}, nil)
}

// ReportPDF downloads the customer report.
func (a *CustomerAPI) ReportPDF(ctx context.Context) ([]byte, error) {
	return a.c.raw(ctx, request{method: http.MethodGet, url: a.path + "/pdf", resource: ResourceCustomer, accept: "application/pdf"})
}

// UpcomingBirthdays asks the backend for birthdays in the next days days.
func (a *CustomerAPI) UpcomingBirthdays(ctx context.Context, days int) ([]model.Customer, error) {
	var out []model.Customer
	err := a.c.get(ctx, ResourceCustomer, fmt.Sprintf("%s/upcoming-birthdays/%d", a.path, days), &out)
	return out, err
}

// NewCustomers returns the customers the backend considers new.
func (a *CustomerAPI) NewCustomers(ctx context.Context) ([]model.Customer, error) {
	var out []model.Customer
	err := a.c.get(ctx, ResourceCustomer, a.path+"/customer-new", &out)
	return out, err
}
