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

// ProductAPI covers the product endpoints. Products have no delete
// endpoint of their own; status changes go through Update.
type ProductAPI struct {
	c    *Client
	path string
}

func (a *ProductAPI) List(ctx context.Context) ([]model.Product, error) {
	var out []model.Product
	err := a.c.get(ctx, ResourceProduct, a.path, &out)
	return out, err
}

func (a *ProductAPI) Get(ctx context.Context, id int) (*model.Product, error) {
	var out model.Product
	if err := a.c.get(ctx, ResourceProduct, fmt.Sprintf("%s/%d", a.path, id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ProductAPI) ByStatus(ctx context.Context, status string) ([]model.Product, error) {
	var out []model.Product
	err := a.c.get(ctx, ResourceProduct, a.path+"/status/"+url.PathEscape(status), &out)
	return out, err
}

func (a *ProductAPI) Save(ctx context.Context, p model.Product) (*model.Product, error) {
	var out model.Product
	if err := a.c.send(ctx, http.MethodPost, ResourceProduct, a.path+"/save", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ProductAPI) Update(ctx context.Context, p model.Product) (*model.Product, error) {
	var out model.Product
	if err := a.c.send(ctx, http.MethodPut, ResourceProduct, a.path+"/update", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ReportPDF downloads the product report.
func (a *ProductAPI) ReportPDF(ctx context.Context) ([]byte, error) {
	return a.c.raw(ctx, request{method: http.MethodGet, url: a.path + "/pdf", resource: ResourceProduct, accept: "application/pdf"})
}
