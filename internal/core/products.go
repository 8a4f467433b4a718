// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/toeirei/panaderia/internal/api"
	"github.com/toeirei/panaderia/internal/logging"
	"github.com/toeirei/panaderia/internal/model"
	"github.com/toeirei/panaderia/internal/state"
)

// ProductBackend is the slice of the REST client used by ProductService.
type ProductBackend interface {
	List(ctx context.Context) ([]model.Product, error)
	Get(ctx context.Context, id int) (*model.Product, error)
	ByStatus(ctx context.Context, status string) ([]model.Product, error)
	Save(ctx context.Context, p model.Product) (*model.Product, error)
	Update(ctx context.Context, p model.Product) (*model.Product, error)
	ReportPDF(ctx context.Context) ([]byte, error)
}

var _ ProductBackend = (*api.ProductAPI)(nil)

// ProductService keeps the product catalogue store in sync with the
// backend. The backend has no delete endpoint for products, so
// deactivation goes through Update with status I.
type ProductService struct {
	backend ProductBackend
	Store   *state.ListStore[model.Product]
	Now     func() time.Time
}

// NewProductService returns a service with an empty store.
func NewProductService(b ProductBackend) *ProductService {
	return &ProductService{backend: b, Store: state.NewListStore[model.Product](), Now: time.Now}
}

// Load fetches the full catalogue into the store.
func (s *ProductService) Load(ctx context.Context) error {
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
	return nil
}

// Get fetches one product.
func (s *ProductService) Get(ctx context.Context, id int) (*model.Product, error) {
	return s.backend.Get(ctx, id)
}

// ByStatus fetches the products with status.
func (s *ProductService) ByStatus(ctx context.Context, status string) ([]model.Product, error) {
	return s.backend.ByStatus(ctx, status)
}

func validateProduct(p model.Product) error {
	if err := model.Validate(p); err != nil {
		return err
	}
	if p.Price.LessThanOrEqual(decimal.Zero) {
		return model.ValidateField("price", 0, "gt=0")
	}
	return nil
}

// Create adds a product. It starts active and dated today unless the
// caller set those fields.
func (s *ProductService) Create(ctx context.Context, p model.Product) (*model.Product, error) {
	if p.Status == "" {
		p.Status = model.StatusActive
	}
	if p.CreationDate == "" {
		p.CreationDate = model.FormatDate(s.Now())
	}
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	saved, err := s.backend.Save(ctx, p)
	if err != nil {
		s.Store.Fail(err)
		return nil, err
	}
	s.Store.Append(*saved)
	logging.Infof("products: created #%d %s", saved.ID, saved.NameProduct)
	return saved, nil
}

// Update saves p and replaces the stored record with the same id.
func (s *ProductService) Update(ctx context.Context, p model.Product) (*model.Product, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("update product: %w", ErrNotFound)
	}
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	return s.save(ctx, p)
}

func (s *ProductService) save(ctx context.Context, p model.Product) (*model.Product, error) {
	saved, err := s.backend.Update(ctx, p)
	if err != nil {
		s.Store.Fail(err)
		return nil, err
	}
	if !s.Store.Replace(func(x model.Product) bool { return x.ID == saved.ID }, *saved) {
		s.Store.Append(*saved)
	}
	return saved, nil
}

// SoftDelete deactivates a product.
func (s *ProductService) SoftDelete(ctx context.Context, id int) error {
	return s.setStatus(ctx, id, model.StatusInactive)
}

// Restore reactivates a product.
func (s *ProductService) Restore(ctx context.Context, id int) error {
	return s.setStatus(ctx, id, model.StatusActive)
}

func (s *ProductService) setStatus(ctx context.Context, id int, status string) error {
	p, err := s.backend.Get(ctx, id)
	if err != nil {
		s.Store.Fail(err)
		return err
	}
	p.Status = status
	if _, err := s.save(ctx, *p); err != nil {
		return err
	}
	logging.Infof("products: #%d status set to %s", id, status)
	return nil
}

// ReportPDF downloads the product report.
func (s *ProductService) ReportPDF(ctx context.Context) ([]byte, error) {
	return s.backend.ReportPDF(ctx)
}

// ProductCounts are the counters of the product screen.
type ProductCounts struct {
	Total      int
	Active     int
	Inactive   int
	OutOfStock int
	Categories int
}

// Counts derives the counters from the store.
func (s *ProductService) Counts() ProductCounts {
	items := s.Store.Items.Get()
	c := ProductCounts{Total: len(items)}
	cats := map[string]struct{}{}
	for _, p := range items {
		switch p.Status {
		case model.StatusActive:
			c.Active++
		case model.StatusInactive:
			c.Inactive++
		}
		if p.Units <= 0 {
			c.OutOfStock++
		}
		if p.Category != "" {
			cats[p.Category] = struct{}{}
		}
	}
	c.Categories = len(cats)
	return c
}

// Categories lists the distinct product categories in catalogue order.
func (s *ProductService) Categories() []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range s.Store.Items.Get() {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}
