// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"context"
	"fmt"
	"time"

	"github.com/toeirei/panaderia/internal/api"
	"github.com/toeirei/panaderia/internal/logging"
	"github.com/toeirei/panaderia/internal/model"
	"github.com/toeirei/panaderia/internal/state"
)

// CustomerBackend is the slice of the REST client used by CustomerService.
type CustomerBackend interface {
	List(ctx context.Context) ([]model.Customer, error)
	ListWithRetry(ctx context.Context) ([]model.Customer, error)
	Get(ctx context.Context, id int) (*model.Customer, error)
	ByStatus(ctx context.Context, status string) ([]model.Customer, error)
	Save(ctx context.Context, c model.Customer) (*model.Customer, error)
	Update(ctx context.Context, c model.Customer) (*model.Customer, error)
	Delete(ctx context.Context, id int) error
	Restore(ctx context.Context, id int) error
	ReportPDF(ctx context.Context) ([]byte, error)
	UpcomingBirthdays(ctx context.Context, days int) ([]model.Customer, error)
	NewCustomers(ctx context.Context) ([]model.Customer, error)
}

var _ CustomerBackend = (*api.CustomerAPI)(nil)

// CustomerService keeps the customer list store in sync with the backend.
// Writes update the store only after the backend accepted them.
type CustomerService struct {
	backend CustomerBackend
	Store   *state.ListStore[model.Customer]
	Now     func() time.Time
}

// NewCustomerService returns a service with an empty store.
func NewCustomerService(b CustomerBackend) *CustomerService {
	return &CustomerService{backend: b, Store: state.NewListStore[model.Customer](), Now: time.Now}
}

// Process fills the derived fields of a customer: age and the normalised
// address.
func (s *CustomerService) Process(c model.Customer) model.Customer {
	c.Age = AgeOf(c.BirthDate, s.Now())
	c.Address = model.NormalizeAddress(c.Address)
	return c
}

func (s *CustomerService) processAll(in []model.Customer) []model.Customer {
	out := make([]model.Customer, len(in))
	for i, c := range in {
		out[i] = s.Process(c)
	}
	return out
}

// Load fetches every customer into the store. A load already in flight
// makes this a no-op.
func (s *CustomerService) Load(ctx context.Context) error {
	if s.Store.Loading.Get() {
		return nil
	}
	s.Store.Begin()
	list, err := s.backend.ListWithRetry(ctx)
	if err != nil {
		s.Store.Fail(err)
		return err
	}
	s.Store.Finish(s.processAll(list), nil)
	logging.Debugf("customers: loaded %d records", len(list))
	return nil
}

// Get fetches one customer as the backend returns it.
func (s *CustomerService) Get(ctx context.Context, id int) (*model.Customer, error) {
	return s.backend.Get(ctx, id)
}

// GetWithAge fetches one customer with the derived fields filled.
func (s *CustomerService) GetWithAge(ctx context.Context, id int) (*model.Customer, error) {
	c, err := s.backend.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p := s.Process(*c)
	return &p, nil
}

// ByStatus fetches the customers with status, processed.
func (s *CustomerService) ByStatus(ctx context.Context, status string) ([]model.Customer, error) {
	list, err := s.backend.ByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	return s.processAll(list), nil
}

// Create registers a new, active customer dated today and appends it to
// the store.
func (s *CustomerService) Create(ctx context.Context, c model.Customer) (*model.Customer, error) {
	c.Status = model.StatusActive
	c.RegistrationDate = model.FormatDate(s.Now())
	c.Age = nil
	if err := model.Validate(c); err != nil {
		return nil, err
	}
	saved, err := s.backend.Save(ctx, c)
	if err != nil {
		s.Store.Fail(err)
		return nil, err
	}
	p := s.Process(*saved)
	s.Store.Append(p)
	logging.Infof("customers: created #%d %s", p.IDCustomer, p.FullName())
	return &p, nil
}

// Update saves c and replaces the stored record with the same id.
func (s *CustomerService) Update(ctx context.Context, c model.Customer) (*model.Customer, error) {
	if c.IDCustomer == 0 {
		return nil, fmt.Errorf("update customer: %w", ErrNotFound)
	}
	c.Age = nil
	if err := model.Validate(c); err != nil {
		return nil, err
	}
	saved, err := s.backend.Update(ctx, c)
	if err != nil {
		s.Store.Fail(err)
		return nil, err
	}
	p := s.Process(*saved)
	s.Store.Replace(func(x model.Customer) bool { return x.IDCustomer == p.IDCustomer }, p)
	return &p, nil
}

// SoftDelete deactivates a customer. The record stays in the store with
// status I.
func (s *CustomerService) SoftDelete(ctx context.Context, id int) error {
	return s.setStatus(ctx, id, model.StatusInactive, s.backend.Delete)
}

// Restore reactivates a customer.
func (s *CustomerService) Restore(ctx context.Context, id int) error {
	return s.setStatus(ctx, id, model.StatusActive, s.backend.Restore)
}

func (s *CustomerService) setStatus(ctx context.Context, id int, status string, call func(context.Context, int) error) error {
	if err := call(ctx, id); err != nil {
		s.Store.Fail(err)
		return err
	}
	s.Store.Modify(
		func(c model.Customer) bool { return c.IDCustomer == id },
		func(c model.Customer) model.Customer { c.Status = status; return c },
	)
	logging.Infof("customers: #%d status set to %s", id, status)
	return nil
}

// ReportPDF downloads the customer report.
func (s *CustomerService) ReportPDF(ctx context.Context) ([]byte, error) {
	return s.backend.ReportPDF(ctx)
}

// UpcomingBirthdays asks the backend for birthdays in the next days days.
// Failures are logged and yield an empty list.
func (s *CustomerService) UpcomingBirthdays(ctx context.Context, days int) []model.Customer {
	list, err := s.backend.UpcomingBirthdays(ctx, days)
	if err != nil {
		logging.Warnf("customers: upcoming birthdays unavailable: %v", err)
		return []model.Customer{}
	}
	return list
}

// NewCustomers asks the backend for its list of new customers. Failures
// are logged and yield an empty list.
func (s *CustomerService) NewCustomers(ctx context.Context) []model.Customer {
	list, err := s.backend.NewCustomers(ctx)
	if err != nil {
		logging.Warnf("customers: new customers unavailable: %v", err)
		return []model.Customer{}
	}
	return list
}

// CustomerCounts are the counters of the customer screen.
type CustomerCounts struct {
	Total    int
	Active   int
	Inactive int
	New      int
}

// Counts derives the counters from the store.
func (s *CustomerService) Counts() CustomerCounts {
	items := s.Store.Items.Get()
	c := CustomerCounts{Total: len(items), New: CountNewCustomers(items, s.Now())}
	for _, it := range items {
		switch it.Status {
		case model.StatusActive:
			c.Active++
		case model.StatusInactive:
			c.Inactive++
		}
	}
	return c
}

// NewCustomersCount counts active customers registered in the last 30
// days, fetched from the backend.
func (s *CustomerService) NewCustomersCount(ctx context.Context) (int, error) {
	active, err := s.backend.ByStatus(ctx, model.StatusActive)
	if err != nil {
		return 0, err
	}
	return CountNewCustomers(active, s.Now()), nil
}

// CheckBirthdays classifies the loaded customers by birthday. When nothing
// is loaded yet the full list is fetched without touching the store.
func (s *CustomerService) CheckBirthdays(ctx context.Context) (BirthdayReport, error) {
	items := s.Store.Items.Get()
	if len(items) == 0 {
		list, err := s.backend.List(ctx)
		if err != nil {
			return BirthdayReport{}, err
		}
		items = s.processAll(list)
	}
	return CheckBirthdays(items, s.Now()), nil
}
