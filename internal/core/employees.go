// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/toeirei/panaderia/internal/api"
	"github.com/toeirei/panaderia/internal/logging"
	"github.com/toeirei/panaderia/internal/model"
	"github.com/toeirei/panaderia/internal/state"
)

// EmployeeBackend is the slice of the REST client used by EmployeeService.
type EmployeeBackend interface {
	List(ctx context.Context) ([]model.Employee, error)
	Active(ctx context.Context) ([]model.Employee, error)
	ByStatus(ctx context.Context, status string) ([]model.Employee, error)
	ByGender(ctx context.Context, gender string) ([]model.Employee, error)
	Get(ctx context.Context, id int) (*model.Employee, error)
	Save(ctx context.Context, req model.EmployeeRequest) (*model.Employee, error)
	Update(ctx context.Context, id int, req model.EmployeeRequest) (*model.Employee, error)
	Delete(ctx context.Context, id int) error
	Restore(ctx context.Context, id int) error
	AssignRole(ctx context.Context, id int, roleName string) error
	UpdateEmail(ctx context.Context, id int, newEmail string) error
	UserInfo(ctx context.Context, id int) (*model.EmployeeUserInfo, error)
	Roles(ctx context.Context) ([]model.Role, error)
}

var _ EmployeeBackend = (*api.EmployeeAPI)(nil)

// EmployeeService mirrors CustomerService for staff records.
type EmployeeService struct {
	backend EmployeeBackend
	Store   *state.ListStore[model.Employee]
	Roles   *state.Signal[[]model.Role]
	Now     func() time.Time
}

// NewEmployeeService returns a service with an empty store.
func NewEmployeeService(b EmployeeBackend) *EmployeeService {
	return &EmployeeService{
		backend: b,
		Store:   state.NewListStore[model.Employee](),
		Roles:   state.NewSignal[[]model.Role](nil),
		Now:     time.Now,
	}
}

func (s *EmployeeService) process(e model.Employee) model.Employee {
	e.Age = AgeOf(e.BirthDate, s.Now())
	return e
}

// Load fetches every employee into the store.
func (s *EmployeeService) Load(ctx context.Context) error {
	if s.Store.Loading.Get() {
		return nil
	}
	s.Store.Begin()
	list, err := s.backend.List(ctx)
	if err != nil {
		s.Store.Fail(err)
		return err
	}
	for i := range list {
		list[i] = s.process(list[i])
	}
	s.Store.Finish(list, nil)
	logging.Debugf("employees: loaded %d records", len(list))
	return nil
}

// LoadRoles fetches the role catalogue. The previous catalogue is kept on
// failure.
func (s *EmployeeService) LoadRoles(ctx context.Context) ([]model.Role, error) {
	roles, err := s.backend.Roles(ctx)
	if err != nil {
		return s.Roles.Get(), err
	}
	s.Roles.Set(roles)
	return roles, nil
}

// RoleByName looks a role up in the loaded catalogue, ignoring case.
func (s *EmployeeService) RoleByName(name string) (model.Role, bool) {
	for _, r := range s.Roles.Get() {
		if strings.EqualFold(r.Name, name) {
			return r, true
		}
	}
	return model.Role{}, false
}

// Get fetches one employee.
func (s *EmployeeService) Get(ctx context.Context, id int) (*model.Employee, error) {
	e, err := s.backend.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p := s.process(*e)
	return &p, nil
}

// ByStatus fetches the employees with status.
func (s *EmployeeService) ByStatus(ctx context.Context, status string) ([]model.Employee, error) {
	return s.backend.ByStatus(ctx, status)
}

// ByGender fetches the employees with gender.
func (s *EmployeeService) ByGender(ctx context.Context, gender string) ([]model.Employee, error) {
	return s.backend.ByGender(ctx, gender)
}

// UserInfo fetches the login account attached to an employee.
func (s *EmployeeService) UserInfo(ctx context.Context, id int) (*model.EmployeeUserInfo, error) {
	return s.backend.UserInfo(ctx, id)
}

// Create registers a new employee. Status defaults to A and the hire date
// to today.
func (s *EmployeeService) Create(ctx context.Context, req model.EmployeeRequest) (*model.Employee, error) {
	if req.Status == "" {
		req.Status = model.StatusActive
	}
	if req.HireDate == "" {
		req.HireDate = model.FormatDate(s.Now())
	}
	if err := model.Validate(req); err != nil {
		return nil, err
	}
	saved, err := s.backend.Save(ctx, req)
	if err != nil {
		s.Store.Fail(err)
		return nil, err
	}
	p := s.process(*saved)
	s.Store.Append(p)
	logging.Infof("employees: created #%d %s", p.IDEmployee, p.FullName())
	return &p, nil
}

// Update saves req for employee id and replaces the stored record.
func (s *EmployeeService) Update(ctx context.Context, id int, req model.EmployeeRequest) (*model.Employee, error) {
	if id == 0 {
		return nil, fmt.Errorf("update employee: %w", ErrNotFound)
	}
	if err := model.Validate(req); err != nil {
		return nil, err
	}
	saved, err := s.backend.Update(ctx, id, req)
	if err != nil {
		s.Store.Fail(err)
		return nil, err
	}
	p := s.process(*saved)
	s.Store.Replace(func(e model.Employee) bool { return e.IDEmployee == id }, p)
	return &p, nil
}

// SoftDelete deactivates an employee in place.
func (s *EmployeeService) SoftDelete(ctx context.Context, id int) error {
	if err := s.backend.Delete(ctx, id); err != nil {
		s.Store.Fail(err)
		return err
	}
	s.modify(id, func(e model.Employee) model.Employee { e.Status = model.StatusInactive; return e })
	return nil
}

// Restore reactivates an employee in place.
func (s *EmployeeService) Restore(ctx context.Context, id int) error {
	if err := s.backend.Restore(ctx, id); err != nil {
		s.Store.Fail(err)
		return err
	}
	s.modify(id, func(e model.Employee) model.Employee { e.Status = model.StatusActive; return e })
	return nil
}

// AssignRole changes the role of an employee.
func (s *EmployeeService) AssignRole(ctx context.Context, id int, roleName string) error {
	roleName = strings.ToUpper(strings.TrimSpace(roleName))
	if roleName == "" {
		return fmt.Errorf("assign role: %w", ErrValidation)
	}
	if err := s.backend.AssignRole(ctx, id, roleName); err != nil {
		return err
	}
	role, known := s.RoleByName(roleName)
	s.modify(id, func(e model.Employee) model.Employee {
		e.RoleName = roleName
		if known {
			e.IDRole = role.ID
		}
		return e
	})
	logging.Infof("employees: #%d role set to %s", id, roleName)
	return nil
}

// UpdateEmail changes the email of an employee and its login account.
func (s *EmployeeService) UpdateEmail(ctx context.Context, id int, email string) error {
	if err := model.ValidateField("email", email, "required,email"); err != nil {
		return err
	}
	if err := s.backend.UpdateEmail(ctx, id, email); err != nil {
		return err
	}
	s.modify(id, func(e model.Employee) model.Employee { e.Email = email; return e })
	return nil
}

func (s *EmployeeService) modify(id int, fn func(model.Employee) model.Employee) {
	s.Store.Modify(func(e model.Employee) bool { return e.IDEmployee == id }, fn)
}

// EmployeeCounts are the counters of the employee screen.
type EmployeeCounts struct {
	Total    int
	Active   int
	Inactive int
	ByRole   map[string]int
}

// Counts derives the counters from the store.
func (s *EmployeeService) Counts() EmployeeCounts {
	items := s.Store.Items.Get()
	c := EmployeeCounts{Total: len(items), ByRole: map[string]int{}}
	for _, e := range items {
		switch e.Status {
		case model.StatusActive:
			c.Active++
		case model.StatusInactive:
			c.Inactive++
		}
		c.ByRole[strings.ToUpper(e.RoleName)]++
	}
	return c
}
