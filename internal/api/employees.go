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

// EmployeeAPI covers the employee and role endpoints.
type EmployeeAPI struct {
	c     *Client
	path  string
	roles string
}

func (a *EmployeeAPI) list(ctx context.Context, u string) ([]model.Employee, error) {
	var out []model.Employee
	err := a.c.get(ctx, ResourceEmployee, u, &out)
	return out, err
}

// List returns every employee.
func (a *EmployeeAPI) List(ctx context.Context) ([]model.Employee, error) {
	return a.list(ctx, a.path)
}

// Active returns the active employees.
func (a *EmployeeAPI) Active(ctx context.Context) ([]model.Employee, error) {
	return a.list(ctx, a.path+"/active")
}

// ByStatus returns the employees with the given status code.
func (a *EmployeeAPI) ByStatus(ctx context.Context, status string) ([]model.Employee, error) {
	return a.list(ctx, a.path+"/status/"+url.PathEscape(status))
}

// ByGender returns the employees of one gender.
func (a *EmployeeAPI) ByGender(ctx context.Context, gender string) ([]model.Employee, error) {
	return a.list(ctx, a.path+"/gender/"+url.PathEscape(gender))
}

// Get returns one employee.
func (a *EmployeeAPI) Get(ctx context.Context, id int) (*model.Employee, error) {
	var out model.Employee
	if err := a.c.get(ctx, ResourceEmployee, fmt.Sprintf("%s/%d", a.path, id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Save creates an employee.
func (a *EmployeeAPI) Save(ctx context.Context, req model.EmployeeRequest) (*model.Employee, error) {
	var out model.Employee
	if err := a.c.send(ctx, http.MethodPost, ResourceEmployee, a.path+"/save", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces employee id.
func (a *EmployeeAPI) Update(ctx context.Context, id int, req model.EmployeeRequest) (*model.Employee, error) {
	var out model.Employee
	if err := a.c.send(ctx, http.MethodPut, ResourceEmployee, fmt.Sprintf("%s/update/%d", a.path, id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete soft-deletes an employee.
func (a *EmployeeAPI) Delete(ctx context.Context, id int) error {
	return a.c.send(ctx, http.MethodPatch, ResourceEmployee, fmt.Sprintf("%s/delete/%d", a.path, id), struct{}{}, nil)
}

// Restore reactivates an employee.
func (a *EmployeeAPI) Restore(ctx context.Context, id int) error {
	return a.c.send(ctx, http.MethodPatch, ResourceEmployee, fmt.Sprintf("%s/restore/%d", a.path, id), struct{}{}, nil)
}

// AssignRole sets the employee's role by name.
func (a *EmployeeAPI) AssignRole(ctx context.Context, id int, roleName string) error {
	return a.c.do(ctx, request{
		method:   http.MethodPatch,
		url:      fmt.Sprintf("%s/%d/assign-role", a.path, id),
		query:    url.Values{"roleName": {roleName}},
		resource: ResourceEmployee,
	}, nil)
}

// UpdateEmail changes the e-mail of the employee's user account.
func (a *EmployeeAPI) UpdateEmail(ctx context.Context, id int, newEmail string) error {
	body := map[string]string{"newEmail": newEmail}
	return a.c.send(ctx, http.MethodPut, ResourceEmployee, fmt.Sprintf("%s/%d/email", a.path, id), body, nil)
}

// UserInfo returns the login account linked to an employee.
func (a *EmployeeAPI) UserInfo(ctx context.Context, id int) (*model.EmployeeUserInfo, error) {
	var out model.EmployeeUserInfo
	if err := a.c.get(ctx, ResourceEmployee, fmt.Sprintf("%s/%d/user-info", a.path, id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Roles lists the assignable roles.
func (a *EmployeeAPI) Roles(ctx context.Context) ([]model.Role, error) {
	var out []model.Role
	err := a.c.get(ctx, ResourceEmployee, a.roles, &out)
	return out, err
}
