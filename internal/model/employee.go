// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import (
	"fmt"
	"strings"
)

// Backend role names.
const (
	RoleDeveloper     = "DEVELOPER"
	RoleSuperAdmin    = "SUPERADMIN"
	RoleAdministrator = "ADMINISTRATOR"
	RoleCashier       = "CASHIER"
	RoleInventory     = "INVENTORY"
	RoleBaker         = "BAKER"
	RoleEmployee      = "EMPLOYEE"
	RoleClient        = "CLIENT"
	RoleSupplier      = "SUPPLIER"
)

var roleDisplayNames = map[string]string{
	RoleDeveloper:     "Desarrollador",
	RoleSuperAdmin:    "Super Admin",
	RoleAdministrator: "Administrador",
	RoleCashier:       "Cajero",
	RoleInventory:     "Inventario",
	RoleBaker:         "Panadero",
	RoleEmployee:      "Empleado",
	RoleClient:        "Cliente",
	RoleSupplier:      "Proveedor",
}

// RoleDisplayName maps a backend role name to its Spanish label. Unknown
// roles are returned unchanged and an empty role reads as "Empleado".
func RoleDisplayName(role string) string {
	if role == "" {
		return roleDisplayNames[RoleEmployee]
	}
	if name, ok := roleDisplayNames[strings.ToUpper(role)]; ok {
		return name
	}
	return role
}

var roleIcons = map[string]string{
	RoleDeveloper:     "code",
	RoleSuperAdmin:    "admin_panel_settings",
	RoleAdministrator: "manage_accounts",
	RoleCashier:       "point_of_sale",
	RoleInventory:     "inventory_2",
	RoleBaker:         "bakery_dining",
	RoleEmployee:      "badge",
	RoleClient:        "person",
	RoleSupplier:      "local_shipping",
}

// RoleIcon returns the icon name of a role, "person" when unknown.
func RoleIcon(role string) string {
	if icon, ok := roleIcons[strings.ToUpper(role)]; ok {
		return icon
	}
	return "person"
}

// Role is an assignable backend role.
type Role struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Employee is a staff member as returned by the backend.
type Employee struct {
	IDEmployee            int    `json:"idEmployee,omitempty"`
	FirstName             string `json:"firstName"`
	LastName              string `json:"lastName"`
	DocumentType          string `json:"documentType"`
	DocumentNumber        string `json:"documentNumber"`
	Email                 string `json:"email"`
	Phone                 string `json:"phone,omitempty"`
	Address               string `json:"address,omitempty"`
	IDRole                int    `json:"idRole,omitempty"`
	RoleName              string `json:"roleName,omitempty"`
	HireDate              string `json:"hireDate,omitempty"`
	Status                string `json:"status,omitempty"`
	BirthDate             string `json:"birthDate,omitempty"`
	Gender                string `json:"gender,omitempty"`
	CreatedAt             string `json:"createdAt,omitempty"`
	UpdatedAt             string `json:"updatedAt,omitempty"`
	Age                   *int   `json:"age,omitempty"`
	EmergencyContactName  string `json:"emergencyContactName,omitempty"`
	EmergencyContactPhone string `json:"emergencyContactPhone,omitempty"`
	Position              string `json:"position,omitempty"`
}

// FullName returns "first last", trimmed.
func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// IsActive reports whether the employee has status A.
func (e Employee) IsActive() bool { return e.Status == StatusActive }

func (e Employee) String() string {
	return fmt.Sprintf("#%d %s · %s", e.IDEmployee, e.FullName(), RoleDisplayName(e.RoleName))
}

// Request converts the record into the writable subset accepted by
// the save and update endpoints.
func (e Employee) Request() EmployeeRequest {
	return EmployeeRequest{
		FirstName:             e.FirstName,
		LastName:              e.LastName,
		DocumentType:          e.DocumentType,
		DocumentNumber:        e.DocumentNumber,
		Email:                 e.Email,
		Phone:                 e.Phone,
		Address:               e.Address,
		IDRole:                e.IDRole,
		HireDate:              e.HireDate,
		Status:                e.Status,
		BirthDate:             e.BirthDate,
		Gender:                e.Gender,
		EmergencyContactName:  e.EmergencyContactName,
		EmergencyContactPhone: e.EmergencyContactPhone,
		Position:              e.Position,
	}
}

// EmployeeRequest is the payload for employee save and update calls.
type EmployeeRequest struct {
	FirstName             string `json:"firstName" validate:"required,min=2,max=50"`
	LastName              string `json:"lastName" validate:"required,min=2,max=50"`
	DocumentType          string `json:"documentType" validate:"required"`
	DocumentNumber        string `json:"documentNumber" validate:"required,min=6,max=20"`
	Email                 string `json:"email" validate:"required,email"`
	Phone                 string `json:"phone,omitempty"`
	Address               string `json:"address,omitempty"`
	IDRole                int    `json:"idRole,omitempty"`
	HireDate              string `json:"hireDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Status                string `json:"status,omitempty"`
	BirthDate             string `json:"birthDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Gender                string `json:"gender,omitempty" validate:"omitempty,oneof=M F O"`
	EmergencyContactName  string `json:"emergencyContactName,omitempty"`
	EmergencyContactPhone string `json:"emergencyContactPhone,omitempty"`
	Position              string `json:"position,omitempty"`
}

// EmployeeUserInfo is the login account linked to an employee.
type EmployeeUserInfo struct {
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
	Status   string   `json:"status,omitempty"`
}
