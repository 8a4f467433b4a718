// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import (
	"fmt"
	"strings"
)

// Placeholders used when a customer arrives without a usable address.
const (
	UnspecifiedText   = "No especificado"
	UnspecifiedNumber = "N/A"
)

// Address is a customer's postal address.
type Address struct {
	IDAddress   int    `json:"idAddress,omitempty"`
	District    string `json:"district" validate:"required"`
	AddrStreet  string `json:"addrStreet" validate:"required"`
	NumberHouse string `json:"numberHouse"`
	PlaceType   string `json:"placeType"`
	Reference   string `json:"reference"`
}

// Customer is a bakery customer as returned by the backend.
type Customer struct {
	IDCustomer       int     `json:"idCustomer"`
	FirstName        string  `json:"firstName" validate:"required,min=2,max=50"`
	LastName         string  `json:"lastName" validate:"required,min=2,max=50"`
	BirthDate        string  `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
	Gender           string  `json:"gender" validate:"omitempty,oneof=M F"`
	DocumentType     string  `json:"documentType" validate:"required,oneof=DNI CÉDULA CEDULA PASAPORTE"`
	DocumentNumber   string  `json:"documentNumber" validate:"required,min=6,max=20"`
	Phone            string  `json:"phone" validate:"omitempty,min=6,max=20"`
	RegistrationDate string  `json:"registrationDate"`
	Email            string  `json:"email" validate:"omitempty,email"`
	Status           string  `json:"status"`
	Notes            string  `json:"notes,omitempty"`
	Address          Address `json:"address"`
	Age              *int    `json:"age,omitempty"`
}

// FullName returns "first last", trimmed.
func (c Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// IsActive reports whether the customer has status A.
func (c Customer) IsActive() bool { return c.Status == StatusActive }

// String renders a one-line summary used by list views.
func (c Customer) String() string {
	return fmt.Sprintf("#%d %s (%s %s)", c.IDCustomer, c.FullName(), c.DocumentType, c.DocumentNumber)
}

// NormalizeAddress fills empty address fields with the display placeholders.
func NormalizeAddress(a Address) Address {
	fill := func(s, def string) string {
		if strings.TrimSpace(s) == "" {
			return def
		}
		return s
	}
	return Address{
		IDAddress:   a.IDAddress,
		District:    fill(a.District, UnspecifiedText),
		AddrStreet:  fill(a.AddrStreet, UnspecifiedText),
		NumberHouse: fill(a.NumberHouse, UnspecifiedNumber),
		PlaceType:   fill(a.PlaceType, UnspecifiedText),
		Reference:   fill(a.Reference, UnspecifiedText),
	}
}
