// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Order and payment status codes.
const (
	OrderPending   = "PE"
	OrderCancelled = "CA"

	PaymentPending = "PE"
)

// Delivery types.
const (
	DeliveryLocal = "Local"
	DeliveryHome  = "Domicilio"
)

// CancelledByUserReason is recorded when an order is cancelled from the form.
const CancelledByUserReason = "Cancelado por el usuario"

// CustomerInfo is the customer summary embedded in an order.
type CustomerInfo struct {
	IDCustomer int    `json:"idCustomer"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}

// FullName returns "first last", trimmed.
func (c CustomerInfo) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// AddressInfo is the delivery address embedded in an order.
type AddressInfo struct {
	District    string `json:"district"`
	AddrStreet  string `json:"addrStreet"`
	NumberHouse string `json:"numberHouse"`
	PlaceType   string `json:"placeType"`
	Reference   string `json:"reference"`
}

// AdditionalPayment is a payment registered after the advance.
type AdditionalPayment struct {
	ID            int             `json:"id"`
	OrderID       int             `json:"orderId"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"paymentMethod"`
	PaymentDate   string          `json:"paymentDate"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     string          `json:"createdAt"`
	UpdatedAt     string          `json:"updatedAt,omitempty"`
}

// Order is a customer order as returned by the backend.
type Order struct {
	IDCustomerOrder      int                 `json:"idCustomerOrder"`
	OrderDate            string              `json:"orderDate"`
	DeliveryDate         string              `json:"deliveryDate"`
	DeliveryTime         string              `json:"deliveryTime"`
	DeliveryType         string              `json:"deliveryType"`
	TotalAmount          decimal.Decimal     `json:"totalAmount"`
	AdvancePayment       decimal.Decimal     `json:"advancePayment"`
	BalanceAmount        decimal.Decimal     `json:"balanceAmount"`
	AdvancePaymentMethod string              `json:"advancePaymentMethod"`
	BalancePaymentMethod *string             `json:"balancePaymentMethod"`
	OrderStatus          string              `json:"orderStatus"`
	PaymentStatus        string              `json:"paymentStatus"`
	BalancePaymentDate   *string             `json:"balancePaymentDate"`
	Notes                *string             `json:"notes"`
	CancellationReason   *string             `json:"cancellationReason"`
	Customer             CustomerInfo        `json:"customer"`
	DeliveryAddress      AddressInfo         `json:"deliveryAddress"`
	CompletionDate       *string             `json:"completionDate,omitempty"`
	AdditionalPayments   []AdditionalPayment `json:"additionalPayments,omitempty"`
	CreatedAt            string              `json:"createdAt,omitempty"`
	UpdatedAt            string              `json:"updatedAt,omitempty"`
}

// IsPending reports whether the order has not been cancelled or closed.
func (o Order) IsPending() bool { return o.OrderStatus == OrderPending }

func (o Order) String() string {
	return fmt.Sprintf("%s %s · %s · %s", OrderNumber(o.IDCustomerOrder), o.Customer.FullName(),
		DeliveryTypeText(o.DeliveryType), FormatSoles(o.TotalAmount))
}

// Request converts the order into the payload accepted by save and update.
func (o Order) Request() OrderRequest {
	r := OrderRequest{
		IDCustomerOrder:      o.IDCustomerOrder,
		OrderDate:            o.OrderDate,
		DeliveryDate:         o.DeliveryDate,
		DeliveryTime:         o.DeliveryTime,
		DeliveryType:         o.DeliveryType,
		TotalAmount:          o.TotalAmount,
		AdvancePayment:       o.AdvancePayment,
		BalanceAmount:        o.BalanceAmount,
		AdvancePaymentMethod: o.AdvancePaymentMethod,
		OrderStatus:          o.OrderStatus,
		PaymentStatus:        o.PaymentStatus,
		Customer:             CustomerRef{IDCustomer: o.Customer.IDCustomer},
		DeliveryAddress:      o.DeliveryAddress,
	}
	r.BalancePaymentMethod = deref(o.BalancePaymentMethod)
	r.BalancePaymentDate = deref(o.BalancePaymentDate)
	r.Notes = deref(o.Notes)
	r.CancellationReason = deref(o.CancellationReason)
	return r
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// CustomerRef references a customer by id in write payloads.
type CustomerRef struct {
	IDCustomer int `json:"idCustomer"`
}

// OrderRequest is the payload for order save and update calls.
type OrderRequest struct {
	IDCustomerOrder      int             `json:"idCustomerOrder,omitempty"`
	OrderDate            string          `json:"orderDate"`
	DeliveryDate         string          `json:"deliveryDate"`
	DeliveryTime         string          `json:"deliveryTime"`
	DeliveryType         string          `json:"deliveryType"`
	TotalAmount          decimal.Decimal `json:"totalAmount"`
	AdvancePayment       decimal.Decimal `json:"advancePayment"`
	BalanceAmount        decimal.Decimal `json:"balanceAmount"`
	AdvancePaymentMethod string          `json:"advancePaymentMethod"`
	BalancePaymentMethod string          `json:"balancePaymentMethod,omitempty"`
	OrderStatus          string          `json:"orderStatus"`
	PaymentStatus        string          `json:"paymentStatus"`
	BalancePaymentDate   string          `json:"balancePaymentDate,omitempty"`
	Notes                string          `json:"notes,omitempty"`
	CancellationReason   string          `json:"cancellationReason,omitempty"`
	Customer             CustomerRef     `json:"customer"`
	DeliveryAddress      AddressInfo     `json:"deliveryAddress"`
}

// OrderItem is one product line of an order.
type OrderItem struct {
	IDOrderItem int             `json:"idOrderItem,omitempty"`
	IDProduct   int             `json:"idProduct"`
	NameProduct string          `json:"nameProduct"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderDetails is an order together with its product lines.
type OrderDetails struct {
	Order
	Items []OrderItem `json:"items"`
}
