// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/toeirei/panaderia/internal/i18n"
	"github.com/toeirei/panaderia/internal/model"
)

// Order form defaults.
const (
	DefaultDeliveryTime = "12:00"
	DefaultDeliveryType = model.DeliveryLocal
)

// OrderDraft is the state behind the order form: the order being edited
// plus the products picked for it. Amounts are derived, never typed.
type OrderDraft struct {
	Order    model.Order
	Products []model.Product
	Now      func() time.Time
}

// NewOrderDraft returns an empty draft with the form defaults.
func NewOrderDraft(now func() time.Time) *OrderDraft {
	if now == nil {
		now = time.Now
	}
	d := &OrderDraft{Now: now}
	d.Reset()
	return d
}

// EditOrderDraft starts a draft from an existing order. The selected
// products are unknown, so the stored total is kept until products are
// picked again.
func EditOrderDraft(o model.Order, now func() time.Time) *OrderDraft {
	if now == nil {
		now = time.Now
	}
	return &OrderDraft{Order: o, Now: now}
}

// Reset clears the draft back to the defaults.
func (d *OrderDraft) Reset() {
	d.Products = nil
	d.Order = model.Order{
		OrderDate:     model.FormatDate(d.Now()),
		DeliveryTime:  DefaultDeliveryTime,
		DeliveryType:  DefaultDeliveryType,
		OrderStatus:   model.OrderPending,
		PaymentStatus: model.PaymentPending,
	}
}

// SetCustomer copies the contact fields of c into the order.
func (d *OrderDraft) SetCustomer(c model.Customer) {
	d.Order.Customer = model.CustomerInfo{
		IDCustomer: c.IDCustomer,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		Phone:      c.Phone,
		Email:      c.Email,
	}
}

// SetProducts replaces the selection and recomputes the amounts.
func (d *OrderDraft) SetProducts(ps []model.Product) {
	d.Products = append([]model.Product(nil), ps...)
	total := decimal.Zero
	for _, p := range d.Products {
		total = total.Add(p.Price)
	}
	d.Order.TotalAmount = total
	d.recalculate()
}

// SetAdvance records the advance payment and recomputes the balance.
func (d *OrderDraft) SetAdvance(amount decimal.Decimal) {
	d.Order.AdvancePayment = amount
	d.recalculate()
}

func (d *OrderDraft) recalculate() {
	d.Order.BalanceAmount = d.Order.TotalAmount.Sub(d.Order.AdvancePayment)
	d.Order.PaymentStatus = model.PaymentPending
}

// Total is the sum of the selected product prices.
func (d *OrderDraft) Total() decimal.Decimal { return d.Order.TotalAmount }

// Balance is the total minus the advance.
func (d *OrderDraft) Balance() decimal.Decimal { return d.Order.BalanceAmount }

// Cancel marks the draft cancelled with reason, defaulting to the
// cancelled-by-user text.
func (d *OrderDraft) Cancel(reason string) {
	if reason == "" {
		reason = model.CancelledByUserReason
	}
	d.Order.OrderStatus = model.OrderCancelled
	d.Order.CancellationReason = &reason
}

// Validate checks the rules the order form enforces.
func (d *OrderDraft) Validate() error {
	o := d.Order
	var fields []model.FieldError
	add := func(field, id string) {
		fields = append(fields, model.FieldError{Field: field, Tag: id, Message: i18n.T(id)})
	}

	if o.Customer.IDCustomer == 0 {
		add("customer", "order.validation.customer")
	}
	delivery, hasDelivery := model.ParseDate(o.DeliveryDate)
	if !hasDelivery {
		add("deliveryDate", "order.validation.delivery_date")
	} else if ordered, ok := model.ParseDate(o.OrderDate); ok && delivery.Before(ordered) {
		add("deliveryDate", "order.validation.delivery_before_order")
	}
	if o.TotalAmount.IsNegative() || o.AdvancePayment.IsNegative() {
		add("advancePayment", "order.validation.negative")
	} else if o.AdvancePayment.GreaterThan(o.TotalAmount) {
		add("advancePayment", "order.validation.advance_exceeds")
	}
	if len(fields) > 0 {
		return &model.ValidationError{Fields: fields}
	}
	return nil
}

// Request stamps the order date with today, validates the draft and
// converts it to the payload the backend expects.
func (d *OrderDraft) Request() (model.OrderRequest, error) {
	if d.Order.OrderStatus != model.OrderCancelled {
		d.Order.OrderDate = model.FormatDate(d.Now())
	}
	if err := d.Validate(); err != nil {
		return model.OrderRequest{}, err
	}
	return d.Order.Request(), nil
}
