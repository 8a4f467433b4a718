package tui

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/toeirei/panaderia/internal/core"
	"github.com/toeirei/panaderia/internal/model"
)

var (
	formCustomers = []model.Customer{{IDCustomer: 1, FirstName: "Ana", LastName: "Quispe"}}
	formProducts  = []model.Product{
		{ID: 1, NameProduct: "Pan francés", Price: decimal.RequireFromString("3.50")},
		{ID: 2, NameProduct: "Torta de chocolate", Price: decimal.RequireFromString("45")},
	}
)

func TestApplyOrderForm_RepeatedProductsAndAdvance(t *testing.T) {
	d := core.NewOrderDraft(func() time.Time { return fixedToday })
	err := applyOrderForm(d, formValues{
		"customer":     "1",
		"products":     "1, 1,2",
		"deliveryDate": "2024-05-13",
		"deliveryType": "domicilio",
		"advance":      "S/ 10",
		"district":     "Surco",
	}, formCustomers, formProducts)
	if err != nil {
		t.Fatalf("applyOrderForm: %v", err)
	}
	if d.Order.Customer.IDCustomer != 1 {
		t.Fatalf("customer not set: %+v", d.Order.Customer)
	}
	if len(d.Products) != 3 {
		t.Fatalf("expected 3 picked products, got %d", len(d.Products))
	}
	if !d.Total().Equal(decimal.RequireFromString("52")) {
		t.Fatalf("unexpected total %s", d.Total())
	}
	if !d.Balance().Equal(decimal.RequireFromString("42")) {
		t.Fatalf("unexpected balance %s", d.Balance())
	}
	if d.Order.DeliveryType != model.DeliveryHome {
		t.Fatalf("delivery type should be normalised, got %q", d.Order.DeliveryType)
	}
	if d.Order.DeliveryTime != core.DefaultDeliveryTime {
		t.Fatalf("empty time should default, got %q", d.Order.DeliveryTime)
	}
}

func TestApplyOrderForm_ReportsEveryBadField(t *testing.T) {
	d := core.NewOrderDraft(func() time.Time { return fixedToday })
	err := applyOrderForm(d, formValues{
		"customer":     "99",
		"products":     "1,abc",
		"deliveryType": "avión",
		"advance":      "diez",
	}, formCustomers, formProducts)

	var verr *model.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected a validation error, got %v", err)
	}
	want := map[string]bool{"customer": false, "products": false, "deliveryType": false, "advancePayment": false}
	for _, f := range verr.Fields {
		want[f.Field] = true
	}
	for field, seen := range want {
		if !seen {
			t.Fatalf("missing error for %s: %+v", field, verr.Fields)
		}
	}
}

func TestFilterOrderList_CancelledStep(t *testing.T) {
	orders := []model.Order{
		{IDCustomerOrder: 1, OrderStatus: model.OrderPending, DeliveryType: model.DeliveryLocal},
		{IDCustomerOrder: 2, OrderStatus: model.OrderCancelled, DeliveryType: model.DeliveryLocal},
	}
	if got := filterOrderList(orders, string(core.OrdersAll), ""); len(got) != 1 || got[0].IDCustomerOrder != 1 {
		t.Fatalf("the default filter shows pending orders only, got %+v", got)
	}
	if got := filterOrderList(orders, ordersCancelled, ""); len(got) != 1 || got[0].IDCustomerOrder != 2 {
		t.Fatalf("the cancelled step shows cancelled orders only, got %+v", got)
	}
}
