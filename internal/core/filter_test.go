package core

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/toeirei/panaderia/internal/model"
)

func ids(cs []model.Customer) []int {
	out := []int{}
	for _, c := range cs {
		out = append(out, c.IDCustomer)
	}
	return out
}

func intp(v int) *int { return &v }

func sampleCustomers() []model.Customer {
	return []model.Customer{
		{IDCustomer: 5, FirstName: "Ana", LastName: "Quispe", Status: "A", DocumentType: "DNI", Gender: "F", Age: intp(34),
			Address: model.Address{District: "Miraflores", AddrStreet: "Av. Larco", Reference: "Frente al parque"}},
		{IDCustomer: 2, FirstName: "Luis", LastName: "Torres", Status: "I", DocumentType: "DNI", Gender: "M", Age: intp(38)},
		{IDCustomer: 9, FirstName: "María", LastName: "Huamán", Status: "A", DocumentType: "PASAPORTE", Gender: "F",
			Phone: "955112233", Address: model.Address{District: "Surco"}},
		{IDCustomer: 1, FirstName: "Pedro", LastName: "Rojas", Status: "A", DocumentType: "dni", Gender: "m", Age: intp(19),
			Email: "pedro@correo.pe"},
	}
}

func TestFilterCustomers_StatusKeepsInsertionOrder(t *testing.T) {
	got := ids(FilterCustomers(sampleCustomers(), CustomerFilter{Status: "A"}))
	if want := []int{5, 9, 1}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	all := ids(FilterCustomers(sampleCustomers(), CustomerFilter{Status: model.StatusAll}))
	if len(all) != 4 {
		t.Fatalf("T should keep everything, got %v", all)
	}
}

func TestFilterCustomers_EmptySearchEqualsStatusFilter(t *testing.T) {
	for _, status := range []string{"A", "I", "", model.StatusAll} {
		byStatus := FilterByStatus(sampleCustomers(), status, func(c model.Customer) string { return c.Status })
		searched := FilterCustomers(sampleCustomers(), CustomerFilter{Status: status, Search: "   "})
		if !reflect.DeepEqual(ids(byStatus), ids(searched)) {
			t.Fatalf("status %q: %v != %v", status, ids(byStatus), ids(searched))
		}
	}
}

func TestFilterCustomers_Criteria(t *testing.T) {
	cases := []struct {
		name string
		f    CustomerFilter
		want []int
	}{
		{"search district ignores case", CustomerFilter{Search: "surco"}, []int{9}},
		{"search reference", CustomerFilter{Search: "parque"}, []int{5}},
		{"search phone", CustomerFilter{Search: "5511"}, []int{9}},
		{"search email", CustomerFilter{Search: "PEDRO@"}, []int{1}},
		{"document type ignores case", CustomerFilter{DocumentType: "DNI"}, []int{5, 2, 1}},
		{"gender", CustomerFilter{Gender: "M"}, []int{2, 1}},
		{"min age drops unknown ages", CustomerFilter{MinAge: intp(30)}, []int{5, 2}},
		{"age range", CustomerFilter{MinAge: intp(18), MaxAge: intp(35)}, []int{5, 1}},
		{"no bounds keeps unknown ages", CustomerFilter{Status: "A"}, []int{5, 9, 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ids(FilterCustomers(sampleCustomers(), tc.f)); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFilterEmployees(t *testing.T) {
	emps := []model.Employee{
		{IDEmployee: 1, FirstName: "Rosa", RoleName: "BAKER", Status: "A"},
		{IDEmployee: 2, FirstName: "Jorge", RoleName: "CASHIER", Status: "I"},
		{IDEmployee: 3, FirstName: "Elena", RoleName: "CASHIER", Status: "A"},
	}
	got := FilterEmployees(emps, "A", "cajero")
	if len(got) != 1 || got[0].IDEmployee != 3 {
		t.Fatalf("role display names should be searchable: %+v", got)
	}
	if got := FilterEmployees(emps, "", ""); len(got) != 3 {
		t.Fatalf("empty filter should keep everyone, got %d", len(got))
	}
}

func TestFilterProducts_DefaultsToActiveNewestFirst(t *testing.T) {
	prods := []model.Product{
		{ID: 1, NameProduct: "Pan francés", Price: decimal.RequireFromString("3.5"), Units: 80, Status: "A"},
		{ID: 2, NameProduct: "Alfajor", Price: decimal.RequireFromString("2"), Units: 0, Status: "I"},
		{ID: 3, NameProduct: "Torta", Price: decimal.RequireFromString("45"), Units: 6, Category: "Tortas", Status: "A"},
	}
	got := FilterProducts(prods, "", "")
	if len(got) != 2 || got[0].ID != 3 || got[1].ID != 1 {
		t.Fatalf("unexpected products: %+v", got)
	}
	if got := FilterProducts(prods, "A", "3.5"); len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("price should be searchable: %+v", got)
	}
	if got := FilterProducts(prods, model.StatusAll, "tortas"); len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("category should be searchable: %+v", got)
	}
}

func TestFilterOrders(t *testing.T) {
	notes := "Sin azúcar"
	orders := []model.Order{
		{IDCustomerOrder: 1, DeliveryType: model.DeliveryLocal, PaymentStatus: "PE", OrderStatus: "PE", Notes: &notes,
			Customer: model.CustomerInfo{FirstName: "Ana", LastName: "Quispe"}},
		{IDCustomerOrder: 2, DeliveryType: model.DeliveryHome, PaymentStatus: "PA", OrderStatus: "PE", AdvancePaymentMethod: "Yape"},
		{IDCustomerOrder: 3, DeliveryType: model.DeliveryLocal, PaymentStatus: "PE", OrderStatus: "CA"},
	}
	pending := PendingOrders(orders)
	if len(pending) != 2 {
		t.Fatalf("cancelled orders should be hidden, got %d", len(pending))
	}
	if got := FilterOrders(pending, OrdersDelivery, ""); len(got) != 1 || got[0].IDCustomerOrder != 2 {
		t.Fatalf("delivery filter: %+v", got)
	}
	if got := FilterOrders(pending, OrdersPendingPayment, ""); len(got) != 1 || got[0].IDCustomerOrder != 1 {
		t.Fatalf("pending payment filter: %+v", got)
	}
	if got := FilterOrders(pending, OrdersAll, "azúcar"); len(got) != 1 || got[0].IDCustomerOrder != 1 {
		t.Fatalf("notes should be searchable: %+v", got)
	}
	if got := FilterOrders(pending, OrdersAll, "pagado"); len(got) != 1 || got[0].IDCustomerOrder != 2 {
		t.Fatalf("payment status label should be searchable: %+v", got)
	}

	stats := ComputeOrderStats(pending)
	if stats != (OrderStats{Total: 2, Delivery: 1, Local: 1, PendingPayment: 1}) {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestDisplayUserName(t *testing.T) {
	if DisplayUserName("ana@panaderia.pe") != "ana" || DisplayUserName("") != "Usuario" || DisplayUserName("admin") != "admin" {
		t.Fatalf("unexpected display names")
	}
}

func TestFilterCustomers_CedulaSpellingsMatch(t *testing.T) {
	cs := []model.Customer{
		{IDCustomer: 4, FirstName: "Lucía", DocumentType: "CEDULA"},
		{IDCustomer: 6, FirstName: "Rafael", DocumentType: "CÉDULA"},
		{IDCustomer: 7, FirstName: "Olga", DocumentType: "DNI"},
	}
	for _, want := range []string{"CÉDULA", "cedula"} {
		if got := ids(FilterCustomers(cs, CustomerFilter{DocumentType: want})); !reflect.DeepEqual(got, []int{4, 6}) {
			t.Fatalf("filter %q: got %v", want, got)
		}
	}
}
