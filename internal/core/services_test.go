package core

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toeirei/panaderia/internal/api"
	"github.com/toeirei/panaderia/internal/db"
	"github.com/toeirei/panaderia/internal/model"
	"github.com/toeirei/panaderia/internal/testutil"
)

var fixedToday = time.Date(2024, 5, 12, 10, 0, 0, 0, time.Local)

func newServices(t *testing.T) (*Services, *testutil.Backend) {
	t.Helper()
	b := testutil.NewBackend(t)
	s, err := NewServices(b.APIConfig(), db.NewMemoryStore())
	require.NoError(t, err)
	s.SetClock(func() time.Time { return fixedToday })
	return s, b
}

func loginAs(t *testing.T, s *Services, user, password string) {
	t.Helper()
	_, err := s.Login(context.Background(), user, []byte(password))
	require.NoError(t, err)
}

func newAdminServices(t *testing.T) (*Services, *testutil.Backend) {
	s, b := newServices(t)
	loginAs(t, s, "admin", "secreto123")
	return s, b
}

func TestCustomerLoad_ProcessesRecords(t *testing.T) {
	s, _ := newAdminServices(t)
	require.NoError(t, s.Customers.Load(context.Background()))

	items := s.Customers.Store.Items.Get()
	require.Len(t, items, 3)
	require.NotNil(t, items[0].Age)
	assert.Equal(t, 33, *items[0].Age)
	assert.Equal(t, "Surco", items[2].Address.District)
	assert.Equal(t, model.UnspecifiedText, items[2].Address.AddrStreet)
	assert.Equal(t, model.UnspecifiedNumber, items[2].Address.NumberHouse)
	assert.False(t, s.Customers.Store.Loading.Get())
	assert.Empty(t, s.Customers.Store.Error.Get())

	assert.Equal(t, CustomerCounts{Total: 3, Active: 2, Inactive: 1}, s.Customers.Counts())
}

func TestCustomerLoad_RetriesServerErrors(t *testing.T) {
	s, b := newAdminServices(t)
	b.Fail("GET /v1/api/customer", http.StatusServiceUnavailable)

	require.NoError(t, s.Customers.Load(context.Background()))
	assert.Len(t, b.RequestsTo("GET /v1/api/customer"), 2)
	assert.Len(t, s.Customers.Store.Items.Get(), 3)
}

func TestUnauthorized_ClearsSessionAndRoutesToLogin(t *testing.T) {
	s, b := newAdminServices(t)
	require.Equal(t, RouteDashboard, s.Route.Get())

	b.RevokeTokens()
	err := s.Products.Load(context.Background())
	require.Error(t, err)
	assert.True(t, api.IsUnauthorized(err))

	assert.False(t, s.Session.IsAuthenticated())
	assert.Equal(t, RouteLogin, s.Route.Get())
	_, getErr := s.Store.Get(context.Background(), "panaderia_auth_data")
	assert.ErrorIs(t, getErr, db.ErrNotFound)
}

func TestCustomerSoftDeleteAndRestore_InPlace(t *testing.T) {
	ctx := context.Background()
	s, b := newAdminServices(t)
	require.NoError(t, s.Customers.Load(ctx))

	require.NoError(t, s.Customers.SoftDelete(ctx, 1))
	items := s.Customers.Store.Items.Get()
	require.Len(t, items, 3)
	assert.Equal(t, 1, items[0].IDCustomer)
	assert.Equal(t, model.StatusInactive, items[0].Status)
	stored, _ := b.Customer(1)
	assert.Equal(t, model.StatusInactive, stored.Status)

	require.NoError(t, s.Customers.Restore(ctx, 1))
	assert.Equal(t, model.StatusActive, s.Customers.Store.Items.Get()[0].Status)
	assert.Len(t, b.RequestsTo("PATCH /v1/api/customer/restore/1"), 1)
}

func TestCustomerSoftDelete_FailureKeepsState(t *testing.T) {
	ctx := context.Background()
	s, b := newAdminServices(t)
	require.NoError(t, s.Customers.Load(ctx))
	before := s.Customers.Store.Snapshot()

	b.Fail("PATCH /v1/api/customer/delete/1", http.StatusInternalServerError)
	err := s.Customers.SoftDelete(ctx, 1)
	require.Error(t, err)
	assert.Equal(t, 500, api.StatusOf(err))
	assert.Equal(t, before, s.Customers.Store.Items.Get())
	assert.Equal(t, err.Error(), s.Customers.Store.Error.Get())
}

func newCustomer() model.Customer {
	return model.Customer{
		FirstName:      "Carla",
		LastName:       "Vega",
		BirthDate:      "1995-08-20",
		Gender:         "F",
		DocumentType:   "DNI",
		DocumentNumber: "47001122",
		Phone:          "999888777",
		Email:          "carla@correo.pe",
		Address:        model.Address{District: "Barranco", AddrStreet: "Jr. Unión"},
	}
}

func TestCustomerCreate_ForcesStatusAndDate(t *testing.T) {
	ctx := context.Background()
	s, b := newAdminServices(t)
	require.NoError(t, s.Customers.Load(ctx))

	in := newCustomer()
	in.Status = model.StatusInactive
	got, err := s.Customers.Create(ctx, in)
	require.NoError(t, err)
	assert.NotZero(t, got.IDCustomer)
	assert.Equal(t, model.StatusActive, got.Status)
	assert.Equal(t, "2024-05-12", got.RegistrationDate)

	items := s.Customers.Store.Items.Get()
	require.Len(t, items, 4)
	assert.Equal(t, got.IDCustomer, items[3].IDCustomer)
	assert.Equal(t, 1, s.Customers.Counts().New)

	body := b.RequestsTo("POST /v1/api/customer/save")[0].Body
	assert.Contains(t, body, `"registrationDate":"2024-05-12"`)
	assert.NotContains(t, body, `"age"`)
}

func TestCustomerCreate_ValidatesBeforeCalling(t *testing.T) {
	s, b := newAdminServices(t)
	in := newCustomer()
	in.FirstName = ""
	in.Email = "no-es-correo"

	_, err := s.Customers.Create(context.Background(), in)
	require.ErrorIs(t, err, ErrValidation)
	var verr *model.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Fields, 2)
	assert.Empty(t, b.RequestsTo("POST /v1/api/customer/save"))
}

func TestCustomerCreate_ConflictKeepsStore(t *testing.T) {
	ctx := context.Background()
	s, _ := newAdminServices(t)
	require.NoError(t, s.Customers.Load(ctx))

	in := newCustomer()
	in.DocumentNumber = "45678912"
	_, err := s.Customers.Create(ctx, in)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, api.StatusOf(err))
	assert.Len(t, s.Customers.Store.Items.Get(), 3)
}

func TestCustomerUpdate_ReplacesById(t *testing.T) {
	ctx := context.Background()
	s, _ := newAdminServices(t)
	require.NoError(t, s.Customers.Load(ctx))

	c := s.Customers.Store.Items.Get()[0]
	c.Phone = "911222333"
	got, err := s.Customers.Update(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, "911222333", got.Phone)
	assert.Equal(t, "911222333", s.Customers.Store.Items.Get()[0].Phone)

	_, err = s.Customers.Update(ctx, model.Customer{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCustomerUpdate_AcceptsUnaccentedCedula(t *testing.T) {
	ctx := context.Background()
	s, b := newAdminServices(t)
	require.NoError(t, s.Customers.Load(ctx))

	c := s.Customers.Store.Items.Get()[0]
	c.DocumentType = "CEDULA"
	c.DocumentNumber = "001234567"
	got, err := s.Customers.Update(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, "CEDULA", got.DocumentType)
	require.Len(t, b.RequestsTo("PUT /v1/api/customer/update"), 1)

	stored, ok := b.Customer(c.IDCustomer)
	require.True(t, ok)
	assert.Equal(t, "CEDULA", stored.DocumentType)
	assert.Equal(t, "Cédula", model.DocumentTypeText(stored.DocumentType))
}

func TestCustomerBirthdayHelpersDegrade(t *testing.T) {
	ctx := context.Background()
	s, b := newAdminServices(t)
	b.Fail("GET /v1/api/customer/upcoming-birthdays/7", http.StatusInternalServerError)
	b.Fail("GET /v1/api/customer/customer-new", http.StatusInternalServerError)

	up := s.Customers.UpcomingBirthdays(ctx, 7)
	assert.NotNil(t, up)
	assert.Empty(t, up)
	assert.Empty(t, s.Customers.NewCustomers(ctx))
}

func TestCustomerCheckBirthdays_FetchesWhenEmpty(t *testing.T) {
	s, _ := newAdminServices(t)
	report, err := s.Customers.CheckBirthdays(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Today)
	require.Len(t, report.Upcoming, 1)
	assert.Equal(t, "Ana", report.Upcoming[0].FirstName)
	assert.Empty(t, s.Customers.Store.Items.Get())
}

func TestProductSoftDeleteUsesUpdate(t *testing.T) {
	ctx := context.Background()
	s, b := newAdminServices(t)
	require.NoError(t, s.Products.Load(ctx))

	require.NoError(t, s.Products.SoftDelete(ctx, 1))
	assert.Equal(t, model.StatusInactive, s.Products.Store.Items.Get()[0].Status)
	puts := b.RequestsTo("PUT /v1/api/product/update")
	require.Len(t, puts, 1)
	assert.Contains(t, puts[0].Body, `"status":"I"`)

	require.NoError(t, s.Products.Restore(ctx, 1))
	assert.Equal(t, model.StatusActive, s.Products.Store.Items.Get()[0].Status)
	assert.Equal(t, ProductCounts{Total: 3, Active: 2, Inactive: 1, OutOfStock: 1, Categories: 3}, s.Products.Counts())
}

func TestProductSoftDelete_LookupFailureRecordsError(t *testing.T) {
	ctx := context.Background()
	s, b := newAdminServices(t)
	require.NoError(t, s.Products.Load(ctx))
	before := s.Products.Store.Items.Get()[0].Status

	b.Fail("GET /v1/api/product/1", http.StatusInternalServerError)
	require.Error(t, s.Products.SoftDelete(ctx, 1))
	assert.NotEmpty(t, s.Products.Store.Error.Get())
	assert.Equal(t, before, s.Products.Store.Items.Get()[0].Status)
	assert.Empty(t, b.RequestsTo("PUT /v1/api/product/update"))
}

func TestProductCreate(t *testing.T) {
	ctx := context.Background()
	s, _ := newAdminServices(t)

	_, err := s.Products.Create(ctx, model.Product{NameProduct: "Empanada", Category: "Salados"})
	require.ErrorIs(t, err, ErrValidation)

	got, err := s.Products.Create(ctx, model.Product{NameProduct: "Empanada", Category: "Salados", Price: decimal.RequireFromString("6.5"), Units: 20})
	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, got.Status)
	assert.Equal(t, "2024-05-12", got.CreationDate)
	assert.Len(t, s.Products.Store.Items.Get(), 1)
}

func TestEmployeeRoleAndEmail(t *testing.T) {
	ctx := context.Background()
	s, b := newAdminServices(t)
	require.NoError(t, s.Employees.Load(ctx))
	_, err := s.Employees.LoadRoles(ctx)
	require.NoError(t, err)

	require.NoError(t, s.Employees.AssignRole(ctx, 1, "cashier"))
	e := s.Employees.Store.Items.Get()[0]
	assert.Equal(t, "CASHIER", e.RoleName)
	assert.Equal(t, 4, e.IDRole)
	reqs := b.RequestsTo("PATCH /v1/api/employee/1/assign-role")
	require.Len(t, reqs, 1)
	assert.Equal(t, "roleName=CASHIER", reqs[0].Query)

	err = s.Employees.UpdateEmail(ctx, 1, "rosa-sin-arroba")
	require.ErrorIs(t, err, ErrValidation)
	require.NoError(t, s.Employees.UpdateEmail(ctx, 1, "rosa.m@panaderia.pe"))
	assert.Equal(t, "rosa.m@panaderia.pe", s.Employees.Store.Items.Get()[0].Email)

	require.NoError(t, s.Employees.SoftDelete(ctx, 1))
	assert.Equal(t, model.StatusInactive, s.Employees.Store.Items.Get()[0].Status)
	c := s.Employees.Counts()
	assert.Equal(t, 2, c.Inactive)
	assert.Equal(t, 2, c.ByRole["CASHIER"])
}

func TestEmployeeCreate_Defaults(t *testing.T) {
	s, _ := newAdminServices(t)
	got, err := s.Employees.Create(context.Background(), model.EmployeeRequest{
		FirstName: "Elena", LastName: "Paz", DocumentType: "DNI", DocumentNumber: "43332211",
		Email: "elena@panaderia.pe", IDRole: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, got.Status)
	assert.Equal(t, "2024-05-12", got.HireDate)
}

func TestOrders_PendingViewStatsAndCancel(t *testing.T) {
	ctx := context.Background()
	s, _ := newAdminServices(t)
	require.NoError(t, s.Orders.Load(ctx))

	assert.Len(t, s.Orders.Pending.Get(), 2)
	assert.Equal(t, OrderStats{Total: 2, Delivery: 1, Local: 1, PendingPayment: 1}, s.Orders.Stats.Get())

	require.NoError(t, s.Orders.Cancel(ctx, 1))
	assert.Len(t, s.Orders.Pending.Get(), 1)
	assert.Len(t, s.Orders.Store.Items.Get(), 3)

	require.NoError(t, s.Orders.Restore(ctx, 1))
	assert.Len(t, s.Orders.Pending.Get(), 2)

	total, err := s.Orders.Total(ctx, 2)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(7)))

	details, err := s.Orders.FullDetails(ctx, 1)
	require.NoError(t, err)
	require.Len(t, details.Items, 1)
	assert.Equal(t, "Torta de chocolate", details.Items[0].NameProduct)
}

func TestOrders_SubmitDraft(t *testing.T) {
	ctx := context.Background()
	s, b := newAdminServices(t)
	require.NoError(t, s.Orders.Load(ctx))

	d := NewOrderDraft(s.Now)
	d.SetCustomer(model.Customer{IDCustomer: 1, FirstName: "Ana", LastName: "Quispe"})
	d.SetProducts([]model.Product{
		{ID: 1, Price: decimal.RequireFromString("3.50")},
		{ID: 2, Price: decimal.RequireFromString("45")},
	})
	d.SetAdvance(decimal.NewFromInt(10))
	d.Order.DeliveryDate = "2024-05-13"

	saved, err := s.Orders.Submit(ctx, d)
	require.NoError(t, err)
	assert.True(t, saved.TotalAmount.Equal(decimal.RequireFromString("48.5")))
	assert.True(t, saved.BalanceAmount.Equal(decimal.RequireFromString("38.5")))
	assert.Len(t, s.Orders.Pending.Get(), 3)

	body := b.RequestsTo("POST /v1/api/order/save")[0].Body
	assert.Contains(t, body, `"totalAmount":48.5`)
	assert.Contains(t, body, `"orderDate":"2024-05-12"`)
	assert.True(t, strings.Contains(body, `"customer":{"idCustomer":1}`))

	edit := EditOrderDraft(*saved, s.Now)
	edit.Cancel("")
	_, err = s.Orders.Submit(ctx, edit)
	require.NoError(t, err)
	assert.Len(t, b.RequestsTo("PUT /v1/api/order/update"), 1)
	assert.Len(t, s.Orders.Pending.Get(), 2)
}

func TestResolvers(t *testing.T) {
	ctx := context.Background()
	s, b := newAdminServices(t)

	customers := s.ResolveCustomers(ctx, "")
	assert.Len(t, customers, 2)
	assert.Len(t, b.RequestsTo("GET /v1/api/customer/status/A"), 1)

	b.Fail("GET /v1/api/product/status/I", http.StatusInternalServerError)
	products := s.ResolveProducts(ctx, "I")
	assert.NotNil(t, products)
	assert.Empty(t, products)

	assert.Nil(t, s.ResolveCustomer(ctx, 99))
	assert.Nil(t, s.ResolveEmployee(ctx, 0))
	c := s.ResolveCustomer(ctx, 1)
	require.NotNil(t, c)
	require.NotNil(t, c.Age)
	assert.Len(t, s.ResolveOrders(ctx, ""), 2)
}

func TestDashboard(t *testing.T) {
	s, _ := newAdminServices(t)
	d, err := s.BuildDashboardData(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "admin", d.UserName)
	assert.Equal(t, 3, d.Customers.Total)
	assert.Equal(t, 2, d.Orders.Total)
	assert.Equal(t, 2, d.Products.Active)
	assert.Empty(t, d.PartialFailures)
	assert.Len(t, d.WeeklySales.Values, 7)
	assert.Len(t, d.Notifications, 1)
	assert.Equal(t, 1, d.UnreadCount)

	titles := []string{}
	for _, c := range d.MenuCards {
		titles = append(titles, c.Title)
	}
	assert.Contains(t, titles, "Nuevo Cliente")
}

func TestDashboard_RequiresSession(t *testing.T) {
	s, _ := newServices(t)
	_, err := s.BuildDashboardData(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestStartRestoresSession(t *testing.T) {
	ctx := context.Background()
	s, b := newAdminServices(t)

	again, err := NewServices(b.APIConfig(), s.Store)
	require.NoError(t, err)
	require.NoError(t, again.Start(ctx))
	assert.True(t, again.Session.IsAuthenticated())
	assert.Equal(t, RouteDashboard, again.Route.Get())

	require.NoError(t, again.Logout(ctx))
	assert.Equal(t, RouteLogin, again.Route.Get())
}
