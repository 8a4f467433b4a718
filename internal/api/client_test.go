package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toeirei/panaderia/internal/config"
	"github.com/toeirei/panaderia/internal/i18n"
	"github.com/toeirei/panaderia/internal/model"
	"github.com/toeirei/panaderia/internal/testutil"
)

func newTestClient(t *testing.T, be *testutil.Backend, token *string, unauthorized *int32) *Client {
	t.Helper()
	i18n.Init("es")
	c, err := New(be.APIConfig(),
		WithTokenSource(func() string {
			if token == nil {
				return ""
			}
			return *token
		}),
		WithUnauthorizedHandler(func() {
			if unauthorized != nil {
				atomic.AddInt32(unauthorized, 1)
			}
		}),
	)
	require.NoError(t, err)
	return c
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New(config.API{})
	require.Error(t, err)

	c, err := New(config.API{BaseURL: "http://localhost:8085/"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8085/v1/api/customer", c.Customers.path)
	assert.Equal(t, "http://localhost:8085/auth", c.Auth.path)
}

func TestInterceptor_AddsBearerAndRequestID(t *testing.T) {
	be := testutil.NewBackend(t)
	tok := be.IssueToken("admin")
	c := newTestClient(t, be, &tok, nil)

	_, err := c.Customers.List(context.Background())
	require.NoError(t, err)

	reqs := be.RequestsTo("GET /v1/api/customer")
	require.Len(t, reqs, 1)
	assert.Equal(t, "Bearer "+tok, reqs[0].Authorization)
	assert.NotEmpty(t, reqs[0].RequestID)
}

func TestInterceptor_LoginIsSentWithoutToken(t *testing.T) {
	be := testutil.NewBackend(t)
	stale := "stale-token"
	var hits int32
	c := newTestClient(t, be, &stale, &hits)

	resp, err := c.Auth.Login(context.Background(), model.LoginRequest{Username: "admin", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, "admin", resp.Username)

	reqs := be.RequestsTo("POST /auth/login")
	require.Len(t, reqs, 1)
	assert.Empty(t, reqs[0].Authorization)

	_, err = c.Auth.Login(context.Background(), model.LoginRequest{Username: "admin", Password: "incorrecta"})
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits), "a rejected login must not end the session")

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Credenciales inválidas", apiErr.BackendMessage())
}

func TestInterceptor_OtherHostsGetNoToken(t *testing.T) {
	be := testutil.NewBackend(t)
	other := testutil.NewBackend(t)
	tok := be.IssueToken("admin")

	cfg := be.APIConfig()
	cfg.Endpoints.Product = other.URL() + "/v1/api/product"
	c, err := New(cfg, WithTokenSource(func() string { return tok }))
	require.NoError(t, err)

	_, err = c.Products.List(context.Background())
	require.Error(t, err, "foreign host rejects the call because no token was sent")

	reqs := other.RequestsTo("GET /v1/api/product")
	require.Len(t, reqs, 1)
	assert.Empty(t, reqs[0].Authorization)
}

func TestUnauthorizedFiresHook(t *testing.T) {
	be := testutil.NewBackend(t)
	tok := be.IssueToken("admin")
	var hits int32
	c := newTestClient(t, be, &tok, &hits)

	be.RevokeTokens()
	_, err := c.Orders.List(context.Background())
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, "No autorizado. Por favor, inicie sesión.", err.Error())
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestStatusMessages(t *testing.T) {
	i18n.Init("es")
	cases := []struct {
		status   int
		resource string
		want     string
	}{
		{0, ResourceCustomer, "Error de conexión. Verifique su internet."},
		{400, ResourceCustomer, "Datos inválidos. Verifique la información."},
		{403, ResourceOrder, "No tiene permisos para esta acción."},
		{404, ResourceProduct, "Recurso no encontrado."},
		{409, ResourceCustomer, "El cliente ya existe (documento o email duplicado)."},
		{500, ResourceEmployee, "Error interno del servidor."},
		{418, ResourceOrder, "Error 418: I'm a teapot"},
	}
	for _, tc := range cases {
		if got := MessageFor(tc.status, "", tc.resource); got != tc.want {
			t.Fatalf("MessageFor(%d, %s) = %q, want %q", tc.status, tc.resource, got, tc.want)
		}
	}
}

func TestConflictIsMapped(t *testing.T) {
	be := testutil.NewBackend(t)
	tok := be.IssueToken("admin")
	c := newTestClient(t, be, &tok, nil)

	dup := model.Customer{FirstName: "Ana", LastName: "Otra", DocumentType: "DNI", DocumentNumber: "45678912"}
	_, err := c.Customers.Save(context.Background(), dup)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, StatusOf(err))
	assert.Contains(t, err.Error(), "El cliente ya existe")
}

func TestTransportFailureIsStatusZero(t *testing.T) {
	be := testutil.NewBackend(t)
	cfg := be.APIConfig()
	be.Server.Close()

	c, err := New(cfg)
	require.NoError(t, err)
	_, err = c.Products.List(context.Background())
	require.Error(t, err)
	assert.Equal(t, 0, StatusOf(err))
}

func TestCustomerListRetriesServerErrors(t *testing.T) {
	be := testutil.NewBackend(t)
	tok := be.IssueToken("admin")
	c := newTestClient(t, be, &tok, nil)

	be.Fail("GET /v1/api/customer", 500, 503)
	list, err := c.Customers.ListWithRetry(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 3)
	assert.Len(t, be.RequestsTo("GET /v1/api/customer"), 3)
}

func TestCustomerListRetryGivesUp(t *testing.T) {
	be := testutil.NewBackend(t)
	tok := be.IssueToken("admin")
	c := newTestClient(t, be, &tok, nil)

	be.Fail("GET /v1/api/customer", 500, 500, 500, 500)
	_, err := c.Customers.ListWithRetry(context.Background())
	require.Error(t, err)
	assert.Len(t, be.RequestsTo("GET /v1/api/customer"), 3, "one call plus two retries")
}

func TestCustomerListDoesNotRetryClientErrors(t *testing.T) {
	be := testutil.NewBackend(t)
	tok := be.IssueToken("admin")
	c := newTestClient(t, be, &tok, nil)

	be.Fail("GET /v1/api/customer", 403)
	_, err := c.Customers.ListWithRetry(context.Background())
	require.Error(t, err)
	assert.Len(t, be.RequestsTo("GET /v1/api/customer"), 1)
}

func TestOtherCallsAreNotRetried(t *testing.T) {
	be := testutil.NewBackend(t)
	tok := be.IssueToken("admin")
	c := newTestClient(t, be, &tok, nil)

	be.Fail("GET /v1/api/product", 500)
	_, err := c.Products.List(context.Background())
	require.Error(t, err)
	assert.Len(t, be.RequestsTo("GET /v1/api/product"), 1)
}

func TestEmployeeEndpoints(t *testing.T) {
	be := testutil.NewBackend(t)
	tok := be.IssueToken("admin")
	c := newTestClient(t, be, &tok, nil)
	ctx := context.Background()

	active, err := c.Employees.Active(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	require.NoError(t, c.Employees.AssignRole(ctx, 1, "INVENTORY"))
	reqs := be.RequestsTo("PATCH /v1/api/employee/1/assign-role")
	require.Len(t, reqs, 1)
	assert.Equal(t, "roleName=INVENTORY", reqs[0].Query)

	require.NoError(t, c.Employees.UpdateEmail(ctx, 1, "rosa.m@panaderia.pe"))
	info, err := c.Employees.UserInfo(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "rosa.m@panaderia.pe", info.Email)

	roles, err := c.Employees.Roles(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, roles)

	emp, err := c.Employees.Get(ctx, 1)
	require.NoError(t, err)
	req := emp.Request()
	req.Phone = "999888777"
	updated, err := c.Employees.Update(ctx, 1, req)
	require.NoError(t, err)
	assert.Equal(t, "999888777", updated.Phone)
	assert.Len(t, be.RequestsTo("PUT /v1/api/employee/update/1"), 1)
}

func TestOrderEndpoints(t *testing.T) {
	be := testutil.NewBackend(t)
	tok := be.IssueToken("admin")
	c := newTestClient(t, be, &tok, nil)
	ctx := context.Background()

	items, err := c.Orders.Items(ctx, 2)
	require.NoError(t, err)
	require.Len(t, items, 1)

	total, err := c.Orders.Total(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "7", total.String())

	health, err := c.Orders.Health(ctx)
	require.NoError(t, err)
	assert.True(t, strings.Contains(health, "running"))

	cancelled, err := c.Orders.Cancelled(ctx)
	require.NoError(t, err)
	assert.Len(t, cancelled, 1)

	details, err := c.Orders.FullDetails(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, details.IDCustomerOrder)
	assert.Len(t, details.Items, 1)
}

func TestReportPDF(t *testing.T) {
	be := testutil.NewBackend(t)
	tok := be.IssueToken("admin")
	c := newTestClient(t, be, &tok, nil)

	data, err := c.Customers.ReportPDF(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testutil.FakePDF, data)
}

func TestAddressHardDelete(t *testing.T) {
	be := testutil.NewBackend(t)
	tok := be.IssueToken("admin")
	c := newTestClient(t, be, &tok, nil)
	ctx := context.Background()

	require.NoError(t, c.Addresses.Delete(ctx, 1))
	_, err := c.Addresses.Get(ctx, 1)
	assert.True(t, IsNotFound(err))
}
