// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/toeirei/panaderia/internal/config"
	"github.com/toeirei/panaderia/internal/model"
)

// FakePDF is the body served by the fake report endpoints.
var FakePDF = []byte("%PDF-1.4\n% panaderia fake report\n%%EOF\n")

// Account is a user known to the fake backend.
type Account struct {
	Username string
	Password string
	Email    string
	Roles    []string
}

// Request is one call recorded by the fake backend.
type Request struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	RequestID     string
	Body          string
}

// Backend is an in-memory stand-in for the bakery REST backend. Resource
// routes require the bearer token handed out by login unless Open is set.
type Backend struct {
	Server *httptest.Server

	mu        sync.Mutex
	Customers []model.Customer
	Employees []model.Employee
	Products  []model.Product
	Orders    []model.Order
	Addresses []model.Address
	Roles     []model.Role
	Items     map[int][]model.OrderItem
	Upcoming  []model.Customer
	Accounts  map[string]Account
	Open      bool

	tokens   map[string]string
	failures map[string][]int
	requests []Request
	nextID   int
}

// NewBackend starts a fake backend seeded with a small data set and
// registers its shutdown with t.
func NewBackend(t testing.TB) *Backend {
	t.Helper()
	b := &Backend{
		Items:    make(map[int][]model.OrderItem),
		Accounts: make(map[string]Account),
		tokens:   make(map[string]string),
		failures: make(map[string][]int),
		nextID:   100,
	}
	b.seed()
	b.Server = httptest.NewServer(b.routes())
	t.Cleanup(b.Server.Close)
	return b
}

// URL is the backend's base URL.
func (b *Backend) URL() string { return b.Server.URL }

// APIConfig returns an api configuration pointing at the fake.
func (b *Backend) APIConfig() config.API {
	return config.API{
		BaseURL: b.Server.URL,
		AuthURL: b.Server.URL + "/auth",
		Timeout: 5 * time.Second,
		Retries: 2,
		Endpoints: config.Endpoints{
			Customer: "/v1/api/customer",
			Employee: "/v1/api/employee",
			Product:  "/v1/api/product",
			Order:    "/v1/api/order",
			Address:  "/v1/api/address",
			Roles:    "/v1/api/roles",
		},
	}
}

// IssueToken registers a valid token for username without a login call.
func (b *Backend) IssueToken(username string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	acc := b.Accounts[username]
	tok := Token(username, acc.Roles, time.Hour)
	b.tokens[tok] = username
	return tok
}

// RevokeTokens invalidates every issued token so the next call gets a 401.
func (b *Backend) RevokeTokens() {
	b.mu.Lock()
	b.tokens = make(map[string]string)
	b.mu.Unlock()
}

// Fail makes the next len(statuses) calls of "METHOD /path" answer with
// the given statuses, in order.
func (b *Backend) Fail(methodPath string, statuses ...int) {
	b.mu.Lock()
	b.failures[methodPath] = append(b.failures[methodPath], statuses...)
	b.mu.Unlock()
}

// Requests returns the calls recorded so far.
func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Request(nil), b.requests...)
}

// RequestsTo returns the recorded calls of "METHOD /path".
func (b *Backend) RequestsTo(methodPath string) []Request {
	var out []Request
	for _, r := range b.Requests() {
		if r.Method+" "+r.Path == methodPath {
			out = append(out, r)
		}
	}
	return out
}

// Customer returns the stored customer with id.
func (b *Backend) Customer(id int) (model.Customer, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, c := range b.Customers {
		if c.IDCustomer == id {
			return c, true
		}
	}
	return model.Customer{}, false
}

func (b *Backend) seed() {
	b.Accounts["admin"] = Account{Username: "admin", Password: "secreto123", Email: "admin@panaderia.pe", Roles: []string{"ROLE_ADMINISTRATOR"}}
	b.Accounts["cajero"] = Account{Username: "cajero", Password: "caja2024", Email: "caja@panaderia.pe", Roles: []string{"ROLE_CASHIER"}}

	b.Customers = []model.Customer{
		{IDCustomer: 1, FirstName: "Ana", LastName: "Quispe", BirthDate: "1990-05-14", Gender: "F", DocumentType: "DNI", DocumentNumber: "45678912", Phone: "987654321", RegistrationDate: "2024-01-10", Email: "ana@correo.pe", Status: model.StatusActive, Address: model.Address{IDAddress: 1, District: "Miraflores", AddrStreet: "Av. Larco", NumberHouse: "120", PlaceType: "Casa", Reference: "Frente al parque"}},
		{IDCustomer: 2, FirstName: "Luis", LastName: "Torres", BirthDate: "1985-11-02", Gender: "M", DocumentType: "DNI", DocumentNumber: "40123456", Phone: "912345678", RegistrationDate: "2023-07-21", Email: "luis@correo.pe", Status: model.StatusInactive},
		{IDCustomer: 3, FirstName: "María", LastName: "Huamán", BirthDate: "2000-02-29", Gender: "F", DocumentType: "PASAPORTE", DocumentNumber: "PA998877", Phone: "955112233", RegistrationDate: "2024-03-01", Email: "maria@correo.pe", Status: model.StatusActive, Address: model.Address{District: "Surco"}},
	}
	b.Employees = []model.Employee{
		{IDEmployee: 1, FirstName: "Rosa", LastName: "Mendoza", DocumentType: "DNI", DocumentNumber: "41234567", Email: "rosa@panaderia.pe", IDRole: 6, RoleName: "BAKER", Status: model.StatusActive, Gender: "F", HireDate: "2021-04-01"},
		{IDEmployee: 2, FirstName: "Jorge", LastName: "Salas", DocumentType: "DNI", DocumentNumber: "42345678", Email: "jorge@panaderia.pe", IDRole: 4, RoleName: "CASHIER", Status: model.StatusInactive, Gender: "M", HireDate: "2022-09-15"},
	}
	b.Roles = []model.Role{{ID: 3, Name: "ADMINISTRATOR"}, {ID: 4, Name: "CASHIER"}, {ID: 5, Name: "INVENTORY"}, {ID: 6, Name: "BAKER"}}
	b.Products = []model.Product{
		{ID: 1, NameProduct: "Pan francés", Description: "Bolsa de 10 unidades", Price: decimal.RequireFromString("3.50"), Category: "Panes", Units: 80, Status: model.StatusActive, CreationDate: "2024-01-05"},
		{ID: 2, NameProduct: "Torta de chocolate", Description: "Torta mediana", Price: decimal.RequireFromString("45.00"), Category: "Tortas", Units: 6, Status: model.StatusActive, CreationDate: "2024-02-11"},
		{ID: 3, NameProduct: "Alfajor", Description: "Manjar blanco", Price: decimal.RequireFromString("2.00"), Category: "Dulces", Units: 0, Status: model.StatusInactive, CreationDate: "2023-12-20"},
	}
	notes := "Sin azúcar"
	b.Orders = []model.Order{
		{IDCustomerOrder: 1, OrderDate: "2024-05-01", DeliveryDate: "2024-05-03", DeliveryTime: "10:00", DeliveryType: model.DeliveryLocal, TotalAmount: decimal.RequireFromString("45"), AdvancePayment: decimal.RequireFromString("20"), BalanceAmount: decimal.RequireFromString("25"), AdvancePaymentMethod: "Efectivo", OrderStatus: model.OrderPending, PaymentStatus: model.PaymentPending, Notes: &notes, Customer: model.CustomerInfo{IDCustomer: 1, FirstName: "Ana", LastName: "Quispe"}},
		{IDCustomerOrder: 2, OrderDate: "2024-05-02", DeliveryDate: "2024-05-02", DeliveryTime: "16:30", DeliveryType: model.DeliveryHome, TotalAmount: decimal.RequireFromString("7"), AdvancePayment: decimal.RequireFromString("7"), BalanceAmount: decimal.Zero, AdvancePaymentMethod: "Yape", OrderStatus: model.OrderPending, PaymentStatus: "PA", Customer: model.CustomerInfo{IDCustomer: 3, FirstName: "María", LastName: "Huamán"}, DeliveryAddress: model.AddressInfo{District: "Surco", AddrStreet: "Jr. Las Flores"}},
		{IDCustomerOrder: 3, OrderDate: "2024-04-20", DeliveryDate: "2024-04-22", DeliveryTime: "12:00", DeliveryType: model.DeliveryLocal, TotalAmount: decimal.RequireFromString("3.5"), OrderStatus: model.OrderCancelled, PaymentStatus: model.PaymentPending, Customer: model.CustomerInfo{IDCustomer: 2, FirstName: "Luis", LastName: "Torres"}},
	}
	b.Items[1] = []model.OrderItem{{IDOrderItem: 1, IDProduct: 2, NameProduct: "Torta de chocolate", Quantity: 1, UnitPrice: decimal.RequireFromString("45"), Subtotal: decimal.RequireFromString("45")}}
	b.Items[2] = []model.OrderItem{{IDOrderItem: 2, IDProduct: 1, NameProduct: "Pan francés", Quantity: 2, UnitPrice: decimal.RequireFromString("3.5"), Subtotal: decimal.RequireFromString("7")}}
	b.Addresses = []model.Address{{IDAddress: 1, District: "Miraflores", AddrStreet: "Av. Larco", NumberHouse: "120"}}
}

func (b *Backend) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", b.login)
	mux.HandleFunc("POST /auth/register", b.register)

	const c = "/v1/api/customer"
	mux.HandleFunc("GET "+c, b.guard(func(w http.ResponseWriter, r *http.Request) { b.reply(w, b.Customers) }))
	mux.HandleFunc("GET "+c+"/{id}", b.guard(b.customerGet))
	mux.HandleFunc("GET "+c+"/status/{status}", b.guard(func(w http.ResponseWriter, r *http.Request) {
		b.reply(w, filter(b.Customers, func(x model.Customer) bool { return x.Status == r.PathValue("status") }))
	}))
	mux.HandleFunc("POST "+c+"/save", b.guard(b.customerSave))
	mux.HandleFunc("PUT "+c+"/update", b.guard(b.customerUpdate))
	mux.HandleFunc("PATCH "+c+"/delete/{id}", b.guard(b.customerStatus(model.StatusInactive)))
	mux.HandleFunc("PATCH "+c+"/restore/{id}", b.guard(b.customerStatus(model.StatusActive)))
	mux.HandleFunc("GET "+c+"/pdf", b.guard(b.pdf))
	mux.HandleFunc("GET "+c+"/upcoming-birthdays/{days}", b.guard(func(w http.ResponseWriter, r *http.Request) { b.reply(w, b.Upcoming) }))
	mux.HandleFunc("GET "+c+"/customer-new", b.guard(func(w http.ResponseWriter, r *http.Request) {
		b.reply(w, filter(b.Customers, func(x model.Customer) bool { return x.Status == model.StatusActive }))
	}))

	const e = "/v1/api/employee"
	mux.HandleFunc("GET "+e, b.guard(func(w http.ResponseWriter, r *http.Request) { b.reply(w, b.Employees) }))
	mux.HandleFunc("GET "+e+"/active", b.guard(func(w http.ResponseWriter, r *http.Request) {
		b.reply(w, filter(b.Employees, func(x model.Employee) bool { return x.Status == model.StatusActive }))
	}))
	mux.HandleFunc("GET "+e+"/{id}", b.guard(b.employeeGet))
	// Two-segment employee routes share their shape, so they are dispatched
	// by hand to keep the mux patterns unambiguous.
	mux.HandleFunc("GET "+e+"/{first}/{second}", b.guard(b.employeeGetSub))
	mux.HandleFunc("POST "+e+"/save", b.guard(b.employeeSave))
	mux.HandleFunc("PUT "+e+"/{first}/{second}", b.guard(b.employeePutSub))
	mux.HandleFunc("PATCH "+e+"/{first}/{second}", b.guard(b.employeePatchSub))
	mux.HandleFunc("GET /v1/api/roles", b.guard(func(w http.ResponseWriter, r *http.Request) { b.reply(w, b.Roles) }))

	const p = "/v1/api/product"
	mux.HandleFunc("GET "+p, b.guard(func(w http.ResponseWriter, r *http.Request) { b.reply(w, b.Products) }))
	mux.HandleFunc("GET "+p+"/{id}", b.guard(b.productGet))
	mux.HandleFunc("GET "+p+"/status/{status}", b.guard(func(w http.ResponseWriter, r *http.Request) {
		b.reply(w, filter(b.Products, func(x model.Product) bool { return x.Status == r.PathValue("status") }))
	}))
	mux.HandleFunc("POST "+p+"/save", b.guard(b.productSave))
	mux.HandleFunc("PUT "+p+"/update", b.guard(b.productUpdate))
	mux.HandleFunc("GET "+p+"/pdf", b.guard(b.pdf))

	const o = "/v1/api/order"
	mux.HandleFunc("GET "+o, b.guard(func(w http.ResponseWriter, r *http.Request) { b.reply(w, b.Orders) }))
	mux.HandleFunc("GET "+o+"/{id}", b.guard(b.orderGet))
	mux.HandleFunc("GET "+o+"/canceled", b.guard(func(w http.ResponseWriter, r *http.Request) {
		b.reply(w, filter(b.Orders, func(x model.Order) bool { return x.OrderStatus == model.OrderCancelled }))
	}))
	mux.HandleFunc("GET "+o+"/status/{status}", b.guard(func(w http.ResponseWriter, r *http.Request) {
		b.reply(w, filter(b.Orders, func(x model.Order) bool { return x.OrderStatus == r.PathValue("status") }))
	}))
	mux.HandleFunc("GET "+o+"/delivery-type/{type}", b.guard(func(w http.ResponseWriter, r *http.Request) {
		b.reply(w, filter(b.Orders, func(x model.Order) bool { return x.DeliveryType == r.PathValue("type") }))
	}))
	mux.HandleFunc("GET "+o+"/customer/{id}", b.guard(func(w http.ResponseWriter, r *http.Request) {
		id := pathID(r)
		b.reply(w, filter(b.Orders, func(x model.Order) bool { return x.Customer.IDCustomer == id }))
	}))
	mux.HandleFunc("POST "+o+"/save", b.guard(b.orderSave))
	mux.HandleFunc("PUT "+o+"/update", b.guard(b.orderUpdate))
	mux.HandleFunc("PATCH "+o+"/delete/{id}", b.guard(b.orderStatus(model.OrderCancelled)))
	mux.HandleFunc("PATCH "+o+"/restore/{id}", b.guard(b.orderStatus(model.OrderPending)))
	mux.HandleFunc("GET "+o+"/items/{id}", b.guard(func(w http.ResponseWriter, r *http.Request) {
		items := b.Items[pathID(r)]
		if items == nil {
			items = []model.OrderItem{}
		}
		b.reply(w, items)
	}))
	mux.HandleFunc("GET "+o+"/full-details/{id}", b.guard(b.orderDetails))
	mux.HandleFunc("GET "+o+"/total/{id}", b.guard(b.orderTotal))
	mux.HandleFunc("GET "+o+"/health", b.guard(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("Order service is running"))
	}))

	const a = "/v1/api/address"
	mux.HandleFunc("GET "+a, b.guard(func(w http.ResponseWriter, r *http.Request) { b.reply(w, b.Addresses) }))
	mux.HandleFunc("GET "+a+"/{id}", b.guard(b.addressGet))
	mux.HandleFunc("POST "+a+"/save", b.guard(b.addressSave))
	mux.HandleFunc("PUT "+a+"/update", b.guard(b.addressUpdate))
	mux.HandleFunc("DELETE "+a+"/delete/{id}", b.guard(b.addressDelete))

	return b.record(mux)
}

// record logs every call and serves queued failures before routing.
func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewReader(body))
		}

		b.mu.Lock()
		b.requests = append(b.requests, Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			Query:         r.URL.RawQuery,
			Authorization: r.Header.Get("Authorization"),
			RequestID:     r.Header.Get("X-Request-ID"),
			Body:          string(body),
		})
		key := r.Method + " " + r.URL.Path
		status := 0
		if q := b.failures[key]; len(q) > 0 {
			status = q[0]
			b.failures[key] = q[1:]
		}
		b.mu.Unlock()

		if status != 0 {
			writeError(w, status, http.StatusText(status))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// guard rejects calls without a valid bearer token and serialises access
// to the data set.
func (b *Backend) guard(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if !b.Open {
			tok := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if _, ok := b.tokens[tok]; !ok || tok == "" {
				writeError(w, http.StatusUnauthorized, "Token inválido o expirado")
				return
			}
		}
		h(w, r)
	}
}

func (b *Backend) reply(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (b *Backend) id() int {
	b.nextID++
	return b.nextID
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	b.mu.Lock()
	acc, ok := b.Accounts[req.Username]
	b.mu.Unlock()
	if !ok || acc.Password != req.Password {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(model.ErrorResponse{Error: "Unauthorized", Message: "Credenciales inválidas", Timestamp: time.Now().Format(time.RFC3339)})
		return
	}
	tok := b.IssueToken(acc.Username)
	b.reply(w, model.LoginResponse{
		Success:   true,
		Token:     tok,
		TokenType: "Bearer",
		Email:     acc.Email,
		Username:  acc.Username,
		Roles:     acc.Roles,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func (b *Backend) register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.Accounts[req.Username]; exists {
		writeError(w, http.StatusConflict, "El usuario ya existe")
		return
	}
	b.Accounts[req.Username] = Account{Username: req.Username, Password: req.Password, Email: req.Email, Roles: []string{"ROLE_CLIENT"}}
	b.reply(w, model.AuthResponse{Message: "Usuario registrado", Username: req.Username, Roles: []string{"ROLE_CLIENT"}})
}

func (b *Backend) pdf(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/pdf")
	_, _ = w.Write(FakePDF)
}

func (b *Backend) customerGet(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	for _, c := range b.Customers {
		if c.IDCustomer == id {
			b.reply(w, c)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Cliente no encontrado")
}

func (b *Backend) customerSave(w http.ResponseWriter, r *http.Request) {
	var c model.Customer
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	for _, ex := range b.Customers {
		if ex.DocumentNumber == c.DocumentNumber || (c.Email != "" && ex.Email == c.Email) {
			writeError(w, http.StatusConflict, "Documento o email duplicado")
			return
		}
	}
	c.IDCustomer = b.id()
	b.Customers = append(b.Customers, c)
	b.reply(w, c)
}

func (b *Backend) customerUpdate(w http.ResponseWriter, r *http.Request) {
	var c model.Customer
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	for i := range b.Customers {
		if b.Customers[i].IDCustomer == c.IDCustomer {
			b.Customers[i] = c
			b.reply(w, c)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Cliente no encontrado")
}

func (b *Backend) customerStatus(status string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := pathID(r)
		for i := range b.Customers {
			if b.Customers[i].IDCustomer == id {
				b.Customers[i].Status = status
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		writeError(w, http.StatusNotFound, "Cliente no encontrado")
	}
}

func (b *Backend) employeeIndex(id int) int {
	for i := range b.Employees {
		if b.Employees[i].IDEmployee == id {
			return i
		}
	}
	return -1
}

func (b *Backend) employeeGet(w http.ResponseWriter, r *http.Request) {
	if i := b.employeeIndex(pathID(r)); i >= 0 {
		b.reply(w, b.Employees[i])
		return
	}
	writeError(w, http.StatusNotFound, "Empleado no encontrado")
}

func (b *Backend) employeeFromRequest(req model.EmployeeRequest, id int) model.Employee {
	e := model.Employee{
		IDEmployee: id, FirstName: req.FirstName, LastName: req.LastName,
		DocumentType: req.DocumentType, DocumentNumber: req.DocumentNumber, Email: req.Email,
		Phone: req.Phone, Address: req.Address, IDRole: req.IDRole, HireDate: req.HireDate,
		Status: req.Status, BirthDate: req.BirthDate, Gender: req.Gender, Position: req.Position,
		EmergencyContactName: req.EmergencyContactName, EmergencyContactPhone: req.EmergencyContactPhone,
	}
	for _, role := range b.Roles {
		if role.ID == req.IDRole {
			e.RoleName = role.Name
		}
	}
	if e.Status == "" {
		e.Status = model.StatusActive
	}
	return e
}

func (b *Backend) employeeSave(w http.ResponseWriter, r *http.Request) {
	var req model.EmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	for _, ex := range b.Employees {
		if ex.DocumentNumber == req.DocumentNumber || ex.Email == req.Email {
			writeError(w, http.StatusConflict, "Documento o email duplicado")
			return
		}
	}
	e := b.employeeFromRequest(req, b.id())
	b.Employees = append(b.Employees, e)
	b.reply(w, e)
}

func (b *Backend) employeeGetSub(w http.ResponseWriter, r *http.Request) {
	first, second := r.PathValue("first"), r.PathValue("second")
	switch {
	case first == "status":
		b.reply(w, filter(b.Employees, func(x model.Employee) bool { return x.Status == second }))
	case first == "gender":
		b.reply(w, filter(b.Employees, func(x model.Employee) bool { return x.Gender == second }))
	case second == "user-info":
		b.employeeUserInfo(w, r, atoi(first))
	default:
		http.NotFound(w, r)
	}
}

func (b *Backend) employeePutSub(w http.ResponseWriter, r *http.Request) {
	first, second := r.PathValue("first"), r.PathValue("second")
	switch {
	case first == "update":
		b.employeeUpdate(w, r, atoi(second))
	case second == "email":
		b.employeeEmail(w, r, atoi(first))
	default:
		http.NotFound(w, r)
	}
}

func (b *Backend) employeePatchSub(w http.ResponseWriter, r *http.Request) {
	first, second := r.PathValue("first"), r.PathValue("second")
	switch {
	case first == "delete":
		b.employeeStatus(w, r, atoi(second), model.StatusInactive)
	case first == "restore":
		b.employeeStatus(w, r, atoi(second), model.StatusActive)
	case second == "assign-role":
		b.employeeAssignRole(w, r, atoi(first))
	default:
		http.NotFound(w, r)
	}
}

func (b *Backend) employeeUpdate(w http.ResponseWriter, r *http.Request, id int) {
	var req model.EmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	i := b.employeeIndex(id)
	if i < 0 {
		writeError(w, http.StatusNotFound, "Empleado no encontrado")
		return
	}
	b.Employees[i] = b.employeeFromRequest(req, b.Employees[i].IDEmployee)
	b.reply(w, b.Employees[i])
}

func (b *Backend) employeeStatus(w http.ResponseWriter, _ *http.Request, id int, status string) {
	if i := b.employeeIndex(id); i >= 0 {
		b.Employees[i].Status = status
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeError(w, http.StatusNotFound, "Empleado no encontrado")
}

func (b *Backend) employeeAssignRole(w http.ResponseWriter, r *http.Request, id int) {
	i := b.employeeIndex(id)
	if i < 0 {
		writeError(w, http.StatusNotFound, "Empleado no encontrado")
		return
	}
	name := r.URL.Query().Get("roleName")
	for _, role := range b.Roles {
		if role.Name == name {
			b.Employees[i].RoleName = role.Name
			b.Employees[i].IDRole = role.ID
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusBadRequest, "Rol desconocido")
}

func (b *Backend) employeeEmail(w http.ResponseWriter, r *http.Request, id int) {
	var body struct {
		NewEmail string `json:"newEmail"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.NewEmail == "" {
		writeError(w, http.StatusBadRequest, "Email requerido")
		return
	}
	i := b.employeeIndex(id)
	if i < 0 {
		writeError(w, http.StatusNotFound, "Empleado no encontrado")
		return
	}
	b.Employees[i].Email = body.NewEmail
	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) employeeUserInfo(w http.ResponseWriter, _ *http.Request, id int) {
	i := b.employeeIndex(id)
	if i < 0 {
		writeError(w, http.StatusNotFound, "Empleado no encontrado")
		return
	}
	e := b.Employees[i]
	b.reply(w, model.EmployeeUserInfo{
		Username: strings.ToLower(e.FirstName),
		Email:    e.Email,
		Roles:    []string{"ROLE_" + e.RoleName},
		Status:   e.Status,
	})
}

func (b *Backend) productIndex(id int) int {
	for i := range b.Products {
		if b.Products[i].ID == id {
			return i
		}
	}
	return -1
}

func (b *Backend) productGet(w http.ResponseWriter, r *http.Request) {
	if i := b.productIndex(pathID(r)); i >= 0 {
		b.reply(w, b.Products[i])
		return
	}
	writeError(w, http.StatusNotFound, "Producto no encontrado")
}

func (b *Backend) productSave(w http.ResponseWriter, r *http.Request) {
	var p model.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	p.ID = b.id()
	if p.Status == "" {
		p.Status = model.StatusActive
	}
	if p.CreationDate == "" {
		p.CreationDate = time.Now().Format(model.DateLayout)
	}
	b.Products = append(b.Products, p)
	b.reply(w, p)
}

func (b *Backend) productUpdate(w http.ResponseWriter, r *http.Request) {
	var p model.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	i := b.productIndex(p.ID)
	if i < 0 {
		writeError(w, http.StatusNotFound, "Producto no encontrado")
		return
	}
	b.Products[i] = p
	b.reply(w, p)
}

func (b *Backend) orderIndex(id int) int {
	for i := range b.Orders {
		if b.Orders[i].IDCustomerOrder == id {
			return i
		}
	}
	return -1
}

func (b *Backend) orderGet(w http.ResponseWriter, r *http.Request) {
	if i := b.orderIndex(pathID(r)); i >= 0 {
		b.reply(w, b.Orders[i])
		return
	}
	writeError(w, http.StatusNotFound, "Pedido no encontrado")
}

func (b *Backend) orderFromRequest(req model.OrderRequest) model.Order {
	o := model.Order{
		IDCustomerOrder: req.IDCustomerOrder, OrderDate: req.OrderDate, DeliveryDate: req.DeliveryDate,
		DeliveryTime: req.DeliveryTime, DeliveryType: req.DeliveryType, TotalAmount: req.TotalAmount,
		AdvancePayment: req.AdvancePayment, BalanceAmount: req.BalanceAmount,
		AdvancePaymentMethod: req.AdvancePaymentMethod, OrderStatus: req.OrderStatus,
		PaymentStatus: req.PaymentStatus, DeliveryAddress: req.DeliveryAddress,
		Customer: model.CustomerInfo{IDCustomer: req.Customer.IDCustomer},
	}
	if req.Notes != "" {
		n := req.Notes
		o.Notes = &n
	}
	if req.CancellationReason != "" {
		reason := req.CancellationReason
		o.CancellationReason = &reason
	}
	for _, c := range b.Customers {
		if c.IDCustomer == req.Customer.IDCustomer {
			o.Customer = model.CustomerInfo{IDCustomer: c.IDCustomer, FirstName: c.FirstName, LastName: c.LastName, Phone: c.Phone, Email: c.Email}
		}
	}
	return o
}

func (b *Backend) orderSave(w http.ResponseWriter, r *http.Request) {
	var req model.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	o := b.orderFromRequest(req)
	o.IDCustomerOrder = b.id()
	b.Orders = append(b.Orders, o)
	b.reply(w, o)
}

func (b *Backend) orderUpdate(w http.ResponseWriter, r *http.Request) {
	var req model.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	i := b.orderIndex(req.IDCustomerOrder)
	if i < 0 {
		writeError(w, http.StatusNotFound, "Pedido no encontrado")
		return
	}
	b.Orders[i] = b.orderFromRequest(req)
	b.reply(w, b.Orders[i])
}

func (b *Backend) orderStatus(status string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if i := b.orderIndex(pathID(r)); i >= 0 {
			b.Orders[i].OrderStatus = status
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeError(w, http.StatusNotFound, "Pedido no encontrado")
	}
}

func (b *Backend) orderDetails(w http.ResponseWriter, r *http.Request) {
	i := b.orderIndex(pathID(r))
	if i < 0 {
		writeError(w, http.StatusNotFound, "Pedido no encontrado")
		return
	}
	b.reply(w, model.OrderDetails{Order: b.Orders[i], Items: b.Items[b.Orders[i].IDCustomerOrder]})
}

func (b *Backend) orderTotal(w http.ResponseWriter, r *http.Request) {
	total := decimal.Zero
	for _, it := range b.Items[pathID(r)] {
		total = total.Add(it.Subtotal)
	}
	b.reply(w, total)
}

func (b *Backend) addressIndex(id int) int {
	for i := range b.Addresses {
		if b.Addresses[i].IDAddress == id {
			return i
		}
	}
	return -1
}

func (b *Backend) addressGet(w http.ResponseWriter, r *http.Request) {
	if i := b.addressIndex(pathID(r)); i >= 0 {
		b.reply(w, b.Addresses[i])
		return
	}
	writeError(w, http.StatusNotFound, "Dirección no encontrada")
}

func (b *Backend) addressSave(w http.ResponseWriter, r *http.Request) {
	var a model.Address
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	a.IDAddress = b.id()
	b.Addresses = append(b.Addresses, a)
	b.reply(w, a)
}

func (b *Backend) addressUpdate(w http.ResponseWriter, r *http.Request) {
	var a model.Address
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	i := b.addressIndex(a.IDAddress)
	if i < 0 {
		writeError(w, http.StatusNotFound, "Dirección no encontrada")
		return
	}
	b.Addresses[i] = a
	b.reply(w, a)
}

func (b *Backend) addressDelete(w http.ResponseWriter, r *http.Request) {
	i := b.addressIndex(pathID(r))
	if i < 0 {
		writeError(w, http.StatusNotFound, "Dirección no encontrada")
		return
	}
	b.Addresses = append(b.Addresses[:i], b.Addresses[i+1:]...)
	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.ErrorResponse{
		Error:     http.StatusText(status),
		Message:   msg,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func pathID(r *http.Request) int { return atoi(r.PathValue("id")) }

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func filter[T any](in []T, keep func(T) bool) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
