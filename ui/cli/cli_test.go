package cli

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toeirei/panaderia/internal/api"
	"github.com/toeirei/panaderia/internal/core"
	"github.com/toeirei/panaderia/internal/db"
	"github.com/toeirei/panaderia/internal/i18n"
	"github.com/toeirei/panaderia/internal/model"
	"github.com/toeirei/panaderia/internal/testutil"
)

// setupCLI points the commands at a fake backend, an in-memory store and an
// isolated config directory. The clock is pinned to 12 May 2024.
func setupCLI(t *testing.T) *testutil.Backend {
	t.Helper()
	i18n.Init("es")
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("PANADERIA_LANGUAGE", "es")

	b := testutil.NewBackend(t)
	t.Setenv("PANADERIA_API_BASE_URL", b.URL())
	t.Setenv("PANADERIA_API_AUTH_URL", b.URL()+"/auth")

	db.SetDefault(db.NewMemoryStore())
	origNow := nowFunc
	nowFunc = func() time.Time { return time.Date(2024, 5, 12, 10, 0, 0, 0, time.Local) }
	t.Cleanup(func() {
		nowFunc = origNow
		db.SetDefault(nil)
	})
	return b
}

func executeCommand(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	if stdin != nil {
		root.SetIn(stdin)
	}
	root.SetArgs(args)
	err := root.Execute()
	shutdown()
	return out.String(), err
}

func login(t *testing.T, user, password string) {
	t.Helper()
	if _, err := executeCommand(t, strings.NewReader(password+"\n"), "login", user); err != nil {
		t.Fatalf("login %s: %v", user, err)
	}
}

func TestLogin_SessionSurvivesBetweenCommands(t *testing.T) {
	setupCLI(t)
	login(t, "admin", "secreto123")

	out, err := executeCommand(t, nil, "whoami")
	if err != nil {
		t.Fatalf("whoami: %v", err)
	}
	if !strings.Contains(out, "admin") {
		t.Fatalf("expected the user name, got %q", out)
	}
	if !strings.Contains(out, model.RoleDisplayName("ROLE_ADMINISTRATOR")) {
		t.Fatalf("expected the role, got %q", out)
	}

	if _, err := executeCommand(t, nil, "logout"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := executeCommand(t, nil, "whoami"); !errors.Is(err, core.ErrNotAuthenticated) {
		t.Fatalf("expected not authenticated after logout, got %v", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	setupCLI(t)
	_, err := executeCommand(t, strings.NewReader("incorrecta\n"), "login", "admin")
	require.Error(t, err)

	_, err = executeCommand(t, nil, "customer", "list")
	assert.ErrorIs(t, err, core.ErrNotAuthenticated)
}

func TestCustomerList_DefaultsToActive(t *testing.T) {
	setupCLI(t)
	login(t, "admin", "secreto123")

	out, err := executeCommand(t, nil, "customer", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Ana")
	assert.Contains(t, out, "María")
	assert.NotContains(t, out, "Luis")

	out, err = executeCommand(t, nil, "customer", "list", "--status", "T", "--search", "torres")
	require.NoError(t, err)
	assert.Contains(t, out, "Luis")
	assert.NotContains(t, out, "Ana")
}

func TestCustomerCreate_CashierIsDenied(t *testing.T) {
	b := setupCLI(t)
	login(t, "cajero", "caja2024")

	_, err := executeCommand(t, nil, "customer", "create",
		"--first-name", "Rosa", "--last-name", "Pérez", "--document-number", "44556677",
		"--district", "Miraflores", "--street", "Av. Larco")
	if !errors.Is(err, core.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if got := len(b.RequestsTo("POST /v1/api/customer/save")); got != 0 {
		t.Fatalf("no request should reach the backend, got %d", got)
	}
}

func TestCustomerCreate_SavesTrimmedValues(t *testing.T) {
	b := setupCLI(t)
	login(t, "admin", "secreto123")

	out, err := executeCommand(t, nil, "customer", "create",
		"--first-name", "  Rosa ", "--last-name", "Pérez", "--document-number", "44556677",
		"--birth-date", "1990-03-02", "--gender", "F", "--email", "rosa@example.com",
		"--district", "Miraflores", "--street", "Av. Larco", "--number", "123")
	require.NoError(t, err)
	assert.Contains(t, out, "Rosa")
	require.Len(t, b.RequestsTo("POST /v1/api/customer/save"), 1)

	out, err = executeCommand(t, nil, "customer", "list", "--search", "rosa")
	require.NoError(t, err)
	assert.Contains(t, out, "Rosa Pérez")
}

func TestCustomerDelete_MarksInactive(t *testing.T) {
	b := setupCLI(t)
	login(t, "admin", "secreto123")

	if _, err := executeCommand(t, nil, "customer", "delete", "#1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	c, ok := b.Customer(1)
	if !ok || c.Status != model.StatusInactive {
		t.Fatalf("expected customer 1 inactive, got %+v", c)
	}

	if _, err := executeCommand(t, nil, "customer", "restore", "1"); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if c, _ := b.Customer(1); c.Status != model.StatusActive {
		t.Fatalf("expected customer 1 active again, got %q", c.Status)
	}
}

func TestCustomerShow_InvalidID(t *testing.T) {
	setupCLI(t)
	login(t, "admin", "secreto123")
	_, err := executeCommand(t, nil, "customer", "show", "abc")
	require.Error(t, err)
}

func TestOrderCreate_ComputesAmounts(t *testing.T) {
	b := setupCLI(t)
	login(t, "admin", "secreto123")

	out, err := executeCommand(t, nil, "order", "create",
		"--customer", "1", "--products", "1,1,2", "--advance", "10",
		"--delivery-date", "2024-05-20")
	require.NoError(t, err)
	assert.Contains(t, out, model.FormatSoles(decimal.NewFromInt(52)))
	assert.Contains(t, out, model.FormatSoles(decimal.NewFromInt(42)))

	reqs := b.RequestsTo("POST /v1/api/order/save")
	require.Len(t, reqs, 1)
	assert.Contains(t, reqs[0].Body, `"deliveryDate":"2024-05-20"`)
}

func TestOrderCreate_RejectsPastDelivery(t *testing.T) {
	b := setupCLI(t)
	login(t, "admin", "secreto123")

	_, err := executeCommand(t, nil, "order", "create",
		"--customer", "1", "--products", "2", "--delivery-date", "2024-05-01")
	require.Error(t, err)
	assert.Empty(t, b.RequestsTo("POST /v1/api/order/save"))
}

func TestOrderList_Cancelled(t *testing.T) {
	setupCLI(t)
	login(t, "admin", "secreto123")

	out, err := executeCommand(t, nil, "order", "list", "--cancelled")
	require.NoError(t, err)
	assert.Contains(t, out, model.OrderNumber(3))
	assert.NotContains(t, out, model.OrderNumber(1))

	out, err = executeCommand(t, nil, "order", "list", "--filter", "domicilio")
	require.NoError(t, err)
	assert.Contains(t, out, model.OrderNumber(2))
	assert.NotContains(t, out, model.OrderNumber(3))
}

func TestEmployeeAssignRole(t *testing.T) {
	b := setupCLI(t)
	login(t, "admin", "secreto123")

	if _, err := executeCommand(t, nil, "employee", "assign-role", "1", "cashier"); err != nil {
		t.Fatalf("assign-role: %v", err)
	}
	reqs := b.RequestsTo("PATCH /v1/api/employee/1/assign-role")
	if len(reqs) != 1 {
		t.Fatalf("expected one assign-role call, got %d", len(reqs))
	}
	if b.Employees[0].RoleName != "CASHIER" {
		t.Fatalf("expected CASHIER, got %q", b.Employees[0].RoleName)
	}
}

func TestProductCreate_RejectsBadPrice(t *testing.T) {
	b := setupCLI(t)
	login(t, "admin", "secreto123")

	_, err := executeCommand(t, nil, "product", "create", "--name", "Empanada", "--price", "gratis", "--units", "5")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrValidation)
	assert.Empty(t, b.RequestsTo("POST /v1/api/product/save"))
}

func TestNotifications_ReadAllPersists(t *testing.T) {
	setupCLI(t)
	login(t, "admin", "secreto123")

	out, err := executeCommand(t, nil, "notifications")
	require.NoError(t, err)
	assert.Contains(t, out, "Ana")
	assert.Contains(t, out, i18n.T("notifications.title", 1))

	_, err = executeCommand(t, nil, "notifications", "--read-all")
	require.NoError(t, err)

	out, err = executeCommand(t, nil, "notifications")
	require.NoError(t, err)
	assert.Contains(t, out, i18n.T("notifications.title", 0))
}

func TestRevokedToken_EndsSession(t *testing.T) {
	b := setupCLI(t)
	login(t, "admin", "secreto123")
	b.RevokeTokens()

	_, err := executeCommand(t, nil, "product", "list")
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || apiErr.Status != 401 {
		t.Fatalf("expected a 401 api error, got %v", err)
	}
	if _, err := executeCommand(t, nil, "whoami"); !errors.Is(err, core.ErrNotAuthenticated) {
		t.Fatalf("expected the session to be cleared, got %v", err)
	}
}

func TestCustomerReport_RecordsExport(t *testing.T) {
	setupCLI(t)
	login(t, "admin", "secreto123")
	dir := t.TempDir()

	if _, err := executeCommand(t, nil, "customer", "report", "--dir", dir); err != nil {
		t.Fatalf("report: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one report in %s, got %v (%v)", dir, entries, err)
	}
	if filepath.Ext(entries[0].Name()) != ".pdf" {
		t.Fatalf("unexpected report name %q", entries[0].Name())
	}

	out, err := executeCommand(t, nil, "report", "exports")
	if err != nil {
		t.Fatalf("exports: %v", err)
	}
	if !strings.Contains(out, entries[0].Name()) {
		t.Fatalf("expected the export to be listed, got %q", out)
	}
}

func TestDashboardSales(t *testing.T) {
	setupCLI(t)
	login(t, "cajero", "caja2024")

	out, err := executeCommand(t, nil, "dashboard", "sales")
	require.NoError(t, err)
	assert.Contains(t, out, "█")
	assert.Contains(t, out, core.WeeklySales().Sum().String())
}

func TestVersion_SkipsSetup(t *testing.T) {
	// No backend and no store: the version command must not need either.
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	out, err := executeCommand(t, nil, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "version:")
	assert.Nil(t, services)
}

func TestParseIDs(t *testing.T) {
	ids, err := parseIDs(" 1, 1,#2 ")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 2}, ids)

	_, err = parseIDs("1,x")
	assert.Error(t, err)

	_, err = parseID("0")
	assert.Error(t, err)
}
