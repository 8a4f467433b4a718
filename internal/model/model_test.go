package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestStatusText(t *testing.T) {
	cases := map[string]string{"A": "Activo", "I": "Inactivo", "T": "Todos", "X": "X", "": ""}
	for in, want := range cases {
		if got := StatusText(in); got != want {
			t.Fatalf("StatusText(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestOrderNumber(t *testing.T) {
	if got := OrderNumber(42); got != "PED-00042" {
		t.Fatalf("unexpected order number: %s", got)
	}
	if got := OrderNumber(123456); got != "PED-123456" {
		t.Fatalf("order number should not truncate: %s", got)
	}
}

func TestFormatSoles(t *testing.T) {
	if got := FormatSoles(decimal.NewFromInt(250)); got != "S/ 250" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := FormatSoles(decimal.RequireFromString("12.5")); got != "S/ 13" {
		t.Fatalf("expected rounding to whole soles, got %q", got)
	}
	big := FormatSoles(decimal.NewFromInt(1250000))
	if !strings.HasPrefix(big, "S/ 1") || !strings.HasSuffix(big, "000") || len(big) <= len("S/ 1250000") {
		t.Fatalf("expected grouped thousands, got %q", big)
	}
	if got := FormatSolesString(""); got != "S/ 0" {
		t.Fatalf("empty input should read as zero, got %q", got)
	}
	if got := FormatSolesString("S/ 80"); got != "S/ 80" {
		t.Fatalf("symbols should be stripped, got %q", got)
	}
	if got := FormatSolesString("12.50"); got != "S/ 13" {
		t.Fatalf("the decimal point is kept, got %q", got)
	}
	if got := FormatSolesString("S/ ."); got != "S/ 0" {
		t.Fatalf("unreadable input reads as zero, got %q", got)
	}
}

func TestRoleDisplayName(t *testing.T) {
	if got := RoleDisplayName("BAKER"); got != "Panadero" {
		t.Fatalf("got %q", got)
	}
	if got := RoleDisplayName("cashier"); got != "Cajero" {
		t.Fatalf("lookup should ignore case, got %q", got)
	}
	if got := RoleDisplayName(""); got != "Empleado" {
		t.Fatalf("empty role should read as Empleado, got %q", got)
	}
	if got := RoleDisplayName("AUDITOR"); got != "AUDITOR" {
		t.Fatalf("unknown role should pass through, got %q", got)
	}
}

func TestNormalizeAddress(t *testing.T) {
	got := NormalizeAddress(Address{District: "Miraflores"})
	if got.District != "Miraflores" {
		t.Fatalf("district should be kept, got %q", got.District)
	}
	if got.AddrStreet != UnspecifiedText || got.Reference != UnspecifiedText || got.PlaceType != UnspecifiedText {
		t.Fatalf("empty fields should be filled: %+v", got)
	}
	if got.NumberHouse != UnspecifiedNumber {
		t.Fatalf("number should read N/A, got %q", got.NumberHouse)
	}
}

func TestDeliveryAndPaymentText(t *testing.T) {
	if DeliveryTypeText(DeliveryLocal) != "Recojo" || DeliveryTypeText(DeliveryHome) != "Para Llevar" {
		t.Fatalf("unexpected delivery labels")
	}
	if PaymentStatusText("PE") != "Pendiente" || PaymentStatusText("PA") != "Pagado" {
		t.Fatalf("unexpected payment labels")
	}
}

func TestMoneyMarshalsAsNumber(t *testing.T) {
	data, err := json.Marshal(Product{ID: 1, Price: decimal.RequireFromString("4.50")})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"price":4.5`) {
		t.Fatalf("price should be a JSON number: %s", data)
	}
}

func TestParseDateAcceptsTimestamps(t *testing.T) {
	d, ok := ParseDate("2024-03-09T10:11:12")
	if !ok || FormatDate(d) != "2024-03-09" {
		t.Fatalf("unexpected parse: %v %v", d, ok)
	}
	if _, ok := ParseDate("09/03/2024"); ok {
		t.Fatalf("non-ISO dates should be rejected")
	}
	if DisplayDate("2024-03-09") != "09/03/2024" {
		t.Fatalf("unexpected display date: %s", DisplayDate("2024-03-09"))
	}
	if Initials("ana", "pérez") != "AP" {
		t.Fatalf("unexpected initials: %s", Initials("ana", "pérez"))
	}
}

func TestRoleIcon(t *testing.T) {
	if RoleIcon("BAKER") != "bakery_dining" || RoleIcon("") != "person" || RoleIcon("nobody") != "person" {
		t.Fatalf("unexpected role icons")
	}
}
