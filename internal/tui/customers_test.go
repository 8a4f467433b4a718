package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/toeirei/panaderia/internal/model"
)

func loadedCustomers(t *testing.T, a *app) *customersModel {
	t.Helper()
	m := newCustomersModel(a)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = m.Update(run(m.Init()))
	return m
}

func TestCustomers_LoadShowsActiveByDefault(t *testing.T) {
	a, _ := newAdminApp(t)
	m := loadedCustomers(t, a)
	if len(m.list.items) != 3 {
		t.Fatalf("expected 3 customers loaded, got %d", len(m.list.items))
	}
	if len(m.list.displayed) != 2 {
		t.Fatalf("expected 2 active customers shown, got %d", len(m.list.displayed))
	}
}

func TestCustomers_DeleteAfterConfirm(t *testing.T) {
	a, b := newAdminApp(t)
	m := loadedCustomers(t, a)

	m, _ = m.Update(key("d"))
	if m.list.confirm == nil {
		t.Fatalf("d should ask for confirmation")
	}
	m, cmd := m.Update(key("y"))
	msg := run(cmd)
	done, ok := msg.(actionDoneMsg)
	if !ok || done.err != nil {
		t.Fatalf("expected a successful action, got %#v", msg)
	}
	m, _ = m.Update(done)

	c, _ := b.Customer(1)
	if c.Status != model.StatusInactive {
		t.Fatalf("backend customer should be inactive, got %q", c.Status)
	}
	if len(m.list.displayed) != 1 {
		t.Fatalf("the deleted customer should leave the active list, got %d rows", len(m.list.displayed))
	}
}

func TestCustomers_CashierCannotOpenForm(t *testing.T) {
	a, _ := newTestApp(t, "cajero", "caja2024")
	m := loadedCustomers(t, a)
	m, cmd := m.Update(key("a"))
	if m.form != nil {
		t.Fatalf("cashier must not get the customer form")
	}
	if tm, ok := run(cmd).(toastMsg); !ok || !tm.isError {
		t.Fatalf("expected an error toast")
	}
}

func TestCustomers_FormSubmitCreatesCustomer(t *testing.T) {
	a, b := newAdminApp(t)
	m := loadedCustomers(t, a)
	m, _ = m.Update(key("a"))
	if m.form == nil {
		t.Fatalf("admin should get the form")
	}
	m.form.setValue("firstName", "Rosa")
	m.form.setValue("lastName", "Paredes")
	m.form.setValue("documentType", "DNI")
	m.form.setValue("documentNumber", "47001122")
	m.form.setValue("birthDate", "1995-08-20")
	m.form.setValue("gender", "F")
	m.form.setValue("phone", "999888777")
	m.form.setValue("email", "rosa@correo.pe")
	m.form.setValue("district", "Lince")
	m.form.setValue("addrStreet", "Av. Arequipa")

	msg := run(m.form.Update(key("ctrl+s")))
	saved, ok := msg.(formSavedMsg)
	if !ok {
		t.Fatalf("expected formSavedMsg, got %#v", msg)
	}
	if saved.err != nil {
		t.Fatalf("save failed: %v", saved.err)
	}
	m, _ = m.Update(saved)
	if m.form != nil {
		t.Fatalf("form should close after saving")
	}
	if len(b.RequestsTo("POST /v1/api/customer/save")) != 1 {
		t.Fatalf("expected one create request")
	}
}

func TestCustomers_CopyEmail(t *testing.T) {
	a, _ := newAdminApp(t)
	var copied string
	clipboardWriteAll = func(s string) error { copied = s; return nil }
	m := loadedCustomers(t, a)
	_, cmd := m.Update(key("c"))
	if tm, ok := run(cmd).(toastMsg); !ok || tm.isError {
		t.Fatalf("expected an info toast, got %#v", tm)
	}
	if copied != "ana@correo.pe" {
		t.Fatalf("unexpected clipboard content %q", copied)
	}
}
