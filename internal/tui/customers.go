// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/toeirei/panaderia/internal/api"
	"github.com/toeirei/panaderia/internal/core"
	"github.com/toeirei/panaderia/internal/i18n"
	"github.com/toeirei/panaderia/internal/model"
)

// customersModel is the customer list with its form.
type customersModel struct {
	app  *app
	list recordList[model.Customer]
	form *formModel
}

func newCustomersModel(a *app) *customersModel {
	m := &customersModel{app: a}
	m.list = newRecordList(recordListConfig[model.Customer]{
		title: "👥 " + i18n.T("customers.title"),
		columns: []table.Column{
			{Title: "ID", Width: 5},
			{Title: i18n.T("customers.col.name"), Width: 26},
			{Title: i18n.T("customers.col.document"), Width: 20},
			{Title: i18n.T("customers.col.phone"), Width: 12},
			{Title: i18n.T("customers.col.email"), Width: 24},
			{Title: i18n.T("customers.col.age"), Width: 5},
			{Title: i18n.T("customers.col.status"), Width: 9},
		},
		row: func(c model.Customer) table.Row {
			age := "-"
			if c.Age != nil {
				age = strconv.Itoa(*c.Age)
			}
			return table.Row{
				strconv.Itoa(c.IDCustomer), c.FullName(),
				c.DocumentType + " " + c.DocumentNumber,
				orDash(c.Phone), orDash(c.Email), age, model.StatusText(c.Status),
			}
		},
		filter: func(items []model.Customer, status, search string) []model.Customer {
			return core.FilterCustomers(items, core.CustomerFilter{Status: status, Search: search})
		},
		statuses:    statusCycle,
		statusLabel: model.StatusText,
		details:     customerDetails,
	})
	return m
}

func (m *customersModel) Init() tea.Cmd { return m.loadCmd() }

func (m *customersModel) loadCmd() tea.Cmd {
	svc := m.app.svc
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		return recordsLoadedMsg{resource: api.ResourceCustomer, err: svc.Customers.Load(ctx)}
	}
}

func (m *customersModel) refresh() {
	m.list.setItems(m.app.svc.Customers.Store.Snapshot())
}

func (m *customersModel) Update(msg tea.Msg) (*customersModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.setSize(msg.Width, msg.Height)
		return m, nil

	case recordsLoadedMsg:
		m.refresh()
		if msg.err != nil {
			return m, toastCmd(errorToast(msg.err.Error()))
		}
		return m, nil

	case actionDoneMsg:
		m.refresh()
		if msg.err != nil {
			return m, toastCmd(errorToast(msg.err.Error()))
		}
		return m, toastCmd(infoToast(msg.text))

	case formSavedMsg:
		if m.form == nil {
			return m, nil
		}
		if msg.err != nil {
			m.form.fail(msg.err)
			return m, nil
		}
		m.form = nil
		m.refresh()
		return m, toastCmd(infoToast(msg.text))

	case formCancelledMsg:
		m.form = nil
		return m, nil

	case tea.KeyMsg:
		if m.form != nil {
			return m, m.form.Update(msg)
		}
		if handled, cmd := m.list.update(msg); handled {
			return m, cmd
		}
		return m, m.handleKey(msg)
	}

	if m.form != nil {
		return m, m.form.Update(msg)
	}
	return m, nil
}

func (m *customersModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	c, hasSel := m.list.selected()
	switch msg.String() {
	case "c":
		if hasSel {
			return toastCmd(copyToClipboard(i18n.T("customers.col.email"), c.Email))
		}
	case "p":
		if hasSel {
			return toastCmd(copyToClipboard(i18n.T("customers.col.phone"), c.Phone))
		}
	}
	if m.list.details != "" {
		return nil
	}

	switch msg.String() {
	case "a":
		if d := core.Guard(m.app.svc.Session, "/customers/customer-form"); !d.Allowed {
			return toastCmd(errorToast(i18n.T("access.denied")))
		}
		m.form = m.newForm(nil)
		return nil
	case "e":
		if !hasSel {
			return nil
		}
		if d := core.Guard(m.app.svc.Session, fmt.Sprintf("/customers/customer-edit/%d", c.IDCustomer)); !d.Allowed {
			return toastCmd(errorToast(i18n.T("access.denied")))
		}
		m.form = m.newForm(&c)
		return nil
	case "d":
		if !hasSel {
			return nil
		}
		if c.IsActive() {
			m.list.askConfirm(i18n.T("customers.delete.title"), i18n.T("customers.delete.confirm", c.FullName()), m.statusCmd(c, false))
		} else {
			m.list.askConfirm(i18n.T("customers.restore.title"), i18n.T("customers.restore.confirm", c.FullName()), m.statusCmd(c, true))
		}
		return nil
	case "r":
		m.list.loading = true
		return m.loadCmd()
	case "x":
		return exportReportCmd(m.app, api.ResourceCustomer)
	}
	return nil
}

func (m *customersModel) statusCmd(c model.Customer, restore bool) tea.Cmd {
	svc := m.app.svc
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		if restore {
			if err := svc.Customers.Restore(ctx, c.IDCustomer); err != nil {
				return actionDoneMsg{resource: api.ResourceCustomer, err: err}
			}
			return actionDoneMsg{resource: api.ResourceCustomer, text: i18n.T("customers.restored", c.FullName())}
		}
		if err := svc.Customers.SoftDelete(ctx, c.IDCustomer); err != nil {
			return actionDoneMsg{resource: api.ResourceCustomer, err: err}
		}
		return actionDoneMsg{resource: api.ResourceCustomer, text: i18n.T("customers.deleted", c.FullName())}
	}
}

func (m *customersModel) newForm(c *model.Customer) *formModel {
	var base model.Customer
	title := i18n.T("customers.form.new")
	if c != nil {
		base = *c
		title = i18n.T("customers.form.edit", c.FullName())
	}
	a := base.Address
	fields := []formField{
		{key: "firstName", label: i18n.T("customers.field.first_name"), value: base.FirstName},
		{key: "lastName", label: i18n.T("customers.field.last_name"), value: base.LastName},
		{key: "documentType", label: i18n.T("customers.field.document_type"), placeholder: "DNI, CÉDULA, PASAPORTE", value: base.DocumentType},
		{key: "documentNumber", label: i18n.T("customers.field.document_number"), value: base.DocumentNumber},
		{key: "birthDate", label: i18n.T("customers.field.birth_date"), placeholder: "AAAA-MM-DD", value: base.BirthDate},
		{key: "gender", label: i18n.T("customers.field.gender"), placeholder: "M / F", value: base.Gender},
		{key: "phone", label: i18n.T("customers.field.phone"), value: base.Phone},
		{key: "email", label: i18n.T("customers.field.email"), value: base.Email},
		{key: "district", label: i18n.T("customers.field.district"), value: a.District},
		{key: "addrStreet", label: i18n.T("customers.field.street"), value: a.AddrStreet},
		{key: "numberHouse", label: i18n.T("customers.field.number"), value: a.NumberHouse},
		{key: "placeType", label: i18n.T("customers.field.place_type"), placeholder: "Casa, Departamento, Oficina", value: a.PlaceType},
		{key: "reference", label: i18n.T("customers.field.reference"), value: a.Reference},
		{key: "notes", label: i18n.T("customers.field.notes"), value: base.Notes},
	}
	svc := m.app.svc
	return newFormModel(title, fields, func(v formValues) tea.Cmd {
		c := customerFromForm(base, v)
		return func() tea.Msg {
			ctx, cancel := requestContext()
			defer cancel()
			if c.IDCustomer == 0 {
				saved, err := svc.Customers.Create(ctx, c)
				if err != nil {
					return formSavedMsg{resource: api.ResourceCustomer, err: err}
				}
				return formSavedMsg{resource: api.ResourceCustomer, text: i18n.T("customers.created", saved.FullName())}
			}
			saved, err := svc.Customers.Update(ctx, c)
			if err != nil {
				return formSavedMsg{resource: api.ResourceCustomer, err: err}
			}
			return formSavedMsg{resource: api.ResourceCustomer, text: i18n.T("customers.updated", saved.FullName())}
		}
	})
}

// customerFromForm applies the form values on top of base so fields the
// form does not show survive an edit.
func customerFromForm(base model.Customer, v formValues) model.Customer {
	c := base
	c.FirstName = v["firstName"]
	c.LastName = v["lastName"]
	c.DocumentType = strings.ToUpper(v["documentType"])
	c.DocumentNumber = v["documentNumber"]
	c.BirthDate = v["birthDate"]
	c.Gender = strings.ToUpper(v["gender"])
	c.Phone = v["phone"]
	c.Email = v["email"]
	c.Notes = v["notes"]
	c.Address.District = v["district"]
	c.Address.AddrStreet = v["addrStreet"]
	c.Address.NumberHouse = v["numberHouse"]
	c.Address.PlaceType = v["placeType"]
	c.Address.Reference = v["reference"]
	c.Age = nil
	return c
}

func customerDetails(c model.Customer) string {
	age := "-"
	if c.Age != nil {
		age = i18n.T("customers.details.years", *c.Age)
	}
	a := model.NormalizeAddress(c.Address)
	lines := []string{
		paneTitleStyle.Render(model.Initials(c.FirstName, c.LastName) + "  " + c.FullName()),
		"",
		i18n.T("customers.details.document", model.DocumentTypeText(c.DocumentType), c.DocumentNumber),
		i18n.T("customers.details.birth", model.DisplayDate(c.BirthDate), age),
		i18n.T("customers.details.gender", model.GenderText(c.Gender)),
		i18n.T("customers.details.contact", orDash(c.Phone), orDash(c.Email)),
		i18n.T("customers.details.address", a.AddrStreet, a.NumberHouse, a.District),
		i18n.T("customers.details.reference", a.PlaceType, a.Reference),
		i18n.T("customers.details.registered", model.DisplayDate(c.RegistrationDate)),
		i18n.T("customers.details.status", model.StatusText(c.Status)),
	}
	if c.Notes != "" {
		lines = append(lines, i18n.T("customers.details.notes", c.Notes))
	}
	return strings.Join(lines, "\n")
}

func (m *customersModel) View() string {
	if m.form != nil {
		return m.form.View()
	}
	return m.list.View(i18n.T("customers.footer"))
}
