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

type employeesModel struct {
	app  *app
	list recordList[model.Employee]
	form *formModel
}

func newEmployeesModel(a *app) *employeesModel {
	m := &employeesModel{app: a}
	m.list = newRecordList(recordListConfig[model.Employee]{
		title: "🧑‍🍳 " + i18n.T("employees.title"),
		columns: []table.Column{
			{Title: "ID", Width: 5},
			{Title: i18n.T("employees.col.name"), Width: 26},
			{Title: i18n.T("employees.col.role"), Width: 14},
			{Title: i18n.T("employees.col.email"), Width: 26},
			{Title: i18n.T("employees.col.phone"), Width: 12},
			{Title: i18n.T("employees.col.hired"), Width: 11},
			{Title: i18n.T("employees.col.status"), Width: 9},
		},
		row: func(e model.Employee) table.Row {
			return table.Row{
				strconv.Itoa(e.IDEmployee), e.FullName(), model.RoleDisplayName(e.RoleName),
				orDash(e.Email), orDash(e.Phone), model.DisplayDate(e.HireDate), model.StatusText(e.Status),
			}
		},
		filter:      core.FilterEmployees,
		statuses:    statusCycle,
		statusLabel: model.StatusText,
		details:     employeeDetails,
	})
	return m
}

func (m *employeesModel) Init() tea.Cmd { return m.loadCmd() }

func (m *employeesModel) loadCmd() tea.Cmd {
	svc := m.app.svc
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		err := svc.Employees.Load(ctx)
		if err == nil {
			// The role catalogue only feeds the form; a failure there is not fatal.
			_, _ = svc.Employees.LoadRoles(ctx)
		}
		return recordsLoadedMsg{resource: api.ResourceEmployee, err: err}
	}
}

func (m *employeesModel) refresh() {
	m.list.setItems(m.app.svc.Employees.Store.Snapshot())
}

func (m *employeesModel) Update(msg tea.Msg) (*employeesModel, tea.Cmd) {
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

func (m *employeesModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	e, hasSel := m.list.selected()
	switch msg.String() {
	case "c":
		if hasSel {
			return toastCmd(copyToClipboard(i18n.T("employees.col.email"), e.Email))
		}
	case "p":
		if hasSel {
			return toastCmd(copyToClipboard(i18n.T("employees.col.phone"), e.Phone))
		}
	}
	if m.list.details != "" {
		return nil
	}

	switch msg.String() {
	case "a":
		m.form = m.newForm(nil)
	case "e":
		if hasSel {
			if d := core.Guard(m.app.svc.Session, fmt.Sprintf("/employees/edit/%d", e.IDEmployee)); !d.Allowed {
				return toastCmd(errorToast(i18n.T("access.denied")))
			}
			m.form = m.newForm(&e)
		}
	case "d":
		if !hasSel {
			return nil
		}
		if e.IsActive() {
			m.list.askConfirm(i18n.T("employees.delete.title"), i18n.T("employees.delete.confirm", e.FullName()), m.statusCmd(e, false))
		} else {
			m.list.askConfirm(i18n.T("employees.restore.title"), i18n.T("employees.restore.confirm", e.FullName()), m.statusCmd(e, true))
		}
	case "r":
		m.list.loading = true
		return m.loadCmd()
	}
	return nil
}

func (m *employeesModel) statusCmd(e model.Employee, restore bool) tea.Cmd {
	svc := m.app.svc
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		call, key := svc.Employees.SoftDelete, "employees.deleted"
		if restore {
			call, key = svc.Employees.Restore, "employees.restored"
		}
		if err := call(ctx, e.IDEmployee); err != nil {
			return actionDoneMsg{resource: api.ResourceEmployee, err: err}
		}
		return actionDoneMsg{resource: api.ResourceEmployee, text: i18n.T(key, e.FullName())}
	}
}

func (m *employeesModel) newForm(e *model.Employee) *formModel {
	var base model.Employee
	title := i18n.T("employees.form.new")
	if e != nil {
		base = *e
		title = i18n.T("employees.form.edit", e.FullName())
	}
	roles := make([]string, 0)
	for _, r := range m.app.svc.Employees.Roles.Get() {
		roles = append(roles, r.Name)
	}
	fields := []formField{
		{key: "firstName", label: i18n.T("employees.field.first_name"), value: base.FirstName},
		{key: "lastName", label: i18n.T("employees.field.last_name"), value: base.LastName},
		{key: "documentType", label: i18n.T("employees.field.document_type"), placeholder: "DNI", value: base.DocumentType},
		{key: "documentNumber", label: i18n.T("employees.field.document_number"), value: base.DocumentNumber},
		{key: "email", label: i18n.T("employees.field.email"), value: base.Email},
		{key: "phone", label: i18n.T("employees.field.phone"), value: base.Phone},
		{key: "address", label: i18n.T("employees.field.address"), value: base.Address},
		{key: "role", label: i18n.T("employees.field.role"), placeholder: strings.Join(roles, ", "), value: base.RoleName},
		{key: "position", label: i18n.T("employees.field.position"), value: base.Position},
		{key: "hireDate", label: i18n.T("employees.field.hire_date"), placeholder: "AAAA-MM-DD", value: base.HireDate},
		{key: "birthDate", label: i18n.T("employees.field.birth_date"), placeholder: "AAAA-MM-DD", value: base.BirthDate},
		{key: "gender", label: i18n.T("employees.field.gender"), placeholder: "M / F / O", value: base.Gender},
		{key: "emergencyContactName", label: i18n.T("employees.field.emergency_name"), value: base.EmergencyContactName},
		{key: "emergencyContactPhone", label: i18n.T("employees.field.emergency_phone"), value: base.EmergencyContactPhone},
	}
	svc := m.app.svc
	return newFormModel(title, fields, func(v formValues) tea.Cmd {
		req := employeeRequestFromForm(base, v)
		if r, ok := svc.Employees.RoleByName(v["role"]); ok {
			req.IDRole = r.ID
		}
		role := strings.ToUpper(v["role"])
		return func() tea.Msg {
			ctx, cancel := requestContext()
			defer cancel()
			if base.IDEmployee == 0 {
				saved, err := svc.Employees.Create(ctx, req)
				if err != nil {
					return formSavedMsg{resource: api.ResourceEmployee, err: err}
				}
				return formSavedMsg{resource: api.ResourceEmployee, text: i18n.T("employees.created", saved.FullName())}
			}
			saved, err := svc.Employees.Update(ctx, base.IDEmployee, req)
			if err != nil {
				return formSavedMsg{resource: api.ResourceEmployee, err: err}
			}
			if role != "" && !strings.EqualFold(role, base.RoleName) {
				if err := svc.Employees.AssignRole(ctx, base.IDEmployee, role); err != nil {
					return formSavedMsg{resource: api.ResourceEmployee, err: err}
				}
			}
			return formSavedMsg{resource: api.ResourceEmployee, text: i18n.T("employees.updated", saved.FullName())}
		}
	})
}

func employeeRequestFromForm(base model.Employee, v formValues) model.EmployeeRequest {
	req := base.Request()
	req.FirstName = v["firstName"]
	req.LastName = v["lastName"]
	req.DocumentType = strings.ToUpper(v["documentType"])
	req.DocumentNumber = v["documentNumber"]
	req.Email = v["email"]
	req.Phone = v["phone"]
	req.Address = v["address"]
	req.Position = v["position"]
	req.HireDate = v["hireDate"]
	req.BirthDate = v["birthDate"]
	req.Gender = strings.ToUpper(v["gender"])
	req.EmergencyContactName = v["emergencyContactName"]
	req.EmergencyContactPhone = v["emergencyContactPhone"]
	return req
}

func employeeDetails(e model.Employee) string {
	age := "-"
	if e.Age != nil {
		age = i18n.T("customers.details.years", *e.Age)
	}
	lines := []string{
		paneTitleStyle.Render(model.Initials(e.FirstName, e.LastName) + "  " + e.FullName()),
		"",
		i18n.T("employees.details.role", model.RoleDisplayName(e.RoleName), orDash(e.Position)),
		i18n.T("customers.details.document", model.DocumentTypeText(e.DocumentType), e.DocumentNumber),
		i18n.T("customers.details.birth", model.DisplayDate(e.BirthDate), age),
		i18n.T("customers.details.contact", orDash(e.Phone), orDash(e.Email)),
		i18n.T("employees.details.address", orDash(e.Address)),
		i18n.T("employees.details.hired", model.DisplayDate(e.HireDate)),
		i18n.T("employees.details.emergency", orDash(e.EmergencyContactName), orDash(e.EmergencyContactPhone)),
		i18n.T("customers.details.status", model.StatusText(e.Status)),
	}
	return strings.Join(lines, "\n")
}

func (m *employeesModel) View() string {
	if m.form != nil {
		return m.form.View()
	}
	return m.list.View(i18n.T("employees.footer"))
}
