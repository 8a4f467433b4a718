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
	"github.com/shopspring/decimal"
	"github.com/toeirei/panaderia/internal/api"
	"github.com/toeirei/panaderia/internal/core"
	"github.com/toeirei/panaderia/internal/i18n"
	"github.com/toeirei/panaderia/internal/model"
)

type productsModel struct {
	app  *app
	list recordList[model.Product]
	form *formModel
}

func newProductsModel(a *app) *productsModel {
	m := &productsModel{app: a}
	m.list = newRecordList(recordListConfig[model.Product]{
		title: "🥐 " + i18n.T("products.title"),
		columns: []table.Column{
			{Title: "ID", Width: 5},
			{Title: i18n.T("products.col.name"), Width: 26},
			{Title: i18n.T("products.col.category"), Width: 14},
			{Title: i18n.T("products.col.price"), Width: 10},
			{Title: i18n.T("products.col.units"), Width: 7},
			{Title: i18n.T("products.col.status"), Width: 9},
		},
		row: func(p model.Product) table.Row {
			units := strconv.Itoa(p.Units)
			if p.Units == 0 {
				units = i18n.T("products.out_of_stock")
			}
			return table.Row{
				strconv.Itoa(p.ID), p.NameProduct, p.Category, model.FormatSoles(p.Price), units, model.StatusText(p.Status),
			}
		},
		filter:      core.FilterProducts,
		statuses:    statusCycle,
		statusLabel: model.StatusText,
		details:     productDetails,
	})
	return m
}

func (m *productsModel) Init() tea.Cmd { return m.loadCmd() }

func (m *productsModel) loadCmd() tea.Cmd {
	svc := m.app.svc
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		return recordsLoadedMsg{resource: api.ResourceProduct, err: svc.Products.Load(ctx)}
	}
}

func (m *productsModel) refresh() {
	m.list.setItems(m.app.svc.Products.Store.Snapshot())
}

func (m *productsModel) Update(msg tea.Msg) (*productsModel, tea.Cmd) {
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

func (m *productsModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.list.details != "" {
		return nil
	}
	p, hasSel := m.list.selected()
	switch msg.String() {
	case "a":
		if d := core.Guard(m.app.svc.Session, "/products/create"); !d.Allowed {
			return toastCmd(errorToast(i18n.T("access.denied")))
		}
		m.form = m.newForm(nil)
	case "e":
		if !hasSel {
			return nil
		}
		if d := core.Guard(m.app.svc.Session, fmt.Sprintf("/products/edit/%d", p.ID)); !d.Allowed {
			return toastCmd(errorToast(i18n.T("access.denied")))
		}
		m.form = m.newForm(&p)
	case "d":
		if !hasSel {
			return nil
		}
		if p.IsActive() {
			m.list.askConfirm(i18n.T("products.delete.title"), i18n.T("products.delete.confirm", p.NameProduct), m.statusCmd(p, false))
		} else {
			m.list.askConfirm(i18n.T("products.restore.title"), i18n.T("products.restore.confirm", p.NameProduct), m.statusCmd(p, true))
		}
	case "r":
		m.list.loading = true
		return m.loadCmd()
	case "x":
		return exportReportCmd(m.app, api.ResourceProduct)
	}
	return nil
}

func (m *productsModel) statusCmd(p model.Product, restore bool) tea.Cmd {
	svc := m.app.svc
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		call, key := svc.Products.SoftDelete, "products.deleted"
		if restore {
			call, key = svc.Products.Restore, "products.restored"
		}
		if err := call(ctx, p.ID); err != nil {
			return actionDoneMsg{resource: api.ResourceProduct, err: err}
		}
		return actionDoneMsg{resource: api.ResourceProduct, text: i18n.T(key, p.NameProduct)}
	}
}

func (m *productsModel) newForm(p *model.Product) *formModel {
	var base model.Product
	title := i18n.T("products.form.new")
	price, units := "", ""
	if p != nil {
		base = *p
		title = i18n.T("products.form.edit", p.NameProduct)
		price = p.Price.StringFixed(2)
		units = strconv.Itoa(p.Units)
	}
	fields := []formField{
		{key: "nameProduct", label: i18n.T("products.field.name"), value: base.NameProduct},
		{key: "description", label: i18n.T("products.field.description"), value: base.Description, charLimit: 500},
		{key: "price", label: i18n.T("products.field.price"), placeholder: "0.00", value: price},
		{key: "category", label: i18n.T("products.field.category"), placeholder: strings.Join(m.app.svc.Products.Categories(), ", "), value: base.Category},
		{key: "units", label: i18n.T("products.field.units"), placeholder: "0", value: units},
		{key: "imageUrl", label: i18n.T("products.field.image"), placeholder: "https://", value: base.ImageURL},
	}
	svc := m.app.svc
	return newFormModel(title, fields, func(v formValues) tea.Cmd {
		prod, err := productFromForm(base, v)
		if err != nil {
			return func() tea.Msg { return formSavedMsg{resource: api.ResourceProduct, err: err} }
		}
		return func() tea.Msg {
			ctx, cancel := requestContext()
			defer cancel()
			if prod.ID == 0 {
				saved, err := svc.Products.Create(ctx, prod)
				if err != nil {
					return formSavedMsg{resource: api.ResourceProduct, err: err}
				}
				return formSavedMsg{resource: api.ResourceProduct, text: i18n.T("products.created", saved.NameProduct)}
			}
			saved, err := svc.Products.Update(ctx, prod)
			if err != nil {
				return formSavedMsg{resource: api.ResourceProduct, err: err}
			}
			return formSavedMsg{resource: api.ResourceProduct, text: i18n.T("products.updated", saved.NameProduct)}
		}
	})
}

// productFromForm parses the numeric inputs; bad numbers are reported as
// field validation errors.
func productFromForm(base model.Product, v formValues) (model.Product, error) {
	p := base
	p.NameProduct = v["nameProduct"]
	p.Description = v["description"]
	p.Category = v["category"]
	p.ImageURL = v["imageUrl"]

	var fields []model.FieldError
	price, err := decimal.NewFromString(strings.TrimSpace(strings.TrimPrefix(v["price"], "S/")))
	if err != nil {
		fields = append(fields, model.FieldError{Field: "price", Tag: "number", Message: i18n.T("validation.number", "price")})
	} else {
		p.Price = price
	}
	if v["units"] == "" {
		p.Units = 0
	} else if n, err := strconv.Atoi(v["units"]); err != nil {
		fields = append(fields, model.FieldError{Field: "units", Tag: "number", Message: i18n.T("validation.number", "units")})
	} else {
		p.Units = n
	}
	if len(fields) > 0 {
		return p, &model.ValidationError{Fields: fields}
	}
	return p, nil
}

func productDetails(p model.Product) string {
	lines := []string{
		paneTitleStyle.Render(p.NameProduct),
		"",
		orDash(p.Description),
		"",
		i18n.T("products.details.category", p.Category),
		i18n.T("products.details.price", model.FormatSoles(p.Price)),
		i18n.T("products.details.units", p.Units),
		i18n.T("products.details.created", model.DisplayDate(p.CreationDate)),
		i18n.T("customers.details.status", model.StatusText(p.Status)),
	}
	if p.ImageURL != "" {
		lines = append(lines, i18n.T("products.details.image", p.ImageURL))
	}
	return strings.Join(lines, "\n")
}

func (m *productsModel) View() string {
	if m.form != nil {
		return m.form.View()
	}
	return m.list.View(i18n.T("products.footer"))
}
