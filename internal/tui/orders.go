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

// ordersCancelled is the extra filter step that lists cancelled orders so
// they can be restored.
const ordersCancelled = "cancelados"

var orderFilterCycle = []string{
	string(core.OrdersAll),
	string(core.OrdersDelivery),
	string(core.OrdersLocal),
	string(core.OrdersPendingPayment),
	ordersCancelled,
}

func filterOrderList(items []model.Order, status, search string) []model.Order {
	if status == ordersCancelled {
		var cancelled []model.Order
		for _, o := range items {
			if o.OrderStatus == model.OrderCancelled {
				cancelled = append(cancelled, o)
			}
		}
		return core.FilterOrders(cancelled, core.OrdersAll, search)
	}
	return core.FilterOrders(core.PendingOrders(items), core.OrderQuickFilter(status), search)
}

type orderDetailsMsg struct {
	details *model.OrderDetails
	err     error
}

type ordersModel struct {
	app  *app
	list recordList[model.Order]
	form *formModel
}

func newOrdersModel(a *app) *ordersModel {
	m := &ordersModel{app: a}
	m.list = newRecordList(recordListConfig[model.Order]{
		title: "🛒 " + i18n.T("orders.title"),
		columns: []table.Column{
			{Title: i18n.T("orders.col.number"), Width: 10},
			{Title: i18n.T("orders.col.customer"), Width: 24},
			{Title: i18n.T("orders.col.delivery"), Width: 18},
			{Title: i18n.T("orders.col.type"), Width: 12},
			{Title: i18n.T("orders.col.total"), Width: 10},
			{Title: i18n.T("orders.col.balance"), Width: 10},
			{Title: i18n.T("orders.col.payment"), Width: 10},
		},
		row: func(o model.Order) table.Row {
			return table.Row{
				model.OrderNumber(o.IDCustomerOrder), o.Customer.FullName(),
				model.DisplayDate(o.DeliveryDate) + " " + o.DeliveryTime,
				model.DeliveryTypeText(o.DeliveryType),
				model.FormatSoles(o.TotalAmount), model.FormatSoles(o.BalanceAmount),
				model.PaymentStatusText(o.PaymentStatus),
			}
		},
		filter:      filterOrderList,
		statuses:    orderFilterCycle,
		statusLabel: func(s string) string { return i18n.T("orders.filter." + s) },
		details:     func(o model.Order) string { return orderDetails(o, nil) },
	})
	return m
}

func (m *ordersModel) Init() tea.Cmd { return m.loadCmd() }

// loadCmd loads the orders plus the customers and products the order form
// picks from.
func (m *ordersModel) loadCmd() tea.Cmd {
	svc := m.app.svc
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		if err := svc.Orders.Load(ctx); err != nil {
			return recordsLoadedMsg{resource: api.ResourceOrder, err: err}
		}
		_ = svc.Customers.Load(ctx)
		_ = svc.Products.Load(ctx)
		return recordsLoadedMsg{resource: api.ResourceOrder}
	}
}

func (m *ordersModel) refresh() {
	m.list.setItems(m.app.svc.Orders.Store.Snapshot())
}

func (m *ordersModel) Update(msg tea.Msg) (*ordersModel, tea.Cmd) {
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
	case orderDetailsMsg:
		if msg.err != nil {
			return m, toastCmd(errorToast(msg.err.Error()))
		}
		m.list.details = orderDetails(msg.details.Order, msg.details.Items)
		return m, nil
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
		// Enter fetches the full order with its items instead of the
		// plain list row.
		if msg.String() == "enter" && !m.list.busy() {
			if o, ok := m.list.selected(); ok {
				return m, m.detailsCmd(o.IDCustomerOrder)
			}
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

func (m *ordersModel) detailsCmd(id int) tea.Cmd {
	svc := m.app.svc
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		d, err := svc.Orders.FullDetails(ctx, id)
		return orderDetailsMsg{details: d, err: err}
	}
}

func (m *ordersModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	o, hasSel := m.list.selected()
	switch msg.String() {
	case "c":
		if hasSel {
			return toastCmd(copyToClipboard(i18n.T("customers.col.email"), o.Customer.Email))
		}
	case "p":
		if hasSel {
			return toastCmd(copyToClipboard(i18n.T("customers.col.phone"), o.Customer.Phone))
		}
	}
	if m.list.details != "" {
		return nil
	}

	switch msg.String() {
	case "a":
		m.form = m.newForm(core.NewOrderDraft(m.app.svc.Now))
	case "e":
		if hasSel {
			if d := core.Guard(m.app.svc.Session, fmt.Sprintf("/orders/edit/%d", o.IDCustomerOrder)); !d.Allowed {
				return toastCmd(errorToast(i18n.T("access.denied")))
			}
			m.form = m.newForm(core.EditOrderDraft(o, m.app.svc.Now))
		}
	case "d":
		if !hasSel {
			return nil
		}
		num := model.OrderNumber(o.IDCustomerOrder)
		if o.OrderStatus == model.OrderCancelled {
			m.list.askConfirm(i18n.T("orders.restore.title"), i18n.T("orders.restore.confirm", num), m.statusCmd(o, true))
		} else {
			m.list.askConfirm(i18n.T("orders.cancel.title"), i18n.T("orders.cancel.confirm", num), m.statusCmd(o, false))
		}
	case "r":
		m.list.loading = true
		return m.loadCmd()
	}
	return nil
}

func (m *ordersModel) statusCmd(o model.Order, restore bool) tea.Cmd {
	svc := m.app.svc
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		num := model.OrderNumber(o.IDCustomerOrder)
		call, key := svc.Orders.Cancel, "orders.cancelled"
		if restore {
			call, key = svc.Orders.Restore, "orders.restored"
		}
		if err := call(ctx, o.IDCustomerOrder); err != nil {
			return actionDoneMsg{resource: api.ResourceOrder, err: err}
		}
		return actionDoneMsg{resource: api.ResourceOrder, text: i18n.T(key, num)}
	}
}

func (m *ordersModel) newForm(d *core.OrderDraft) *formModel {
	o := d.Order
	title := i18n.T("orders.form.new")
	customerID, advance := "", ""
	if o.IDCustomerOrder != 0 {
		title = i18n.T("orders.form.edit", model.OrderNumber(o.IDCustomerOrder))
		customerID = strconv.Itoa(o.Customer.IDCustomer)
		advance = o.AdvancePayment.StringFixed(2)
	}
	notes := ""
	if o.Notes != nil {
		notes = *o.Notes
	}
	fields := []formField{
		{key: "customer", label: i18n.T("orders.field.customer"), placeholder: i18n.T("orders.field.customer_hint"), value: customerID},
		{key: "products", label: i18n.T("orders.field.products"), placeholder: "1, 2, 2", value: ""},
		{key: "deliveryDate", label: i18n.T("orders.field.delivery_date"), placeholder: "AAAA-MM-DD", value: o.DeliveryDate},
		{key: "deliveryTime", label: i18n.T("orders.field.delivery_time"), placeholder: core.DefaultDeliveryTime, value: o.DeliveryTime},
		{key: "deliveryType", label: i18n.T("orders.field.delivery_type"), placeholder: model.DeliveryLocal + " / " + model.DeliveryHome, value: o.DeliveryType},
		{key: "advance", label: i18n.T("orders.field.advance"), placeholder: "0.00", value: advance, hint: model.FormatSolesString},
		{key: "advanceMethod", label: i18n.T("orders.field.advance_method"), placeholder: "Efectivo, Yape, Tarjeta", value: o.AdvancePaymentMethod},
		{key: "district", label: i18n.T("customers.field.district"), value: o.DeliveryAddress.District},
		{key: "street", label: i18n.T("customers.field.street"), value: o.DeliveryAddress.AddrStreet},
		{key: "notes", label: i18n.T("customers.field.notes"), value: notes},
	}
	svc := m.app.svc
	return newFormModel(title, fields, func(v formValues) tea.Cmd {
		if err := applyOrderForm(d, v, svc.Customers.Store.Snapshot(), svc.Products.Store.Snapshot()); err != nil {
			return func() tea.Msg { return formSavedMsg{resource: api.ResourceOrder, err: err} }
		}
		return func() tea.Msg {
			ctx, cancel := requestContext()
			defer cancel()
			saved, err := svc.Orders.Submit(ctx, d)
			if err != nil {
				return formSavedMsg{resource: api.ResourceOrder, err: err}
			}
			return formSavedMsg{resource: api.ResourceOrder, text: i18n.T("orders.saved", model.OrderNumber(saved.IDCustomerOrder), model.FormatSoles(saved.TotalAmount))}
		}
	})
}

// applyOrderForm copies the form values into the draft. Products are given
// as a comma separated list of ids; repeating an id adds the product twice.
// An empty product list on an edited order keeps the stored total.
func applyOrderForm(d *core.OrderDraft, v formValues, customers []model.Customer, products []model.Product) error {
	var fields []model.FieldError
	bad := func(field, id string, args ...any) {
		fields = append(fields, model.FieldError{Field: field, Tag: id, Message: i18n.T(id, args...)})
	}

	if raw := v["customer"]; raw != "" {
		id, err := strconv.Atoi(raw)
		found := false
		for _, c := range customers {
			if err == nil && c.IDCustomer == id {
				d.SetCustomer(c)
				found = true
				break
			}
		}
		if !found {
			bad("customer", "orders.validation.unknown_customer", raw)
		}
	}

	if raw := v["products"]; raw != "" {
		var picked []model.Product
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.Atoi(part)
			var hit *model.Product
			for i := range products {
				if err == nil && products[i].ID == id {
					hit = &products[i]
					break
				}
			}
			if hit == nil {
				bad("products", "orders.validation.unknown_product", part)
				continue
			}
			picked = append(picked, *hit)
		}
		d.SetProducts(picked)
	}

	d.Order.DeliveryDate = v["deliveryDate"]
	d.Order.DeliveryTime = v["deliveryTime"]
	if d.Order.DeliveryTime == "" {
		d.Order.DeliveryTime = core.DefaultDeliveryTime
	}
	switch {
	case v["deliveryType"] == "":
		d.Order.DeliveryType = core.DefaultDeliveryType
	case strings.EqualFold(v["deliveryType"], model.DeliveryHome):
		d.Order.DeliveryType = model.DeliveryHome
	case strings.EqualFold(v["deliveryType"], model.DeliveryLocal):
		d.Order.DeliveryType = model.DeliveryLocal
	default:
		bad("deliveryType", "orders.validation.delivery_type")
	}

	advance := decimal.Zero
	if raw := strings.TrimSpace(strings.TrimPrefix(v["advance"], "S/")); raw != "" {
		a, err := decimal.NewFromString(raw)
		if err != nil {
			bad("advancePayment", "validation.number", "advancePayment")
		} else {
			advance = a
		}
	}
	d.SetAdvance(advance)
	d.Order.AdvancePaymentMethod = v["advanceMethod"]
	d.Order.DeliveryAddress.District = v["district"]
	d.Order.DeliveryAddress.AddrStreet = v["street"]
	if n := v["notes"]; n != "" {
		d.Order.Notes = &n
	} else {
		d.Order.Notes = nil
	}

	if len(fields) > 0 {
		return &model.ValidationError{Fields: fields}
	}
	return nil
}

func orderDetails(o model.Order, items []model.OrderItem) string {
	lines := []string{
		paneTitleStyle.Render(model.OrderNumber(o.IDCustomerOrder) + "  " + o.Customer.FullName()),
		"",
		i18n.T("orders.details.dates", model.DisplayDate(o.OrderDate), model.DisplayDate(o.DeliveryDate), o.DeliveryTime),
		i18n.T("orders.details.type", model.DeliveryTypeText(o.DeliveryType)),
	}
	if o.DeliveryType == model.DeliveryHome {
		lines = append(lines, i18n.T("orders.details.address", orDash(o.DeliveryAddress.AddrStreet), orDash(o.DeliveryAddress.District)))
	}
	lines = append(lines,
		i18n.T("orders.details.amounts", model.FormatSoles(o.TotalAmount), model.FormatSoles(o.AdvancePayment), model.FormatSoles(o.BalanceAmount)),
		i18n.T("orders.details.payment", model.PaymentStatusText(o.PaymentStatus), orDash(o.AdvancePaymentMethod)),
	)
	if o.Notes != nil && *o.Notes != "" {
		lines = append(lines, i18n.T("customers.details.notes", *o.Notes))
	}
	if o.CancellationReason != nil && *o.CancellationReason != "" {
		lines = append(lines, i18n.T("orders.details.cancelled", *o.CancellationReason))
	}
	if len(items) > 0 {
		lines = append(lines, "", paneTitleStyle.Render(i18n.T("orders.details.items")))
		for _, it := range items {
			lines = append(lines, fmt.Sprintf("  %dx %s  %s", it.Quantity, it.NameProduct, model.FormatSoles(it.Subtotal)))
		}
	}
	return strings.Join(lines, "\n")
}

func (m *ordersModel) View() string {
	if m.form != nil {
		return m.form.View()
	}
	return m.list.View(i18n.T("orders.footer"))
}
