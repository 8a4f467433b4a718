// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/toeirei/panaderia/internal/core"
	"github.com/toeirei/panaderia/internal/i18n"
	"github.com/toeirei/panaderia/internal/model"
)

// newOrderCmd is the root command for customer orders.
func newOrderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "order",
		Aliases: []string{"orders"},
		Short:   "Manage customer orders",
	}
	cmd.AddCommand(
		newOrderListCmd(),
		newOrderShowCmd(),
		newOrderCreateCmd(),
		newOrderStatusCmd("cancel", "Cancel an order", false),
		newOrderStatusCmd("restore", "Put a cancelled order back to pending", true),
		newOrderItemsCmd(),
		newOrderTotalCmd(),
	)
	return cmd
}

func printOrders(cmd *cobra.Command, orders []model.Order) error {
	w := newTable(cmd)
	fmt.Fprintln(w, i18n.T("cli.orders.header"))
	for _, o := range orders {
		fmt.Fprintf(w, "%s\t%s\t%s %s\t%s\t%s\t%s\t%s\n",
			model.OrderNumber(o.IDCustomerOrder), o.Customer.FullName(),
			model.DisplayDate(o.DeliveryDate), o.DeliveryTime,
			model.DeliveryTypeText(o.DeliveryType),
			model.FormatSoles(o.TotalAmount), model.FormatSoles(o.BalanceAmount),
			model.PaymentStatusText(o.PaymentStatus))
	}
	return w.Flush()
}

func newOrderListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pending orders",
		Long: `Lists the pending orders. --filter narrows them down the way the order
screen does (todos, domicilio, local, pendiente). --cancelled lists the
cancelled orders instead and --customer the orders of one customer.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRoute("/orders"); err != nil {
				return err
			}
			filter, _ := cmd.Flags().GetString("filter")
			search, _ := cmd.Flags().GetString("search")
			cancelled, _ := cmd.Flags().GetBool("cancelled")
			customer, _ := cmd.Flags().GetInt("customer")

			var orders []model.Order
			switch {
			case cancelled:
				list, err := services.Orders.Cancelled(cmd.Context())
				if err != nil {
					return err
				}
				orders = core.FilterOrders(list, core.OrdersAll, search)
			case customer > 0:
				list, err := services.Orders.ByCustomer(cmd.Context(), customer)
				if err != nil {
					return err
				}
				orders = core.FilterOrders(list, core.OrderQuickFilter(filter), search)
			default:
				if err := services.Orders.Load(cmd.Context()); err != nil {
					return err
				}
				orders = core.FilterOrders(services.Orders.Pending.Get(), core.OrderQuickFilter(filter), search)
			}
			if len(orders) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.orders.empty"))
				return nil
			}
			return printOrders(cmd, orders)
		},
	}
	cmd.Flags().String("filter", string(core.OrdersAll), "Quick filter: todos, domicilio, local, pendiente")
	cmd.Flags().String("search", "", "Search order number, customer and address")
	cmd.Flags().Bool("cancelled", false, "List cancelled orders")
	cmd.Flags().Int("customer", 0, "Only the orders of this customer id")
	return cmd
}

func newOrderShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show an order with its products",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := requireRoute(fmt.Sprintf("/orders/view/%d", id)); err != nil {
				return err
			}
			d, err := services.Orders.FullDetails(cmd.Context(), id)
			if err != nil {
				return err
			}
			o := d.Order
			addr := o.DeliveryAddress
			w := newTable(cmd)
			rows := [][2]string{
				{i18n.T("cli.field.order"), model.OrderNumber(o.IDCustomerOrder)},
				{i18n.T("cli.field.customer"), o.Customer.FullName()},
				{i18n.T("cli.field.ordered"), model.DisplayDate(o.OrderDate)},
				{i18n.T("cli.field.delivery"), model.DisplayDate(o.DeliveryDate) + " " + o.DeliveryTime + " (" + model.DeliveryTypeText(o.DeliveryType) + ")"},
				{i18n.T("cli.field.address"), strings.TrimSpace(addr.AddrStreet + " " + addr.NumberHouse + " " + addr.District)},
				{i18n.T("cli.field.total"), model.FormatSoles(o.TotalAmount)},
				{i18n.T("cli.field.advance"), model.FormatSoles(o.AdvancePayment) + " " + o.AdvancePaymentMethod},
				{i18n.T("cli.field.balance"), model.FormatSoles(o.BalanceAmount)},
				{i18n.T("cli.field.payment"), model.PaymentStatusText(o.PaymentStatus)},
				{i18n.T("cli.field.status"), orderStatusText(o.OrderStatus)},
			}
			if o.Notes != nil && *o.Notes != "" {
				rows = append(rows, [2]string{i18n.T("cli.field.notes"), *o.Notes})
			}
			if o.CancellationReason != nil && *o.CancellationReason != "" {
				rows = append(rows, [2]string{i18n.T("cli.field.cancelled"), *o.CancellationReason})
			}
			for _, r := range rows {
				fmt.Fprintf(w, "%s\t%s\n", r[0], dash(r[1]))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if len(d.Items) > 0 {
				fmt.Fprintln(cmd.OutOrStdout())
				return printItems(cmd, d.Items)
			}
			return nil
		},
	}
}

func orderStatusText(status string) string {
	switch status {
	case model.OrderPending:
		return i18n.T("cli.orders.status_pending")
	case model.OrderCancelled:
		return i18n.T("cli.orders.status_cancelled")
	}
	return status
}

func printItems(cmd *cobra.Command, items []model.OrderItem) error {
	w := newTable(cmd)
	fmt.Fprintln(w, i18n.T("cli.items.header"))
	for _, it := range items {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n", it.IDProduct, it.NameProduct, it.Quantity,
			model.FormatSoles(it.UnitPrice), model.FormatSoles(it.Subtotal))
	}
	return w.Flush()
}

func newOrderCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an order",
		Long: `Creates a pending order. --products takes comma separated product ids; a
repeated id counts the product twice. The total is the sum of the product
prices and the balance is the total minus --advance.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRoute("/orders/create"); err != nil {
				return err
			}
			customerID, _ := cmd.Flags().GetInt("customer")
			rawProducts, _ := cmd.Flags().GetString("products")
			deliveryDate, _ := cmd.Flags().GetString("delivery-date")
			deliveryTime, _ := cmd.Flags().GetString("delivery-time")
			deliveryType, _ := cmd.Flags().GetString("delivery-type")
			rawAdvance, _ := cmd.Flags().GetString("advance")
			method, _ := cmd.Flags().GetString("advance-method")
			notes, _ := cmd.Flags().GetString("notes")

			d := core.NewOrderDraft(services.Now)
			if customerID > 0 {
				c, err := services.Customers.Get(cmd.Context(), customerID)
				if err != nil {
					return err
				}
				d.SetCustomer(*c)
				d.Order.DeliveryAddress = model.AddressInfo{
					District:    c.Address.District,
					AddrStreet:  c.Address.AddrStreet,
					NumberHouse: c.Address.NumberHouse,
					PlaceType:   c.Address.PlaceType,
					Reference:   c.Address.Reference,
				}
			}

			ids, err := parseIDs(rawProducts)
			if err != nil {
				return err
			}
			picked := make([]model.Product, 0, len(ids))
			for _, id := range ids {
				p, err := services.Products.Get(cmd.Context(), id)
				if err != nil {
					return err
				}
				picked = append(picked, *p)
			}
			d.SetProducts(picked)

			if rawAdvance != "" {
				advance, err := decimal.NewFromString(strings.TrimSpace(rawAdvance))
				if err != nil {
					return fmt.Errorf("%s: %w", i18n.T("order.validation.negative"), core.ErrValidation)
				}
				d.SetAdvance(advance)
			}
			d.Order.DeliveryDate = deliveryDate
			if deliveryTime != "" {
				d.Order.DeliveryTime = deliveryTime
			}
			switch {
			case deliveryType == "":
			case strings.EqualFold(deliveryType, model.DeliveryHome):
				d.Order.DeliveryType = model.DeliveryHome
			case strings.EqualFold(deliveryType, model.DeliveryLocal):
				d.Order.DeliveryType = model.DeliveryLocal
			default:
				return fmt.Errorf("%s: %w", i18n.T("orders.validation.delivery_type"), core.ErrValidation)
			}
			d.Order.AdvancePaymentMethod = method
			if notes != "" {
				d.Order.Notes = &notes
			}

			saved, err := services.Orders.Submit(cmd.Context(), d)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("orders.saved", model.OrderNumber(saved.IDCustomerOrder)))
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.orders.amounts",
				model.FormatSoles(saved.TotalAmount), model.FormatSoles(saved.AdvancePayment), model.FormatSoles(saved.BalanceAmount)))
			return nil
		},
	}
	cmd.Flags().Int("customer", 0, "Customer id")
	cmd.Flags().String("products", "", "Comma separated product ids, e.g. 1,1,2")
	cmd.Flags().String("delivery-date", "", "Delivery date (YYYY-MM-DD)")
	cmd.Flags().String("delivery-time", core.DefaultDeliveryTime, "Delivery time (HH:MM)")
	cmd.Flags().String("delivery-type", core.DefaultDeliveryType, "Local or Domicilio")
	cmd.Flags().String("advance", "", "Advance payment in soles")
	cmd.Flags().String("advance-method", "Efectivo", "Payment method of the advance")
	cmd.Flags().String("notes", "", "Notes")
	return cmd
}

func newOrderStatusCmd(use, short string, restore bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := requireRoute(fmt.Sprintf("/orders/edit/%d", id)); err != nil {
				return err
			}
			key := "cli.orders.cancelled"
			if restore {
				err = services.Orders.Restore(cmd.Context(), id)
				key = "cli.orders.restored"
			} else {
				err = services.Orders.Cancel(cmd.Context(), id)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T(key, model.OrderNumber(id)))
			return nil
		},
	}
}

func newOrderItemsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "items <id>",
		Short: "List the products of an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := requireRoute(fmt.Sprintf("/orders/view/%d", id)); err != nil {
				return err
			}
			items, err := services.Orders.Items(cmd.Context(), id)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.items.empty"))
				return nil
			}
			return printItems(cmd, items)
		},
	}
}

func newOrderTotalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "total <id>",
		Short: "Ask the backend for the total of an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := requireRoute(fmt.Sprintf("/orders/view/%d", id)); err != nil {
				return err
			}
			total, err := services.Orders.Total(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), model.OrderNumber(id), model.FormatSoles(total))
			return nil
		},
	}
}
