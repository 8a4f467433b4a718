// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/toeirei/panaderia/internal/core"
	"github.com/toeirei/panaderia/internal/db"
	"github.com/toeirei/panaderia/internal/i18n"
	"github.com/toeirei/panaderia/internal/logging"
	"github.com/toeirei/panaderia/util/slicest"
)

// newDashboardCmd prints the dashboard counters.
func newDashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the dashboard summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRoute("/"); err != nil {
				return err
			}
			data, err := services.BuildDashboardData(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, i18n.T("dashboard.greeting", data.UserName, rolesText(data.Roles)))
			w := newTable(cmd)
			fmt.Fprintf(w, "%s\t%s\n", i18n.T("dashboard.customers"), i18n.T("dashboard.customers_value", data.Customers.Total, data.Customers.Active, data.NewCustomers))
			fmt.Fprintf(w, "%s\t%s\n", i18n.T("dashboard.products"), i18n.T("dashboard.products_value", data.Products.Total, data.Products.Active, data.Products.OutOfStock))
			fmt.Fprintf(w, "%s\t%s\n", i18n.T("dashboard.orders"), i18n.T("dashboard.orders_value", data.Orders.Total, data.Orders.Delivery, data.Orders.Local, data.Orders.PendingPayment))
			fmt.Fprintf(w, "%s\t%s\n", i18n.T("dashboard.employees"), i18n.T("dashboard.employees_value", data.Employees.Total, data.Employees.Active))
			fmt.Fprintf(w, "%s\t%s\n", i18n.T("dashboard.birthdays_today"), namesOf(data.BirthdaysToday))
			fmt.Fprintf(w, "%s\t%s\n", i18n.T("dashboard.birthdays_soon"), namesOf(data.BirthdaysSoon))
			if err := w.Flush(); err != nil {
				return err
			}
			if len(data.PartialFailures) > 0 {
				fmt.Fprintln(out, i18n.T("dashboard.partial", strings.Join(data.PartialFailures, ", ")))
			}
			return nil
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "sales",
		Short: "Print the weekly sales and best sellers as bar charts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRoute(core.RouteDashboard); err != nil {
				return err
			}
			weekly := core.WeeklySales()
			printSeries(cmd, weekly, 40)
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("sales.total", weekly.Sum().String()))
			fmt.Fprintln(cmd.OutOrStdout())
			printSeries(cmd, core.TopProducts(), 40)
			return nil
		},
	})
	return cmd
}

func namesOf[T interface{ FullName() string }](items []T) string {
	if len(items) == 0 {
		return i18n.T("dashboard.none")
	}
	return strings.Join(slicest.Map(items, func(it T) string { return it.FullName() }), ", ")
}

// printSeries renders s as horizontal bars scaled to width.
func printSeries(cmd *cobra.Command, s core.Series, width int) {
	fmt.Fprintln(cmd.OutOrStdout(), s.Label)
	peak := s.Max()
	w := newTable(cmd)
	for i, label := range s.Labels {
		v := s.Values[i]
		n := 0
		if peak.IsPositive() {
			n = int(v.Mul(decimal.NewFromInt(int64(width))).Div(peak).IntPart())
		}
		fmt.Fprintf(w, "%s\t%s %s\n", label, strings.Repeat("█", n), v.String())
	}
	_ = w.Flush()
}

func newNotificationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "List birthday notifications",
		Long: `Builds the birthday notifications from the customer list: today's
birthdays and those in the next days. --read-all marks every one as read.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRoute("/notifications"); err != nil {
				return err
			}
			n := services.Notifications
			items, err := n.Refresh(cmd.Context())
			if err != nil {
				return err
			}
			if all, _ := cmd.Flags().GetBool("read-all"); all {
				n.MarkAllRead(cmd.Context())
				items = n.Items.Get()
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, i18n.T("notifications.title", n.UnreadCount()))
			if len(items) == 0 {
				fmt.Fprintln(out, i18n.T("notifications.empty"))
				return nil
			}
			w := newTable(cmd)
			for _, it := range items {
				read := ""
				if it.Read {
					read = i18n.T("notifications.read")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", it.Priority, it.Message, read)
			}
			return w.Flush()
		},
	}
	cmd.Flags().Bool("read-all", false, "Mark every notification as read")
	return cmd
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Inspect downloaded reports",
	}
	exports := &cobra.Command{
		Use:   "exports",
		Short: "List saved PDF reports, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			list, err := services.RecentExports(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("reports.empty"))
				return nil
			}
			w := newTable(cmd)
			fmt.Fprintln(w, i18n.T("cli.exports.header"))
			for _, e := range list {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					e.ID, e.Resource, e.FilePath, humanize.Bytes(uint64(e.SizeBytes)),
					dash(e.ExportedBy), humanize.Time(e.ExportedAt))
			}
			return w.Flush()
		},
	}
	exports.Flags().Int("limit", 20, "Maximum number of rows")
	cmd.AddCommand(exports)
	return cmd
}

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Local database tasks",
	}
	maintain := &cobra.Command{
		Use:   "maintain",
		Short: "Run engine maintenance and drop old notification read markers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			days, _ := cmd.Flags().GetInt("read-days")
			removed, err := services.Notifications.ForgetRead(cmd.Context(), days)
			if err != nil {
				return err
			}
			skip, _ := cmd.Flags().GetBool("skip-engine")
			if !skip {
				start := time.Now()
				if err := db.Maintain(cmd.Context(), appConfig.Database.Type, appConfig.Database.Dsn); err != nil {
					return err
				}
				logging.Infof("db: maintenance finished in %s", time.Since(start))
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.db.maintained", removed))
			return nil
		},
	}
	maintain.Flags().Int("read-days", 30, "Keep read markers of the last days")
	maintain.Flags().Bool("skip-engine", false, "Only clean up read markers")
	cmd.AddCommand(maintain)
	return cmd
}
