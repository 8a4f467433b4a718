// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/toeirei/panaderia/internal/api"
	"github.com/toeirei/panaderia/internal/core"
	"github.com/toeirei/panaderia/internal/i18n"
	"github.com/toeirei/panaderia/internal/model"
)

// newCustomerCmd is the root command for customer management.
func newCustomerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "customer",
		Aliases: []string{"customers"},
		Short:   "Manage customers (list, show, create, update, delete, restore, reports)",
		Long: `The 'customer' command group covers the customer screens of the console:
listing with filters, details, registration, editing, soft deletion and
restoring, the PDF report and the birthday and new-customer lists.`,
	}
	cmd.AddCommand(
		newCustomerListCmd(),
		newCustomerShowCmd(),
		newCustomerCreateCmd(),
		newCustomerUpdateCmd(),
		newCustomerStatusCmd("delete", "Deactivate a customer", false),
		newCustomerStatusCmd("restore", "Reactivate a customer", true),
		newReportExportCmd(api.ResourceCustomer, "/customers"),
		newCustomerBirthdaysCmd(),
		newCustomerNewCmd(),
	)
	return cmd
}

func newCustomerListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List customers",
		Long: `Display customers in table format. By default only active customers are
shown; use --status I for inactive ones or --status T for all.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRoute("/customers"); err != nil {
				return err
			}
			f := core.DefaultCustomerFilter()
			f.Status, _ = cmd.Flags().GetString("status")
			f.Search, _ = cmd.Flags().GetString("search")
			f.DocumentType, _ = cmd.Flags().GetString("document-type")
			f.Gender, _ = cmd.Flags().GetString("gender")
			if cmd.Flags().Changed("min-age") {
				v, _ := cmd.Flags().GetInt("min-age")
				f.MinAge = &v
			}
			if cmd.Flags().Changed("max-age") {
				v, _ := cmd.Flags().GetInt("max-age")
				f.MaxAge = &v
			}

			if err := services.Customers.Load(cmd.Context()); err != nil {
				return err
			}
			customers := core.FilterCustomers(services.Customers.Store.Items.Get(), f)
			if len(customers) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.customers.empty"))
				return nil
			}
			printCustomers(cmd, customers)
			return nil
		},
	}
	cmd.Flags().String("status", model.StatusActive, "Status filter: A (active), I (inactive), T (all)")
	cmd.Flags().String("search", "", "Search names, document, phone, e-mail and address")
	cmd.Flags().String("document-type", "", "Only this document type (DNI, CÉDULA, PASAPORTE)")
	cmd.Flags().String("gender", "", "Only this gender (M, F)")
	cmd.Flags().Int("min-age", 0, "Minimum age")
	cmd.Flags().Int("max-age", 0, "Maximum age")
	return cmd
}

func printCustomers(cmd *cobra.Command, customers []model.Customer) {
	w := newTable(cmd)
	fmt.Fprintln(w, i18n.T("cli.customers.header"))
	for _, c := range customers {
		age := "-"
		if c.Age != nil {
			age = fmt.Sprint(*c.Age)
		}
		fmt.Fprintf(w, "%d\t%s\t%s %s\t%s\t%s\t%s\t%s\n",
			c.IDCustomer, c.FullName(), c.DocumentType, c.DocumentNumber,
			dash(c.Phone), dash(c.Email), age, model.StatusText(c.Status))
	}
	_ = w.Flush()
}

func newCustomerShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show the details of a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := requireRoute(fmt.Sprintf("/customers/customer-details/%d", id)); err != nil {
				return err
			}
			c, err := services.Customers.GetWithAge(cmd.Context(), id)
			if err != nil {
				return err
			}
			age := "-"
			if c.Age != nil {
				age = i18n.T("customers.details.years", *c.Age)
			}
			a := model.NormalizeAddress(c.Address)
			w := newTable(cmd)
			rows := [][2]string{
				{i18n.T("cli.field.id"), fmt.Sprint(c.IDCustomer)},
				{i18n.T("cli.field.name"), c.FullName()},
				{i18n.T("cli.field.document"), model.DocumentTypeText(c.DocumentType) + " " + c.DocumentNumber},
				{i18n.T("cli.field.birth"), model.DisplayDate(c.BirthDate) + " (" + age + ")"},
				{i18n.T("cli.field.gender"), model.GenderText(c.Gender)},
				{i18n.T("cli.field.phone"), dash(c.Phone)},
				{i18n.T("cli.field.email"), dash(c.Email)},
				{i18n.T("cli.field.address"), strings.TrimSpace(a.AddrStreet + " " + a.NumberHouse + ", " + a.District)},
				{i18n.T("cli.field.reference"), a.PlaceType + " / " + a.Reference},
				{i18n.T("cli.field.registered"), model.DisplayDate(c.RegistrationDate)},
				{i18n.T("cli.field.status"), model.StatusText(c.Status)},
			}
			if c.Notes != "" {
				rows = append(rows, [2]string{i18n.T("cli.field.notes"), c.Notes})
			}
			for _, r := range rows {
				fmt.Fprintf(w, "%s\t%s\n", r[0], r[1])
			}
			return w.Flush()
		},
	}
}

// customerFlags declares the editable customer fields on cmd.
func customerFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("first-name", "", "First name")
	f.String("last-name", "", "Last name")
	f.String("document-type", "DNI", "Document type (DNI, CÉDULA, PASAPORTE)")
	f.String("document-number", "", "Document number")
	f.String("birth-date", "", "Birth date (YYYY-MM-DD)")
	f.String("gender", "", "Gender (M, F)")
	f.String("phone", "", "Phone number")
	f.String("email", "", "E-mail address")
	f.String("notes", "", "Free notes")
	f.String("district", "", "Address: district")
	f.String("street", "", "Address: street")
	f.String("number", "", "Address: house number")
	f.String("place-type", "", "Address: place type (Casa, Departamento, ...)")
	f.String("reference", "", "Address: reference")
}

// applyCustomerFlags copies the flags the user set onto c. On create every
// flag is applied so defaults take effect.
func applyCustomerFlags(cmd *cobra.Command, c *model.Customer, all bool) {
	set := func(name string, dst *string, upper bool) {
		if !all && !cmd.Flags().Changed(name) {
			return
		}
		v, _ := cmd.Flags().GetString(name)
		v = strings.TrimSpace(v)
		if upper {
			v = strings.ToUpper(v)
		}
		*dst = v
	}
	set("first-name", &c.FirstName, false)
	set("last-name", &c.LastName, false)
	set("document-type", &c.DocumentType, true)
	set("document-number", &c.DocumentNumber, false)
	set("birth-date", &c.BirthDate, false)
	set("gender", &c.Gender, true)
	set("phone", &c.Phone, false)
	set("email", &c.Email, false)
	set("notes", &c.Notes, false)
	set("district", &c.Address.District, false)
	set("street", &c.Address.AddrStreet, false)
	set("number", &c.Address.NumberHouse, false)
	set("place-type", &c.Address.PlaceType, false)
	set("reference", &c.Address.Reference, false)
}

func newCustomerCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new customer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRoute("/customers/customer-form"); err != nil {
				return err
			}
			var c model.Customer
			applyCustomerFlags(cmd, &c, true)
			saved, err := services.Customers.Create(cmd.Context(), c)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("customers.created", saved.FullName()), fmt.Sprintf("(#%d)", saved.IDCustomer))
			return nil
		},
	}
	customerFlags(cmd)
	return cmd
}

func newCustomerUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a customer",
		Long:  `Only the flags given are changed; every other field keeps its stored value.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := requireRoute(fmt.Sprintf("/customers/customer-edit/%d", id)); err != nil {
				return err
			}
			c, err := services.Customers.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			applyCustomerFlags(cmd, c, false)
			saved, err := services.Customers.Update(cmd.Context(), *c)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("customers.updated", saved.FullName()))
			return nil
		},
	}
	customerFlags(cmd)
	return cmd
}

func newCustomerStatusCmd(use, short string, restore bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := requireRoute(fmt.Sprintf("/customers/customer-edit/%d", id)); err != nil {
				return err
			}
			key := "customers.deleted"
			if restore {
				err = services.Customers.Restore(cmd.Context(), id)
				key = "customers.restored"
			} else {
				err = services.Customers.SoftDelete(cmd.Context(), id)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T(key, fmt.Sprintf("#%d", id)))
			return nil
		},
	}
}

func newCustomerBirthdaysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "birthdays",
		Short: "List customers with a birthday in the next days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRoute("/customers"); err != nil {
				return err
			}
			days, _ := cmd.Flags().GetInt("days")
			list := services.Customers.UpcomingBirthdays(cmd.Context(), days)
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.birthdays.none", days))
				return nil
			}
			w := newTable(cmd)
			fmt.Fprintln(w, i18n.T("cli.birthdays.header"))
			today := services.Now()
			for _, c := range list {
				left := "-"
				if birth, ok := model.ParseDate(c.BirthDate); ok {
					left = fmt.Sprint(core.DaysUntilBirthday(birth, today))
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", c.IDCustomer, c.FullName(), model.DisplayDate(c.BirthDate), left)
			}
			return w.Flush()
		},
	}
	cmd.Flags().Int("days", 7, "Look-ahead window in days")
	return cmd
}

func newCustomerNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "List the customers the backend reports as new",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRoute("/customers/customer-new"); err != nil {
				return err
			}
			list := services.Customers.NewCustomers(cmd.Context())
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.customers.empty"))
				return nil
			}
			printCustomers(cmd, list)
			return nil
		},
	}
}

// newReportExportCmd downloads the PDF report of resource.
func newReportExportCmd(resource, route string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Download the PDF report",
		Long: `Downloads the PDF report from the backend and saves it. With --compress
the file is stored zstd-compressed. Every export is recorded and can be
listed with 'report exports'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRoute(route); err != nil {
				return err
			}
			dir, _ := cmd.Flags().GetString("dir")
			path, _ := cmd.Flags().GetString("output")
			compress, _ := cmd.Flags().GetBool("compress")
			rec, err := services.ExportReport(cmd.Context(), resource, core.ReportOptions{Dir: dir, Path: path, Compress: compress})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.report_saved", rec.FilePath, humanize.Bytes(uint64(rec.SizeBytes))))
			return nil
		},
	}
	cmd.Flags().String("dir", ".", "Directory for the generated file name")
	cmd.Flags().StringP("output", "o", "", "Write to this file instead")
	cmd.Flags().Bool("compress", false, "Store the report zstd-compressed")
	return cmd
}
