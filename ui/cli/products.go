// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/toeirei/panaderia/internal/api"
	"github.com/toeirei/panaderia/internal/core"
	"github.com/toeirei/panaderia/internal/i18n"
	"github.com/toeirei/panaderia/internal/model"
)

// newProductCmd is the root command for the product catalogue.
func newProductCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "product",
		Aliases: []string{"products"},
		Short:   "Manage the product catalogue",
	}
	cmd.AddCommand(
		newProductListCmd(),
		newProductShowCmd(),
		newProductCreateCmd(),
		newProductUpdateCmd(),
		newProductStatusCmd("delete", "Deactivate a product", false),
		newProductStatusCmd("restore", "Reactivate a product", true),
		newReportExportCmd(api.ResourceProduct, "/products"),
	)
	return cmd
}

func newProductListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRoute("/products"); err != nil {
				return err
			}
			status, _ := cmd.Flags().GetString("status")
			search, _ := cmd.Flags().GetString("search")
			category, _ := cmd.Flags().GetString("category")
			if err := services.Products.Load(cmd.Context()); err != nil {
				return err
			}
			products := core.FilterProducts(services.Products.Store.Items.Get(), status, search)
			if len(products) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.products.empty"))
				return nil
			}
			w := newTable(cmd)
			fmt.Fprintln(w, i18n.T("cli.products.header"))
			for _, p := range products {
				if category != "" && !strings.EqualFold(p.Category, category) {
					continue
				}
				stock := fmt.Sprint(p.Units)
				if p.Units <= 0 {
					stock = i18n.T("products.out_of_stock")
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					p.ID, p.NameProduct, dash(p.Category), model.FormatSoles(p.Price), stock, model.StatusText(p.Status))
			}
			return w.Flush()
		},
	}
	cmd.Flags().String("status", model.StatusActive, "Status filter: A (active), I (inactive), T (all)")
	cmd.Flags().String("search", "", "Search name, description, category, price and stock")
	cmd.Flags().String("category", "", "Only this category")
	return cmd
}

func newProductShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := requireRoute(fmt.Sprintf("/products/view/%d", id)); err != nil {
				return err
			}
			p, err := services.Products.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			w := newTable(cmd)
			rows := [][2]string{
				{i18n.T("cli.field.id"), fmt.Sprint(p.ID)},
				{i18n.T("cli.field.name"), p.NameProduct},
				{i18n.T("cli.field.description"), p.Description},
				{i18n.T("cli.field.category"), p.Category},
				{i18n.T("cli.field.price"), model.FormatSoles(p.Price)},
				{i18n.T("cli.field.units"), fmt.Sprint(p.Units)},
				{i18n.T("cli.field.created"), model.DisplayDate(p.CreationDate)},
				{i18n.T("cli.field.image"), p.ImageURL},
				{i18n.T("cli.field.status"), model.StatusText(p.Status)},
			}
			for _, r := range rows {
				fmt.Fprintf(w, "%s\t%s\n", r[0], dash(r[1]))
			}
			return w.Flush()
		},
	}
}

func productFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("name", "", "Product name")
	f.String("description", "", "Description")
	f.String("category", "", "Category")
	f.String("price", "", "Unit price in soles, e.g. 3.50")
	f.Int("units", 0, "Units in stock")
	f.String("image-url", "", "Image URL")
}

func applyProductFlags(cmd *cobra.Command, p *model.Product, all bool) error {
	changed := func(name string) bool { return all || cmd.Flags().Changed(name) }
	str := func(name string, dst *string) {
		if changed(name) {
			v, _ := cmd.Flags().GetString(name)
			*dst = strings.TrimSpace(v)
		}
	}
	str("name", &p.NameProduct)
	str("description", &p.Description)
	str("category", &p.Category)
	str("image-url", &p.ImageURL)
	if changed("units") {
		p.Units, _ = cmd.Flags().GetInt("units")
	}
	if changed("price") {
		raw, _ := cmd.Flags().GetString("price")
		price, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return model.ValidateField("price", 0, "gt=0")
		}
		p.Price = price
	}
	return nil
}

func newProductCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a product to the catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRoute("/products/create"); err != nil {
				return err
			}
			var p model.Product
			if err := applyProductFlags(cmd, &p, true); err != nil {
				return err
			}
			saved, err := services.Products.Create(cmd.Context(), p)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("products.created", saved.NameProduct), fmt.Sprintf("(#%d)", saved.ID))
			return nil
		},
	}
	productFlags(cmd)
	return cmd
}

func newProductUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := requireRoute(fmt.Sprintf("/products/edit/%d", id)); err != nil {
				return err
			}
			p, err := services.Products.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			if err := applyProductFlags(cmd, p, false); err != nil {
				return err
			}
			saved, err := services.Products.Update(cmd.Context(), *p)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("products.updated", saved.NameProduct))
			return nil
		},
	}
	productFlags(cmd)
	return cmd
}

func newProductStatusCmd(use, short string, restore bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := requireRoute(fmt.Sprintf("/products/edit/%d", id)); err != nil {
				return err
			}
			key := "cli.products.deleted"
			if restore {
				err = services.Products.Restore(cmd.Context(), id)
				key = "cli.products.restored"
			} else {
				err = services.Products.SoftDelete(cmd.Context(), id)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T(key, id))
			return nil
		},
	}
}
