// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/toeirei/panaderia/internal/core"
	"github.com/toeirei/panaderia/internal/i18n"
	"github.com/toeirei/panaderia/internal/model"
)

// newEmployeeCmd is the root command for staff management.
func newEmployeeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "employee",
		Aliases: []string{"employees"},
		Short:   "Manage employees (list, show, create, update, roles, e-mail)",
	}
	cmd.AddCommand(
		newEmployeeListCmd(),
		newEmployeeShowCmd(),
		newEmployeeCreateCmd(),
		newEmployeeUpdateCmd(),
		newEmployeeStatusCmd("delete", "Deactivate an employee", false),
		newEmployeeStatusCmd("restore", "Reactivate an employee", true),
		newEmployeeAssignRoleCmd(),
		newEmployeeEmailCmd(),
		newEmployeeRolesCmd(),
	)
	return cmd
}

func newEmployeeListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List employees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRoute("/employees"); err != nil {
				return err
			}
			status, _ := cmd.Flags().GetString("status")
			search, _ := cmd.Flags().GetString("search")
			gender, _ := cmd.Flags().GetString("gender")

			var employees []model.Employee
			if gender != "" {
				// The gender filter is answered by the backend.
				list, err := services.Employees.ByGender(cmd.Context(), strings.ToUpper(gender))
				if err != nil {
					return err
				}
				employees = core.FilterEmployees(list, status, search)
			} else {
				if err := services.Employees.Load(cmd.Context()); err != nil {
					return err
				}
				employees = core.FilterEmployees(services.Employees.Store.Items.Get(), status, search)
			}
			if len(employees) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.employees.empty"))
				return nil
			}
			w := newTable(cmd)
			fmt.Fprintln(w, i18n.T("cli.employees.header"))
			for _, e := range employees {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					e.IDEmployee, e.FullName(), e.DocumentNumber, e.Email,
					model.RoleDisplayName(e.RoleName), model.StatusText(e.Status))
			}
			return w.Flush()
		},
	}
	cmd.Flags().String("status", model.StatusAll, "Status filter: A (active), I (inactive), T (all)")
	cmd.Flags().String("search", "", "Search names, document, e-mail and role")
	cmd.Flags().String("gender", "", "Only this gender (M, F, O), asked from the backend")
	return cmd
}

func newEmployeeShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show an employee and its login account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := requireRoute(fmt.Sprintf("/employees/view/%d", id)); err != nil {
				return err
			}
			e, err := services.Employees.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			age := "-"
			if e.Age != nil {
				age = fmt.Sprint(*e.Age)
			}
			w := newTable(cmd)
			rows := [][2]string{
				{i18n.T("cli.field.id"), fmt.Sprint(e.IDEmployee)},
				{i18n.T("cli.field.name"), e.FullName()},
				{i18n.T("cli.field.document"), model.DocumentTypeText(e.DocumentType) + " " + e.DocumentNumber},
				{i18n.T("cli.field.email"), e.Email},
				{i18n.T("cli.field.phone"), dash(e.Phone)},
				{i18n.T("cli.field.address"), dash(e.Address)},
				{i18n.T("cli.field.role"), model.RoleDisplayName(e.RoleName)},
				{i18n.T("cli.field.position"), dash(e.Position)},
				{i18n.T("cli.field.hired"), model.DisplayDate(e.HireDate)},
				{i18n.T("cli.field.birth"), model.DisplayDate(e.BirthDate) + " (" + age + ")"},
				{i18n.T("cli.field.gender"), model.GenderText(e.Gender)},
				{i18n.T("cli.field.emergency"), strings.TrimSpace(e.EmergencyContactName + " " + e.EmergencyContactPhone)},
				{i18n.T("cli.field.status"), model.StatusText(e.Status)},
			}
			// The account lookup is informative; employees without one still show.
			if info, err := services.Employees.UserInfo(cmd.Context(), id); err == nil {
				rows = append(rows, [2]string{i18n.T("cli.field.account"), info.Username + " (" + rolesText(info.Roles) + ")"})
			}
			for _, r := range rows {
				fmt.Fprintf(w, "%s\t%s\n", r[0], dash(r[1]))
			}
			return w.Flush()
		},
	}
}

func employeeFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("first-name", "", "First name")
	f.String("last-name", "", "Last name")
	f.String("document-type", "DNI", "Document type")
	f.String("document-number", "", "Document number")
	f.String("email", "", "E-mail address")
	f.String("phone", "", "Phone number")
	f.String("address", "", "Address")
	f.String("role", "", "Role name (e.g. BAKER, CASHIER)")
	f.String("hire-date", "", "Hire date (YYYY-MM-DD), defaults to today")
	f.String("birth-date", "", "Birth date (YYYY-MM-DD)")
	f.String("gender", "", "Gender (M, F, O)")
	f.String("position", "", "Position")
	f.String("emergency-name", "", "Emergency contact name")
	f.String("emergency-phone", "", "Emergency contact phone")
}

// applyEmployeeFlags copies the set flags onto req. The role is resolved
// against the role catalogue.
func applyEmployeeFlags(cmd *cobra.Command, req *model.EmployeeRequest, all bool) error {
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
	set("first-name", &req.FirstName, false)
	set("last-name", &req.LastName, false)
	set("document-type", &req.DocumentType, true)
	set("document-number", &req.DocumentNumber, false)
	set("email", &req.Email, false)
	set("phone", &req.Phone, false)
	set("address", &req.Address, false)
	set("hire-date", &req.HireDate, false)
	set("birth-date", &req.BirthDate, false)
	set("gender", &req.Gender, true)
	set("position", &req.Position, false)
	set("emergency-name", &req.EmergencyContactName, false)
	set("emergency-phone", &req.EmergencyContactPhone, false)

	if name, _ := cmd.Flags().GetString("role"); name != "" {
		if _, err := services.Employees.LoadRoles(cmd.Context()); err != nil {
			return err
		}
		role, ok := services.Employees.RoleByName(name)
		if !ok {
			return fmt.Errorf("%s: %w", i18n.T("cli.unknown_role", name), core.ErrValidation)
		}
		req.IDRole = role.ID
	}
	return nil
}

func newEmployeeCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new employee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRoute("/employees/create"); err != nil {
				return err
			}
			var req model.EmployeeRequest
			if err := applyEmployeeFlags(cmd, &req, true); err != nil {
				return err
			}
			saved, err := services.Employees.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("employees.created", saved.FullName()), fmt.Sprintf("(#%d)", saved.IDEmployee))
			return nil
		},
	}
	employeeFlags(cmd)
	return cmd
}

func newEmployeeUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of an employee",
		Long:  `Only the flags given are changed; every other field keeps its stored value.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := requireRoute(fmt.Sprintf("/employees/edit/%d", id)); err != nil {
				return err
			}
			e, err := services.Employees.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			req := e.Request()
			if err := applyEmployeeFlags(cmd, &req, false); err != nil {
				return err
			}
			saved, err := services.Employees.Update(cmd.Context(), id, req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("employees.updated", saved.FullName()))
			return nil
		},
	}
	employeeFlags(cmd)
	return cmd
}

func newEmployeeStatusCmd(use, short string, restore bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := requireRoute(fmt.Sprintf("/employees/edit/%d", id)); err != nil {
				return err
			}
			key := "cli.employees.deleted"
			if restore {
				err = services.Employees.Restore(cmd.Context(), id)
				key = "cli.employees.restored"
			} else {
				err = services.Employees.SoftDelete(cmd.Context(), id)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T(key, id))
			return nil
		},
	}
}

func newEmployeeAssignRoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assign-role <id> <role>",
		Short: "Change the role of an employee",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := requireRoute(fmt.Sprintf("/employees/edit/%d", id)); err != nil {
				return err
			}
			if err := services.Employees.AssignRole(cmd.Context(), id, args[1]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.employees.role_assigned", id, model.RoleDisplayName(strings.ToUpper(args[1]))))
			return nil
		},
	}
}

func newEmployeeEmailCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "email <id> <address>",
		Short: "Change the e-mail of an employee and its login account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := requireRoute(fmt.Sprintf("/employees/edit/%d", id)); err != nil {
				return err
			}
			if err := services.Employees.UpdateEmail(cmd.Context(), id, strings.TrimSpace(args[1])); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.employees.email_updated", id))
			return nil
		},
	}
}

func newEmployeeRolesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roles",
		Short: "List the role catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRoute("/employees"); err != nil {
				return err
			}
			roles, err := services.Employees.LoadRoles(cmd.Context())
			if err != nil {
				return err
			}
			w := newTable(cmd)
			fmt.Fprintln(w, i18n.T("cli.roles.header"))
			for _, r := range roles {
				fmt.Fprintf(w, "%d\t%s\t%s\n", r.ID, r.Name, model.RoleDisplayName(r.Name))
			}
			return w.Flush()
		},
	}
}
