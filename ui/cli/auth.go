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
	"github.com/toeirei/panaderia/internal/state"
	"github.com/toeirei/panaderia/util/slicest"
)

// newLoginCmd signs in and stores the session for later commands.
func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <username>",
		Short: "Sign in to the bakery backend",
		Long: `Asks for the password and signs in. The session is kept in the local
database until it expires, the backend rejects it or 'logout' is run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readSecret(cmd, i18n.T("cli.password_prompt"))
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			state.PasswordCache.Set(password)
			clear(password)
			u, err := services.Login(cmd.Context(), args[0], state.PasswordCache.Take())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.login_ok", core.DisplayUserName(u.Username), rolesText(u.Roles)))
			return nil
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("login.signed_out"))
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u := services.Session.Current()
			if u == nil {
				return fmt.Errorf("%s: %w", i18n.T("cli.login_required"), core.ErrNotAuthenticated)
			}
			w := newTable(cmd)
			fmt.Fprintf(w, "%s\t%s\n", i18n.T("cli.user"), u.Username)
			fmt.Fprintf(w, "%s\t%s\n", i18n.T("cli.roles"), rolesText(u.Roles))
			return w.Flush()
		},
	}
}

// newRegisterCmd creates a backend account. It does not sign in.
func newRegisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Create a backend account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, err := readSecret(cmd, i18n.T("cli.password_prompt"))
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			resp, err := services.Register(cmd.Context(), model.RegisterRequest{
				Email:    email,
				Username: args[0],
				Password: string(password),
			})
			if err != nil {
				return err
			}
			msg := resp.Message
			if msg == "" {
				msg = i18n.T("cli.registered", resp.Username)
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
	cmd.Flags().String("email", "", "E-mail address of the new account")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

// rolesText renders backend role names the way the dashboard shows them.
func rolesText(roles []string) string {
	return strings.Join(slicest.Map(roles, func(r string) string {
		return model.RoleDisplayName(strings.TrimPrefix(r, "ROLE_"))
	}), ", ")
}
