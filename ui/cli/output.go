package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/toeirei/panaderia/internal/core"
	"github.com/toeirei/panaderia/internal/i18n"
	"golang.org/x/term"
)

// newTable returns the writer every list command prints through.
func newTable(cmd *cobra.Command) *tabwriter.Writer {
	return tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
}

// requireRoute runs the screen guard of path for the signed-in user, so the
// CLI refuses what the TUI would refuse.
func requireRoute(path string) error {
	d := core.Guard(services.Session, path)
	if d.Allowed {
		return nil
	}
	if d.Redirect == core.RouteLogin {
		return fmt.Errorf("%s: %w", i18n.T("cli.login_required"), core.ErrNotAuthenticated)
	}
	return fmt.Errorf("%s: %w", i18n.T("access.denied"), core.ErrForbidden)
}

// parseID reads a positive numeric id argument.
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(arg, "#"))
	if err != nil || id <= 0 {
		return 0, errors.New(i18n.T("cli.invalid_id", arg))
	}
	return id, nil
}

// parseIDs reads a comma separated list of ids. Repeats are kept.
func parseIDs(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := parseID(part)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

// readSecret prompts for a secret. On a terminal the input is not echoed;
// otherwise one line is read from the command's input.
func readSecret(cmd *cobra.Command, prompt string) ([]byte, error) {
	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		return b, err
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}

// dash renders empty values as "-".
func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
