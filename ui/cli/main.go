// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the command-line interface of the console using the Cobra
// library. It defines the root command, the persistent flags, the service
// wiring shared by every subcommand and the main entry point for execution.

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/toeirei/panaderia/buildvars"
	"github.com/toeirei/panaderia/internal/config"
	"github.com/toeirei/panaderia/internal/core"
	"github.com/toeirei/panaderia/internal/db"
	"github.com/toeirei/panaderia/internal/i18n"
	"github.com/toeirei/panaderia/internal/logging"
	"github.com/toeirei/panaderia/internal/tui"
)

var version = "dev"   // this will be set by the linker
var gitCommit = "dev" // set at build time with the short commit SHA
var buildDate = ""    // set at build time (RFC3339)
var cfgFile string
var verbose bool
var showVersionFlag bool

var appConfig config.Config

// services is built by setupDefaultServices and shared by the subcommands
// of one invocation.
var services *core.Services

// ownStore is set when setupDefaultServices opened the store itself and
// shutdown must close it.
var ownStore bool

// nowFunc is the clock handed to the services. Tests pin it.
var nowFunc = time.Now

// skipSetup marks commands that run without config, store or backend.
const skipSetup = "skip-setup"

func setupDefaultServices(cmd *cobra.Command, args []string) error {
	optionalConfigPath, err := getConfigPathFromCli(cmd)
	if err != nil {
		return err
	}

	defaults := config.Defaults()
	appConfig, err = config.LoadConfig[config.Config](cmd, defaults, optionalConfigPath)
	// A "file not found" error is expected on first run.
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		if writeErr := config.WriteConfigFile(&appConfig, false); writeErr != nil {
			// The console runs fine on defaults.
			logging.Warnf("could not write default config file: %v", writeErr)
		} else {
			logging.Infof("wrote default config to user config path")
		}
	} else if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	// Empty values in the file fall back to the built-in defaults.
	if appConfig.Database.Type == "" {
		appConfig.Database.Type = defaults["database.type"].(string)
	}
	if appConfig.Database.Dsn == "" {
		appConfig.Database.Dsn = defaults["database.dsn"].(string)
	}
	if appConfig.Language == "" {
		appConfig.Language = defaults["language"].(string)
	}

	logging.Configure(appConfig.Log.Level)
	if verbose {
		logging.SetDebug(true)
		db.SetDebug(true)
	}
	i18n.Init(appConfig.Language)

	// Tests inject a store before running a command.
	store := db.Default()
	if store == nil {
		if appConfig.Database.Type == "sqlite" {
			ensureParentDir(appConfig.Database.Dsn)
		}
		store, err = db.New(appConfig.Database.Type, appConfig.Database.Dsn)
		if err != nil {
			return errors.New(i18n.T("config.error_init_db", err))
		}
		ownStore = true
	}

	svc, err := core.NewServices(appConfig.API, store)
	if err != nil {
		return err
	}
	svc.SetClock(nowFunc)
	if err := svc.Start(cmd.Context()); err != nil {
		logging.Warnf("could not restore session: %v", err)
	}
	services = svc
	return nil
}

// ensureParentDir creates the directory of a file DSN so sqlite can create
// the database on first run.
func ensureParentDir(dsn string) {
	if strings.HasPrefix(dsn, "file:") || strings.Contains(dsn, ":memory:") {
		return
	}
	if dir := filepath.Dir(dsn); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logging.Warnf("could not create %s: %v", dir, err)
		}
	}
}

// shutdown releases what setupDefaultServices opened.
func shutdown() {
	if services != nil && ownStore {
		if err := services.Close(); err != nil {
			logging.Warnf("closing store: %v", err)
		}
		db.SetDefault(nil)
	}
	services = nil
	ownStore = false
}

// Execute runs the CLI entrypoint. The main package calls this function and
// handles the process exit.
func Execute() error {
	rootCmd := NewRootCmd()
	defer shutdown()

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, i18n.T("cli.error", err))
		return err
	}
	return nil
}

func getConfigPathFromCli(cmd *cobra.Command) (*string, error) {
	// Only proceed if the user has explicitly set the --config flag.
	if cmd.Flags().Changed("config") {
		path, err := cmd.Flags().GetString("config")
		if err != nil {
			return nil, fmt.Errorf("could not read --config flag: %w", err)
		}
		if path == "" {
			return nil, nil
		}
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
		}
		return &path, nil
	}
	return nil, nil
}

// saveLanguage persists the language picked in the TUI.
func saveLanguage(lang string) error {
	appConfig.Language = lang
	if used := cfgFile; used != "" {
		return config.WriteConfigFileTo(&appConfig, used)
	}
	return config.WriteConfigFile(&appConfig, false)
}

func compositeVersion() string {
	v, c, d := resolveBuildVersion(nil)
	out := v
	if c != "" && c != "dev" {
		out += " (" + c + ")"
	}
	if d != "" {
		out += " built: " + d
	}
	return out
}

// NewRootCmd creates and configures a new root cobra command. Tests call it
// once per invocation to get a fresh command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "panaderia",
		Short: "Back-office console for the bakery: customers, orders, products and staff.",
		Long: `Panadería Admin talks to the bakery REST backend and manages customers,
employees, products and orders. It keeps the signed-in session and a few
preferences in a small local database.

Running without a subcommand will launch the interactive TUI.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if showVersionFlag {
				fmt.Fprintln(cmd.OutOrStdout(), compositeVersion())
				os.Exit(0)
			}
			if cmd.Annotations[skipSetup] == "true" {
				return nil
			}
			return setupDefaultServices(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(services, tui.Options{
				ReportDir:    ".",
				SaveLanguage: saveLanguage,
				LogFile:      appConfig.Log.File,
			})
		},
	}
	cmd.Version = compositeVersion()

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output (debug logs, SQL tracing)")
	cmd.PersistentFlags().BoolVarP(&showVersionFlag, "version", "V", false, "Print version and exit")
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
	cmd.PersistentFlags().String("language", "", `Console language ("es", "en")`)
	cmd.PersistentFlags().String("api.base_url", "", "Base URL of the bakery backend")
	cmd.PersistentFlags().String("database.type", "", "Local database type (sqlite, postgres, mysql)")
	cmd.PersistentFlags().String("database.dsn", "", "Local database connection string (DSN)")

	versionCmd := &cobra.Command{
		Use:         "version",
		Short:       "Print version",
		Annotations: map[string]string{skipSetup: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			v, c, d := resolveBuildVersion(nil)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "version: %s\n", v)
			fmt.Fprintf(out, "commit: %s\n", c)
			if d != "" {
				fmt.Fprintf(out, "built: %s\n", d)
			}
		},
	}

	cmd.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newRegisterCmd(),
		newCustomerCmd(),
		newEmployeeCmd(),
		newProductCmd(),
		newOrderCmd(),
		newDashboardCmd(),
		newNotificationsCmd(),
		newReportCmd(),
		newDBCmd(),
		versionCmd,
	)
	return cmd
}

// resolveBuildVersion computes the best-available version, commit and build
// date for the running binary. If info is nil, it reads build info from the
// runtime.
func resolveBuildVersion(info *debug.BuildInfo) (versionOut, commitOut, dateOut string) {
	resolvedVersion := buildvars.VersionOrDefault(version)
	resolvedCommit := gitCommit
	resolvedDate := buildDate

	if info == nil {
		if local, found := debug.ReadBuildInfo(); found {
			info = local
		}
	}

	if info != nil {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			resolvedVersion = info.Main.Version
		}
		// Some build paths only record the module as a dependency.
		if resolvedVersion == "dev" || resolvedVersion == "(devel)" {
			for _, dep := range info.Deps {
				if dep.Path == "github.com/toeirei/panaderia" && dep.Version != "" {
					resolvedVersion = dep.Version
					break
				}
			}
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if s.Value != "" {
					resolvedCommit = s.Value
				}
			case "vcs.time":
				if s.Value != "" {
					resolvedDate = s.Value
				}
			}
		}
	}

	if resolvedVersion == "dev" && gitCommit != "dev" && gitCommit != "" {
		resolvedVersion = gitCommit
	}
	return resolvedVersion, resolvedCommit, resolvedDate
}
