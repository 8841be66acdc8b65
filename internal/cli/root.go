package cli

import (
	"context"
	"fmt"

	"github.com/andy/clientms/internal/app"
	"github.com/spf13/cobra"
)

// AppFactory builds the application from a config file path
type AppFactory func(ctx context.Context, configPath string) (*app.App, error)

// RootOptions holds global flags and the lazily created app shared by all
// commands.
type RootOptions struct {
	ConfigPath string
	Verbose    bool

	// NewApp defaults to app.New; tests substitute a factory over a temp DB
	NewApp AppFactory

	app *app.App
}

// App returns the application, creating it on first use so that help and
// completion never touch the database or keyring.
func (o *RootOptions) App(cmd *cobra.Command) (*app.App, error) {
	if o.app != nil {
		return o.app, nil
	}

	factory := o.NewApp
	if factory == nil {
		factory = app.New
	}

	a, err := factory(cmd.Context(), o.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize app: %w", err)
	}
	o.app = a

	if o.Verbose && a.LastImport != nil {
		printImportResult(cmd.ErrOrStderr(), a.LastImport)
	}
	return a, nil
}

// Close releases the app if one was created
func (o *RootOptions) Close() error {
	if o.app == nil {
		return nil
	}
	err := o.app.Close()
	o.app = nil
	return err
}

// NewRootCommand creates the root command for the clientms CLI.
func NewRootCommand(opts *RootOptions) *cobra.Command {
	if opts == nil {
		opts = &RootOptions{}
	}

	cmd := &cobra.Command{
		Use:   "clientms",
		Short: "Manage client records",
		Long: `Clientms keeps a small encrypted database of client records: name,
address, postal code, phone number and client type (C commercial, R residential).

By default, running clientms without arguments launches the interactive TUI.
Use subcommands for CLI operations.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default behavior: launch TUI
			return launchTUI(cmd, opts)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return opts.Close()
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/clientms/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	cmd.AddCommand(NewClientsCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewResetCommand(opts))
	cmd.AddCommand(NewTUICommand(opts))

	return cmd
}

// Execute runs the root command with default options
func Execute() error {
	opts := &RootOptions{}
	defer opts.Close()
	return NewRootCommand(opts).Execute()
}
