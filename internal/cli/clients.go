package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/andy/clientms/internal/domain"
	"github.com/spf13/cobra"
)

// clientFlags binds the per-field flags shared by add and edit
type clientFlags struct {
	first   string
	last    string
	address string
	postal  string
	phone   string
	kind    string
}

func (f *clientFlags) register(cmd *cobra.Command, verb string) {
	cmd.Flags().StringVar(&f.first, "first", "", verb+" first name")
	cmd.Flags().StringVar(&f.last, "last", "", verb+" last name")
	cmd.Flags().StringVar(&f.address, "address", "", verb+" street address")
	cmd.Flags().StringVar(&f.postal, "postal", "", verb+" postal code (e.g. T2N 1N4)")
	cmd.Flags().StringVar(&f.phone, "phone", "", verb+" phone number (e.g. 403-555-0199)")
	cmd.Flags().StringVar(&f.kind, "type", "", verb+" client type: C (commercial) or R (residential)")
}

// apply copies only the flags the user set onto client
func (f *clientFlags) apply(cmd *cobra.Command, client *domain.Client) {
	set := func(name string, dst *string, v string) {
		if cmd.Flags().Changed(name) {
			*dst = v
		}
	}
	set("first", &client.FirstName, f.first)
	set("last", &client.LastName, f.last)
	set("address", &client.Address, f.address)
	set("postal", &client.PostalCode, f.postal)
	set("phone", &client.PhoneNumber, f.phone)
	if cmd.Flags().Changed("type") {
		client.Type = domain.ClientType(f.kind)
	}
}

// NewClientsCommand creates the clients command group
func NewClientsCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clients",
		Short: "Manage clients",
		Long:  `List, search, add, edit, and delete client records.`,
	}

	cmd.AddCommand(newClientsListCommand(opts))
	cmd.AddCommand(newClientsSearchCommand(opts))
	cmd.AddCommand(newClientsShowCommand(opts))
	cmd.AddCommand(newClientsAddCommand(opts))
	cmd.AddCommand(newClientsEditCommand(opts))
	cmd.AddCommand(newClientsDeleteCommand(opts))

	return cmd
}

func newClientsListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all clients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.App(cmd)
			if err != nil {
				return err
			}

			clients, err := a.ClientRepo.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list clients: %w", err)
			}

			writeClientTable(cmd.OutOrStdout(), clients)
			return nil
		},
	}
}

func newClientsSearchCommand(opts *RootOptions) *cobra.Command {
	var by string

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search clients by id, last name, or client type",
		Example: `  clientms clients search --by lastName Ahmed
  clientms clients search --by clientType C
  clientms clients search --by id 12`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := domain.ParseSearchField(by)
			if err != nil {
				return err
			}

			a, err := opts.App(cmd)
			if err != nil {
				return err
			}

			clients, err := a.SearchService.Search(cmd.Context(), field, args[0])
			if err != nil {
				return err
			}

			writeClientTable(cmd.OutOrStdout(), clients)
			return nil
		},
	}

	cmd.Flags().StringVar(&by, "by", domain.SearchByLastName.String(), "field to search: id, lastName, or clientType")
	return cmd
}

func newClientsShowCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show every field of a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseClientID(args[0])
			if err != nil {
				return err
			}

			a, err := opts.App(cmd)
			if err != nil {
				return err
			}

			client, err := a.ClientRepo.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}

			writeClientDetail(cmd.OutOrStdout(), client)
			return nil
		},
	}
}

func newClientsAddCommand(opts *RootOptions) *cobra.Command {
	var f clientFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new client",
		Example: `  clientms clients add --first Karim --last Ahmed --address "123 Main Street NW" \
    --postal "T2N 1N4" --phone 403-555-0199 --type R`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.App(cmd)
			if err != nil {
				return err
			}

			client := domain.NewClient(f.first, f.last, f.address, f.postal, f.phone, f.kind)
			id, err := a.ClientRepo.Create(cmd.Context(), client)
			if err != nil {
				return clientError("invalid client", "failed to create client", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Client added (ID: %d)\n", id)
			return nil
		},
	}

	f.register(cmd, "Client")
	return cmd
}

func newClientsEditCommand(opts *RootOptions) *cobra.Command {
	var f clientFlags

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit an existing client",
		Long:  `Edit an existing client. Only the fields given as flags are changed.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseClientID(args[0])
			if err != nil {
				return err
			}

			a, err := opts.App(cmd)
			if err != nil {
				return err
			}

			client, err := a.ClientRepo.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}

			f.apply(cmd, client)

			if err := a.ClientRepo.Update(cmd.Context(), id, client); err != nil {
				return clientError("invalid client", "failed to update client", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Client updated (ID: %d)\n", id)
			return nil
		},
	}

	f.register(cmd, "New")
	return cmd
}

func newClientsDeleteCommand(opts *RootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseClientID(args[0])
			if err != nil {
				return err
			}

			a, err := opts.App(cmd)
			if err != nil {
				return err
			}

			client, err := a.ClientRepo.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !yes && !confirmPrompt(cmd.InOrStdin(), out, fmt.Sprintf("Delete client %s?", client)) {
				fmt.Fprintln(out, "Cancelled.")
				return nil
			}

			if err := a.ClientRepo.Delete(cmd.Context(), id); err != nil {
				return fmt.Errorf("failed to delete client: %w", err)
			}

			fmt.Fprintf(out, "✓ Client deleted (ID: %d)\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// parseClientID accepts the same ids the search box does
func parseClientID(s string) (int64, error) {
	if err := domain.ValidateSearchID(s); err != nil {
		return 0, fmt.Errorf("invalid client ID: %w", err)
	}
	return strconv.ParseInt(s, 10, 64)
}

// clientError labels validation failures separately from storage failures
func clientError(invalid, failed string, err error) error {
	switch {
	case domain.IsValidationError(err):
		return fmt.Errorf("%s: %w", invalid, err)
	case errors.Is(err, domain.ErrClientNotFound):
		return err
	default:
		return fmt.Errorf("%s: %w", failed, err)
	}
}

func confirmPrompt(in io.Reader, out io.Writer, message string) bool {
	fmt.Fprintf(out, "%s [y/N] ", message)
	reader := bufio.NewReader(in)
	input, err := reader.ReadString('\n')
	if err != nil && input == "" {
		return false
	}
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}
