package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewResetCommand creates the reset command
func NewResetCommand(opts *RootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete ALL clients",
		Long: `Delete every client record. Ids are not reused afterwards.

Examples:
  clientms reset        # asks for confirmation
  clientms reset --yes  # no prompt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !yes && !confirmPrompt(cmd.InOrStdin(), out, "This will delete ALL clients. Continue?") {
				fmt.Fprintln(out, "Cancelled.")
				return nil
			}

			a, err := opts.App(cmd)
			if err != nil {
				return err
			}

			n, err := a.ClientRepo.DeleteAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to clear clients: %w", err)
			}

			fmt.Fprintf(out, "All clients have been deleted (%d removed).\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
