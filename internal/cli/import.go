package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewImportCommand creates the import command
func NewImportCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import [FILE]",
		Short: "Import clients from a ;-delimited seed file",
		Long: `Import clients from a seed file with one client per line:

  firstName;lastName;address;postalCode;phoneNumber;clientType

The import only runs when the client table is empty. Lines that are
malformed or fail validation are skipped and counted. FILE defaults to
the configured seed file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.App(cmd)
			if err != nil {
				return err
			}

			path := a.Config.Import.SeedFile
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return fmt.Errorf("no seed file given and none configured")
			}

			result, err := a.ImportService.Bootstrap(cmd.Context(), path)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}

			printImportResult(cmd.OutOrStdout(), result)
			return nil
		},
	}
}
