package cli

import (
	"github.com/andy/clientms/internal/tui"
	"github.com/spf13/cobra"
)

// NewTUICommand creates the tui command
func NewTUICommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch the terminal UI",
		Long:  `Launch the interactive terminal user interface for clientms.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return launchTUI(cmd, opts)
		},
	}
}

func launchTUI(cmd *cobra.Command, opts *RootOptions) error {
	a, err := opts.App(cmd)
	if err != nil {
		return err
	}
	return tui.Run(a)
}
