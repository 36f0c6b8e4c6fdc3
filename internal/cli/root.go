// Package cli holds the photo-manifest command tree. The settings window is
// injected by the binary so the rest of the tree builds without a GUI toolkit.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree. With a non-nil runUI the bare command and
// the ui subcommand open the settings window.
func NewRootCmd(runUI func() error) *cobra.Command {
	root := &cobra.Command{
		Use:           "photo-manifest",
		Short:         "Configure and run the photo manifest builder",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runUI == nil {
				return cmd.Help()
			}
			return runUI()
		},
	}

	if runUI != nil {
		root.AddCommand(&cobra.Command{
			Use:   "ui",
			Short: "Open the settings window",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runUI()
			},
		})
	}
	root.AddCommand(newConfigCmd())
	root.AddCommand(newScanCmd())
	root.AddCommand(newServiceCmd())
	return root
}
