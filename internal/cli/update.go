package cli

import (
	"github.com/spf13/cobra"

	"github.com/chime-experiment/mkchimeenv/internal/ui"
)

func init() {
	rootCmd.AddCommand(updateCmd)
}

var updateCmd = &cobra.Command{
	Use:   "update [path]",
	Short: "Update an existing CHIME pipeline environment",
	Long: `Update the repositories and packages of an existing environment.

Not implemented yet; recreate the environment with "create" instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ui.Warnf("Updating an environment is not implemented yet. Nothing to do.")
		return nil
	},
}
