package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"kover.dev/pkg/kover/internal/domain"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [paths...]",
		Short: "Print composed declaration trees",
		Long:  viewLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.View(cmd.Context(), domain.ViewArgs{
				Paths:   parsePaths(args),
				Exclude: viper.GetStringSlice(excludeConfigKey),
				Threads: viper.GetInt(parallelConfigKey),
			})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
