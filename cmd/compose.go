package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"kover.dev/pkg/kover/internal/domain"
	m "kover.dev/pkg/kover/internal/model"
)

var goldenFlag string
var failFastFlag bool

// composeCmd represents the compose command.
var composeCmd = newComposeCmd()

func newComposeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compose [paths...]",
		Short: "Compose record files into a structure document",
		Long:  composeLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Compose(cmd.Context(), domain.ComposeArgs{
				Paths:    parsePaths(args),
				Exclude:  viper.GetStringSlice(excludeConfigKey),
				Output:   m.Path(viper.GetString(outputFlagName)),
				Golden:   m.Path(goldenFlag),
				Threads:  viper.GetInt(parallelConfigKey),
				FailFast: viper.GetBool(failFastConfigKey),
			})
		},
	}

	configureComposeFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(composeCmd)
}

func configureComposeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&goldenFlag, goldenFlagName, "", "compare the composed document with this file and fail with a diff")
	cmd.Flags().BoolVar(&failFastFlag, failFastFlagName, viper.GetBool(failFastConfigKey), "stop at the first file that fails to compose")
	bindFlagToConfig(cmd.Flags().Lookup(failFastFlagName), failFastConfigKey)
}
