package cmd

import (
	"runtime/debug"

	"github.com/spf13/cobra"

	"kover.dev/pkg/kover/internal/adapter"
)

const unknownVersion = "(devel)"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print kover, Go and config format versions",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			version, goVersion := unknownVersion, "unknown"

			if info, ok := debug.ReadBuildInfo(); ok {
				goVersion = info.GoVersion
				if info.Main.Version != "" {
					version = info.Main.Version
				}
			}

			cmd.Printf("kover\t%s\n", version)
			cmd.Printf("go\t%s\n", goVersion)
			cmd.Printf("config\tv%d (%s)\n", currentConfigVersion, configFileName)
			cmd.Printf("output\t%s\n", adapter.StructureFileName)
		},
	}
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
