package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const forceFlagName = "force"

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a kover.yaml holding the current defaults",
		Long: `Write a kover.yaml into dir (default: the working directory) with the
compose, path and log settings currently in effect, so it can be edited by hand.
An existing file is kept unless --force is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := configFolderPath
			if len(args) == 1 {
				dir = args[0]
			}

			target := filepath.Join(dir, configFileName)

			write := viper.SafeWriteConfigAs
			if force {
				write = viper.WriteConfigAs
			}

			if err := write(target); err != nil {
				slog.Error("Failed to write config", "path", target, "error", err)
				return fmt.Errorf("write config %s: %w", target, err)
			}

			cmd.Printf("Wrote %s\n", target)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, forceFlagName, "f", false, "overwrite an existing "+configFileName)

	return cmd
}

func init() {
	rootCmd.AddCommand(initCmd)
}
