// Package cmd provides the root command and CLI setup for kover.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"kover.dev/pkg/kover/internal/adapter"
	"kover.dev/pkg/kover/internal/controller"
	"kover.dev/pkg/kover/internal/domain"
	m "kover.dev/pkg/kover/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var recordSource adapter.RecordSource
var structureStore adapter.StructureStore
var composer domain.Composer
var workflow domain.Workflow
var ui controller.UI

// outputFlag is a root-level flag naming where composed structures are written.
var outputFlag string

// excludePatterns is a root-level flag that filters record files for every command.
var excludePatterns []string

var parallelFlag int

var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	recordSource = adapter.NewLocalRecordSource(fsAdapter)
	structureStore = adapter.NewYAMLStructureStore(fsAdapter)
	composer = domain.NewComposer()
	workflow = domain.NewWorkflow(recordSource, structureStore, ui, composer)
}

const pathPatternsHelp = `Supports Go-style path patterns for record files (.yaml, .yml, .json):
  - ./...              recursively scan current directory
  - ./build/kover/...  recursively scan a directory
  - a.yaml b.yaml      read individual files`

const rootLongDescription = `Kover rebuilds the source-level declarations of Kotlin files (classes,
functions, lambdas, local and anonymous classes, default-argument wrappers)
from the flat per-method records a class-file reader writes.

` + pathPatternsHelp

const composeLongDescription = `Compose record files into a structure document (default: current directory).

` + pathPatternsHelp

const listLongDescription = `List composed files and their declaration counts.

` + pathPatternsHelp

const viewLongDescription = `Print the composed declaration tree of every file.

` + pathPatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "kover",
		Short:         "Kotlin declaration tree composer",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&outputFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory or .yaml file for the structure document (- prints it)",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude record files matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().IntVarP(&parallelFlag, parallelFlagName, "p", viper.GetInt(parallelConfigKey), "number of files composed in parallel")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(parallelFlagName), parallelConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	if len(args) == 0 {
		return []m.Path{defaultRecordPath}
	}

	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
