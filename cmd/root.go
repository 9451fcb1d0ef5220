// Package cmd provides the root command and CLI setup for qmetrics.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"qmetrics.dev/pkg/qmetrics/internal/adapter"
	"qmetrics.dev/pkg/qmetrics/internal/controller"
	"qmetrics.dev/pkg/qmetrics/internal/domain"
)

var artifactReader adapter.ArtifactReader
var reportStore adapter.ReportStore
var workflow domain.Workflow
var ui controller.UI

// resultsDirFlag is a root-level flag shared by commands that read/write reports.
var resultsDirFlag string

// baseDirFlag is the project root that artifact paths are resolved against.
var baseDirFlag string

var verboseFlag bool
var logFileFlag string

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	artifactReader = adapter.NewLocalArtifactReader()
	reportStore = adapter.NewReportStore()
	workflow = domain.NewWorkflow(
		artifactReader,
		reportStore,
		ui,
	)
}

const rootLongDescription = `qmetrics collects the results of a multi-layer test run (unit, BDD, API
and UI), aggregates them into overall metrics, evaluates quality gates and
writes a Markdown report plus a JSON summary.

The process exits with status 1 when any quality gate does not pass.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "qmetrics",
		Short: "Test metrics and quality gate reporter",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

// newRootCmd builds a fresh root command with its persistent flags; used by tests.
func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&resultsDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"directory the report and summary are written to",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringVarP(&baseDirFlag, baseDirFlagName, "C", viper.GetString(baseDirFlagName), "project root that artifact paths are relative to")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(baseDirFlagName), baseDirFlagName)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "log file path")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)
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
