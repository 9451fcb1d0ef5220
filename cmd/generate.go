package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"qmetrics.dev/pkg/qmetrics/internal/domain"
	m "qmetrics.dev/pkg/qmetrics/internal/model"
)

var minCoverageFlag float64
var minPassRateFlag float64

const generateLongDescription = `Read the test artifacts, evaluate the quality gates and write
METRICS-REPORT.md and metrics.json to the output directory.

Missing artifacts are treated as layers that did not run. The report is
always written; the command fails when any gate does not pass.`

// generateCmd represents the generate command.
var generateCmd = newGenerateCmd()

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "generate",
		Short:        "Generate the metrics report and evaluate quality gates",
		Long:         generateLongDescription,
		Args:         cobra.ExactArgs(0),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			thresholds, err := thresholdsFromConfig()
			if err != nil {
				return fmt.Errorf("invalid thresholds: %w", err)
			}

			_, err = workflow.Generate(cmd.Context(), domain.GenerateArgs{
				BaseDir:    m.Path(viper.GetString(baseDirFlagName)),
				Results:    m.Path(viper.GetString(outputFlagName)),
				Artifacts:  artifactPathsFromConfig(),
				Thresholds: thresholds,
			})

			return err
		},
	}

	configureGenerateFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func configureGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&minCoverageFlag, minCoverageFlagName, viper.GetFloat64(coverageThresholdKey), "minimum line coverage percentage")
	bindFlagToConfig(cmd.Flags().Lookup(minCoverageFlagName), coverageThresholdKey)

	cmd.Flags().Float64Var(&minPassRateFlag, minPassRateFlagName, viper.GetFloat64(passRateThresholdKey), "minimum pass rate percentage")
	bindFlagToConfig(cmd.Flags().Lookup(minPassRateFlagName), passRateThresholdKey)

	cmd.Flags().Duration(maxDurationFlagName, defaultDuration(), "maximum total test duration (e.g. 5m)")
	bindFlagToConfig(cmd.Flags().Lookup(maxDurationFlagName), maxDurationThresholdKey)

	for _, kind := range m.AllArtifactKinds {
		name := artifactFlagName(kind)

		cmd.Flags().String(name, viper.GetString(artifactKey(kind)), fmt.Sprintf("path of the %s artifact", name))
		bindFlagToConfig(cmd.Flags().Lookup(name), artifactKey(kind))
	}
}
