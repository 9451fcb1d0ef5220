package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"qmetrics.dev/pkg/qmetrics/internal/domain"
	m "qmetrics.dev/pkg/qmetrics/internal/model"
	"qmetrics.dev/pkg/qmetrics/internal/report"
)

var viewFormatFlag string

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View the summary of a previous run",
		Long:  "View the metrics.json summary written by a previous generate run as a table, JSON or YAML.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := report.ParseFormat(viewFormatFlag)
			if err != nil {
				return err
			}

			resultsPath := m.Path(viper.GetString(outputFlagName))

			return workflow.View(cmd.Context(), domain.ViewArgs{Results: resultsPath, Format: format})
		},
	}

	cmd.Flags().StringVarP(&viewFormatFlag, formatFlagName, "f", string(report.FormatTable), "output format: table, json or yaml")

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
