package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "qmetrics.dev/pkg/qmetrics/internal/model"
	"qmetrics.dev/pkg/qmetrics/internal/report"
)

// SimpleUI implements UI using cobra Command's output writer.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayArtifacts prints one line per configured artifact.
func (s *SimpleUI) DisplayArtifacts(ctx context.Context, artifacts []m.ArtifactStatus) {
	if err := ctx.Err(); err != nil {
		return
	}

	for _, artifact := range artifacts {
		s.printf("%-10s %-9s %s\n", artifact.Kind, foundLabel(artifact.Found), artifact.Path)
	}

	s.printf("\n")
}

// DisplaySummary prints the summary in the requested format.
func (s *SimpleUI) DisplaySummary(ctx context.Context, summary m.Summary, format report.Format) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if format != report.FormatTable {
		return report.EncodeSummary(s.cmd.OutOrStdout(), summary, format)
	}

	s.printf("%s", renderSummaryTables(summary))

	return nil
}

// BrowseSummary prints the summary; plain output is never paged.
func (s *SimpleUI) BrowseSummary(ctx context.Context, summary m.Summary, format report.Format) error {
	return s.DisplaySummary(ctx, summary, format)
}

// DisplayReportPaths prints the written report files.
func (s *SimpleUI) DisplayReportPaths(ctx context.Context, paths []m.Path) {
	if err := ctx.Err(); err != nil {
		return
	}

	for _, path := range paths {
		s.printf("Wrote %s\n", path)
	}
}

func renderSummaryTables(summary m.Summary) string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Tests: %d passed, %d failed, %d total (%s)\n",
		summary.PassedTests, summary.FailedTests, summary.TotalTests, percent(summary.PassRate))
	fmt.Fprintf(&buf, "Status: %s (health %d/100)\n\n", strings.ToUpper(string(summary.Status.Overall)), summary.Status.Health)

	layers := layerRows(summary)
	if len(layers) > 0 {
		table := newPlainTable(&buf)
		table.SetHeader([]string{"Layer", "Passed", "Failed", "Total", "Duration", "Coverage", "Defects"})
		table.AppendBulk(layers)
		table.SetFooter([]string{
			"Total",
			fmt.Sprintf("%d", summary.PassedTests),
			fmt.Sprintf("%d", summary.FailedTests),
			fmt.Sprintf("%d", summary.TotalTests),
			seconds(summary.TotalDurationMs),
			percent(summary.Coverage),
			fmt.Sprintf("%d", summary.Defects.Total),
		})
		table.Render()
		buf.WriteString("\n")
	} else {
		buf.WriteString("No test layers were run.\n\n")
	}

	table := newPlainTable(&buf)
	table.SetHeader([]string{"Gate", "Actual", "Threshold", "Verdict"})
	table.AppendBulk(gateRows(summary))
	table.Render()

	return buf.String()
}

func newPlainTable(buf *bytes.Buffer) *tablewriter.Table {
	table := tablewriter.NewWriter(buf)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	return table
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
