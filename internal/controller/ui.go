// Package controller provides output adapters for displaying metrics runs and summaries.
package controller

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "qmetrics.dev/pkg/qmetrics/internal/model"
	"qmetrics.dev/pkg/qmetrics/internal/report"
)

// UI defines the interface for presenting a metrics run.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	// DisplayArtifacts lists which configured artifacts were found.
	DisplayArtifacts(ctx context.Context, artifacts []m.ArtifactStatus)
	// DisplaySummary prints a summary as a table, JSON or YAML.
	DisplaySummary(ctx context.Context, summary m.Summary, format report.Format) error
	// BrowseSummary shows a summary for reading. Interactive UIs may page it.
	BrowseSummary(ctx context.Context, summary m.Summary, format report.Format) error
	// DisplayReportPaths lists the files written by the run.
	DisplayReportPaths(ctx context.Context, paths []m.Path)
}

// NewUI picks the interactive TUI when stdout is a terminal.
func NewUI(cmd *cobra.Command, isTTY bool) UI {
	if isTTY {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

func foundLabel(found bool) string {
	if found {
		return "found"
	}

	return "not found"
}

func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

func seconds(ms float64) string {
	return fmt.Sprintf("%.2fs", ms/1000)
}

// layerRows returns one row per layer present in the summary, in layer order.
func layerRows(summary m.Summary) [][]string {
	rows := make([][]string, 0, len(summary.Layers))

	for _, layer := range m.AllLayers {
		ls, ok := summary.Layers[layer]
		if !ok {
			continue
		}

		coverage := "-"
		if ls.Coverage != nil {
			coverage = percent(*ls.Coverage)
		}

		rows = append(rows, []string{
			layer.Label(),
			fmt.Sprintf("%d", ls.Passed),
			fmt.Sprintf("%d", ls.Failed),
			fmt.Sprintf("%d", ls.Total),
			seconds(ls.DurationMs),
			coverage,
			fmt.Sprintf("%d", ls.Defects),
		})
	}

	return rows
}

// gateRows pairs each gate with its actual value and verdict.
func gateRows(summary m.Summary) [][]string {
	return [][]string{
		{"Coverage", percent(summary.Coverage), "≥" + percent(summary.Thresholds.Coverage), string(summary.Status.Coverage)},
		{"Pass rate", percent(summary.PassRate), "≥" + percent(summary.Thresholds.PassRate), string(summary.Status.PassRate)},
		{"Duration", seconds(summary.TotalDurationMs), "≤" + seconds(summary.Thresholds.MaxDurationMs), string(summary.Status.Duration)},
		{"Defects", fmt.Sprintf("%d (%d critical)", summary.Defects.Total, summary.Defects.Critical), "0 critical", string(summary.Status.Defects)},
	}
}
