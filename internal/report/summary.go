package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	m "qmetrics.dev/pkg/qmetrics/internal/model"
)

// Format selects how a summary is presented.
type Format string

// Supported summary formats.
const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unsupported format %q (want table, json or yaml)", s)
	}
}

// NewSummary builds the machine-readable summary from the same input as the
// Markdown report.
func NewSummary(in Input) m.Summary {
	layers := make(map[m.Layer]m.LayerSummary, len(in.Results))

	for _, layer := range m.AllLayers {
		result, ok := in.Results[layer]
		if !ok {
			continue
		}

		layers[layer] = m.LayerSummary{
			Passed:     result.Counts.Passed,
			Failed:     result.Counts.Failed,
			Total:      result.Counts.Total,
			DurationMs: m.Milliseconds(result.Duration),
			Coverage:   result.Coverage,
			Defects:    len(result.Defects),
		}
	}

	defects := in.Metrics.DefectList
	if defects == nil {
		defects = []m.Defect{}
	}

	return m.Summary{
		Timestamp:       in.Timestamp.UTC(),
		TotalTests:      in.Metrics.TotalTests,
		PassedTests:     in.Metrics.PassedTests,
		FailedTests:     in.Metrics.FailedTests,
		PassRate:        in.Metrics.PassRate,
		Coverage:        in.Metrics.Coverage,
		TotalDurationMs: m.Milliseconds(in.Metrics.TotalDuration),
		Defects:         in.Metrics.Defects,
		Status:          in.Gates,
		Thresholds: m.SummaryThresholds{
			Coverage:      in.Thresholds.Coverage,
			PassRate:      in.Thresholds.PassRate,
			MaxDurationMs: m.Milliseconds(in.Thresholds.MaxDuration),
		},
		Layers:     layers,
		DefectList: defects,
	}
}

// EncodeSummary writes the summary as indented JSON or YAML.
func EncodeSummary(w io.Writer, summary m.Summary, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		if err := enc.Encode(summary); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}

		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(summary); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}

		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("encode summary: unsupported format %q", format)
	}
}
