package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	m "qmetrics.dev/pkg/qmetrics/internal/model"
)

const (
	// ReportFileName is the Markdown report written to the results directory.
	ReportFileName = "METRICS-REPORT.md"
	// SummaryFileName is the machine-readable summary written next to the report.
	SummaryFileName = "metrics.json"
)

// ReportStore persists rendered reports and loads previously written summaries.
type ReportStore interface {
	// SaveReport writes the Markdown report and JSON summary into dir,
	// creating it when absent, and returns the written paths.
	SaveReport(ctx context.Context, dir m.Path, markdown []byte, summary m.Summary) ([]m.Path, error)

	// LoadSummary reads the JSON summary from dir.
	LoadSummary(ctx context.Context, dir m.Path) (m.Summary, error)
}

type reportStore struct{}

// NewReportStore creates a ReportStore backed by the local filesystem.
func NewReportStore() ReportStore {
	return &reportStore{}
}

func (rs *reportStore) SaveReport(ctx context.Context, dir m.Path, markdown []byte, summary m.Summary) ([]m.Path, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(string(dir), 0o755); err != nil {
		slog.ErrorContext(ctx, "Failed to create results dir", "dir", dir, "error", err)
		return nil, fmt.Errorf("create results dir: %w", err)
	}

	summaryData, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode summary: %w", err)
	}

	reportPath := filepath.Join(string(dir), ReportFileName)
	if err := os.WriteFile(reportPath, markdown, 0o644); err != nil {
		slog.ErrorContext(ctx, "Failed to write report", "path", reportPath, "error", err)
		return nil, fmt.Errorf("write report: %w", err)
	}

	summaryPath := filepath.Join(string(dir), SummaryFileName)
	if err := os.WriteFile(summaryPath, append(summaryData, '\n'), 0o644); err != nil {
		slog.ErrorContext(ctx, "Failed to write summary", "path", summaryPath, "error", err)
		return nil, fmt.Errorf("write summary: %w", err)
	}

	slog.InfoContext(ctx, "Saved metrics report", "report", reportPath, "summary", summaryPath)

	return []m.Path{m.Path(reportPath), m.Path(summaryPath)}, nil
}

func (rs *reportStore) LoadSummary(ctx context.Context, dir m.Path) (m.Summary, error) {
	if err := ctx.Err(); err != nil {
		return m.Summary{}, err
	}

	summaryPath := filepath.Join(string(dir), SummaryFileName)

	data, err := os.ReadFile(summaryPath)
	if err != nil {
		return m.Summary{}, fmt.Errorf("read summary: %w", err)
	}

	var summary m.Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		return m.Summary{}, fmt.Errorf("decode summary %s: %w", summaryPath, err)
	}

	return summary, nil
}
