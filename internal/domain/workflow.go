// Package domain contains the metrics pipeline: aggregation, quality gates
// and the workflow that ties artifacts, parsers and reports together.
package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"qmetrics.dev/pkg/qmetrics/internal/adapter"
	"qmetrics.dev/pkg/qmetrics/internal/controller"
	"qmetrics.dev/pkg/qmetrics/internal/domain/parsers"
	m "qmetrics.dev/pkg/qmetrics/internal/model"
	"qmetrics.dev/pkg/qmetrics/internal/report"
	"qmetrics.dev/pkg/qmetrics/internal/schema"
)

// ErrQualityGateFailed is returned by Generate, after the report has been
// written, when the overall verdict is not pass.
var ErrQualityGateFailed = errors.New("quality gate failed")

// GenerateArgs contains the arguments for generating a metrics report.
type GenerateArgs struct {
	// BaseDir is the project root that relative artifact paths start from.
	BaseDir    m.Path
	Results    m.Path
	Artifacts  m.ArtifactPaths
	Thresholds m.Thresholds
}

// ViewArgs contains the arguments for displaying a stored summary.
type ViewArgs struct {
	Results m.Path
	Format  report.Format
}

// Workflow runs the metrics pipeline.
type Workflow interface {
	Generate(ctx context.Context, args GenerateArgs) (m.GateResult, error)
	View(ctx context.Context, args ViewArgs) error
}

// Option configures a Workflow.
type Option func(*workflow)

// WithClock overrides the report timestamp source.
func WithClock(now func() time.Time) Option {
	return func(w *workflow) {
		w.now = now
	}
}

type workflow struct {
	adapter.ArtifactReader
	adapter.ReportStore
	controller.UI

	now func() time.Time
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	reader adapter.ArtifactReader,
	store adapter.ReportStore,
	ui controller.UI,
	opts ...Option,
) Workflow {
	w := &workflow{
		ArtifactReader: reader,
		ReportStore:    store,
		UI:             ui,
		now:            time.Now,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Generate reads every configured artifact, evaluates the quality gates and
// writes the report. Missing or malformed artifacts only exclude their layer.
func (w *workflow) Generate(ctx context.Context, args GenerateArgs) (m.GateResult, error) {
	if err := ctx.Err(); err != nil {
		return m.GateResult{}, err
	}

	results, artifacts := w.collectResults(ctx, args.Artifacts.Under(args.BaseDir))
	w.DisplayArtifacts(ctx, artifacts)

	metrics := Aggregate(results)
	gates := EvaluateGates(metrics, args.Thresholds)

	slog.InfoContext(ctx, "Evaluated quality gates",
		"layers", len(results),
		"tests", metrics.TotalTests,
		"passRate", metrics.PassRate,
		"coverage", metrics.Coverage,
		"defects", metrics.Defects.Total,
		"overall", gates.Overall,
		"health", gates.Health,
	)

	if err := ctx.Err(); err != nil {
		return gates, err
	}

	input := report.Input{
		Timestamp:  w.now(),
		Results:    results,
		Metrics:    metrics,
		Gates:      gates,
		Thresholds: args.Thresholds,
		Artifacts:  artifacts,
	}
	summary := report.NewSummary(input)

	paths, err := w.SaveReport(ctx, args.Results, report.RenderMarkdown(report.Build(input)), summary)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to save report", "dir", args.Results, "error", err)
		return gates, fmt.Errorf("save report: %w", err)
	}

	if err := w.DisplaySummary(ctx, summary, report.FormatTable); err != nil {
		slog.ErrorContext(ctx, "Failed to display summary", "error", err)
		return gates, fmt.Errorf("display: %w", err)
	}

	w.DisplayReportPaths(ctx, paths)

	if !gates.Passed() {
		return gates, fmt.Errorf("%w: health %d/100", ErrQualityGateFailed, gates.Health)
	}

	return gates, nil
}

// View loads the summary written by a previous Generate and displays it.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	summary, err := w.LoadSummary(ctx, args.Results)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to load summary", "dir", args.Results, "error", err)
		return fmt.Errorf("load summary: %w", err)
	}

	if err := w.BrowseSummary(ctx, summary, args.Format); err != nil {
		slog.ErrorContext(ctx, "Failed to display summary", "error", err)
		return fmt.Errorf("display: %w", err)
	}

	return nil
}

// collectResults reads and parses each layer's artifacts. A layer is
// present in the returned results only when its parser found input.
func (w *workflow) collectResults(ctx context.Context, paths m.ArtifactPaths) (m.Results, []m.ArtifactStatus) {
	found := make(map[m.ArtifactKind]bool, len(m.AllArtifactKinds))
	readText := func(kind m.ArtifactKind) string {
		content, ok := w.ReadText(ctx, paths[kind])
		found[kind] = ok

		return content
	}

	results := m.Results{}
	addLayer := func(result m.LayerResult, ok bool) {
		if ok {
			results[result.Layer] = result
		}
	}

	addLayer(parsers.ParseUnit(readText(m.ArtifactUnit), readText(m.ArtifactUnitLcov)))
	addLayer(parsers.ParseBDD(readText(m.ArtifactBDD)))

	var run *parsers.APIReport

	var decoded parsers.APIReport
	if paths[m.ArtifactAPIJSON] != "" && w.ReadJSON(ctx, paths[m.ArtifactAPIJSON], &decoded, schema.ValidateAPIReport) {
		run = &decoded
	}

	found[m.ArtifactAPIJSON] = run != nil

	addLayer(parsers.ParseAPI(readText(m.ArtifactAPI), run))
	addLayer(parsers.ParseUI(readText(m.ArtifactUI)))

	artifacts := make([]m.ArtifactStatus, 0, len(m.AllArtifactKinds))
	for _, kind := range m.AllArtifactKinds {
		if paths[kind] == "" {
			continue
		}

		artifacts = append(artifacts, m.ArtifactStatus{
			Kind:  kind,
			Path:  paths[kind],
			Found: found[kind],
		})
	}

	for _, status := range artifacts {
		if !status.Found && w.Exists(ctx, status.Path) {
			slog.WarnContext(ctx, "Artifact present but unusable", "kind", status.Kind, "path", status.Path)
		}
	}

	return results, artifacts
}
