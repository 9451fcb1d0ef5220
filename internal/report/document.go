// Package report turns aggregated metrics into a typed report document and
// renders it for people (Markdown) and machines (JSON or YAML).
package report

import (
	"time"

	m "qmetrics.dev/pkg/qmetrics/internal/model"
)

// Input is everything the report is derived from.
type Input struct {
	Timestamp  time.Time
	Results    m.Results
	Metrics    m.AggregateMetrics
	Gates      m.GateResult
	Thresholds m.Thresholds
	Artifacts  []m.ArtifactStatus
}

// Header identifies the run.
type Header struct {
	Timestamp time.Time
	Overall   m.Verdict
	Health    int
}

// ExecutiveSummary is the dashboard at the top of the report.
type ExecutiveSummary struct {
	PassRate    float64
	PassedTests int
	TotalTests  int
	Coverage    float64
	Duration    time.Duration
	Defects     int
	Gates       m.GateResult
}

// CoverageSection reports line coverage against its gate.
type CoverageSection struct {
	Coverage  float64
	Threshold float64
	Verdict   m.Verdict
	// Detail is the per-file coverage table copied from the unit artifact.
	Detail string
}

// DurationRow is one layer's share of the total run time.
type DurationRow struct {
	Layer    m.Layer
	Duration time.Duration
	Verdict  m.Verdict
	// Share is the percentage of the total duration.
	Share float64
}

// DurationSection breaks the run time down by layer.
type DurationSection struct {
	Rows    []DurationRow
	Total   time.Duration
	Limit   time.Duration
	Verdict m.Verdict
}

// LayerRow is one layer's pass/fail breakdown.
type LayerRow struct {
	Layer   m.Layer
	Counts  m.Counts
	Verdict m.Verdict
	// Secondary holds BDD step or API request counts.
	Secondary      *m.Counts
	SecondaryLabel string
}

// PassFailSection reports overall and per-layer results.
type PassFailSection struct {
	Passed    int
	Failed    int
	Total     int
	PassRate  float64
	Threshold float64
	Verdict   m.Verdict
	Rows      []LayerRow
	NotRun    []m.Layer
}

// CategoryShare is a category's count and share of all defects.
type CategoryShare struct {
	Category m.Category
	Count    int
	Share    float64
}

// DefectsSection tallies and lists every defect.
type DefectsSection struct {
	Summary    m.DefectSummary
	Categories []CategoryShare
	List       []m.Defect
}

// GateRow is one line of the quality-gate table.
type GateRow struct {
	Name      string
	Threshold string
	Actual    string
	Verdict   m.Verdict
}

// Recommendation is a fixed piece of advice triggered by a gate condition.
type Recommendation struct {
	Icon     string
	Headline string
	Advice   string
}

// Document is the full report as data; RenderMarkdown formats it.
type Document struct {
	Header          Header
	Executive       ExecutiveSummary
	Coverage        CoverageSection
	Durations       DurationSection
	PassFail        PassFailSection
	Defects         DefectsSection
	Gates           []GateRow
	Overall         m.Verdict
	Recommendations []Recommendation
	Artifacts       []m.ArtifactStatus
}
