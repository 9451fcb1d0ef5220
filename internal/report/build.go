package report

import (
	"fmt"
	"time"

	m "qmetrics.dev/pkg/qmetrics/internal/model"
)

// Recommendation sentences, in the order they are emitted.
var (
	recommendCoverage = Recommendation{
		Icon: "⚠️", Headline: "Coverage is below target.",
		Advice: "Add more unit tests to uncovered code.",
	}
	recommendPassRate = Recommendation{
		Icon: "⚠️", Headline: "Pass rate is below target.",
		Advice: "Review and fix failing tests.",
	}
	recommendDuration = Recommendation{
		Icon: "⚠️", Headline: "Execution time exceeds target.",
		Advice: "Consider parallelizing tests or optimizing slow tests.",
	}
	recommendCritical = Recommendation{
		Icon: "🔴", Headline: "Critical defects found.",
		Advice: "These must be fixed immediately before release.",
	}
	recommendHigh = Recommendation{
		Icon: "🟠", Headline: "High-priority defects found.",
		Advice: "Plan to fix these in the current sprint.",
	}
	recommendLowerSeverity = Recommendation{
		Icon: "🟡", Headline: "Lower-severity defects found.",
		Advice: "Triage them before the next release.",
	}
	recommendAllPassed = Recommendation{
		Icon: "✅", Headline: "All quality gates passed!",
		Advice: "Maintain the current testing standards.",
	}
)

// Build derives the report document from the run's results. It never
// mutates its input.
func Build(in Input) Document {
	return Document{
		Header: Header{
			Timestamp: in.Timestamp,
			Overall:   in.Gates.Overall,
			Health:    in.Gates.Health,
		},
		Executive: ExecutiveSummary{
			PassRate:    in.Metrics.PassRate,
			PassedTests: in.Metrics.PassedTests,
			TotalTests:  in.Metrics.TotalTests,
			Coverage:    in.Metrics.Coverage,
			Duration:    in.Metrics.TotalDuration,
			Defects:     in.Metrics.Defects.Total,
			Gates:       in.Gates,
		},
		Coverage:        buildCoverage(in),
		Durations:       buildDurations(in),
		PassFail:        buildPassFail(in),
		Defects:         buildDefects(in.Metrics),
		Gates:           buildGates(in),
		Overall:         in.Gates.Overall,
		Recommendations: Recommend(in.Gates, in.Metrics.Defects),
		Artifacts:       in.Artifacts,
	}
}

// Recommend returns one recommendation per unmet condition, or a single
// positive one when nothing needs attention.
func Recommend(gates m.GateResult, defects m.DefectSummary) []Recommendation {
	var recs []Recommendation

	if gates.Coverage != m.VerdictPass {
		recs = append(recs, recommendCoverage)
	}

	if gates.PassRate != m.VerdictPass {
		recs = append(recs, recommendPassRate)
	}

	if gates.Duration != m.VerdictPass {
		recs = append(recs, recommendDuration)
	}

	if defects.Critical > 0 {
		recs = append(recs, recommendCritical)
	}

	if defects.High > 0 {
		recs = append(recs, recommendHigh)
	}

	if gates.Defects == m.VerdictWarn && defects.High == 0 {
		recs = append(recs, recommendLowerSeverity)
	}

	if len(recs) == 0 {
		recs = append(recs, recommendAllPassed)
	}

	return recs
}

func buildCoverage(in Input) CoverageSection {
	section := CoverageSection{
		Coverage:  in.Metrics.Coverage,
		Threshold: in.Thresholds.Coverage,
		Verdict:   in.Gates.Coverage,
	}

	if unit, ok := in.Results[m.LayerUnit]; ok {
		section.Detail = unit.CoverageDetail
	}

	return section
}

func buildDurations(in Input) DurationSection {
	section := DurationSection{
		Total:   in.Metrics.TotalDuration,
		Limit:   in.Thresholds.MaxDuration,
		Verdict: in.Gates.Duration,
	}

	for _, layer := range m.AllLayers {
		result, ok := in.Results[layer]
		if !ok {
			continue
		}

		section.Rows = append(section.Rows, DurationRow{
			Layer:    layer,
			Duration: result.Duration,
			Verdict:  layerVerdict(result),
			Share:    share(float64(result.Duration), float64(in.Metrics.TotalDuration)),
		})
	}

	return section
}

func buildPassFail(in Input) PassFailSection {
	section := PassFailSection{
		Passed:    in.Metrics.PassedTests,
		Failed:    in.Metrics.FailedTests,
		Total:     in.Metrics.TotalTests,
		PassRate:  in.Metrics.PassRate,
		Threshold: in.Thresholds.PassRate,
		Verdict:   in.Gates.PassRate,
	}

	for _, layer := range m.AllLayers {
		result, ok := in.Results[layer]
		if !ok {
			section.NotRun = append(section.NotRun, layer)
			continue
		}

		row := LayerRow{
			Layer:   layer,
			Counts:  result.Counts,
			Verdict: layerVerdict(result),
		}

		switch {
		case result.Steps != nil:
			row.Secondary, row.SecondaryLabel = result.Steps, "steps"
		case result.Requests != nil:
			row.Secondary, row.SecondaryLabel = result.Requests, "requests"
		}

		section.Rows = append(section.Rows, row)
	}

	return section
}

func buildDefects(metrics m.AggregateMetrics) DefectsSection {
	summary := metrics.Defects
	total := float64(summary.Total)

	return DefectsSection{
		Summary: summary,
		Categories: []CategoryShare{
			{Category: m.CategoryFunctional, Count: summary.ByCategory.Functional, Share: share(float64(summary.ByCategory.Functional), total)},
			{Category: m.CategoryIntegration, Count: summary.ByCategory.Integration, Share: share(float64(summary.ByCategory.Integration), total)},
			{Category: m.CategoryAPI, Count: summary.ByCategory.API, Share: share(float64(summary.ByCategory.API), total)},
			{Category: m.CategoryUI, Count: summary.ByCategory.UI, Share: share(float64(summary.ByCategory.UI), total)},
		},
		List: metrics.DefectList,
	}
}

func buildGates(in Input) []GateRow {
	return []GateRow{
		{
			Name:      "Code Coverage",
			Threshold: fmt.Sprintf("≥%s%%", formatNumber(in.Thresholds.Coverage)),
			Actual:    fmt.Sprintf("%.2f%%", in.Metrics.Coverage),
			Verdict:   in.Gates.Coverage,
		},
		{
			Name:      "Pass Rate",
			Threshold: fmt.Sprintf("≥%s%%", formatNumber(in.Thresholds.PassRate)),
			Actual:    fmt.Sprintf("%.2f%%", in.Metrics.PassRate),
			Verdict:   in.Gates.PassRate,
		},
		{
			Name:      "Execution Time",
			Threshold: "≤" + formatSeconds(in.Thresholds.MaxDuration),
			Actual:    formatSeconds(in.Metrics.TotalDuration),
			Verdict:   in.Gates.Duration,
		},
		{
			Name:      "Defects",
			Threshold: "0 critical",
			Actual:    fmt.Sprintf("%d (%d critical)", in.Metrics.Defects.Total, in.Metrics.Defects.Critical),
			Verdict:   in.Gates.Defects,
		},
	}
}

func layerVerdict(result m.LayerResult) m.Verdict {
	if result.Counts.Failed == 0 {
		return m.VerdictPass
	}

	return m.VerdictFail
}

func share(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}

	return part / whole * 100
}

// formatNumber drops a trailing ".0" from whole thresholds.
func formatNumber(v float64) string {
	return fmt.Sprintf("%g", v)
}

func formatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.2fs", d.Seconds())
}
