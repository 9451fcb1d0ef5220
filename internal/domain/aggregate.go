package domain

import (
	"math"
	"strings"

	m "qmetrics.dev/pkg/qmetrics/internal/model"
)

// Aggregate merges the layers that were run into overall metrics. A missing
// layer contributes nothing; coverage comes from the unit layer alone.
func Aggregate(results m.Results) m.AggregateMetrics {
	metrics := m.AggregateMetrics{DefectList: []m.Defect{}}

	for _, layer := range m.AllLayers {
		result, ok := results[layer]
		if !ok {
			continue
		}

		metrics.TotalTests += result.Counts.Total
		metrics.PassedTests += result.Counts.Passed
		metrics.FailedTests += result.Counts.Failed
		metrics.TotalDuration += result.Duration
		metrics.DefectList = append(metrics.DefectList, result.Defects...)

		if layer == m.LayerUnit && result.Coverage != nil {
			metrics.Coverage = *result.Coverage
		}
	}

	metrics.PassRate = passRate(metrics.PassedTests, metrics.TotalTests)
	metrics.Defects = summarizeDefects(metrics.DefectList)

	return metrics
}

// passRate is passed/total as a percentage rounded to two decimals, or 0
// when nothing ran.
func passRate(passed, total int) float64 {
	if total == 0 {
		return 0
	}

	return math.Round(float64(passed)/float64(total)*100*100) / 100
}

func summarizeDefects(defects []m.Defect) m.DefectSummary {
	summary := m.DefectSummary{Total: len(defects)}

	for _, defect := range defects {
		switch defect.Severity {
		case m.SeverityCritical:
			summary.Critical++
		case m.SeverityHigh:
			summary.High++
		case m.SeverityMedium:
			summary.Medium++
		default:
			summary.Low++
		}

		// Categories outside the known four count toward the total only.
		switch strings.ToLower(string(defect.Category)) {
		case "functional":
			summary.ByCategory.Functional++
		case "integration":
			summary.ByCategory.Integration++
		case "api":
			summary.ByCategory.API++
		case "ui":
			summary.ByCategory.UI++
		}
	}

	return summary
}
