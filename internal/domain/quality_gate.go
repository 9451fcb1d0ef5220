package domain

import (
	m "qmetrics.dev/pkg/qmetrics/internal/model"
)

const (
	passingHealth = 98
	healthPerGate = 20
)

// EvaluateGates checks aggregated metrics against the thresholds.
//
// A slow run or non-critical defects produce a warning rather than a
// failure, but a warning still fails the overall verdict and does not earn
// health points.
func EvaluateGates(metrics m.AggregateMetrics, thresholds m.Thresholds) m.GateResult {
	result := m.GateResult{
		Coverage: atLeast(metrics.Coverage, thresholds.Coverage),
		PassRate: atLeast(metrics.PassRate, thresholds.PassRate),
		Duration: m.VerdictPass,
		Defects:  defectsVerdict(metrics.Defects),
	}

	if metrics.TotalDuration > thresholds.MaxDuration {
		result.Duration = m.VerdictWarn
	}

	passed := 0

	for _, verdict := range result.Gates() {
		if verdict == m.VerdictPass {
			passed++
		}
	}

	if passed == len(result.Gates()) {
		result.Overall = m.VerdictPass
		result.Health = passingHealth
	} else {
		result.Overall = m.VerdictFail
		result.Health = passed * healthPerGate
	}

	return result
}

func atLeast(actual, threshold float64) m.Verdict {
	if actual >= threshold {
		return m.VerdictPass
	}

	return m.VerdictFail
}

func defectsVerdict(defects m.DefectSummary) m.Verdict {
	switch {
	case defects.Total == 0:
		return m.VerdictPass
	case defects.Critical > 0:
		return m.VerdictFail
	default:
		return m.VerdictWarn
	}
}
