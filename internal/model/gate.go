package model

import "time"

// Verdict is the outcome of a single gate or of the whole evaluation.
type Verdict string

// Gate verdicts. Overall verdicts are only VerdictPass or VerdictFail.
const (
	VerdictPass Verdict = "pass"
	VerdictWarn Verdict = "warn"
	VerdictFail Verdict = "fail"
)

// Icon returns the glyph used for the verdict in reports.
func (v Verdict) Icon() string {
	switch v {
	case VerdictPass:
		return "✅"
	case VerdictWarn:
		return "⚠️"
	default:
		return "❌"
	}
}

// Thresholds configures the quality gates.
type Thresholds struct {
	Coverage    float64       `json:"coverage" yaml:"coverage"`
	PassRate    float64       `json:"passRate" yaml:"passRate"`
	MaxDuration time.Duration `json:"maxDuration" yaml:"maxDuration"`
}

// DefaultThresholds returns the stock gate configuration.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Coverage:    75,
		PassRate:    95,
		MaxDuration: 5 * time.Minute,
	}
}

// GateResult holds the verdict of every gate plus the overall outcome.
type GateResult struct {
	Coverage Verdict `json:"coverage" yaml:"coverage"`
	PassRate Verdict `json:"passRate" yaml:"passRate"`
	Duration Verdict `json:"duration" yaml:"duration"`
	Defects  Verdict `json:"defects" yaml:"defects"`
	Overall  Verdict `json:"overall" yaml:"overall"`
	Health   int     `json:"health" yaml:"health"`
}

// Gates returns the individual gate verdicts in evaluation order.
func (g GateResult) Gates() []Verdict {
	return []Verdict{g.Coverage, g.PassRate, g.Duration, g.Defects}
}

// Passed reports whether the overall verdict is pass.
func (g GateResult) Passed() bool {
	return g.Overall == VerdictPass
}
