package model

import "time"

// LayerSummary is the per-layer slice of the machine-readable summary.
type LayerSummary struct {
	Passed     int      `json:"passed" yaml:"passed"`
	Failed     int      `json:"failed" yaml:"failed"`
	Total      int      `json:"total" yaml:"total"`
	DurationMs float64  `json:"durationMs" yaml:"durationMs"`
	Coverage   *float64 `json:"coverage,omitempty" yaml:"coverage,omitempty"`
	Defects    int      `json:"defects" yaml:"defects"`
}

// SummaryThresholds mirrors Thresholds with the duration in milliseconds.
type SummaryThresholds struct {
	Coverage      float64 `json:"coverage" yaml:"coverage"`
	PassRate      float64 `json:"passRate" yaml:"passRate"`
	MaxDurationMs float64 `json:"maxDurationMs" yaml:"maxDurationMs"`
}

// Summary is the machine-readable companion of the Markdown report.
type Summary struct {
	Timestamp       time.Time              `json:"timestamp" yaml:"timestamp"`
	TotalTests      int                    `json:"totalTests" yaml:"totalTests"`
	PassedTests     int                    `json:"passedTests" yaml:"passedTests"`
	FailedTests     int                    `json:"failedTests" yaml:"failedTests"`
	PassRate        float64                `json:"passRate" yaml:"passRate"`
	Coverage        float64                `json:"coverage" yaml:"coverage"`
	TotalDurationMs float64                `json:"totalDurationMs" yaml:"totalDurationMs"`
	Defects         DefectSummary          `json:"defects" yaml:"defects"`
	Status          GateResult             `json:"status" yaml:"status"`
	Thresholds      SummaryThresholds      `json:"thresholds" yaml:"thresholds"`
	Layers          map[Layer]LayerSummary `json:"layers" yaml:"layers"`
	DefectList      []Defect               `json:"defectList" yaml:"defectList"`
}

// Milliseconds converts a duration to fractional milliseconds.
func Milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
