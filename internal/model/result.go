package model

import "time"

// Severity ranks a defect.
type Severity string

// Severity levels, most severe first.
const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
)

// Category groups defects by the kind of test that found them.
type Category string

// Known categories. Defects may carry other labels; those are counted
// toward the total only.
const (
	CategoryFunctional  Category = "Functional"
	CategoryIntegration Category = "Integration"
	CategoryAPI         Category = "API"
	CategoryUI          Category = "UI"
)

// Defect is a single failing test or assertion extracted from a raw report.
type Defect struct {
	Type     string   `json:"type" yaml:"type"`
	Name     string   `json:"name" yaml:"name"`
	Severity Severity `json:"severity" yaml:"severity"`
	Category Category `json:"category" yaml:"category"`
	Details  string   `json:"details,omitempty" yaml:"details,omitempty"`
}

// Counts holds pass/fail totals. Parsers keep Total == Passed + Failed.
type Counts struct {
	Passed int `json:"passed" yaml:"passed"`
	Failed int `json:"failed" yaml:"failed"`
	Total  int `json:"total" yaml:"total"`
}

// PassRate returns the percentage of passed entries, or 0 when empty.
func (c Counts) PassRate() float64 {
	if c.Total == 0 {
		return 0
	}

	return float64(c.Passed) / float64(c.Total) * 100
}

// LayerResult is the normalized result of one test layer.
type LayerResult struct {
	Layer    Layer
	Counts   Counts
	Duration time.Duration
	// Coverage is set only for the unit layer, and only when a coverage
	// source was found.
	Coverage *float64
	// CoverageDetail is the raw coverage table copied from the unit report.
	CoverageDetail string
	// Steps holds BDD step counts; Counts holds scenarios.
	Steps *Counts
	// Requests holds API request counts; Counts holds assertions.
	Requests *Counts
	Defects  []Defect
}

// Results holds the layers that were run. A missing key means the layer's
// artifact was absent.
type Results map[Layer]LayerResult
