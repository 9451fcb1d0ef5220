package model

import "time"

// CategoryTally counts defects per known category.
type CategoryTally struct {
	Functional  int `json:"functional" yaml:"functional"`
	Integration int `json:"integration" yaml:"integration"`
	API         int `json:"api" yaml:"api"`
	UI          int `json:"ui" yaml:"ui"`
}

// DefectSummary tallies defects by severity and category.
type DefectSummary struct {
	Total      int           `json:"total" yaml:"total"`
	Critical   int           `json:"critical" yaml:"critical"`
	High       int           `json:"high" yaml:"high"`
	Medium     int           `json:"medium" yaml:"medium"`
	Low        int           `json:"low" yaml:"low"`
	ByCategory CategoryTally `json:"byCategory" yaml:"byCategory"`
}

// AggregateMetrics are the totals across all layers that were run.
type AggregateMetrics struct {
	TotalTests    int
	PassedTests   int
	FailedTests   int
	PassRate      float64
	Coverage      float64
	TotalDuration time.Duration
	Defects       DefectSummary
	// DefectList holds every defect in layer order (Unit, BDD, API, UI).
	DefectList []Defect
}
