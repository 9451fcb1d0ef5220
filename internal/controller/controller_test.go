package controller

import (
	"time"

	m "qmetrics.dev/pkg/qmetrics/internal/model"
)

func sampleSummary() m.Summary {
	coverage := 81.25

	return m.Summary{
		Timestamp:       time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
		TotalTests:      12,
		PassedTests:     11,
		FailedTests:     1,
		PassRate:        91.67,
		Coverage:        coverage,
		TotalDurationMs: 4500,
		Defects:         m.DefectSummary{Total: 1, Critical: 1, ByCategory: m.CategoryTally{UI: 1}},
		Status: m.GateResult{
			Coverage: m.VerdictPass,
			PassRate: m.VerdictFail,
			Duration: m.VerdictPass,
			Defects:  m.VerdictFail,
			Overall:  m.VerdictFail,
			Health:   40,
		},
		Thresholds: m.SummaryThresholds{Coverage: 75, PassRate: 95, MaxDurationMs: 300000},
		Layers: map[m.Layer]m.LayerSummary{
			m.LayerUnit: {Passed: 8, Total: 8, DurationMs: 1500, Coverage: &coverage},
			m.LayerUI:   {Passed: 3, Failed: 1, Total: 4, DurationMs: 3000, Defects: 1},
		},
		DefectList: []m.Defect{
			{Type: "UI Test Failure", Name: "checkout button", Severity: m.SeverityCritical, Category: m.CategoryUI},
		},
	}
}

func sampleArtifacts() []m.ArtifactStatus {
	return []m.ArtifactStatus{
		{Kind: m.ArtifactUnit, Path: "backend/unit-test-results.txt", Found: true},
		{Kind: m.ArtifactBDD, Path: "backend/bdd-test-results.txt", Found: false},
	}
}
