package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "qmetrics.dev/pkg/qmetrics/internal/model"
)

func ptr(v float64) *float64 { return &v }

func TestAggregate_AllAbsent(t *testing.T) {
	metrics := Aggregate(m.Results{})

	assert.Zero(t, metrics.TotalTests)
	assert.Zero(t, metrics.PassRate)
	assert.Zero(t, metrics.Coverage)
	assert.Zero(t, metrics.TotalDuration)
	assert.Zero(t, metrics.Defects.Total)
	assert.NotNil(t, metrics.DefectList)
}

func TestAggregate_UnitAndBDD(t *testing.T) {
	metrics := Aggregate(m.Results{
		m.LayerUnit: {Layer: m.LayerUnit, Counts: m.Counts{Passed: 5, Total: 5}, Duration: 2 * time.Second, Coverage: ptr(88.4)},
		m.LayerBDD:  {Layer: m.LayerBDD, Counts: m.Counts{Passed: 3, Total: 3}, Duration: time.Second},
	})

	assert.Equal(t, 8, metrics.TotalTests)
	assert.Equal(t, 8, metrics.PassedTests)
	assert.Zero(t, metrics.FailedTests)
	assert.InDelta(t, 100.0, metrics.PassRate, 0.001)
	assert.InDelta(t, 88.4, metrics.Coverage, 0.001)
	assert.Equal(t, 3*time.Second, metrics.TotalDuration)
}

func TestAggregate_PassRateRounding(t *testing.T) {
	metrics := Aggregate(m.Results{
		m.LayerUI: {Layer: m.LayerUI, Counts: m.Counts{Passed: 2, Failed: 1, Total: 3}},
	})

	assert.Equal(t, 66.67, metrics.PassRate)
}

func TestAggregate_CoverageOnlyFromUnit(t *testing.T) {
	metrics := Aggregate(m.Results{
		m.LayerBDD: {Layer: m.LayerBDD, Counts: m.Counts{Passed: 1, Total: 1}, Coverage: ptr(99)},
	})

	assert.Zero(t, metrics.Coverage)
}

func TestAggregate_DefectsInLayerOrder(t *testing.T) {
	defect := func(name string, sev m.Severity, cat m.Category) m.Defect {
		return m.Defect{Name: name, Severity: sev, Category: cat}
	}

	metrics := Aggregate(m.Results{
		m.LayerUI: {Layer: m.LayerUI, Defects: []m.Defect{defect("ui", m.SeverityCritical, m.CategoryUI)}},
		m.LayerAPI: {Layer: m.LayerAPI, Defects: []m.Defect{
			defect("api-1", m.SeverityHigh, m.CategoryAPI),
			defect("api-2", m.SeverityMedium, "api"),
		}},
		m.LayerUnit: {Layer: m.LayerUnit, Defects: []m.Defect{
			defect("unit", m.SeverityLow, m.CategoryFunctional),
			defect("unit", "BLOCKER", "Performance"),
		}},
	})

	names := make([]string, 0, len(metrics.DefectList))
	for _, d := range metrics.DefectList {
		names = append(names, d.Name)
	}

	assert.Equal(t, []string{"unit", "unit", "api-1", "api-2", "ui"}, names)

	require.Equal(t, 5, metrics.Defects.Total)
	assert.Equal(t, 1, metrics.Defects.Critical)
	assert.Equal(t, 1, metrics.Defects.High)
	assert.Equal(t, 1, metrics.Defects.Medium)
	assert.Equal(t, 2, metrics.Defects.Low)
	assert.Equal(t, m.CategoryTally{Functional: 1, API: 2, UI: 1}, metrics.Defects.ByCategory)
}
