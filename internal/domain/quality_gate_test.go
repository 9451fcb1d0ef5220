package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	m "qmetrics.dev/pkg/qmetrics/internal/model"
)

func TestEvaluateGates(t *testing.T) {
	healthy := m.AggregateMetrics{
		TotalTests:    100,
		PassedTests:   100,
		PassRate:      100,
		Coverage:      80,
		TotalDuration: time.Minute,
	}

	tests := []struct {
		name   string
		mutate func(*m.AggregateMetrics)
		want   m.GateResult
	}{
		{
			name:   "all gates pass",
			mutate: func(*m.AggregateMetrics) {},
			want: m.GateResult{
				Coverage: m.VerdictPass, PassRate: m.VerdictPass, Duration: m.VerdictPass, Defects: m.VerdictPass,
				Overall: m.VerdictPass, Health: 98,
			},
		},
		{
			name: "nothing ran",
			mutate: func(a *m.AggregateMetrics) {
				*a = m.AggregateMetrics{}
			},
			want: m.GateResult{
				Coverage: m.VerdictFail, PassRate: m.VerdictFail, Duration: m.VerdictPass, Defects: m.VerdictPass,
				Overall: m.VerdictFail, Health: 40,
			},
		},
		{
			name: "thresholds are inclusive",
			mutate: func(a *m.AggregateMetrics) {
				a.Coverage, a.PassRate, a.TotalDuration = 75, 95, 5*time.Minute
			},
			want: m.GateResult{
				Coverage: m.VerdictPass, PassRate: m.VerdictPass, Duration: m.VerdictPass, Defects: m.VerdictPass,
				Overall: m.VerdictPass, Health: 98,
			},
		},
		{
			name: "slow run warns and fails overall",
			mutate: func(a *m.AggregateMetrics) {
				a.TotalDuration = 5*time.Minute + time.Millisecond
			},
			want: m.GateResult{
				Coverage: m.VerdictPass, PassRate: m.VerdictPass, Duration: m.VerdictWarn, Defects: m.VerdictPass,
				Overall: m.VerdictFail, Health: 60,
			},
		},
		{
			name: "non critical defects warn",
			mutate: func(a *m.AggregateMetrics) {
				a.Defects = m.DefectSummary{Total: 2, High: 1, Low: 1}
			},
			want: m.GateResult{
				Coverage: m.VerdictPass, PassRate: m.VerdictPass, Duration: m.VerdictPass, Defects: m.VerdictWarn,
				Overall: m.VerdictFail, Health: 60,
			},
		},
		{
			name: "critical defect fails",
			mutate: func(a *m.AggregateMetrics) {
				a.Defects = m.DefectSummary{Total: 1, Critical: 1}
			},
			want: m.GateResult{
				Coverage: m.VerdictPass, PassRate: m.VerdictPass, Duration: m.VerdictPass, Defects: m.VerdictFail,
				Overall: m.VerdictFail, Health: 60,
			},
		},
		{
			name: "every gate misses",
			mutate: func(a *m.AggregateMetrics) {
				a.Coverage, a.PassRate, a.TotalDuration = 10, 50, time.Hour
				a.Defects = m.DefectSummary{Total: 1, Critical: 1}
			},
			want: m.GateResult{
				Coverage: m.VerdictFail, PassRate: m.VerdictFail, Duration: m.VerdictWarn, Defects: m.VerdictFail,
				Overall: m.VerdictFail, Health: 0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics := healthy
			tt.mutate(&metrics)

			assert.Equal(t, tt.want, EvaluateGates(metrics, m.DefaultThresholds()))
		})
	}
}

func TestEvaluateGates_CustomThresholds(t *testing.T) {
	metrics := m.AggregateMetrics{PassRate: 90, Coverage: 50, TotalDuration: time.Second}
	thresholds := m.Thresholds{Coverage: 50, PassRate: 90, MaxDuration: time.Second}

	got := EvaluateGates(metrics, thresholds)

	assert.True(t, got.Passed())
	assert.Equal(t, 98, got.Health)
}
