package parsers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "qmetrics.dev/pkg/qmetrics/internal/model"
)

const uiFailingReport = `
  Authentication
    ✔ should sign up a new user (2345ms)
    1) should login with valid credentials

  Tasks
    ✔ should create a task (1200ms)

  2 passing (1m 12s)
  1 failing

  1) should login with valid credentials:
     TimeoutError: Waiting for element to be located By(css selector, #dashboard)
      at node_modules/selenium-webdriver/lib/webdriver.js:907:17
`

func TestParseUI_FailingRun(t *testing.T) {
	result, ok := ParseUI(uiFailingReport)
	require.True(t, ok)

	assert.Equal(t, m.LayerUI, result.Layer)
	assert.Equal(t, m.Counts{Passed: 2, Failed: 1, Total: 3}, result.Counts)
	assert.Equal(t, 72*time.Second, result.Duration)

	require.Len(t, result.Defects, 1)
	assert.Equal(t, m.Defect{
		Type:     "UI Test Failure",
		Name:     "should login with valid credentials",
		Severity: m.SeverityCritical,
		Category: m.CategoryUI,
		Details:  "TimeoutError: Waiting for element to be located By(css selector, #dashboard)",
	}, result.Defects[0])
}

func TestParseUI_Duration(t *testing.T) {
	tests := []struct {
		name   string
		report string
		want   time.Duration
	}{
		{"minutes only", "12 passing (1m)\n", time.Minute},
		{"minutes and seconds", "12 passing (2m 5s)\n", 2*time.Minute + 5*time.Second},
		{"millisecond tokens ignored", "✔ slow test (3880ms)\n4 passing (2m)\n", 2 * time.Minute},
		{"sub-minute seconds not read", "5 passing (3s)\n", 0},
		{"sub-minute milliseconds not read", "✔ fast (15ms)\n1 passing (850ms)\n", 0},
		{"colour codes stripped", "\x1b[32m  3 passing\x1b[0m\x1b[90m (1m 4s)\x1b[0m\n", time.Minute + 4*time.Second},
		{"no duration", "3 passing\n", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, ok := ParseUI(tt.report)
			require.True(t, ok)
			assert.Equal(t, tt.want, result.Duration)
		})
	}
}

func TestParseUI_Counts(t *testing.T) {
	tests := []struct {
		name   string
		report string
		want   m.Counts
	}{
		{"passing only", "7 passing (9s)\n", m.Counts{Passed: 7, Total: 7}},
		{"failing only", "2 failing\n", m.Counts{Failed: 2, Total: 2}},
		{"neither", "Error: ChromeDriver not found\n", m.Counts{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, ok := ParseUI(tt.report)
			require.True(t, ok)
			assert.Equal(t, tt.want, result.Counts)
		})
	}
}

func TestParseUI_MultipleFailureBlocks(t *testing.T) {
	report := `  0 passing (1m 3s)
  2 failing

  1) should add a task:
     NoSuchElementError: no such element
  2) should delete a task:
     AssertionError: expected 1 to equal 0
`

	result, ok := ParseUI(report)
	require.True(t, ok)

	require.Len(t, result.Defects, 2)
	assert.Equal(t, "should add a task", result.Defects[0].Name)
	assert.Equal(t, "NoSuchElementError: no such element", result.Defects[0].Details)
	assert.Equal(t, "should delete a task", result.Defects[1].Name)
	assert.Equal(t, "AssertionError: expected 1 to equal 0", result.Defects[1].Details)
}

func TestParseUI_EmptyIsAbsent(t *testing.T) {
	_, ok := ParseUI("")
	assert.False(t, ok)
}
