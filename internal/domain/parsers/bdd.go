package parsers

import (
	"math"
	"regexp"
	"strconv"
	"time"

	m "qmetrics.dev/pkg/qmetrics/internal/model"
)

var (
	scenarioSummaryRegex = regexp.MustCompile(`(\d+) scenarios? \(([^)]*)\)`)
	stepSummaryRegex     = regexp.MustCompile(`(\d+) steps? \(([^)]*)\)`)
	outcomePassedRegex   = regexp.MustCompile(`(\d+) passed`)
	outcomeFailedRegex   = regexp.MustCompile(`(\d+) failed`)
	bddDurationRegex     = regexp.MustCompile(`(\d+)m([\d.]+)s`)
	bddFailureRegex      = regexp.MustCompile(`✖ (.+)`)
)

const bddDefectType = "BDD Scenario Failure"

// ParseBDD normalizes a Cucumber summary. Layer counts are scenario counts;
// step counts are kept separately. It returns false when report is empty.
func ParseBDD(report string) (m.LayerResult, bool) {
	if report == "" {
		return m.LayerResult{}, false
	}

	content := stripANSI(report)

	result := m.LayerResult{Layer: m.LayerBDD}

	if counts, ok := outcomeSummary(scenarioSummaryRegex, content); ok {
		result.Counts = counts
	}

	if counts, ok := outcomeSummary(stepSummaryRegex, content); ok {
		result.Steps = &counts
	}

	if d, ok := minutesSeconds(content); ok {
		result.Duration = d
	}

	result.Defects = collectDefects(bddFailureRegex, content, func(match []string) m.Defect {
		return m.Defect{
			Type:     bddDefectType,
			Name:     cleanName(match[1]),
			Severity: m.SeverityHigh,
			Category: m.CategoryIntegration,
		}
	})

	return result, true
}

// outcomeSummary parses "N scenarios (P passed, F failed)". The outcomes in
// parentheses may appear in any order; a missing failed count is zero.
func outcomeSummary(re *regexp.Regexp, content string) (m.Counts, bool) {
	match := re.FindStringSubmatch(content)
	if len(match) < 3 {
		return m.Counts{}, false
	}

	total := field{}
	if n, err := strconv.Atoi(match[1]); err == nil {
		total = field{value: n, ok: true}
	}

	// Outcomes other than passed and failed (skipped, undefined, pending)
	// count toward neither side.
	passed := matchInt(outcomePassedRegex, match[2])
	passed.ok = true
	failed := matchInt(outcomeFailedRegex, match[2])
	failed.ok = true

	return reconcileCounts(passed, failed, total), true
}

// minutesSeconds reads a "0m01.234s" token at millisecond precision.
func minutesSeconds(content string) (time.Duration, bool) {
	match := bddDurationRegex.FindStringSubmatch(content)
	if len(match) < 3 {
		return 0, false
	}

	minutes, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}

	seconds, err := strconv.ParseFloat(match[2], 64)
	if err != nil {
		return 0, false
	}

	ms := time.Duration(math.Round(seconds*1000)) * time.Millisecond

	return time.Duration(minutes)*time.Minute + ms, true
}
