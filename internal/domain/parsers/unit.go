package parsers

import (
	"math"
	"regexp"
	"strings"

	m "qmetrics.dev/pkg/qmetrics/internal/model"
)

// Unit reports come in two dialects: the node test runner spec reporter
// ("ℹ pass 16") and TAP ("# pass 16"). Patterns are listed in preference
// order, so the "ℹ" dialect wins per field when both appear.
var (
	unitPassPatterns = []*regexp.Regexp{
		regexp.MustCompile(`ℹ pass (\d+)`),
		regexp.MustCompile(`# pass (\d+)`),
	}
	unitFailPatterns = []*regexp.Regexp{
		regexp.MustCompile(`ℹ fail (\d+)`),
		regexp.MustCompile(`# fail (\d+)`),
	}
	unitTestsPatterns = []*regexp.Regexp{
		regexp.MustCompile(`ℹ tests (\d+)`),
		regexp.MustCompile(`# tests (\d+)`),
	}
	unitDurationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`ℹ duration_ms ([\d.]+)`),
		regexp.MustCompile(`# duration_ms ([\d.]+)`),
	}

	coverageRowRegex = regexp.MustCompile(`All files\s+\|\s+([\d.]+)`)
	lcovFoundRegex   = regexp.MustCompile(`LF:(\d+)`)
	lcovHitRegex     = regexp.MustCompile(`LH:(\d+)`)

	tapFailureRegex    = regexp.MustCompile(`not ok \d+ - (.+)`)
	legacyFailureRegex = regexp.MustCompile(`✖ (.+?) \((\d+\.?\d*)ms\)`)
)

const unitDefectType = "Unit Test Failure"

// ParseUnit normalizes a unit test report. lcov is the optional line
// coverage artifact used when the report has no coverage table. It returns
// false when report is empty.
func ParseUnit(report, lcov string) (m.LayerResult, bool) {
	if report == "" {
		return m.LayerResult{}, false
	}

	content := stripANSI(report)

	passed := firstInt(content, unitPassPatterns...)
	failed := firstInt(content, unitFailPatterns...)
	total := firstInt(content, unitTestsPatterns...)

	// A report that explicitly counts zero failures has no defects, even if
	// a marker shows up in unrelated output.
	defects := []m.Defect{}
	if !failed.ok || failed.value > 0 {
		defects = append(unitDefects(tapFailureRegex, content), unitDefects(legacyFailureRegex, content)...)
	}

	// With only a total to go on, failure markers are the failed count.
	if total.ok && !passed.ok && !failed.ok && len(defects) > 0 {
		failed = field{value: len(defects), ok: true}
	}

	result := m.LayerResult{
		Layer:  m.LayerUnit,
		Counts: reconcileCounts(passed, failed, total),
	}

	if ms, ok := firstFloat(content, unitDurationPatterns...); ok {
		result.Duration = millis(ms)
	}

	if coverage, ok := tableCoverage(content); ok {
		result.Coverage = &coverage
		result.CoverageDetail = coverageTable(content)
	} else if coverage, ok := lcovCoverage(lcov); ok {
		result.Coverage = &coverage
	}

	result.Defects = defects

	return result, true
}

func unitDefects(re *regexp.Regexp, content string) []m.Defect {
	return collectDefects(re, content, func(match []string) m.Defect {
		return m.Defect{
			Type:     unitDefectType,
			Name:     cleanName(match[1]),
			Severity: m.SeverityHigh,
			Category: m.CategoryFunctional,
		}
	})
}

// tableCoverage reads the "All files" row of an istanbul-style text table.
func tableCoverage(content string) (float64, bool) {
	coverage, ok := firstFloat(content, coverageRowRegex)
	if !ok {
		return 0, false
	}

	return clampPercent(coverage), true
}

// lcovCoverage computes line coverage from the LF/LH records of an lcov
// file. Files with no instrumented lines yield no coverage.
func lcovCoverage(lcov string) (float64, bool) {
	if lcov == "" {
		return 0, false
	}

	found, okFound := sumInts(lcovFoundRegex, lcov)
	hit, okHit := sumInts(lcovHitRegex, lcov)

	if !okFound || !okHit || found == 0 {
		return 0, false
	}

	return clampPercent(float64(hit) / float64(found) * 100), true
}

// coverageTable returns the contiguous block of table lines surrounding the
// "All files" row.
func coverageTable(content string) string {
	lines := strings.Split(content, "\n")

	row := -1

	for i, line := range lines {
		if coverageRowRegex.MatchString(line) {
			row = i
			break
		}
	}

	if row < 0 {
		return ""
	}

	start, end := row, row
	for start > 0 && isTableLine(lines[start-1]) {
		start--
	}

	for end < len(lines)-1 && isTableLine(lines[end+1]) {
		end++
	}

	block := make([]string, 0, end-start+1)
	for _, line := range lines[start : end+1] {
		block = append(block, strings.TrimRight(line, " \r"))
	}

	return strings.Join(block, "\n")
}

func isTableLine(line string) bool {
	return strings.Contains(line, "|")
}

func clampPercent(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
