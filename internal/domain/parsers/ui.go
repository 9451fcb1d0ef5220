package parsers

import (
	"regexp"
	"strconv"
	"time"

	m "qmetrics.dev/pkg/qmetrics/internal/model"
)

var (
	uiPassingRegex = regexp.MustCompile(`(\d+) passing`)
	uiFailingRegex = regexp.MustCompile(`(\d+) failing`)
	// The second group captures a trailing "s" so millisecond tokens such as
	// "3880ms" can be rejected; RE2 has no negative lookahead.
	uiMinutesRegex      = regexp.MustCompile(`(\d+)m(s?)(?:\s+(\d+)s)?`)
	uiFailureBlockRegex = regexp.MustCompile(`\d+\)\s+(.+?):\s*\n\s+(.+)`)
)

const uiDefectType = "UI Test Failure"

// ParseUI normalizes a Mocha spec-reporter summary from the Selenium suite.
// It returns false when report is empty.
func ParseUI(report string) (m.LayerResult, bool) {
	if report == "" {
		return m.LayerResult{}, false
	}

	content := stripANSI(report)

	passing := matchInt(uiPassingRegex, content)
	failing := matchInt(uiFailingRegex, content)
	passing.ok, failing.ok = true, true

	result := m.LayerResult{
		Layer:  m.LayerUI,
		Counts: reconcileCounts(passing, failing, field{}),
	}

	if d, ok := uiMinutes(content); ok {
		result.Duration = d
	}

	result.Defects = collectDefects(uiFailureBlockRegex, content, func(match []string) m.Defect {
		return m.Defect{
			Type:     uiDefectType,
			Name:     cleanName(match[1]),
			Severity: m.SeverityCritical,
			Category: m.CategoryUI,
			Details:  cleanName(match[2]),
		}
	})

	return result, true
}

// uiMinutes reads the first "Nm" token not followed by "s", plus an
// optional " Ns" seconds token.
func uiMinutes(content string) (time.Duration, bool) {
	for _, match := range uiMinutesRegex.FindAllStringSubmatch(content, -1) {
		if match[2] != "" {
			continue
		}

		minutes, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}

		seconds := 0
		if match[3] != "" {
			seconds, _ = strconv.Atoi(match[3])
		}

		return time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second, true
	}

	return 0, false
}
