// Package parsers converts raw test-tool output into normalized layer results.
//
// Every parser is a pure function over strings built from the small matchers
// in this file. A pattern that does not match leaves its field at zero; it
// never fails the whole parse.
package parsers

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	m "qmetrics.dev/pkg/qmetrics/internal/model"
)

var ansiEscapeRegex = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]`)

// stripANSI removes terminal colour sequences. Mocha and Cucumber colour
// their summaries, and "\x1b[32m" would otherwise read as a minutes token.
func stripANSI(s string) string {
	return ansiEscapeRegex.ReplaceAllString(s, "")
}

// field is an optionally matched integer.
type field struct {
	value int
	ok    bool
}

// matchInt returns the first capture group of the first match as an int.
func matchInt(re *regexp.Regexp, s string) field {
	match := re.FindStringSubmatch(s)
	if len(match) < 2 {
		return field{}
	}

	n, err := strconv.Atoi(match[1])
	if err != nil {
		return field{}
	}

	return field{value: n, ok: true}
}

// firstInt tries each pattern in order and returns the first match.
func firstInt(s string, patterns ...*regexp.Regexp) field {
	for _, re := range patterns {
		if f := matchInt(re, s); f.ok {
			return f
		}
	}

	return field{}
}

// firstFloat tries each pattern in order and returns the first capture group
// that parses as a float.
func firstFloat(s string, patterns ...*regexp.Regexp) (float64, bool) {
	for _, re := range patterns {
		match := re.FindStringSubmatch(s)
		if len(match) < 2 {
			continue
		}

		f, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			continue
		}

		return f, true
	}

	return 0, false
}

// sumInts adds the first capture group of every match.
func sumInts(re *regexp.Regexp, s string) (int, bool) {
	matches := re.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return 0, false
	}

	total := 0

	for _, match := range matches {
		n, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}

		total += n
	}

	return total, true
}

// collectDefects turns every match of re into a defect, in order of
// occurrence. build receives the submatches of one match.
func collectDefects(re *regexp.Regexp, s string, build func(match []string) m.Defect) []m.Defect {
	matches := re.FindAllStringSubmatch(s, -1)
	defects := make([]m.Defect, 0, len(matches))

	for _, match := range matches {
		defects = append(defects, build(match))
	}

	return defects
}

// reconcileCounts builds consistent counts from whichever fields matched.
// Total always ends up equal to Passed + Failed: a missing side is derived
// from the total, and a total that disagrees with explicit pass and fail
// counts (skipped or todo tests) is replaced by their sum.
func reconcileCounts(passed, failed, total field) m.Counts {
	switch {
	case !total.ok:
		return m.Counts{Passed: passed.value, Failed: failed.value, Total: passed.value + failed.value}
	case passed.ok && failed.ok:
		return m.Counts{Passed: passed.value, Failed: failed.value, Total: passed.value + failed.value}
	case passed.ok:
		p := min(passed.value, total.value)
		return m.Counts{Passed: p, Failed: total.value - p, Total: total.value}
	case failed.ok:
		f := min(failed.value, total.value)
		return m.Counts{Passed: total.value - f, Failed: f, Total: total.value}
	default:
		return m.Counts{Passed: total.value, Total: total.value}
	}
}

// millis converts fractional milliseconds to a duration, clamping negatives
// to zero.
func millis(ms float64) time.Duration {
	if ms <= 0 {
		return 0
	}

	return time.Duration(ms * float64(time.Millisecond))
}

func cleanName(s string) string {
	return strings.TrimSpace(s)
}
