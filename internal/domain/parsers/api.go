package parsers

import (
	"regexp"
	"strconv"
	"strings"

	m "qmetrics.dev/pkg/qmetrics/internal/model"
)

// APIReport is the subset of a Newman JSON run report that the API parser
// reads.
type APIReport struct {
	Run APIRun `json:"run"`
}

// APIRun holds the run statistics, timings and per-request executions.
type APIRun struct {
	Stats      APIStats       `json:"stats"`
	Timings    *APITimings    `json:"timings,omitempty"`
	Executions []APIExecution `json:"executions,omitempty"`
}

// APIStats holds request and assertion totals.
type APIStats struct {
	Requests   APIStat `json:"requests"`
	Assertions APIStat `json:"assertions"`
}

// APIStat is an executed/failed pair.
type APIStat struct {
	Total  int `json:"total"`
	Failed int `json:"failed"`
}

// APITimings holds run start and end as epoch milliseconds.
type APITimings struct {
	Started   float64 `json:"started"`
	Completed float64 `json:"completed"`
}

// APIExecution is one request of the collection with its assertions.
type APIExecution struct {
	Item       APIItem        `json:"item"`
	Assertions []APIAssertion `json:"assertions,omitempty"`
}

// APIItem names the collection item.
type APIItem struct {
	Name string `json:"name"`
}

// APIAssertion is one test assertion; Error is set when it failed.
type APIAssertion struct {
	Assertion string    `json:"assertion"`
	Error     *APIError `json:"error,omitempty"`
}

// APIError carries the assertion failure message.
type APIError struct {
	Message string `json:"message"`
}

var (
	apiRequestsRowRegex   = regexp.MustCompile(`[│|]\s+requests\s+[│|]\s+(\d+)\s+[│|]\s+(\d+)\s+[│|]`)
	apiAssertionsRowRegex = regexp.MustCompile(`[│|]\s+assertions\s+[│|]\s+(\d+)\s+[│|]\s+(\d+)\s+[│|]`)
	apiDurationRegex      = regexp.MustCompile(`total run duration: (\d+)ms`)
	apiFailureRegex       = regexp.MustCompile(`✖\s+(.+)`)
)

const (
	apiAssertionDefectType = "API Assertion Failure"
	apiTextDefectType      = "API Test Failure"
)

// ParseAPI normalizes a Newman run. The structured report wins when present;
// otherwise the CLI text report is parsed. Layer counts are assertion counts.
// It returns false when neither input is present.
func ParseAPI(report string, run *APIReport) (m.LayerResult, bool) {
	if run != nil {
		return parseAPIRun(run.Run), true
	}

	if report == "" {
		return m.LayerResult{}, false
	}

	return parseAPIText(stripANSI(report)), true
}

func parseAPIRun(run APIRun) m.LayerResult {
	requests := executedFailed(run.Stats.Requests.Total, run.Stats.Requests.Failed)
	result := m.LayerResult{
		Layer:    m.LayerAPI,
		Counts:   executedFailed(run.Stats.Assertions.Total, run.Stats.Assertions.Failed),
		Requests: &requests,
		Defects:  []m.Defect{},
	}

	if run.Timings != nil {
		result.Duration = millis(run.Timings.Completed - run.Timings.Started)
	}

	for _, execution := range run.Executions {
		for _, assertion := range execution.Assertions {
			if assertion.Error == nil {
				continue
			}

			result.Defects = append(result.Defects, m.Defect{
				Type:     apiAssertionDefectType,
				Name:     assertionName(execution.Item.Name, assertion.Assertion),
				Severity: m.SeverityHigh,
				Category: m.CategoryAPI,
				Details:  assertion.Error.Message,
			})
		}
	}

	return result
}

func parseAPIText(content string) m.LayerResult {
	result := m.LayerResult{Layer: m.LayerAPI}

	if counts, ok := tableRow(apiRequestsRowRegex, content); ok {
		result.Requests = &counts
	}

	if counts, ok := tableRow(apiAssertionsRowRegex, content); ok {
		result.Counts = counts
	}

	if ms := matchInt(apiDurationRegex, content); ms.ok {
		result.Duration = millis(float64(ms.value))
	}

	result.Defects = collectDefects(apiFailureRegex, content, func(match []string) m.Defect {
		return m.Defect{
			Type:     apiTextDefectType,
			Name:     cleanName(match[1]),
			Severity: m.SeverityHigh,
			Category: m.CategoryAPI,
		}
	})

	return result
}

// tableRow reads the executed and failed columns of a Newman summary row.
func tableRow(re *regexp.Regexp, content string) (m.Counts, bool) {
	match := re.FindStringSubmatch(content)
	if len(match) < 3 {
		return m.Counts{}, false
	}

	executed, _ := strconv.Atoi(match[1])
	failed, _ := strconv.Atoi(match[2])

	return executedFailed(executed, failed), true
}

// executedFailed derives passed from an executed/failed pair. Failures
// beyond the executed total are capped so the counts stay consistent.
func executedFailed(executed, failed int) m.Counts {
	executed = max(executed, 0)
	failed = min(max(failed, 0), executed)

	return m.Counts{Passed: executed - failed, Failed: failed, Total: executed}
}

func assertionName(item, assertion string) string {
	item = strings.TrimSpace(item)
	assertion = strings.TrimSpace(assertion)

	switch {
	case item == "":
		return assertion
	case assertion == "":
		return item
	default:
		return item + " - " + assertion
	}
}
