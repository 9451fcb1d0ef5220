package report

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	m "qmetrics.dev/pkg/qmetrics/internal/model"
)

var severityIcons = map[m.Severity]string{
	m.SeverityCritical: "🔴",
	m.SeverityHigh:     "🟠",
	m.SeverityMedium:   "🟡",
	m.SeverityLow:      "🟢",
}

var titleCase = cases.Title(language.English)

// RenderMarkdown formats the document as a Markdown report.
func RenderMarkdown(doc Document) []byte {
	var buf bytes.Buffer

	renderHeader(&buf, doc)
	renderExecutive(&buf, doc.Executive)
	renderCoverage(&buf, doc.Coverage)
	renderDurations(&buf, doc.Durations)
	renderPassFail(&buf, doc.PassFail)
	renderDefects(&buf, doc.Defects)
	renderGates(&buf, doc.Gates, doc.Overall)
	renderRecommendations(&buf, doc.Recommendations)
	renderArtifacts(&buf, doc.Artifacts)

	fmt.Fprintf(&buf, "---\n\n**Report Generated by**: qmetrics  \n**Timestamp**: %s\n",
		formatTimestamp(doc.Header.Timestamp))

	return buf.Bytes()
}

func renderHeader(buf *bytes.Buffer, doc Document) {
	buf.WriteString("# Test Automation Metrics Report\n\n")
	fmt.Fprintf(buf, "**Generated**: %s  \n", formatTimestamp(doc.Header.Timestamp))
	fmt.Fprintf(buf, "**Status**: %s  \n", overallLabel(doc.Header.Overall))
	fmt.Fprintf(buf, "**Build Health**: %d/100\n\n---\n\n", doc.Header.Health)
}

func renderExecutive(buf *bytes.Buffer, ex ExecutiveSummary) {
	buf.WriteString("## Executive Summary\n\n")
	writeTable(buf, []string{"Metric", "Value", "Status"}, [][]string{
		{"Overall Status", overallLabel(ex.Gates.Overall), ex.Gates.Overall.Icon()},
		{"Test Pass Rate", fmt.Sprintf("%.2f%% (%d/%d)", ex.PassRate, ex.PassedTests, ex.TotalTests), ex.Gates.PassRate.Icon()},
		{"Code Coverage", fmt.Sprintf("%.2f%%", ex.Coverage), ex.Gates.Coverage.Icon()},
		{"Total Duration", formatSeconds(ex.Duration), ex.Gates.Duration.Icon()},
		{"Defects Found", strconv.Itoa(ex.Defects), ex.Gates.Defects.Icon()},
	})
	buf.WriteString("\n---\n\n")
}

func renderCoverage(buf *bytes.Buffer, cov CoverageSection) {
	buf.WriteString("## 1. Code Coverage Analysis\n\n")
	writeTable(buf, []string{"Component", "Coverage", "Status", "Target"}, [][]string{
		{"**Overall**", fmt.Sprintf("**%.2f%%**", cov.Coverage), cov.Verdict.Icon(), "≥" + formatNumber(cov.Threshold) + "%"},
	})

	if cov.Detail != "" {
		buf.WriteString("\n### Coverage Breakdown (from Unit Tests)\n\n```\n")
		buf.WriteString(cov.Detail)
		buf.WriteString("\n```\n")
	}

	buf.WriteString("\n---\n\n")
}

func renderDurations(buf *bytes.Buffer, dur DurationSection) {
	buf.WriteString("## 2. Test Execution Time\n\n")

	rows := make([][]string, 0, len(dur.Rows)+1)
	for _, row := range dur.Rows {
		rows = append(rows, []string{
			"**" + row.Layer.Label() + "**",
			formatSeconds(row.Duration),
			row.Verdict.Icon(),
			fmt.Sprintf("%.1f%%", row.Share),
		})
	}

	totalShare := "100%"
	if len(dur.Rows) == 0 {
		totalShare = "0%"
	}

	rows = append(rows, []string{"**TOTAL**", "**" + formatSeconds(dur.Total) + "**", dur.Verdict.Icon(), totalShare})
	writeTable(buf, []string{"Test Layer", "Duration", "Status", "% of Total"}, rows)

	state := "Within acceptable range"
	if dur.Verdict != m.VerdictPass {
		state = "Exceeds threshold"
	}

	fmt.Fprintf(buf, "\n**Performance Status**: %s (Target: ≤%s)\n\n---\n\n", state, formatSeconds(dur.Limit))
}

func renderPassFail(buf *bytes.Buffer, pf PassFailSection) {
	buf.WriteString("## 3. Pass/Fail Rate Analysis\n\n### Overall Results\n\n")
	fmt.Fprintf(buf, "- **Total Tests**: %d\n", pf.Total)
	fmt.Fprintf(buf, "- **Passed**: %d %s\n", pf.Passed, pf.Verdict.Icon())
	fmt.Fprintf(buf, "- **Failed**: %d\n", pf.Failed)
	fmt.Fprintf(buf, "- **Pass Rate**: **%.2f%%**\n", pf.PassRate)
	fmt.Fprintf(buf, "- **Target**: ≥%s%%\n\n", formatNumber(pf.Threshold))

	buf.WriteString("### Breakdown by Test Layer\n\n")

	if len(pf.Rows) > 0 {
		rows := make([][]string, 0, len(pf.Rows))
		for _, row := range pf.Rows {
			secondary := "-"
			if row.Secondary != nil {
				secondary = fmt.Sprintf("%d/%d %s", row.Secondary.Passed, row.Secondary.Total, row.SecondaryLabel)
			}

			rows = append(rows, []string{
				"**" + row.Layer.Label() + "**",
				strconv.Itoa(row.Counts.Passed),
				strconv.Itoa(row.Counts.Failed),
				strconv.Itoa(row.Counts.Total),
				fmt.Sprintf("%.1f%%", row.Counts.PassRate()),
				secondary,
				row.Verdict.Icon(),
			})
		}

		writeTable(buf, []string{"Layer", "Passed", "Failed", "Total", "Pass Rate", "Detail", "Status"}, rows)
		buf.WriteString("\n")
	}

	if len(pf.NotRun) > 0 {
		labels := make([]string, 0, len(pf.NotRun))
		for _, layer := range pf.NotRun {
			labels = append(labels, layer.Label())
		}

		fmt.Fprintf(buf, "**Not run**: %s\n\n", strings.Join(labels, ", "))
	}

	buf.WriteString("---\n\n")
}

func renderDefects(buf *bytes.Buffer, def DefectsSection) {
	buf.WriteString("## 4. Defects Analysis\n\n### Summary\n\n")
	fmt.Fprintf(buf, "- **Total Defects**: %d\n", def.Summary.Total)

	for _, tally := range []struct {
		severity m.Severity
		count    int
	}{
		{m.SeverityCritical, def.Summary.Critical},
		{m.SeverityHigh, def.Summary.High},
		{m.SeverityMedium, def.Summary.Medium},
		{m.SeverityLow, def.Summary.Low},
	} {
		fmt.Fprintf(buf, "- **%s**: %d %s\n", severityLabel(tally.severity), tally.count, severityIcons[tally.severity])
	}

	buf.WriteString("\n### Defects by Category\n\n")

	rows := make([][]string, 0, len(def.Categories))
	for _, cat := range def.Categories {
		rows = append(rows, []string{string(cat.Category), strconv.Itoa(cat.Count), fmt.Sprintf("%.1f%%", cat.Share)})
	}

	writeTable(buf, []string{"Category", "Count", "Percentage"}, rows)

	if len(def.List) == 0 {
		buf.WriteString("\n### No Defects Found\n\nAll tests passed successfully.\n\n---\n\n")
		return
	}

	buf.WriteString("\n### Detailed Defect List\n\n")

	rows = make([][]string, 0, len(def.List))
	for i, defect := range def.List {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strings.TrimSpace(severityIcons[defect.Severity] + " " + string(defect.Severity)),
			defect.Type,
			escapeCell(defect.Name),
			string(defect.Category),
			escapeCell(defect.Details),
		})
	}

	writeTable(buf, []string{"#", "Severity", "Type", "Name", "Category", "Details"}, rows)
	buf.WriteString("\n---\n\n")
}

func renderGates(buf *bytes.Buffer, gates []GateRow, overall m.Verdict) {
	buf.WriteString("## 5. Quality Gates Status\n\n")

	rows := make([][]string, 0, len(gates))
	for _, gate := range gates {
		rows = append(rows, []string{"**" + gate.Name + "**", gate.Threshold, gate.Actual, gate.Verdict.Icon()})
	}

	writeTable(buf, []string{"Gate", "Threshold", "Actual", "Status"}, rows)
	fmt.Fprintf(buf, "\n**Overall Quality Gate**: %s\n\n---\n\n", overallLabel(overall))
}

func renderRecommendations(buf *bytes.Buffer, recs []Recommendation) {
	buf.WriteString("## 6. Recommendations\n\n")

	for _, rec := range recs {
		fmt.Fprintf(buf, "- %s **%s** %s\n", rec.Icon, rec.Headline, rec.Advice)
	}

	buf.WriteString("\n---\n\n")
}

func renderArtifacts(buf *bytes.Buffer, artifacts []m.ArtifactStatus) {
	buf.WriteString("## 7. Artifacts\n\n")

	if len(artifacts) == 0 {
		buf.WriteString("No artifacts configured.\n\n")
		return
	}

	rows := make([][]string, 0, len(artifacts))
	for _, artifact := range artifacts {
		state := "missing"
		if artifact.Found {
			state = "found"
		}

		rows = append(rows, []string{string(artifact.Kind), "`" + string(artifact.Path) + "`", state})
	}

	writeTable(buf, []string{"Artifact", "Path", "State"}, rows)
	buf.WriteString("\n")
}

// writeTable renders a GitHub-flavoured Markdown table.
func writeTable(buf *bytes.Buffer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(buf)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk(rows)
	table.Render()
}

func overallLabel(v m.Verdict) string {
	if v == m.VerdictPass {
		return v.Icon() + " PASSED"
	}

	return m.VerdictFail.Icon() + " FAILED"
}

func severityLabel(s m.Severity) string {
	return titleCase.String(string(s))
}

func formatTimestamp(ts time.Time) string {
	return ts.UTC().Format(time.RFC3339)
}

// escapeCell keeps free text from breaking the table layout.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}
