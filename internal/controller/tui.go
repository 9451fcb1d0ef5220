package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	m "qmetrics.dev/pkg/qmetrics/internal/model"
	"qmetrics.dev/pkg/qmetrics/internal/report"
)

// footerHeight is the number of lines the pager reserves for its help line.
const footerHeight = 2

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	mutedStyle  = lipgloss.NewStyle().Faint(true)
	boxStyle    = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			Padding(0, 1)
)

// TUI implements UI with lipgloss styling and a Bubble Tea pager for long output.
type TUI struct {
	output io.Writer
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// DisplayArtifacts prints a styled found/not-found line per artifact.
func (p *TUI) DisplayArtifacts(ctx context.Context, artifacts []m.ArtifactStatus) {
	if err := ctx.Err(); err != nil {
		return
	}

	var b strings.Builder

	b.WriteString(headerStyle.Render("ARTIFACTS"))
	b.WriteString("\n")

	for _, artifact := range artifacts {
		mark := passStyle.Render("✔")
		if !artifact.Found {
			mark = mutedStyle.Render("·")
		}

		fmt.Fprintf(&b, "  %s %-10s %s\n", mark, artifact.Kind, mutedStyle.Render(string(artifact.Path)))
	}

	b.WriteString("\n")

	_, _ = fmt.Fprint(p.output, b.String())
}

// DisplaySummary renders the summary straight to the output.
func (p *TUI) DisplaySummary(ctx context.Context, summary m.Summary, format report.Format) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if format != report.FormatTable {
		return report.EncodeSummary(p.output, summary, format)
	}

	_, err := fmt.Fprint(p.output, renderSummaryView(summary))

	return err
}

// BrowseSummary renders the summary; tables taller than the terminal open in a pager.
func (p *TUI) BrowseSummary(ctx context.Context, summary m.Summary, format report.Format) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if format != report.FormatTable {
		return report.EncodeSummary(p.output, summary, format)
	}

	content := renderSummaryView(summary)

	width, height, ok := p.terminalSize()
	if !ok || lipgloss.Height(content) <= height-footerHeight {
		_, err := fmt.Fprint(p.output, content)
		return err
	}

	program := tea.NewProgram(newPagerModel(content, width, height), tea.WithOutput(p.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run pager: %w", err)
	}

	return nil
}

// DisplayReportPaths lists the written files.
func (p *TUI) DisplayReportPaths(ctx context.Context, paths []m.Path) {
	if err := ctx.Err(); err != nil {
		return
	}

	for _, path := range paths {
		_, _ = fmt.Fprintf(p.output, "%s %s\n", mutedStyle.Render("wrote"), path)
	}
}

func (p *TUI) terminalSize() (int, int, bool) {
	f, ok := p.output.(*os.File)
	if !ok {
		return 0, 0, false
	}

	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil || height <= 0 {
		return 0, 0, false
	}

	return width, height, true
}

func renderSummaryView(summary m.Summary) string {
	var b strings.Builder

	status := verdictStyle(summary.Status.Overall).Render(strings.ToUpper(string(summary.Status.Overall)))
	dashboard := fmt.Sprintf("%s  %s\n%s %s\n%s %d/%d passed (%s)",
		headerStyle.Render("QUALITY GATE"), status,
		mutedStyle.Render("health"), fmt.Sprintf("%d/100", summary.Status.Health),
		mutedStyle.Render("tests "), summary.PassedTests, summary.TotalTests, percent(summary.PassRate))

	b.WriteString(boxStyle.Render(dashboard))
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render("LAYERS"))
	b.WriteString("\n")

	rows := layerRows(summary)
	if len(rows) == 0 {
		b.WriteString(mutedStyle.Render("  no test layers were run"))
		b.WriteString("\n")
	}

	for _, row := range rows {
		fmt.Fprintf(&b, "  %-15s %s passed  %s failed  %s total  %s  cov %s  defects %s\n",
			row[0], row[1], row[2], row[3], row[4], row[5], row[6])
	}

	b.WriteString("\n")
	b.WriteString(headerStyle.Render("GATES"))
	b.WriteString("\n")

	for _, row := range gateRows(summary) {
		verdict := m.Verdict(row[3])
		fmt.Fprintf(&b, "  %s %-10s %-18s %s\n",
			verdictStyle(verdict).Render(verdict.Icon()), row[0], row[1], mutedStyle.Render("target "+row[2]))
	}

	if len(summary.DefectList) > 0 {
		b.WriteString("\n")
		b.WriteString(headerStyle.Render("DEFECTS"))
		b.WriteString("\n")

		for i, defect := range summary.DefectList {
			fmt.Fprintf(&b, "  %2d. %s %s %s\n", i+1,
				severityStyle(defect.Severity).Render(string(defect.Severity)),
				defect.Name, mutedStyle.Render("("+defect.Type+")"))
		}
	}

	return b.String()
}

func verdictStyle(v m.Verdict) lipgloss.Style {
	switch v {
	case m.VerdictPass:
		return passStyle
	case m.VerdictWarn:
		return warnStyle
	default:
		return failStyle
	}
}

func severityStyle(s m.Severity) lipgloss.Style {
	switch s {
	case m.SeverityCritical:
		return failStyle.Bold(true)
	case m.SeverityHigh:
		return failStyle
	case m.SeverityMedium:
		return warnStyle
	default:
		return mutedStyle
	}
}

// pagerModel scrolls long summaries inside the terminal.
type pagerModel struct {
	viewport viewport.Model
	quitting bool
}

func newPagerModel(content string, width, height int) pagerModel {
	vp := viewport.New(width, max(height-footerHeight, 1))
	vp.SetContent(content)

	return pagerModel{viewport: vp}
}

func (pm pagerModel) Init() tea.Cmd {
	return nil
}

func (pm pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		pm.viewport.Width = msg.Width
		pm.viewport.Height = max(msg.Height-footerHeight, 1)

		return pm, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			pm.quitting = true
			return pm, tea.Quit
		}
	}

	var cmd tea.Cmd
	pm.viewport, cmd = pm.viewport.Update(msg)

	return pm, cmd
}

func (pm pagerModel) View() string {
	if pm.quitting {
		return ""
	}

	footer := mutedStyle.Render(fmt.Sprintf("↑/↓ scroll • q quit • %3.0f%%", pm.viewport.ScrollPercent()*100))

	return pm.viewport.View() + "\n\n" + footer
}
