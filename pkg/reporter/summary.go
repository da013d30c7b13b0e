package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/mdxlint/internal/ui/pretty"
	"github.com/yaklabco/mdxlint/pkg/analysis"
	"github.com/yaklabco/mdxlint/pkg/config"
	"github.com/yaklabco/mdxlint/pkg/runner"
)

// SummaryReporter prints issue counts per rule and per file followed by the
// run totals, without individual diagnostics.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	report := analysis.Analyze(result, analysis.Options{SortBy: r.opts.SortBy, WorkingDir: r.opts.WorkingDir})

	if len(report.ByRule) > 0 {
		rows := make([][2]string, 0, len(report.ByRule))
		for _, rule := range report.ByRule {
			rows = append(rows, [2]string{
				config.FormatRuleID(r.opts.RuleFormat, rule.RuleID, rule.RuleName),
				r.countsCell(rule.Counts) + fmt.Sprintf(" in %d %s", len(rule.Files), plural(len(rule.Files), "file", "files")),
			})
		}
		r.writeSection("Issues by rule", rows)
	}

	if len(report.ByFile) > 0 {
		rows := make([][2]string, 0, len(report.ByFile))
		for _, file := range report.ByFile {
			rows = append(rows, [2]string{file.Path, r.countsCell(file.Counts)})
		}
		r.writeSection("Issues by file", rows)
	}

	var stats runner.Stats
	if result != nil {
		stats = result.Stats
	}
	fmt.Fprint(r.bw, r.styles.FormatSummary(stats))

	return report.Totals.Issues, nil
}

// writeSection prints a heading and two aligned columns. The first column is
// padded by display width so wide paths stay aligned.
func (r *SummaryReporter) writeSection(title string, rows [][2]string) {
	width := 0
	for _, row := range rows {
		width = max(width, runewidth.StringWidth(row[0]))
	}

	fmt.Fprintln(r.bw, r.styles.Heading.Render(title))
	for _, row := range rows {
		padding := strings.Repeat(" ", width-runewidth.StringWidth(row[0]))
		fmt.Fprintf(r.bw, "  %s%s  %s\n", r.styles.FilePath.Render(row[0]), padding, row[1])
	}
	fmt.Fprintln(r.bw)
}

// countsCell renders "3 issues (2 errors, 1 warning)".
func (r *SummaryReporter) countsCell(counts analysis.Counts) string {
	var parts []string
	if counts.Errors > 0 {
		parts = append(parts, r.styles.Error.Render(fmt.Sprintf("%d %s", counts.Errors, plural(counts.Errors, "error", "errors"))))
	}
	if counts.Warnings > 0 {
		parts = append(parts, r.styles.Warning.Render(fmt.Sprintf("%d %s", counts.Warnings, plural(counts.Warnings, "warning", "warnings"))))
	}
	if counts.Infos > 0 {
		parts = append(parts, r.styles.Info.Render(fmt.Sprintf("%d info", counts.Infos)))
	}

	cell := fmt.Sprintf("%d %s", counts.Issues, plural(counts.Issues, "issue", "issues"))
	if len(parts) > 0 {
		cell += " (" + strings.Join(parts, ", ") + ")"
	}
	return cell
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
