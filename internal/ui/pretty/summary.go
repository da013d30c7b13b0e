package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/mdxlint/pkg/runner"
)

const summaryDividerWidth = 40

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 issues (2 errors, 1 warning) in 2 files".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var builder strings.Builder

	if stats.DiagnosticsTotal == 0 {
		builder.WriteString(s.Success.Render("No issues found"))
		builder.WriteString(s.Dim.Render(fmt.Sprintf(" (%d %s checked)",
			stats.FilesProcessed, plural(stats.FilesProcessed, "file", "files"))))
	} else {
		var severityParts []string
		if n := stats.Errors(); n > 0 {
			severityParts = append(severityParts, s.Error.Render(fmt.Sprintf("%d %s", n, plural(n, "error", "errors"))))
		}
		if n := stats.Warnings(); n > 0 {
			severityParts = append(severityParts, s.Warning.Render(fmt.Sprintf("%d %s", n, plural(n, "warning", "warnings"))))
		}
		if n := stats.DiagnosticsBySeverity["info"]; n > 0 {
			severityParts = append(severityParts, s.Info.Render(fmt.Sprintf("%d info", n)))
		}

		fmt.Fprintf(&builder, "%d %s", stats.DiagnosticsTotal, plural(stats.DiagnosticsTotal, "issue", "issues"))
		if len(severityParts) > 0 {
			builder.WriteString(" (" + strings.Join(severityParts, ", ") + ")")
		}
		fmt.Fprintf(&builder, " in %d %s", stats.FilesWithIssues, plural(stats.FilesWithIssues, "file", "files"))
	}

	if stats.FilesErrored > 0 {
		builder.WriteString(", " + s.Failure.Render(fmt.Sprintf("%d %s could not be linted",
			stats.FilesErrored, plural(stats.FilesErrored, "file", "files"))))
	}

	return builder.String() + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n" + s.SummaryTitle.Render("Summary") + "\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth) + "\n")

	row := func(label string, value string) {
		fmt.Fprintf(&builder, "  %-19s%s\n", label, value)
	}

	row("Files checked:", s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)))
	if stats.FilesWithIssues > 0 {
		row("Files with issues:", s.Failure.Render(strconv.Itoa(stats.FilesWithIssues)))
	}
	if stats.FilesErrored > 0 {
		row("Files errored:", s.Failure.Render(strconv.Itoa(stats.FilesErrored)))
	}

	builder.WriteString("\n")
	row("Total issues:", s.SummaryValue.Render(strconv.Itoa(stats.DiagnosticsTotal)))
	if n := stats.Errors(); n > 0 {
		row("  Errors:", s.Error.Render(strconv.Itoa(n)))
	}
	if n := stats.Warnings(); n > 0 {
		row("  Warnings:", s.Warning.Render(strconv.Itoa(n)))
	}
	if n := stats.DiagnosticsBySeverity["info"]; n > 0 {
		row("  Info:", s.Info.Render(strconv.Itoa(n)))
	}
	builder.WriteString("\n")

	switch {
	case stats.Errors() > 0 || stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Lint failed"))
	case stats.Warnings() > 0:
		builder.WriteString(s.Warning.Render("Lint completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Lint passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
