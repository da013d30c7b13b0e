package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/mdxlint/pkg/config"
	"github.com/yaklabco/mdxlint/pkg/lint"
)

// DiagnosticView carries what FormatDiagnostic needs beyond the diagnostic.
type DiagnosticView struct {
	// Path is the display path, usually relative to the working directory.
	Path string

	// SourceLine is the offending line without its newline. Empty hides context.
	SourceLine string

	RuleFormat config.RuleFormat

	// Compact renders a single line per diagnostic.
	Compact bool
}

// FormatDiagnostic formats a single diagnostic for terminal output.
func (s *Styles) FormatDiagnostic(diag *lint.Diagnostic, view DiagnosticView) string {
	path := view.Path
	if path == "" {
		path = diag.FilePath
	}

	ruleIdentifier := config.FormatRuleID(view.RuleFormat, diag.RuleID, diag.RuleName)

	if view.Compact {
		return fmt.Sprintf("%s:%d:%d: %s %s %s\n",
			path, diag.StartLine, diag.StartColumn,
			s.FormatSeverity(diag.Severity),
			s.Message.Render(diag.Message),
			s.RuleID.Render("("+ruleIdentifier+")"),
		)
	}

	var builder strings.Builder

	location := s.Location.Render(fmt.Sprintf("%d:%d", diag.StartLine, diag.StartColumn))
	fmt.Fprintf(&builder, "  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(diag.Severity),
		s.Message.Render(diag.Message),
		s.RuleID.Render(ruleIdentifier),
	)

	if view.SourceLine != "" {
		builder.WriteString(s.FormatSourceContext(view.SourceLine, diag.StartLine, diag.StartColumn))
	}

	if diag.Suggestion != "" {
		builder.WriteString("    " + s.Dim.Render("hint:") + " " +
			s.Suggestion.Render(diag.Suggestion) + "\n")
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// tabWidth matches lipgloss's tab expansion.
const tabWidth = 4

// FormatSourceContext renders the source line behind a line-number gutter
// with a caret under the byte column. Wide runes such as CJK text and emoji
// take two cells, so the caret padding is measured in display cells.
func (s *Styles) FormatSourceContext(line string, lineNum, column int) string {
	var builder strings.Builder

	gutter := strconv.Itoa(lineNum)
	blank := strings.Repeat(" ", len(gutter))
	expanded := strings.ReplaceAll(line, "\t", strings.Repeat(" ", tabWidth))

	builder.WriteString("    " + s.Gutter.Render(gutter+" |") + " " + s.SourceLine.Render(expanded) + "\n")

	if column > 0 {
		builder.WriteString("    " + s.Gutter.Render(blank+" |") + " " +
			caretPadding(line, column) + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// caretPadding returns the spaces that put a caret under the given 1-based
// byte column of line.
func caretPadding(line string, column int) string {
	prefix := line[:min(column-1, len(line))]

	var builder strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			builder.WriteString(strings.Repeat(" ", tabWidth))
			continue
		}
		builder.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", issueCount, plural(issueCount, "issue", "issues")))
	}
	return header
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
