package analysis

import "github.com/yaklabco/mdxlint/pkg/config"

// Report breaks a lint run down by rule and by file.
type Report struct {
	// ByRule has one entry per rule that reported at least once.
	ByRule []RuleAnalysis

	// ByFile has one entry per file with at least one diagnostic.
	ByFile []FileAnalysis

	Totals Totals
}

// Counts tallies diagnostics by severity.
type Counts struct {
	Issues   int
	Errors   int
	Warnings int
	Infos    int
}

// add records one diagnostic. An empty severity counts as a warning, as it
// does everywhere else diagnostics are reported.
func (c *Counts) add(severity config.Severity) {
	c.Issues++
	switch severity {
	case config.SeverityError:
		c.Errors++
	case config.SeverityInfo:
		c.Infos++
	default:
		c.Warnings++
	}
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Counts

	Files           int
	FilesWithIssues int
	FilesErrored    int
}

// FileAnalysis contains aggregated data for a single file.
type FileAnalysis struct {
	Counts

	Path string

	// Rules holds the IDs of the rules that fired, sorted.
	Rules []string
}

// RuleAnalysis contains aggregated data for a single rule.
type RuleAnalysis struct {
	Counts

	RuleID   string
	RuleName string

	// Files holds the display paths the rule fired in, sorted.
	Files []string
}
