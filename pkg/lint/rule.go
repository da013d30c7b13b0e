// Package lint runs component rules over parsed MDX files and collects their
// diagnostics.
package lint

import (
	"github.com/yaklabco/mdxlint/pkg/config"
	"github.com/yaklabco/mdxlint/pkg/mdast"
)

// Diagnostic is one issue reported by a rule.
type Diagnostic struct {
	RuleID string

	// RuleName is the kebab-case name, e.g. "steps-children".
	RuleName string

	Message  string
	Severity config.Severity
	FilePath string

	// 1-based positions.
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int

	// Suggestion is an optional hint on how to resolve the issue.
	Suggestion string
}

// SourcePosition returns the diagnostic range.
func (d *Diagnostic) SourcePosition() mdast.SourcePosition {
	return mdast.SourcePosition{
		StartLine:   d.StartLine,
		StartColumn: d.StartColumn,
		EndLine:     d.EndLine,
		EndColumn:   d.EndColumn,
	}
}

// Rule is a single check run against every file.
type Rule interface {
	// ID is the stable identifier, e.g. "MDX001".
	ID() string
	Name() string
	Description() string
	DefaultEnabled() bool
	DefaultSeverity() config.Severity
	Tags() []string

	// Apply returns one diagnostic per violation. Errors are reserved for
	// internal failures; rules should stop early once ctx.Cancelled().
	Apply(ctx *RuleContext) ([]Diagnostic, error)
}
