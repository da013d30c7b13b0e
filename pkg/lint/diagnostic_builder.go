package lint

import (
	"bytes"

	"github.com/yaklabco/mdxlint/pkg/components"
	"github.com/yaklabco/mdxlint/pkg/config"
	"github.com/yaklabco/mdxlint/pkg/mdast"
)

// DiagnosticBuilder assembles a Diagnostic step by step.
type DiagnosticBuilder struct {
	diag Diagnostic
}

// NewDiagnosticAt starts a diagnostic at an explicit position.
func NewDiagnosticAt(ruleID, filePath string, pos mdast.SourcePosition, message string) *DiagnosticBuilder {
	b := &DiagnosticBuilder{diag: Diagnostic{RuleID: ruleID, Message: message, FilePath: filePath}}
	b.at(pos)
	return b
}

// NewDiagnostic starts a diagnostic spanning node. A nil or detached node
// leaves the position zero.
func NewDiagnostic(ruleID string, node *mdast.Node, message string) *DiagnosticBuilder {
	b := &DiagnosticBuilder{diag: Diagnostic{RuleID: ruleID, Message: message}}
	if node != nil && node.File != nil {
		b.diag.FilePath = node.File.Path
	}
	b.at(node.SourcePosition())
	return b
}

// FromComponent starts a diagnostic for a finding of the component checks.
// Element findings span only their first line, so a multi-line container
// is underlined at its opening tag rather than across its whole body.
func FromComponent(ruleID string, d components.Diagnostic) *DiagnosticBuilder {
	b := NewDiagnostic(ruleID, d.Node, d.Reason)
	if d.Line > 0 {
		b.diag.StartLine = d.Line
	}

	if d.Node == nil || d.Node.Kind != mdast.NodeElement || b.diag.EndLine <= b.diag.StartLine {
		return b
	}

	line := bytes.TrimRight(d.Node.File.LineContent(b.diag.StartLine), " \t")
	b.diag.EndLine = b.diag.StartLine
	b.diag.EndColumn = len(line) + 1
	return b
}

func (b *DiagnosticBuilder) at(pos mdast.SourcePosition) {
	b.diag.StartLine, b.diag.StartColumn = pos.StartLine, pos.StartColumn
	b.diag.EndLine, b.diag.EndColumn = pos.EndLine, pos.EndColumn
}

// WithRuleName sets the rule's human-readable name.
func (b *DiagnosticBuilder) WithRuleName(name string) *DiagnosticBuilder {
	b.diag.RuleName = name
	return b
}

// WithSeverity sets the severity. Engine.LintFile replaces it with the
// resolved rule severity.
func (b *DiagnosticBuilder) WithSeverity(s config.Severity) *DiagnosticBuilder {
	b.diag.Severity = s
	return b
}

// WithSuggestion sets a hint on how to resolve the issue.
func (b *DiagnosticBuilder) WithSuggestion(s string) *DiagnosticBuilder {
	b.diag.Suggestion = s
	return b
}

// Build returns the diagnostic.
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.diag
}
