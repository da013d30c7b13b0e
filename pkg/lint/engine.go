package lint

import (
	"context"
	"fmt"

	"github.com/yaklabco/mdxlint/pkg/config"
	"github.com/yaklabco/mdxlint/pkg/mdast"
)

// FileResult is the outcome of linting one file.
type FileResult struct {
	Snapshot *mdast.FileSnapshot

	Diagnostics []Diagnostic

	// RuleErrors maps rule IDs to internal failures. A failing rule does not
	// stop the others.
	RuleErrors map[string]error
}

// HasIssues returns true if any diagnostics were found.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Diagnostics) > 0
}

// IssueCount returns the total number of diagnostics.
func (fr *FileResult) IssueCount() int {
	return len(fr.Diagnostics)
}

// CountBySeverity returns how many diagnostics have severity s.
func (fr *FileResult) CountBySeverity(s config.Severity) int {
	count := 0
	for i := range fr.Diagnostics {
		if fr.Diagnostics[i].Severity == s {
			count++
		}
	}
	return count
}

// Engine coordinates parsing and rule execution.
type Engine struct {
	Parser   Parser
	Registry *Registry
}

// NewEngine creates a new Engine with the given parser and registry.
func NewEngine(parser Parser, registry *Registry) *Engine {
	return &Engine{
		Parser:   parser,
		Registry: registry,
	}
}

// LintFile parses content and runs every enabled rule against it.
// A parse failure is returned as an error and no rules run.
func (e *Engine) LintFile(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
) (*FileResult, error) {
	snapshot, err := e.Parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	result := &FileResult{
		Snapshot:   snapshot,
		RuleErrors: make(map[string]error),
	}

	cache := newNodeCache()

	for _, rr := range ResolveRules(e.Registry, cfg) {
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("linting cancelled: %w", ctx.Err())
		default:
		}

		ruleCtx := NewRuleContext(ctx, snapshot, cfg, rr.Config).withCache(cache)
		ruleCtx.Registry = e.Registry

		diags, err := rr.Rule.Apply(ruleCtx)
		if err != nil {
			result.RuleErrors[rr.Rule.ID()] = err
			continue
		}

		for i := range diags {
			diags[i].Severity = rr.Severity
			if diags[i].FilePath == "" {
				diags[i].FilePath = path
			}
			if diags[i].RuleID == "" {
				diags[i].RuleID = rr.Rule.ID()
			}
			if diags[i].RuleName == "" {
				diags[i].RuleName = rr.Rule.Name()
			}
		}

		result.Diagnostics = append(result.Diagnostics, diags...)
	}

	return result, nil
}
