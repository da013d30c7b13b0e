package analysis_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdxlint/pkg/analysis"
	"github.com/yaklabco/mdxlint/pkg/config"
	"github.com/yaklabco/mdxlint/pkg/lint"
	"github.com/yaklabco/mdxlint/pkg/runner"
)

func stepsDiag(sev config.Severity) lint.Diagnostic {
	return lint.Diagnostic{RuleID: "MDX001", RuleName: "steps-children", Severity: sev}
}

func tabsDiag(sev config.Severity) lint.Diagnostic {
	return lint.Diagnostic{RuleID: "MDX002", RuleName: "tabs-structure", Severity: sev}
}

func outcome(path string, diags ...lint.Diagnostic) runner.FileOutcome {
	return runner.FileOutcome{
		Path:   path,
		Result: &lint.PipelineResult{Path: path, FileResult: &lint.FileResult{Diagnostics: diags}},
	}
}

func sampleResult() *runner.Result {
	return &runner.Result{Files: []runner.FileOutcome{
		outcome("/docs/a.mdx",
			stepsDiag(config.SeverityError),
			stepsDiag(config.SeverityError),
			tabsDiag(config.SeverityWarning),
		),
		outcome("/docs/b.mdx", tabsDiag(config.SeverityWarning)),
		outcome("/docs/c.mdx"),
		outcome("/docs/d.mdx", tabsDiag(config.SeverityInfo), tabsDiag("")),
		{Path: "/docs/e.mdx", Error: errors.New("parse failure")},
	}}
}

func TestAnalyze_Nil(t *testing.T) {
	t.Parallel()

	report := analysis.Analyze(nil, analysis.DefaultOptions())
	require.NotNil(t, report)
	assert.Zero(t, report.Totals)
	assert.Empty(t, report.ByRule)
	assert.Empty(t, report.ByFile)
}

func TestAnalyze_Totals(t *testing.T) {
	t.Parallel()

	report := analysis.Analyze(sampleResult(), analysis.DefaultOptions())

	assert.Equal(t, analysis.Totals{
		Counts:          analysis.Counts{Issues: 6, Errors: 2, Warnings: 3, Infos: 1},
		Files:           5,
		FilesWithIssues: 3,
		FilesErrored:    1,
	}, report.Totals)
}

func TestAnalyze_ByRule(t *testing.T) {
	t.Parallel()

	report := analysis.Analyze(sampleResult(), analysis.Options{WorkingDir: "/docs"})
	require.Len(t, report.ByRule, 2)

	tabs := report.ByRule[0]
	assert.Equal(t, "MDX002", tabs.RuleID)
	assert.Equal(t, "tabs-structure", tabs.RuleName)
	assert.Equal(t, analysis.Counts{Issues: 4, Warnings: 3, Infos: 1}, tabs.Counts)
	assert.Equal(t, []string{"a.mdx", "b.mdx", "d.mdx"}, tabs.Files)

	steps := report.ByRule[1]
	assert.Equal(t, "MDX001", steps.RuleID)
	assert.Equal(t, analysis.Counts{Issues: 2, Errors: 2}, steps.Counts)
	assert.Equal(t, []string{"a.mdx"}, steps.Files)
}

func TestAnalyze_ByFile(t *testing.T) {
	t.Parallel()

	report := analysis.Analyze(sampleResult(), analysis.Options{WorkingDir: "/docs"})
	require.Len(t, report.ByFile, 3)

	assert.Equal(t, "a.mdx", report.ByFile[0].Path)
	assert.Equal(t, []string{"MDX001", "MDX002"}, report.ByFile[0].Rules)
	assert.Equal(t, "d.mdx", report.ByFile[1].Path)
	assert.Equal(t, "b.mdx", report.ByFile[2].Path)
}

func TestAnalyze_Sorting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		sortBy    analysis.SortField
		wantRules []string
		wantFiles []string
	}{
		{
			sortBy:    analysis.SortByCount,
			wantRules: []string{"MDX002", "MDX001"},
			wantFiles: []string{"a.mdx", "d.mdx", "b.mdx"},
		},
		{
			sortBy:    analysis.SortByAlpha,
			wantRules: []string{"MDX001", "MDX002"},
			wantFiles: []string{"a.mdx", "b.mdx", "d.mdx"},
		},
		{
			sortBy:    analysis.SortBySeverity,
			wantRules: []string{"MDX001", "MDX002"},
			wantFiles: []string{"a.mdx", "d.mdx", "b.mdx"},
		},
	}

	for _, testCase := range tests {
		t.Run(string(testCase.sortBy), func(t *testing.T) {
			t.Parallel()

			report := analysis.Analyze(sampleResult(), analysis.Options{SortBy: testCase.sortBy, WorkingDir: "/docs"})

			var rules, files []string
			for _, ra := range report.ByRule {
				rules = append(rules, ra.RuleID)
			}
			for _, fa := range report.ByFile {
				files = append(files, fa.Path)
			}
			assert.Equal(t, testCase.wantRules, rules)
			assert.Equal(t, testCase.wantFiles, files)
		})
	}
}

func TestSortField_IsValid(t *testing.T) {
	t.Parallel()

	for _, f := range analysis.SortFields() {
		assert.True(t, f.IsValid(), "sort field %q", f)
	}
	assert.False(t, analysis.SortField("random").IsValid())
	assert.False(t, analysis.SortField("").IsValid())
	assert.Equal(t, "count, alpha, severity", analysis.SortFieldList())
}

func TestAnalyze_EmptySortRanksByCount(t *testing.T) {
	t.Parallel()

	byCount := analysis.Analyze(sampleResult(), analysis.DefaultOptions())
	unset := analysis.Analyze(sampleResult(), analysis.Options{})
	assert.Equal(t, byCount.ByRule, unset.ByRule)
	assert.Equal(t, byCount.ByFile, unset.ByFile)
}
