// Package analysis aggregates lint results per rule and per file.
package analysis

import (
	"cmp"
	"path/filepath"
	"slices"

	"github.com/yaklabco/mdxlint/pkg/runner"
)

// tally accumulates one Report. Sets are kept as maps until the final sort.
type tally struct {
	rules     map[string]*RuleAnalysis
	files     map[string]*FileAnalysis
	ruleFiles map[string]map[string]struct{}
	fileRules map[string]map[string]struct{}
}

func newTally() *tally {
	return &tally{
		rules:     make(map[string]*RuleAnalysis),
		files:     make(map[string]*FileAnalysis),
		ruleFiles: make(map[string]map[string]struct{}),
		fileRules: make(map[string]map[string]struct{}),
	}
}

func (t *tally) file(path string) *FileAnalysis {
	fa, ok := t.files[path]
	if !ok {
		fa = &FileAnalysis{Path: path}
		t.files[path] = fa
		t.fileRules[path] = make(map[string]struct{})
	}
	return fa
}

func (t *tally) rule(id, name string) *RuleAnalysis {
	ra, ok := t.rules[id]
	if !ok {
		ra = &RuleAnalysis{RuleID: id, RuleName: name}
		t.rules[id] = ra
		t.ruleFiles[id] = make(map[string]struct{})
	}
	return ra
}

// Analyze builds a Report from result in a single pass over its diagnostics.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{}
	if result == nil {
		return report
	}

	t := newTally()

	for _, outcome := range result.Files {
		report.Totals.Files++

		if outcome.Error != nil {
			report.Totals.FilesErrored++
			continue
		}
		if outcome.Result == nil || outcome.Result.FileResult == nil || len(outcome.Result.Diagnostics) == 0 {
			continue
		}

		report.Totals.FilesWithIssues++
		path := displayPath(outcome.Path, opts.WorkingDir)
		fa := t.file(path)

		for _, diag := range outcome.Result.Diagnostics {
			report.Totals.add(diag.Severity)
			fa.add(diag.Severity)
			t.rule(diag.RuleID, diag.RuleName).add(diag.Severity)

			t.fileRules[path][diag.RuleID] = struct{}{}
			t.ruleFiles[diag.RuleID][path] = struct{}{}
		}
	}

	for id, ra := range t.rules {
		ra.Files = sortedKeys(t.ruleFiles[id])
		report.ByRule = append(report.ByRule, *ra)
	}
	for path, fa := range t.files {
		fa.Rules = sortedKeys(t.fileRules[path])
		report.ByFile = append(report.ByFile, *fa)
	}

	slices.SortFunc(report.ByRule, func(a, b RuleAnalysis) int {
		return compareEntries(opts.SortBy, a.Counts, b.Counts, a.RuleID, b.RuleID)
	})
	slices.SortFunc(report.ByFile, func(a, b FileAnalysis) int {
		return compareEntries(opts.SortBy, a.Counts, b.Counts, a.Path, b.Path)
	})

	return report
}

// compareEntries orders two entries by the sort field. Ties fall back to the
// key so output is stable across runs.
func compareEntries(sortBy SortField, a, b Counts, keyA, keyB string) int {
	var result int
	switch sortBy {
	case SortByAlpha:
	case SortBySeverity:
		result = cmp.Or(
			cmp.Compare(b.Errors, a.Errors),
			cmp.Compare(b.Warnings, a.Warnings),
			cmp.Compare(b.Issues, a.Issues),
		)
	default:
		result = cmp.Compare(b.Issues, a.Issues)
	}
	return cmp.Or(result, cmp.Compare(keyA, keyB))
}

func displayPath(path, workDir string) string {
	if workDir == "" {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
