package rules

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdxlint/pkg/config"
	"github.com/yaklabco/mdxlint/pkg/lint"
	"github.com/yaklabco/mdxlint/pkg/parser/mdx"
)

// update rewrites the expected files instead of comparing.
// Usage: go test ./pkg/lint/rules/... -run TestGolden -update.
var update = flag.Bool("update", false, "update golden files")

// goldenCase is one testdata/<dir>/<name>.input.mdx file.
type goldenCase struct {
	Name          string
	InputPath     string
	DiagsJSONPath string

	// RuleID limits the run to one rule; empty runs every rule.
	RuleID string
}

// diagExpectation is the stored form of a diagnostic.
type diagExpectation struct {
	Rule       string `json:"rule"`
	Name       string `json:"name"`
	Line       int    `json:"line"`
	Column     int    `json:"column"`
	Message    string `json:"message"`
	Severity   string `json:"severity"`
	Suggestion string `json:"suggestion,omitempty"`
}

func diagFromLint(d lint.Diagnostic) diagExpectation {
	return diagExpectation{
		Rule:       d.RuleID,
		Name:       d.RuleName,
		Line:       d.StartLine,
		Column:     d.StartColumn,
		Message:    d.Message,
		Severity:   string(d.Severity),
		Suggestion: d.Suggestion,
	}
}

func testdataDir(t *testing.T) string {
	t.Helper()

	_, filename, _, ok := runtime.Caller(0)
	require.True(t, ok, "locate test file")

	return filepath.Join(filepath.Dir(filename), "testdata")
}

// discoverGoldenCases finds every *.input.mdx below baseDir. Directories named
// after a rule ID run only that rule.
func discoverGoldenCases(t *testing.T, baseDir string) []goldenCase {
	t.Helper()

	entries, err := os.ReadDir(baseDir)
	require.NoError(t, err)

	var cases []goldenCase
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		dir := entry.Name()
		ruleID := ""
		if strings.HasPrefix(dir, "MDX") {
			ruleID = dir
		}

		inputs, err := filepath.Glob(filepath.Join(baseDir, dir, "*.input.mdx"))
		require.NoError(t, err)

		for _, input := range inputs {
			base := strings.TrimSuffix(filepath.Base(input), ".input.mdx")
			cases = append(cases, goldenCase{
				Name:          filepath.Join(dir, base),
				InputPath:     input,
				DiagsJSONPath: filepath.Join(baseDir, dir, base+".diags.json"),
				RuleID:        ruleID,
			})
		}
	}

	return cases
}

func TestGolden(t *testing.T) {
	cases := discoverGoldenCases(t, testdataDir(t))
	require.NotEmpty(t, cases)

	registry := lint.NewRegistry()
	RegisterAll(registry)

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			cfg := config.NewConfig()
			if tc.RuleID != "" {
				for _, id := range registry.IDs() {
					if id != tc.RuleID {
						cfg.DisableRules = append(cfg.DisableRules, id)
					}
				}
			}

			content, err := os.ReadFile(tc.InputPath)
			require.NoError(t, err)

			engine := lint.NewEngine(mdx.New(mdx.FlavorGFM), registry)
			result, err := engine.LintFile(context.Background(), filepath.Base(tc.InputPath), content, cfg)
			require.NoError(t, err)
			require.Empty(t, result.RuleErrors)

			got := make([]diagExpectation, 0, len(result.Diagnostics))
			for _, d := range result.Diagnostics {
				got = append(got, diagFromLint(d))
			}

			if *update {
				data, err := json.MarshalIndent(got, "", "  ")
				require.NoError(t, err)
				require.NoError(t, os.WriteFile(tc.DiagsJSONPath, append(data, '\n'), 0o644))
				t.Logf("updated %s", tc.DiagsJSONPath)
				return
			}

			data, err := os.ReadFile(tc.DiagsJSONPath)
			require.NoError(t, err, "run with -update to create it")

			want := []diagExpectation{}
			if len(bytes.TrimSpace(data)) > 0 {
				require.NoError(t, json.Unmarshal(data, &want))
			}

			assert.Equal(t, want, got)
		})
	}
}
