package cli_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdxlint/internal/cli"
	"github.com/yaklabco/mdxlint/pkg/runner"
)

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	withCounts := func(errs, warnings, errored int) *runner.Result {
		return &runner.Result{Stats: runner.Stats{
			FilesErrored:          errored,
			DiagnosticsTotal:      errs + warnings,
			DiagnosticsBySeverity: map[string]int{"error": errs, "warning": warnings},
		}}
	}

	tests := []struct {
		name   string
		result *runner.Result
		strict bool
		want   int
	}{
		{name: "nil result", result: nil, want: cli.ExitSuccess},
		{name: "clean", result: withCounts(0, 0, 0), want: cli.ExitSuccess},
		{name: "errors", result: withCounts(2, 0, 0), want: cli.ExitLintErrors},
		{name: "errors win over strict warnings", result: withCounts(1, 3, 0), strict: true, want: cli.ExitLintErrors},
		{name: "warnings only", result: withCounts(0, 3, 0), want: cli.ExitSuccess},
		{name: "warnings strict", result: withCounts(0, 3, 0), strict: true, want: cli.ExitLintWarnings},
		{name: "unreadable file", result: withCounts(0, 0, 1), want: cli.ExitLintErrors},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.want, cli.ExitCodeFromResult(testCase.result, testCase.strict))
		})
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, cli.ExitSuccess, cli.ExitCode(nil))
	assert.Equal(t, cli.ExitInternalError, cli.ExitCode(errors.New("boom")))
	assert.Equal(t, cli.ExitInternalError, cli.ExitCode(fmt.Errorf("wrapped: %w", errors.New("boom"))))
}
