package cli

import (
	"errors"

	"github.com/yaklabco/mdxlint/pkg/runner"
)

// Exit codes for mdxlint.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitLintErrors indicates lint completed but found errors, or some
	// files could not be linted.
	ExitLintErrors = 1

	// ExitLintWarnings indicates lint found warnings in strict mode.
	ExitLintWarnings = 2

	// ExitInternalError covers usage, configuration and I/O failures.
	ExitInternalError = 70
)

// ErrLintIssuesFound is returned when lint issues are found. It only
// signals the exit code and is never printed.
var ErrLintIssuesFound = errors.New("lint issues found")

// lintExitError carries the exit code for a finished lint run.
type lintExitError struct {
	code int
}

func (e *lintExitError) Error() string { return ErrLintIssuesFound.Error() }

func (e *lintExitError) Unwrap() error { return ErrLintIssuesFound }

// ExitCodeFromResult determines the exit code based on result and strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasFailures() || result.Stats.FilesErrored > 0 {
		return ExitLintErrors
	}

	if strict && result.HasWarnings() {
		return ExitLintWarnings
	}

	return ExitSuccess
}

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *lintExitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}

	return ExitInternalError
}
