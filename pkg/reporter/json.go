package reporter

import (
	"bufio"
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/yaklabco/mdxlint/pkg/components"
	"github.com/yaklabco/mdxlint/pkg/config"
	"github.com/yaklabco/mdxlint/pkg/lint"
	"github.com/yaklabco/mdxlint/pkg/parser/mdx"
	"github.com/yaklabco/mdxlint/pkg/runner"
)

// jsonSchemaVersion versions the JSON report layout.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the document the json format writes.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult is one linted file. Error is set instead of Diagnostics
// when the file could not be linted.
type JSONFileResult struct {
	Path        string           `json:"path"`
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	Error       *JSONFileError   `json:"error,omitempty"`
}

// JSONFileError describes why a file was not linted. Type is PARSE_ERROR
// for markup that could not be parsed and empty for I/O failures.
type JSONFileError struct {
	Type   components.ErrorType `json:"type,omitempty"`
	Line   int                  `json:"line,omitempty"`
	Column int                  `json:"column,omitempty"`
	Reason string               `json:"reason"`
}

// JSONDiagnostic is one rule violation.
type JSONDiagnostic struct {
	Type       components.ErrorType `json:"type"`
	RuleID     string               `json:"ruleId"`
	RuleName   string               `json:"ruleName"`
	Severity   string               `json:"severity"`
	Line       int                  `json:"line"`
	Column     int                  `json:"column"`
	EndLine    int                  `json:"endLine"`
	EndColumn  int                  `json:"endColumn"`
	Reason     string               `json:"reason"`
	Suggestion string               `json:"suggestion,omitempty"`
}

// JSONSummary holds the run totals.
type JSONSummary struct {
	FilesChecked    int            `json:"filesChecked"`
	FilesWithIssues int            `json:"filesWithIssues"`
	FilesErrored    int            `json:"filesErrored"`
	TotalIssues     int            `json:"totalIssues"`
	BySeverity      map[string]int `json:"bySeverity"`
}

// JSONReporter writes one JSON document per run.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a JSON reporter writing to opts.Writer.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalIssues, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonSchemaVersion,
		Files:   []JSONFileResult{},
		Summary: JSONSummary{BySeverity: map[string]int{}},
	}
	if result == nil {
		return output
	}

	for _, file := range result.Files {
		entry := JSONFileResult{
			Path:        r.opts.displayPath(file.Path),
			Diagnostics: []JSONDiagnostic{},
		}

		switch {
		case file.Error != nil:
			entry.Error = fileError(file.Error)
			output.Summary.FilesErrored++
		case file.Result != nil && file.Result.FileResult != nil:
			for _, diag := range file.Result.Diagnostics {
				jd := jsonDiagnostic(diag)
				entry.Diagnostics = append(entry.Diagnostics, jd)
				output.Summary.BySeverity[jd.Severity]++
			}
		}

		output.Summary.FilesChecked++
		output.Summary.TotalIssues += len(entry.Diagnostics)
		if len(entry.Diagnostics) > 0 {
			output.Summary.FilesWithIssues++
		}
		output.Files = append(output.Files, entry)
	}

	return output
}

func jsonDiagnostic(diag lint.Diagnostic) JSONDiagnostic {
	severity := string(diag.Severity)
	if severity == "" {
		severity = string(config.SeverityWarning)
	}

	return JSONDiagnostic{
		Type:       components.ValidationError,
		RuleID:     diag.RuleID,
		RuleName:   diag.RuleName,
		Severity:   severity,
		Line:       diag.StartLine,
		Column:     diag.StartColumn,
		EndLine:    diag.EndLine,
		EndColumn:  diag.EndColumn,
		Reason:     diag.Message,
		Suggestion: diag.Suggestion,
	}
}

func fileError(err error) *JSONFileError {
	out := &JSONFileError{Reason: err.Error()}

	var syntaxErr *mdx.SyntaxError
	if errors.As(err, &syntaxErr) {
		out.Line, out.Column, out.Reason = syntaxErr.Line, syntaxErr.Column, syntaxErr.Message
	}
	if errors.Is(err, lint.ErrParseFailure) || syntaxErr != nil {
		out.Type = components.ParseError
	}

	return out
}
