// Package reporter renders runner results for terminals and tools.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/mdxlint/pkg/config"
	"github.com/yaklabco/mdxlint/pkg/runner"
)

// Reporter formats and writes lint results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of issues reported and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	defaults := DefaultOptions()
	if opts.Writer == nil {
		opts.Writer = defaults.Writer
	}
	if opts.RuleFormat == "" {
		opts.RuleFormat = defaults.RuleFormat
	}
	if opts.ToolVersion == "" {
		opts.ToolVersion = defaults.ToolVersion
	}
	if opts.SortBy == "" {
		opts.SortBy = defaults.SortBy
	}

	format := opts.Format
	if format == "" {
		format = config.FormatText
	}

	switch format {
	case config.FormatText:
		return NewTextReporter(opts), nil
	case config.FormatJSON:
		return NewJSONReporter(opts), nil
	case config.FormatSARIF:
		return NewSARIFReporter(opts), nil
	case config.FormatSummary:
		return NewSummaryReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format %q; valid formats: text, json, sarif, summary", format)
	}
}
