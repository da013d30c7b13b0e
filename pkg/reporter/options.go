package reporter

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/mdxlint/pkg/analysis"
	"github.com/yaklabco/mdxlint/pkg/config"
	"github.com/yaklabco/mdxlint/pkg/lint"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	Format config.OutputFormat

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowContext includes the offending source line under each diagnostic.
	ShowContext bool

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// Compact uses one line per diagnostic for text and minified JSON.
	Compact bool

	// RuleFormat controls how rule identifiers appear in text output.
	RuleFormat config.RuleFormat

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string

	// ToolVersion is reported in SARIF output.
	ToolVersion string

	// Registry supplies rule descriptions for SARIF. Defaults to
	// lint.DefaultRegistry.
	Registry *lint.Registry

	// SortBy orders the rule and file tables of the summary format.
	SortBy analysis.SortField
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      config.FormatText,
		Color:       "auto",
		ShowContext: true,
		ShowSummary: true,
		RuleFormat:  config.RuleFormatName,
		ToolVersion: "dev",
		SortBy:      analysis.SortByCount,
	}
}

func (o Options) registry() *lint.Registry {
	if o.Registry != nil {
		return o.Registry
	}
	return lint.DefaultRegistry
}

// displayPath makes path relative to the working directory when it lies
// beneath it, using forward slashes.
func (o Options) displayPath(path string) string {
	if o.WorkingDir == "" {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(o.WorkingDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return filepath.ToSlash(path)
	}
	return rel
}
