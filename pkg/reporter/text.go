package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/mdxlint/internal/ui/pretty"
	"github.com/yaklabco/mdxlint/pkg/mdast"
	"github.com/yaklabco/mdxlint/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. Files are printed in result order, each
// followed by its diagnostics; compact mode drops the grouping.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("No files to check."))
		}
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		total += r.reportFile(file)
	}

	if r.opts.ShowSummary {
		if !r.opts.Compact && total > 0 {
			fmt.Fprintln(r.bw)
		}
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

func (r *TextReporter) reportFile(file runner.FileOutcome) int {
	path := r.opts.displayPath(file.Path)

	if file.Error != nil {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(path),
			r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
		)
		return 0
	}

	if file.Result == nil || file.Result.FileResult == nil || len(file.Result.Diagnostics) == 0 {
		return 0
	}

	diagnostics := file.Result.Diagnostics
	if !r.opts.Compact {
		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(diagnostics)))
	}

	for i := range diagnostics {
		view := pretty.DiagnosticView{
			Path:       path,
			RuleFormat: r.opts.RuleFormat,
			Compact:    r.opts.Compact,
		}
		if r.opts.ShowContext {
			view.SourceLine = sourceLine(file.Result.Snapshot, diagnostics[i].StartLine)
		}
		fmt.Fprint(r.bw, r.styles.FormatDiagnostic(&diagnostics[i], view))
	}

	return len(diagnostics)
}

// sourceLine returns one line of the snapshot without its line ending.
func sourceLine(snapshot *mdast.FileSnapshot, lineNum int) string {
	if snapshot == nil {
		return ""
	}
	return string(snapshot.LineContent(lineNum))
}
