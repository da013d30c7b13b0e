package lint

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/mdxlint/pkg/config"
	"github.com/yaklabco/mdxlint/pkg/fsutil"
)

// Pipeline error categories, matched with errors.Is.
var (
	ErrFileNotFound     = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrParseFailure     = errors.New("parse failure")
)

// PipelineResult is the outcome of processing one file.
type PipelineResult struct {
	*FileResult

	Path string

	// Info describes the file as it was read. Nil for ProcessContent.
	Info *fsutil.FileInfo
}

// Summary returns a one-word status for the file.
func (pr *PipelineResult) Summary() string {
	if pr.FileResult != nil && pr.HasIssues() {
		return "issues found"
	}
	return "ok"
}

// Pipeline reads files from disk and lints them.
type Pipeline struct {
	Engine *Engine
}

// NewPipeline creates a pipeline around engine.
func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine}
}

// ProcessFile reads path and lints its content.
func (p *Pipeline) ProcessFile(
	ctx context.Context,
	path string,
	cfg *config.Config,
) (*PipelineResult, error) {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	result, err := p.ProcessContent(ctx, path, content, cfg)
	if err != nil {
		return nil, err
	}
	result.Info = info

	return result, nil
}

// ProcessContent lints in-memory content as if it were read from path.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
) (*PipelineResult, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("processing cancelled: %w", ctx.Err())
	default:
	}

	fileResult, err := p.Engine.LintFile(ctx, path, content, cfg)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("processing cancelled: %w", err)
		}
		return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
	}

	return &PipelineResult{
		FileResult: fileResult,
		Path:       path,
	}, nil
}

// categorizeError wraps err with the matching pipeline category.
func categorizeError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}

	if errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}

	return err
}

// IsPipelineError reports whether err belongs to a known pipeline category.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrParseFailure)
}
