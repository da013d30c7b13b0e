package runner

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/mdxlint/pkg/lint"
)

// Runner orchestrates multi-file linting using a lint.Pipeline.
type Runner struct {
	Pipeline *lint.Pipeline
}

// New creates a new Runner with the given pipeline.
func New(pipeline *lint.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers files under opts.Paths and lints them with at most opts.Jobs
// files in flight. Per-file failures are recorded on their outcome; only
// discovery errors and cancellation fail the run. Outcomes are in path order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	started := time.Now()

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		result.Stats.Duration = time.Since(started)
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	// Each worker writes only its own slot, so no locking is needed.
	outcomes := make([]FileOutcome, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for idx, path := range files {
		if groupCtx.Err() != nil {
			break
		}

		group.Go(func() error {
			outcome := FileOutcome{Path: path}

			pr, err := r.Pipeline.ProcessFile(groupCtx, path, opts.Config)
			if err != nil {
				outcome.Error = err
			} else {
				outcome.Result = pr
			}

			outcomes[idx] = outcome
			return nil
		})
	}

	// Workers never return errors, so Wait only synchronises.
	_ = group.Wait()

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}
	result.Stats.Duration = time.Since(started)

	return result, nil
}
