package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdxlint/internal/logging"
	"github.com/yaklabco/mdxlint/pkg/config"
	"github.com/yaklabco/mdxlint/pkg/lint"
	"github.com/yaklabco/mdxlint/pkg/lint/rules"
	"github.com/yaklabco/mdxlint/pkg/parser/mdx"
	"github.com/yaklabco/mdxlint/pkg/runner"
)

const watchDoc = "<Steps>\n<Step>\nOne\n</Step>\n</Steps>\n"

// countingLint lints dir for real and counts passes.
func countingLint(dir string, runs *atomic.Int32) lintFunc {
	registry := lint.NewRegistry()
	rules.RegisterAll(registry)
	lintRunner := runner.New(lint.NewPipeline(lint.NewEngine(mdx.New(mdx.FlavorGFM), registry)))

	return func(ctx context.Context) (*runner.Result, error) {
		defer runs.Add(1)
		return lintRunner.Run(ctx, runner.Options{WorkingDir: dir, Config: config.NewConfig()})
	}
}

func TestWatch_RelintsOnChange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := filepath.Join(dir, "guide.mdx")
	require.NoError(t, os.WriteFile(doc, []byte(watchDoc), 0o600))

	var runs atomic.Int32
	lintOnce := countingLint(dir, &runs)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- watch(ctx, runner.Options{WorkingDir: dir}, lintOnce, logging.NewWithWriter(io.Discard, "error"))
	}()

	require.Eventually(t, func() bool { return runs.Load() == 1 }, 5*time.Second, 10*time.Millisecond)

	// Same bytes: no re-run.
	require.NoError(t, os.WriteFile(doc, []byte(watchDoc), 0o600))
	// Ignored extension.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))
	assert.Never(t, func() bool { return runs.Load() > 1 }, 5*watchDebounce, 20*time.Millisecond)

	require.NoError(t, os.WriteFile(doc, []byte(watchDoc+"\n<Note />\n"), 0o600))
	require.Eventually(t, func() bool { return runs.Load() == 2 }, 5*time.Second, 10*time.Millisecond)

	// New documents in new directories are picked up.
	sub := filepath.Join(dir, "more")
	require.NoError(t, os.Mkdir(sub, 0o755))
	time.Sleep(2 * watchDebounce)
	require.NoError(t, os.WriteFile(filepath.Join(sub, "extra.mdx"), []byte(watchDoc), 0o600))
	require.Eventually(t, func() bool { return runs.Load() == 3 }, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancellation")
	}
}

func TestWatch_MissingPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	var runs atomic.Int32
	err := watch(context.Background(), runner.Options{
		WorkingDir: dir,
		Paths:      []string{"does-not-exist"},
	}, countingLint(dir, &runs), logging.NewWithWriter(io.Discard, "error"))

	require.Error(t, err)
	assert.Zero(t, runs.Load())
}

func TestWatcher_Handle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	named := filepath.Join(dir, "guide.mdx")

	tests := []struct {
		name  string
		files map[string]struct{}
		event fsnotify.Event
		want  bool
	}{
		{name: "write to document", event: fsnotify.Event{Name: named, Op: fsnotify.Write}, want: true},
		{name: "uppercase extension", event: fsnotify.Event{Name: filepath.Join(dir, "A.MDX"), Op: fsnotify.Create}, want: true},
		{name: "removed document", event: fsnotify.Event{Name: named, Op: fsnotify.Remove}, want: true},
		{name: "chmod only", event: fsnotify.Event{Name: named, Op: fsnotify.Chmod}},
		{name: "other extension", event: fsnotify.Event{Name: filepath.Join(dir, "a.go"), Op: fsnotify.Write}},
		{
			name:  "named file",
			files: map[string]struct{}{named: {}},
			event: fsnotify.Event{Name: named, Op: fsnotify.Write},
			want:  true,
		},
		{
			name:  "sibling of named file",
			files: map[string]struct{}{named: {}},
			event: fsnotify.Event{Name: filepath.Join(dir, "other.mdx"), Op: fsnotify.Write},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			files := testCase.files
			if files == nil {
				files = map[string]struct{}{}
			}
			w := &watcher{
				logger:     logging.NewWithWriter(io.Discard, "error"),
				workDir:    dir,
				extensions: config.DefaultExtensions(),
				files:      files,
				pending:    map[string]struct{}{},
			}

			assert.Equal(t, testCase.want, w.handle(testCase.event))
			assert.Equal(t, testCase.want, len(w.pending) == 1)
		})
	}
}
