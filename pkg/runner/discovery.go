package runner

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/mdxlint/pkg/langdetect"
)

// sniffBytes is how much of a file is read when its extension alone does not
// identify it as a document.
const sniffBytes = 8 << 10

// Discover finds MDX and Markdown files matching opts under the given working
// directory. It returns a deterministically sorted list of absolute file paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	w := &walker{
		ctx:        ctx,
		workDir:    workDir,
		extensions: normalizeExtensions(opts.effectiveExtensions()),
		opts:       opts,
		seen:       make(map[string]struct{}),
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(absPath) {
			absPath = filepath.Join(workDir, absPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if info.IsDir() {
			if err := w.walk(absPath); err != nil {
				return nil, err
			}
			continue
		}

		// Explicitly named files skip the hidden-file check but not the filters.
		if w.accepts(absPath) {
			w.add(absPath)
		}
	}

	slices.Sort(w.files)
	return w.files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

type walker struct {
	ctx        context.Context
	workDir    string
	extensions []string
	opts       Options
	seen       map[string]struct{}
	files      []string
}

func (w *walker) add(path string) {
	if _, dup := w.seen[path]; dup {
		return
	}
	w.seen[path] = struct{}{}
	w.files = append(w.files, path)
}

// rel returns path relative to the working directory with forward slashes.
func (w *walker) rel(path string) string {
	relPath, err := filepath.Rel(w.workDir, path)
	if err != nil {
		relPath = path
	}
	return filepath.ToSlash(relPath)
}

func (w *walker) walk(root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := w.ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if path != root && w.skipDir(path, entry.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			return w.visitSymlink(path)
		}

		if w.accepts(path) {
			w.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

func (w *walker) skipDir(path, name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	relPath := w.rel(path)
	if matchesAnyGlob(relPath, w.opts.ExcludeGlobs) {
		return true
	}
	return !w.opts.IncludeVendored && langdetect.IsVendored(relPath+"/")
}

// visitSymlink handles a symlink found during a walk. Broken links are
// skipped; directory links are walked through their target when enabled.
func (w *walker) visitSymlink(path string) error {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil //nolint:nilerr // broken symlinks are skipped
	}
	info, err := os.Stat(target)
	if err != nil {
		return nil //nolint:nilerr // unreadable targets are skipped
	}

	if info.IsDir() {
		if !w.opts.FollowSymlinks {
			return nil
		}
		// Walking the target avoids WalkDir's Lstat on the link itself.
		return w.walk(target)
	}

	if w.accepts(path) {
		w.add(path)
	}
	return nil
}

// accepts applies the extension, glob and language filters to a file.
func (w *walker) accepts(path string) bool {
	if !slices.Contains(w.extensions, strings.ToLower(filepath.Ext(path))) {
		return false
	}

	relPath := w.rel(path)
	if matchesAnyGlob(relPath, w.opts.ExcludeGlobs) {
		return false
	}
	if len(w.opts.IncludeGlobs) > 0 && !matchesAnyGlob(relPath, w.opts.IncludeGlobs) {
		return false
	}

	return isDocument(path)
}

// isDocument classifies a candidate by extension, reading the head of the
// file only when the extension is unknown.
func isDocument(path string) bool {
	if lang, ok := langdetect.ByPath(path); ok {
		return lang.IsDocument()
	}

	head, err := readHead(path)
	if err != nil {
		return false
	}
	return langdetect.Detect(head).IsDocument()
}

func readHead(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	head, err := io.ReadAll(io.LimitReader(file, sniffBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return head, nil
}

func normalizeExtensions(extensions []string) []string {
	normalized := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	return normalized
}

func matchesAnyGlob(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchGlob(relPath, pattern) {
			return true
		}
	}
	return false
}

// matchGlob matches a slash-separated relative path against a glob.
// "**" matches any number of path segments. A pattern without a slash is
// also tried against the base name, so "*.md" matches at any depth.
func matchGlob(relPath, pattern string) bool {
	pattern = strings.TrimSuffix(filepath.ToSlash(pattern), "/")
	if pattern == "" {
		return false
	}

	if !strings.Contains(pattern, "/") && !strings.Contains(pattern, "**") {
		if ok, _ := path.Match(pattern, path.Base(relPath)); ok {
			return true
		}
	}

	return matchSegments(strings.Split(relPath, "/"), strings.Split(pattern, "/"))
}

func matchSegments(parts, pattern []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			rest := pattern[1:]
			// A trailing ** matches everything below, including nothing.
			if len(rest) == 0 {
				return true
			}
			for skip := 0; skip <= len(parts); skip++ {
				if matchSegments(parts[skip:], rest) {
					return true
				}
			}
			return false
		}

		if len(parts) == 0 {
			return false
		}
		if ok, err := path.Match(pattern[0], parts[0]); err != nil || !ok {
			return false
		}
		parts, pattern = parts[1:], pattern[1:]
	}

	return len(parts) == 0
}
