package ops

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/orbitward/filemgr/internal/dispatch"
)

// DeleteAll removes every regular file directly inside the directory at
// Source1 whose name matches Pattern (every file when Pattern is empty).
// Subdirectories and open files are skipped with a warning, matching the
// at-most-one-diagnostic-per-command rule: the command itself still
// completes.
func (r *Runner) DeleteAll(ctx context.Context, e dispatch.Entry) error {
	pattern := e.Pattern
	if pattern == "" {
		pattern = "*"
	}
	if !doublestar.ValidatePattern(pattern) {
		return r.fail(e, "Delete All Files", fmt.Errorf("invalid pattern: %s", pattern))
	}

	entries, err := os.ReadDir(e.Source1)
	if err != nil {
		return r.fail(e, "Delete All Files", err)
	}

	deleted, skipped := 0, 0
	for _, entry := range entries {
		if ctx.Err() != nil {
			return r.fail(e, "Delete All Files", ctx.Err())
		}
		match, _ := doublestar.Match(pattern, entry.Name())
		if !match {
			continue
		}
		path := filepath.Join(e.Source1, entry.Name())
		if entry.IsDir() {
			skipped++
			continue
		}
		if r.handles.IsOpen(path) {
			skipped++
			r.logSkip("delete-all", path, fmt.Errorf("file is open"))
			continue
		}
		if err := os.Remove(path); err != nil {
			skipped++
			r.logSkip("delete-all", path, err)
			continue
		}
		deleted++
	}

	r.complete(e, "Delete All Files command: deleted %d files: dir = %s, skipped = %d",
		deleted, e.Source1, skipped)
	return nil
}
