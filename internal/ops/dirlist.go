package ops

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"

	"github.com/orbitward/filemgr/internal/dispatch"
)

// DirEntry is one line of a directory listing.
type DirEntry struct {
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	Mode    string    `json:"mode"`
	ModTime time.Time `json:"mod_time"`
	IsDir   bool      `json:"is_dir"`
}

// ListStats summarizes a listing pass.
type ListStats struct {
	DirEntries  int `json:"dir_entries"`
	FileEntries int `json:"file_entries"`
	SkippedErrs int `json:"skipped_errors"`
}

// DirListFile walks the directory tree rooted at Source1 and writes one
// JSON listing line per object to Target. The walk is concurrent; entries
// are collected and sorted by path before writing so the output is stable.
func (r *Runner) DirListFile(ctx context.Context, e dispatch.Entry) error {
	type walkRecord struct {
		path  string
		entry DirEntry
	}

	var (
		mu      sync.Mutex
		records []walkRecord
		stats   ListStats
	)

	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, e.Source1, func(path string, d os.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			mu.Lock()
			stats.SkippedErrs++
			mu.Unlock()
			return nil
		}
		if path == e.Source1 {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			mu.Lock()
			stats.SkippedErrs++
			mu.Unlock()
			return nil
		}
		rel, err := filepath.Rel(e.Source1, path)
		if err != nil {
			rel = path
		}
		mu.Lock()
		records = append(records, walkRecord{path: rel, entry: DirEntry{
			Name:    rel,
			Size:    info.Size(),
			Mode:    info.Mode().String(),
			ModTime: info.ModTime(),
			IsDir:   d.IsDir(),
		}})
		if d.IsDir() {
			stats.DirEntries++
		} else {
			stats.FileEntries++
		}
		mu.Unlock()
		return nil
	})
	if err != nil {
		return r.fail(e, "Directory List to File", err)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].path < records[j].path })

	out, closeOut, err := r.create(e.Target)
	if err != nil {
		return r.fail(e, "Directory List to File", err)
	}
	defer closeOut()

	enc := json.NewEncoder(out)
	for _, rec := range records {
		if err := enc.Encode(rec.entry); err != nil {
			return r.fail(e, "Directory List to File", err)
		}
	}

	r.complete(e, "Directory List to File command: dir = %s, file = %s, dirs = %d, files = %d, skipped = %d",
		e.Source1, e.Target, stats.DirEntries, stats.FileEntries, stats.SkippedErrs)
	return nil
}

// ListDir reads one directory level and returns up to limit entries
// starting at offset, with the total count before windowing. It is cheap
// enough to run in the command context.
func ListDir(dir string, offset, limit int) ([]DirEntry, int, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, 0, err
	}

	total := len(dirents)
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	if limit <= 0 {
		limit = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	entries := make([]DirEntry, 0, end-offset)
	for _, d := range dirents[offset:end] {
		info, err := d.Info()
		if err != nil {
			continue
		}
		entries = append(entries, DirEntry{
			Name:    d.Name(),
			Size:    info.Size(),
			Mode:    info.Mode().String(),
			ModTime: info.ModTime(),
			IsDir:   d.IsDir(),
		})
	}
	return entries, total, nil
}
