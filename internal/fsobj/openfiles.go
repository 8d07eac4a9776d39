package fsobj

import "sync"

// OpenFileRecord describes one live file handle.
type OpenFileRecord struct {
	LogicalName string `json:"logical_name"`
	OwnerName   string `json:"owner_name,omitempty"`
}

// HandleTable tracks every file handle the application holds open. The
// worker registers a path when it opens a file and releases it on close, so
// classification can distinguish open from closed files without walking
// process file descriptors.
//
// An earlier revision scanned OS stream handles directly on every
// classification; the scan was retired after it proved unsafe against
// handles closing mid-walk. The registry gives the same answer from state
// the subsystem owns.
type HandleTable struct {
	mu   sync.Mutex
	open map[string][]string // path -> owner names, one per live handle
}

// NewHandleTable creates an empty handle table.
func NewHandleTable() *HandleTable {
	return &HandleTable{open: make(map[string][]string)}
}

// Register records that owner holds an open handle on path.
func (t *HandleTable) Register(path, owner string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.open[path] = append(t.open[path], owner)
}

// Release removes one handle on path. Releasing a path that was never
// registered is a no-op.
func (t *HandleTable) Release(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	owners, ok := t.open[path]
	if !ok {
		return
	}
	if len(owners) <= 1 {
		delete(t.open, path)
		return
	}
	t.open[path] = owners[:len(owners)-1]
}

// IsOpen reports whether any live handle exists for exactly this path.
func (t *HandleTable) IsOpen(path string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.open[path]) > 0
}

// Count returns the number of live handles.
func (t *HandleTable) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, owners := range t.open {
		n += len(owners)
	}
	return n
}

// Snapshot returns a point-in-time copy of every live handle. The result is
// never reused; a fresh call is required for a fresh snapshot.
func (t *HandleTable) Snapshot() []OpenFileRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	records := make([]OpenFileRecord, 0, len(t.open))
	for path, owners := range t.open {
		for _, owner := range owners {
			records = append(records, OpenFileRecord{LogicalName: path, OwnerName: owner})
		}
	}
	return records
}
