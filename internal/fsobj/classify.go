package fsobj

import (
	"io/fs"
	"os"
	"time"
)

// StatSnapshot holds metadata captured from the most recent classification
// that requested it.
type StatSnapshot struct {
	ModTime time.Time
	Size    int64
	Mode    fs.FileMode
}

// Classifier determines the current state of a path. It consults the handle
// table to distinguish open from closed files and keeps a single stat
// snapshot slot for file-info commands.
//
// The snapshot slot is last-writer-wins and is not safe under concurrent
// classification calls; classification is expected to run only in the
// command context.
type Classifier struct {
	handles *HandleTable
	stat    StatSnapshot
}

// NewClassifier creates a classifier backed by the given handle table.
func NewClassifier(handles *HandleTable) *Classifier {
	return &Classifier{handles: handles}
}

// Classify returns the state of name within a buffer of the given capacity.
// When captureStat is set, the stat snapshot slot is overwritten with the
// metadata of the classified object, or zeroed when the object is absent.
func (c *Classifier) Classify(name string, capacity int, captureStat bool) NameState {
	effective, ok := scanName(name, capacity)
	if !ok {
		return StateInvalid
	}
	if !isValidName(effective) {
		return StateInvalid
	}

	info, err := os.Stat(effective)
	if err != nil {
		// Cannot stat, therefore the name is not in use.
		if captureStat {
			c.stat = StatSnapshot{}
		}
		return StateNotInUse
	}

	if captureStat {
		c.stat = StatSnapshot{ModTime: info.ModTime(), Size: info.Size(), Mode: info.Mode()}
	}

	if info.IsDir() {
		return StateDirectory
	}
	if c.handles.IsOpen(effective) {
		return StateFileOpen
	}
	return StateFileClosed
}

// LastStat returns the snapshot from the most recent Classify call that
// requested capture.
func (c *Classifier) LastStat() StatSnapshot {
	return c.stat
}

// Handles returns the handle table this classifier consults.
func (c *Classifier) Handles() *HandleTable {
	return c.handles
}
