// Package verify gates filesystem commands on the current state of their
// target paths. Each check classifies the path once, emits exactly one
// diagnostic on failure, and reduces to a pass/fail result. Failure codes
// are the caller's base identifier plus a fixed per-reason offset.
package verify

import (
	"github.com/orbitward/filemgr/internal/events"
	"github.com/orbitward/filemgr/internal/fsobj"
)

// Checker runs precondition checks against the classifier and reports
// failures through the event reporter.
type Checker struct {
	cls *fsobj.Classifier
	rep events.Reporter
}

// NewChecker creates a checker over the given classifier and reporter.
func NewChecker(cls *fsobj.Classifier, rep events.Reporter) *Checker {
	return &Checker{cls: cls, rep: rep}
}

// NameValid verifies the name is well formed and returns its state. This is
// the one check that captures the stat snapshot, for file-info commands.
func (c *Checker) NameValid(name string, capacity int, baseID uint32, cmdText string) fsobj.NameState {
	state := c.cls.Classify(name, capacity, true)
	if state == fsobj.StateInvalid {
		c.rep.Send(baseID+events.OffsetNameInvalid, events.Error,
			"%s error: invalid name: name = %s", cmdText, fsobj.Terminate(name, capacity))
	}
	return state
}

// FileExists verifies the name is an open or closed file.
func (c *Checker) FileExists(name string, capacity int, baseID uint32, cmdText string) bool {
	switch state := c.cls.Classify(name, capacity, false); state {
	case fsobj.StateFileOpen, fsobj.StateFileClosed:
		return true
	case fsobj.StateInvalid:
		c.rep.Send(baseID+events.OffsetNameInvalid, events.Error,
			"%s error: filename is invalid: name = %s", cmdText, fsobj.Terminate(name, capacity))
	case fsobj.StateNotInUse:
		c.rep.Send(baseID+events.OffsetNotFound, events.Error,
			"%s error: file does not exist: name = %s", cmdText, name)
	case fsobj.StateDirectory:
		c.rep.Send(baseID+events.OffsetIsDirectory, events.Error,
			"%s error: filename is a directory: name = %s", cmdText, name)
	default:
		c.unknown(state, name, baseID, cmdText)
	}
	return false
}

// FileClosedOnly verifies the name is a closed file.
func (c *Checker) FileClosedOnly(name string, capacity int, baseID uint32, cmdText string) bool {
	switch state := c.cls.Classify(name, capacity, false); state {
	case fsobj.StateFileClosed:
		return true
	case fsobj.StateInvalid:
		c.rep.Send(baseID+events.OffsetNameInvalid, events.Error,
			"%s error: filename is invalid: name = %s", cmdText, fsobj.Terminate(name, capacity))
	case fsobj.StateNotInUse:
		c.rep.Send(baseID+events.OffsetNotFound, events.Error,
			"%s error: file does not exist: name = %s", cmdText, name)
	case fsobj.StateFileOpen:
		c.rep.Send(baseID+events.OffsetIsOpen, events.Error,
			"%s error: file is already open: name = %s", cmdText, name)
	case fsobj.StateDirectory:
		c.rep.Send(baseID+events.OffsetIsDirectory, events.Error,
			"%s error: filename is a directory: name = %s", cmdText, name)
	default:
		c.unknown(state, name, baseID, cmdText)
	}
	return false
}

// FileAbsent verifies the name is not in use.
func (c *Checker) FileAbsent(name string, capacity int, baseID uint32, cmdText string) bool {
	switch state := c.cls.Classify(name, capacity, false); state {
	case fsobj.StateNotInUse:
		return true
	case fsobj.StateInvalid:
		c.rep.Send(baseID+events.OffsetNameInvalid, events.Error,
			"%s error: filename is invalid: name = %s", cmdText, fsobj.Terminate(name, capacity))
	case fsobj.StateFileOpen, fsobj.StateFileClosed:
		c.rep.Send(baseID+events.OffsetFileExists, events.Error,
			"%s error: file already exists: name = %s", cmdText, name)
	case fsobj.StateDirectory:
		c.rep.Send(baseID+events.OffsetIsDirectory, events.Error,
			"%s error: filename is a directory: name = %s", cmdText, name)
	default:
		c.unknown(state, name, baseID, cmdText)
	}
	return false
}

// FileNotOpen verifies the name is either not in use or a closed file.
func (c *Checker) FileNotOpen(name string, capacity int, baseID uint32, cmdText string) bool {
	switch state := c.cls.Classify(name, capacity, false); state {
	case fsobj.StateNotInUse, fsobj.StateFileClosed:
		return true
	case fsobj.StateInvalid:
		c.rep.Send(baseID+events.OffsetNameInvalid, events.Error,
			"%s error: filename is invalid: name = %s", cmdText, fsobj.Terminate(name, capacity))
	case fsobj.StateFileOpen:
		c.rep.Send(baseID+events.OffsetIsOpen, events.Error,
			"%s error: file exists as an open file: name = %s", cmdText, name)
	case fsobj.StateDirectory:
		c.rep.Send(baseID+events.OffsetIsDirectory, events.Error,
			"%s error: filename is a directory: name = %s", cmdText, name)
	default:
		c.unknown(state, name, baseID, cmdText)
	}
	return false
}

// DirExists verifies the name is a directory.
func (c *Checker) DirExists(name string, capacity int, baseID uint32, cmdText string) bool {
	switch state := c.cls.Classify(name, capacity, false); state {
	case fsobj.StateDirectory:
		return true
	case fsobj.StateInvalid:
		c.rep.Send(baseID+events.OffsetNameInvalid, events.Error,
			"%s error: directory name is invalid: name = %s", cmdText, fsobj.Terminate(name, capacity))
	case fsobj.StateNotInUse:
		c.rep.Send(baseID+events.OffsetNotFound, events.Error,
			"%s error: directory does not exist: name = %s", cmdText, name)
	case fsobj.StateFileOpen, fsobj.StateFileClosed:
		c.rep.Send(baseID+events.OffsetIsFile, events.Error,
			"%s error: directory name exists as a file: name = %s", cmdText, name)
	default:
		c.unknown(state, name, baseID, cmdText)
	}
	return false
}

// DirAbsent verifies the name is not in use. Unlike FileAbsent, an existing
// file reports at the not-found offset and an existing directory at offset
// two; the distinct numbering keeps legacy code assignments stable.
func (c *Checker) DirAbsent(name string, capacity int, baseID uint32, cmdText string) bool {
	switch state := c.cls.Classify(name, capacity, false); state {
	case fsobj.StateNotInUse:
		return true
	case fsobj.StateInvalid:
		c.rep.Send(baseID+events.OffsetNameInvalid, events.Error,
			"%s error: directory name is invalid: name = %s", cmdText, fsobj.Terminate(name, capacity))
	case fsobj.StateFileOpen, fsobj.StateFileClosed:
		c.rep.Send(baseID+events.OffsetNotFound, events.Error,
			"%s error: directory name exists as a file: name = %s", cmdText, name)
	case fsobj.StateDirectory:
		c.rep.Send(baseID+2, events.Error,
			"%s error: directory already exists: name = %s", cmdText, name)
	default:
		c.unknown(state, name, baseID, cmdText)
	}
	return false
}

func (c *Checker) unknown(state fsobj.NameState, name string, baseID uint32, cmdText string) {
	c.rep.Send(baseID+events.OffsetUnknownState, events.Error,
		"%s error: name has unknown state: name = %s, state = %d",
		cmdText, fsobj.Terminate(name, fsobj.MaxPathLen), int(state))
}
