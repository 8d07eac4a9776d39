// Package fsobj classifies filesystem object names and tracks open handles.
package fsobj

// MaxPathLen is the fixed capacity of every path buffer handled by the
// subsystem, including room for the terminator.
const MaxPathLen = 64

// NameState is the classification of a path at a point in time. Exactly one
// state applies to any (path, instant) pair.
type NameState int

const (
	// StateInvalid means the name is malformed: empty, unterminated within
	// its buffer capacity, or containing illegal characters.
	StateInvalid NameState = iota
	// StateNotInUse means the name is well formed but no filesystem object
	// exists under it.
	StateNotInUse
	// StateFileOpen means the name is a regular file with a live handle.
	StateFileOpen
	// StateFileClosed means the name is a regular file with no live handle.
	StateFileClosed
	// StateDirectory means the name is a directory.
	StateDirectory
)

// String returns the string representation of the state.
func (s NameState) String() string {
	switch s {
	case StateInvalid:
		return "invalid"
	case StateNotInUse:
		return "not-in-use"
	case StateFileOpen:
		return "file-open"
	case StateFileClosed:
		return "file-closed"
	case StateDirectory:
		return "directory"
	default:
		return "unknown"
	}
}
