package dispatch

import "io/fs"

// CommandCode selects the worker handler that executes an entry.
type CommandCode uint8

const (
	CmdNoop CommandCode = iota
	CmdCopy
	CmdMove
	CmdRename
	CmdDelete
	CmdDeleteAll
	CmdDecompress
	CmdConcat
	CmdCreateDir
	CmdRemoveDir
	CmdDirListFile
	CmdSetPerm
)

// String returns the string representation of the command code.
func (c CommandCode) String() string {
	switch c {
	case CmdNoop:
		return "noop"
	case CmdCopy:
		return "copy"
	case CmdMove:
		return "move"
	case CmdRename:
		return "rename"
	case CmdDelete:
		return "delete"
	case CmdDeleteAll:
		return "delete-all"
	case CmdDecompress:
		return "decompress"
	case CmdConcat:
		return "concat"
	case CmdCreateDir:
		return "create-dir"
	case CmdRemoveDir:
		return "remove-dir"
	case CmdDirListFile:
		return "dir-list-file"
	case CmdSetPerm:
		return "set-perm"
	default:
		return "unknown"
	}
}

// Entry is one queued command payload. The queue moves entries without
// inspecting them; only the worker handler keyed by Code reads the fields.
type Entry struct {
	Code    CommandCode
	Source1 string
	Source2 string
	Target  string

	Overwrite bool
	Pattern   string
	Mode      fs.FileMode

	// EventBase numbers completion and failure diagnostics for this command.
	EventBase uint32
	// CorrelationID ties worker diagnostics back to the accepted request.
	CorrelationID string
}
