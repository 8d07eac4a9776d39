package events

// Base event identifiers, one block of twenty per command. Offsets defined
// below are added to the command's base, so every command keeps a distinct,
// stable code per outcome.
const (
	BaseStartup     uint32 = 10
	BaseCopy        uint32 = 40
	BaseMove        uint32 = 60
	BaseRename      uint32 = 80
	BaseDelete      uint32 = 100
	BaseDeleteAll   uint32 = 120
	BaseDecompress  uint32 = 140
	BaseConcat      uint32 = 160
	BaseFileInfo    uint32 = 180
	BaseOpenFiles   uint32 = 200
	BaseCreateDir   uint32 = 220
	BaseRemoveDir   uint32 = 240
	BaseDirListFile uint32 = 260
	BaseDirListPkt  uint32 = 280
	BaseFreeSpace   uint32 = 300
	BaseSetPerm     uint32 = 320
	BaseWorker      uint32 = 340
)

// Failure offsets added to a command's base identifier. The first seven form
// the verification-gate contract, the next three cover enqueue rejection,
// and the last reports execution failures from the worker.
const (
	OffsetNameInvalid   uint32 = 0  // name is malformed
	OffsetNotFound      uint32 = 1  // object does not exist
	OffsetIsOpen        uint32 = 2  // file exists and is open
	OffsetIsDirectory   uint32 = 3  // name exists as a directory
	OffsetFileExists    uint32 = 4  // file already exists
	OffsetIsFile        uint32 = 5  // directory name exists as a file
	OffsetUnknownState  uint32 = 6  // classifier returned an unrecognized state
	OffsetQueueDisabled uint32 = 7  // worker absent, queue rejects everything
	OffsetQueueFull     uint32 = 8  // queue at capacity
	OffsetQueueBroken   uint32 = 9  // queue counters desynchronized
	OffsetOSError       uint32 = 10 // filesystem operation failed during execution
	OffsetComplete      uint32 = 11 // command executed successfully
)
