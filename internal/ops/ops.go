// Package ops implements the filesystem operations executed by the dispatch
// worker. Handlers run only in the worker context; preconditions were
// already gated in the command context, so a failure here is an OS-level
// error, reported once and never retried.
package ops

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/orbitward/filemgr/internal/dispatch"
	"github.com/orbitward/filemgr/internal/events"
	"github.com/orbitward/filemgr/internal/fsobj"
	"github.com/orbitward/filemgr/internal/logging"
)

// workerOwner names the worker in open-handle records.
const workerOwner = "filemgr-worker"

// Runner holds the collaborators every operation needs.
type Runner struct {
	handles *fsobj.HandleTable
	rep     events.Reporter
	log     *logging.Logger
}

// NewRunner creates a runner that registers its handles in the given table
// and reports through the given reporter.
func NewRunner(handles *fsobj.HandleTable, rep events.Reporter, log *logging.Logger) *Runner {
	return &Runner{handles: handles, rep: rep, log: log.Named("ops")}
}

// Register installs every operation on the worker.
func (r *Runner) Register(w *dispatch.Worker) {
	w.Register(dispatch.CmdCopy, r.Copy)
	w.Register(dispatch.CmdMove, r.Move)
	w.Register(dispatch.CmdRename, r.Rename)
	w.Register(dispatch.CmdDelete, r.Delete)
	w.Register(dispatch.CmdDeleteAll, r.DeleteAll)
	w.Register(dispatch.CmdDecompress, r.Decompress)
	w.Register(dispatch.CmdConcat, r.Concat)
	w.Register(dispatch.CmdCreateDir, r.CreateDir)
	w.Register(dispatch.CmdRemoveDir, r.RemoveDir)
	w.Register(dispatch.CmdDirListFile, r.DirListFile)
	w.Register(dispatch.CmdSetPerm, r.SetPerm)
}

// open tracks the handle in the table for the lifetime of the returned
// closer, so classification sees worker-held files as open.
func (r *Runner) open(path string) (*os.File, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	r.handles.Register(path, workerOwner)
	return f, func() {
		f.Close()
		r.handles.Release(path)
	}, nil
}

func (r *Runner) create(path string) (*os.File, func(), error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	r.handles.Register(path, workerOwner)
	return f, func() {
		f.Close()
		r.handles.Release(path)
	}, nil
}

func (r *Runner) fail(e dispatch.Entry, cmdText string, err error) error {
	r.rep.Send(e.EventBase+events.OffsetOSError, events.Error,
		"%s error: %v", cmdText, err)
	return err
}

func (r *Runner) complete(e dispatch.Entry, format string, args ...interface{}) {
	r.rep.Send(e.EventBase+events.OffsetComplete, events.Info, format, args...)
}

// Copy duplicates Source1 into Target. With Overwrite unset an existing
// target fails the operation.
func (r *Runner) Copy(ctx context.Context, e dispatch.Entry) error {
	if !e.Overwrite {
		if _, err := os.Stat(e.Target); err == nil {
			return r.fail(e, "Copy File", fmt.Errorf("target already exists: %s", e.Target))
		}
	}

	src, closeSrc, err := r.open(e.Source1)
	if err != nil {
		return r.fail(e, "Copy File", err)
	}
	defer closeSrc()

	dst, closeDst, err := r.create(e.Target)
	if err != nil {
		return r.fail(e, "Copy File", err)
	}
	defer closeDst()

	if _, err := io.Copy(dst, src); err != nil {
		return r.fail(e, "Copy File", err)
	}

	r.complete(e, "Copy File command: src = %s, tgt = %s", e.Source1, e.Target)
	return nil
}

// Move relocates Source1 to Target within the same volume.
func (r *Runner) Move(ctx context.Context, e dispatch.Entry) error {
	if !e.Overwrite {
		if _, err := os.Stat(e.Target); err == nil {
			return r.fail(e, "Move File", fmt.Errorf("target already exists: %s", e.Target))
		}
	}
	if err := os.Rename(e.Source1, e.Target); err != nil {
		return r.fail(e, "Move File", err)
	}
	r.complete(e, "Move File command: src = %s, tgt = %s", e.Source1, e.Target)
	return nil
}

// Rename renames Source1 to Target.
func (r *Runner) Rename(ctx context.Context, e dispatch.Entry) error {
	if err := os.Rename(e.Source1, e.Target); err != nil {
		return r.fail(e, "Rename File", err)
	}
	r.complete(e, "Rename File command: src = %s, tgt = %s", e.Source1, e.Target)
	return nil
}

// Delete removes the file at Source1.
func (r *Runner) Delete(ctx context.Context, e dispatch.Entry) error {
	if err := os.Remove(e.Source1); err != nil {
		return r.fail(e, "Delete File", err)
	}
	r.complete(e, "Delete File command: file = %s", e.Source1)
	return nil
}

// Concat appends Source2 to a copy of Source1 written at Target.
func (r *Runner) Concat(ctx context.Context, e dispatch.Entry) error {
	dst, closeDst, err := r.create(e.Target)
	if err != nil {
		return r.fail(e, "Concat Files", err)
	}
	defer closeDst()

	for _, source := range []string{e.Source1, e.Source2} {
		src, closeSrc, err := r.open(source)
		if err != nil {
			return r.fail(e, "Concat Files", err)
		}
		_, err = io.Copy(dst, src)
		closeSrc()
		if err != nil {
			return r.fail(e, "Concat Files", err)
		}
	}

	r.complete(e, "Concat Files command: src1 = %s, src2 = %s, tgt = %s",
		e.Source1, e.Source2, e.Target)
	return nil
}

// CreateDir creates the directory at Source1.
func (r *Runner) CreateDir(ctx context.Context, e dispatch.Entry) error {
	if err := os.Mkdir(e.Source1, 0o755); err != nil {
		return r.fail(e, "Create Directory", err)
	}
	r.complete(e, "Create Directory command: dir = %s", e.Source1)
	return nil
}

// RemoveDir removes the directory at Source1. Non-empty directories fail.
func (r *Runner) RemoveDir(ctx context.Context, e dispatch.Entry) error {
	if err := os.Remove(e.Source1); err != nil {
		return r.fail(e, "Remove Directory", err)
	}
	r.complete(e, "Remove Directory command: dir = %s", e.Source1)
	return nil
}

// SetPerm changes the mode bits of Source1.
func (r *Runner) SetPerm(ctx context.Context, e dispatch.Entry) error {
	if err := os.Chmod(e.Source1, e.Mode); err != nil {
		return r.fail(e, "Set Permissions", err)
	}
	r.complete(e, "Set Permissions command: file = %s, mode = %o", e.Source1, e.Mode)
	return nil
}

// logSkip records one skipped item during a bulk operation.
func (r *Runner) logSkip(op, path string, err error) {
	r.log.Warn("skipped during "+op, zap.String("path", path), zap.Error(err))
}
