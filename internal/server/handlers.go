package server

import (
	"errors"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/orbitward/filemgr/internal/dispatch"
	"github.com/orbitward/filemgr/internal/events"
	"github.com/orbitward/filemgr/internal/fsobj"
)

type copyRequest struct {
	Source    string `json:"source" binding:"required"`
	Target    string `json:"target" binding:"required"`
	Overwrite bool   `json:"overwrite"`
}

type renameRequest struct {
	Source string `json:"source" binding:"required"`
	Target string `json:"target" binding:"required"`
}

type deleteRequest struct {
	File string `json:"file" binding:"required"`
}

type deleteAllRequest struct {
	Directory string `json:"directory" binding:"required"`
	Pattern   string `json:"pattern"`
}

type concatRequest struct {
	Source1 string `json:"source1" binding:"required"`
	Source2 string `json:"source2" binding:"required"`
	Target  string `json:"target" binding:"required"`
}

type setPermRequest struct {
	File string `json:"file" binding:"required"`
	Mode uint32 `json:"mode" binding:"required"`
}

type dirRequest struct {
	Directory string `json:"directory" binding:"required"`
}

type dirListFileRequest struct {
	Directory string `json:"directory" binding:"required"`
	Target    string `json:"target" binding:"required"`
}

// queueFailure maps a queue rejection to its diagnostic offset, HTTP
// status, and severity. Backpressure and disabled are retryable errors; a
// broken queue is an internal inconsistency and reports critical.
func queueFailure(err error) (offset uint32, status int, severity events.Severity) {
	switch {
	case errors.Is(err, dispatch.ErrDisabled):
		return events.OffsetQueueDisabled, http.StatusServiceUnavailable, events.Error
	case errors.Is(err, dispatch.ErrFull):
		return events.OffsetQueueFull, http.StatusServiceUnavailable, events.Error
	default:
		return events.OffsetQueueBroken, http.StatusInternalServerError, events.Critical
	}
}

// enqueue submits a gated command. Queue rejection produces exactly one
// diagnostic at the command's base plus the queue offset.
func (s *Server) enqueue(c *gin.Context, e dispatch.Entry, cmdText string) {
	e.CorrelationID = uuid.NewString()

	if err := s.queue.TryEnqueue(e); err != nil {
		offset, status, severity := queueFailure(err)
		s.reporter.Send(e.EventBase+offset, severity, "%s error: %v", cmdText, err)
		s.metrics.CommandsRejected.WithLabelValues(e.Code.String(), "queue").Inc()
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	s.metrics.CommandsAccepted.WithLabelValues(e.Code.String()).Inc()
	s.metrics.QueueDepth.Set(float64(s.queue.Depth()))
	c.JSON(http.StatusAccepted, gin.H{
		"accepted":       true,
		"correlation_id": e.CorrelationID,
	})
}

// rejected answers a request that failed the verification gate. The gate
// already emitted the diagnostic; this only closes the HTTP side.
func (s *Server) rejected(c *gin.Context, code dispatch.CommandCode) {
	s.metrics.CommandsRejected.WithLabelValues(code.String(), "verify").Inc()
	c.JSON(http.StatusBadRequest, gin.H{"error": "precondition failed"})
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

func (s *Server) handleCopy(c *gin.Context) {
	var req copyRequest
	if !bindJSON(c, &req) {
		return
	}
	const cmdText = "Copy File"
	if !s.checker.FileExists(req.Source, fsobj.MaxPathLen, events.BaseCopy, cmdText) {
		s.rejected(c, dispatch.CmdCopy)
		return
	}
	if req.Overwrite {
		if !s.checker.FileNotOpen(req.Target, fsobj.MaxPathLen, events.BaseCopy, cmdText) {
			s.rejected(c, dispatch.CmdCopy)
			return
		}
	} else if !s.checker.FileAbsent(req.Target, fsobj.MaxPathLen, events.BaseCopy, cmdText) {
		s.rejected(c, dispatch.CmdCopy)
		return
	}
	s.enqueue(c, dispatch.Entry{
		Code:      dispatch.CmdCopy,
		Source1:   req.Source,
		Target:    req.Target,
		Overwrite: req.Overwrite,
		EventBase: events.BaseCopy,
	}, cmdText)
}

func (s *Server) handleMove(c *gin.Context) {
	var req copyRequest
	if !bindJSON(c, &req) {
		return
	}
	const cmdText = "Move File"
	if !s.checker.FileExists(req.Source, fsobj.MaxPathLen, events.BaseMove, cmdText) {
		s.rejected(c, dispatch.CmdMove)
		return
	}
	if req.Overwrite {
		if !s.checker.FileNotOpen(req.Target, fsobj.MaxPathLen, events.BaseMove, cmdText) {
			s.rejected(c, dispatch.CmdMove)
			return
		}
	} else if !s.checker.FileAbsent(req.Target, fsobj.MaxPathLen, events.BaseMove, cmdText) {
		s.rejected(c, dispatch.CmdMove)
		return
	}
	s.enqueue(c, dispatch.Entry{
		Code:      dispatch.CmdMove,
		Source1:   req.Source,
		Target:    req.Target,
		Overwrite: req.Overwrite,
		EventBase: events.BaseMove,
	}, cmdText)
}

func (s *Server) handleRename(c *gin.Context) {
	var req renameRequest
	if !bindJSON(c, &req) {
		return
	}
	const cmdText = "Rename File"
	if !s.checker.FileExists(req.Source, fsobj.MaxPathLen, events.BaseRename, cmdText) {
		s.rejected(c, dispatch.CmdRename)
		return
	}
	if !s.checker.FileAbsent(req.Target, fsobj.MaxPathLen, events.BaseRename, cmdText) {
		s.rejected(c, dispatch.CmdRename)
		return
	}
	s.enqueue(c, dispatch.Entry{
		Code:      dispatch.CmdRename,
		Source1:   req.Source,
		Target:    req.Target,
		EventBase: events.BaseRename,
	}, cmdText)
}

func (s *Server) handleDelete(c *gin.Context) {
	var req deleteRequest
	if !bindJSON(c, &req) {
		return
	}
	const cmdText = "Delete File"
	if !s.checker.FileClosedOnly(req.File, fsobj.MaxPathLen, events.BaseDelete, cmdText) {
		s.rejected(c, dispatch.CmdDelete)
		return
	}
	s.enqueue(c, dispatch.Entry{
		Code:      dispatch.CmdDelete,
		Source1:   req.File,
		EventBase: events.BaseDelete,
	}, cmdText)
}

func (s *Server) handleDeleteAll(c *gin.Context) {
	var req deleteAllRequest
	if !bindJSON(c, &req) {
		return
	}
	const cmdText = "Delete All Files"
	if !s.checker.DirExists(req.Directory, fsobj.MaxPathLen, events.BaseDeleteAll, cmdText) {
		s.rejected(c, dispatch.CmdDeleteAll)
		return
	}
	dir := fsobj.AppendPathSep(req.Directory, fsobj.MaxPathLen)
	s.enqueue(c, dispatch.Entry{
		Code:      dispatch.CmdDeleteAll,
		Source1:   dir,
		Pattern:   req.Pattern,
		EventBase: events.BaseDeleteAll,
	}, cmdText)
}

func (s *Server) handleDecompress(c *gin.Context) {
	var req renameRequest
	if !bindJSON(c, &req) {
		return
	}
	const cmdText = "Decompress File"
	if !s.checker.FileClosedOnly(req.Source, fsobj.MaxPathLen, events.BaseDecompress, cmdText) {
		s.rejected(c, dispatch.CmdDecompress)
		return
	}
	if !s.checker.FileAbsent(req.Target, fsobj.MaxPathLen, events.BaseDecompress, cmdText) {
		s.rejected(c, dispatch.CmdDecompress)
		return
	}
	s.enqueue(c, dispatch.Entry{
		Code:      dispatch.CmdDecompress,
		Source1:   req.Source,
		Target:    req.Target,
		EventBase: events.BaseDecompress,
	}, cmdText)
}

func (s *Server) handleConcat(c *gin.Context) {
	var req concatRequest
	if !bindJSON(c, &req) {
		return
	}
	const cmdText = "Concat Files"
	if !s.checker.FileClosedOnly(req.Source1, fsobj.MaxPathLen, events.BaseConcat, cmdText) {
		s.rejected(c, dispatch.CmdConcat)
		return
	}
	if !s.checker.FileClosedOnly(req.Source2, fsobj.MaxPathLen, events.BaseConcat, cmdText) {
		s.rejected(c, dispatch.CmdConcat)
		return
	}
	if !s.checker.FileAbsent(req.Target, fsobj.MaxPathLen, events.BaseConcat, cmdText) {
		s.rejected(c, dispatch.CmdConcat)
		return
	}
	s.enqueue(c, dispatch.Entry{
		Code:      dispatch.CmdConcat,
		Source1:   req.Source1,
		Source2:   req.Source2,
		Target:    req.Target,
		EventBase: events.BaseConcat,
	}, cmdText)
}

func (s *Server) handleSetPerm(c *gin.Context) {
	var req setPermRequest
	if !bindJSON(c, &req) {
		return
	}
	const cmdText = "Set Permissions"
	if s.checker.NameValid(req.File, fsobj.MaxPathLen, events.BaseSetPerm, cmdText) == fsobj.StateInvalid {
		s.rejected(c, dispatch.CmdSetPerm)
		return
	}
	s.enqueue(c, dispatch.Entry{
		Code:      dispatch.CmdSetPerm,
		Source1:   req.File,
		Mode:      fs.FileMode(req.Mode),
		EventBase: events.BaseSetPerm,
	}, cmdText)
}

func (s *Server) handleCreateDir(c *gin.Context) {
	var req dirRequest
	if !bindJSON(c, &req) {
		return
	}
	const cmdText = "Create Directory"
	if !s.checker.DirAbsent(req.Directory, fsobj.MaxPathLen, events.BaseCreateDir, cmdText) {
		s.rejected(c, dispatch.CmdCreateDir)
		return
	}
	s.enqueue(c, dispatch.Entry{
		Code:      dispatch.CmdCreateDir,
		Source1:   req.Directory,
		EventBase: events.BaseCreateDir,
	}, cmdText)
}

func (s *Server) handleRemoveDir(c *gin.Context) {
	var req dirRequest
	if !bindJSON(c, &req) {
		return
	}
	const cmdText = "Remove Directory"
	if !s.checker.DirExists(req.Directory, fsobj.MaxPathLen, events.BaseRemoveDir, cmdText) {
		s.rejected(c, dispatch.CmdRemoveDir)
		return
	}
	s.enqueue(c, dispatch.Entry{
		Code:      dispatch.CmdRemoveDir,
		Source1:   req.Directory,
		EventBase: events.BaseRemoveDir,
	}, cmdText)
}

func (s *Server) handleDirListFile(c *gin.Context) {
	var req dirListFileRequest
	if !bindJSON(c, &req) {
		return
	}
	const cmdText = "Directory List to File"
	if !s.checker.DirExists(req.Directory, fsobj.MaxPathLen, events.BaseDirListFile, cmdText) {
		s.rejected(c, dispatch.CmdDirListFile)
		return
	}
	if !s.checker.FileNotOpen(req.Target, fsobj.MaxPathLen, events.BaseDirListFile, cmdText) {
		s.rejected(c, dispatch.CmdDirListFile)
		return
	}
	dir := fsobj.AppendPathSep(req.Directory, fsobj.MaxPathLen)
	s.enqueue(c, dispatch.Entry{
		Code:      dispatch.CmdDirListFile,
		Source1:   dir,
		Target:    req.Target,
		EventBase: events.BaseDirListFile,
	}, cmdText)
}
