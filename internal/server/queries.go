package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orbitward/filemgr/internal/dispatch"
	"github.com/orbitward/filemgr/internal/events"
	"github.com/orbitward/filemgr/internal/fsobj"
	"github.com/orbitward/filemgr/internal/ops"
)

// fileInfoResponse reports classification and the captured stat snapshot.
type fileInfoResponse struct {
	Path        string    `json:"path"`
	State       string    `json:"state"`
	Size        int64     `json:"size"`
	Mode        string    `json:"mode,omitempty"`
	ModTime     time.Time `json:"mod_time,omitzero"`
	ContentType string    `json:"content_type,omitempty"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"worker":        s.worker.Status(),
		"queue_depth":   s.queue.Depth(),
		"queue_enabled": s.queue.Enabled(),
		"open_handles":  s.handles.Count(),
	})
}

// handleFileInfo classifies a path and returns the stat side-channel
// captured during that classification. Content type is sniffed only for
// closed files; open files are left alone.
func (s *Server) handleFileInfo(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path parameter required"})
		return
	}

	const cmdText = "Get File Info"
	state := s.checker.NameValid(path, fsobj.MaxPathLen, events.BaseFileInfo, cmdText)
	if state == fsobj.StateInvalid {
		s.rejected(c, dispatch.CmdNoop)
		return
	}

	resp := fileInfoResponse{Path: path, State: state.String()}
	if state != fsobj.StateNotInUse {
		stat := s.classifier.LastStat()
		resp.Size = stat.Size
		resp.Mode = stat.Mode.String()
		resp.ModTime = stat.ModTime
	}
	if state == fsobj.StateFileClosed {
		resp.ContentType = ops.DetectType(path)
	}

	s.reporter.Send(events.BaseFileInfo+events.OffsetComplete, events.Info,
		"%s command: file = %s, state = %s", cmdText, path, resp.State)
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleOpenFiles(c *gin.Context) {
	records := s.handles.Snapshot()
	s.reporter.Send(events.BaseOpenFiles+events.OffsetComplete, events.Info,
		"Get Open Files command: %d files open", len(records))
	c.JSON(http.StatusOK, gin.H{
		"open_files": records,
		"count":      len(records),
	})
}

// handleStatusReset zeroes the worker counters, the housekeeping
// counterpart of the status report.
func (s *Server) handleStatusReset(c *gin.Context) {
	s.worker.ResetCounters()
	s.reporter.Send(events.BaseWorker+events.OffsetComplete, events.Info,
		"Reset Counters command completed")
	c.JSON(http.StatusOK, gin.H{"reset": true})
}

// handleDirList reads one directory level synchronously. The response is
// windowed so a large directory cannot stall the command context.
func (s *Server) handleDirList(c *gin.Context) {
	dir := c.Query("path")
	if dir == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path parameter required"})
		return
	}
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "64"))

	const cmdText = "Directory List"
	if !s.checker.DirExists(dir, fsobj.MaxPathLen, events.BaseDirListPkt, cmdText) {
		s.rejected(c, dispatch.CmdNoop)
		return
	}

	entries, total, err := ops.ListDir(fsobj.AppendPathSep(dir, fsobj.MaxPathLen), offset, limit)
	if err != nil {
		s.reporter.Send(events.BaseDirListPkt+events.OffsetOSError, events.Error,
			"%s error: %v", cmdText, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"directory": dir,
		"offset":    offset,
		"total":     total,
		"entries":   entries,
	})
}

func (s *Server) handleFreeSpace(c *gin.Context) {
	if s.monitor == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "free-space monitor disabled"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"volumes": s.monitor.ReportAll()})
}

func (s *Server) handleFreeSpaceReload(c *gin.Context) {
	if s.monitor == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "free-space monitor disabled"})
		return
	}
	if err := s.monitor.Reload(); err != nil {
		s.reporter.Send(events.BaseFreeSpace+events.OffsetOSError, events.Error,
			"Free Space Table reload error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	s.reporter.Send(events.BaseFreeSpace+events.OffsetComplete, events.Info,
		"Free Space Table reload command completed")
	c.JSON(http.StatusOK, gin.H{"reloaded": true})
}
