// Package server exposes the file manager command API. Handlers run in the
// command context: they verify preconditions and enqueue work, and never
// touch the filesystem themselves.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/orbitward/filemgr/internal/config"
	"github.com/orbitward/filemgr/internal/dispatch"
	"github.com/orbitward/filemgr/internal/events"
	"github.com/orbitward/filemgr/internal/fsobj"
	"github.com/orbitward/filemgr/internal/logging"
	"github.com/orbitward/filemgr/internal/monitor"
	"github.com/orbitward/filemgr/internal/ops"
	"github.com/orbitward/filemgr/internal/telemetry"
	"github.com/orbitward/filemgr/internal/verify"
)

// Server wires the subsystem together and serves the command API.
//
// cmdMu is the command context: the queue producer side and the
// classifier's stat slot are single-threaded, so every request that runs
// the gate or enqueues holds it for the duration of the handler.
type Server struct {
	router   *gin.Engine
	http     *http.Server
	log      *logging.Logger
	cfg      *config.Config
	metrics  *telemetry.Metrics
	registry *prometheus.Registry
	cmdMu    sync.Mutex

	handles    *fsobj.HandleTable
	classifier *fsobj.Classifier
	checker    *verify.Checker
	reporter   events.Reporter
	queue      *dispatch.Queue
	worker     *dispatch.Worker
	monitor    *monitor.Monitor

	workerCancel context.CancelFunc
	workerDone   chan struct{}
}

// New builds a server from configuration. The free-space monitor is
// optional; everything else is required.
func New(cfg *config.Config, log *logging.Logger) (*Server, error) {
	registry := prometheus.NewRegistry()
	metrics := telemetry.NewMetrics(registry)

	handles := fsobj.NewHandleTable()
	classifier := fsobj.NewClassifier(handles)

	reporter := events.NewCountingReporter(
		events.NewLogReporter(log.Named("events")),
		func(sev events.Severity) { metrics.EventsTotal.WithLabelValues(sev.String()).Inc() },
	)
	checker := verify.NewChecker(classifier, reporter)

	queue := dispatch.NewQueue(cfg.Dispatch.QueueDepth)
	worker := dispatch.NewWorker(queue, log, cfg.Dispatch.MaintenanceInterval)
	worker.OnExecute(func(code dispatch.CommandCode, elapsed time.Duration, err error) {
		metrics.WorkerDuration.WithLabelValues(code.String()).Observe(elapsed.Seconds())
		if err != nil {
			metrics.WorkerErrors.WithLabelValues(code.String()).Inc()
		}
	})

	runner := ops.NewRunner(handles, reporter, log)
	runner.Register(worker)

	var mon *monitor.Monitor
	if cfg.Monitor.Enabled {
		m, err := monitor.New(cfg.Monitor.TablePath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize free-space monitor: %w", err)
		}
		mon = m
	}

	s := &Server{
		log:        log.Named("server"),
		cfg:        cfg,
		metrics:    metrics,
		handles:    handles,
		classifier: classifier,
		checker:    checker,
		reporter:   reporter,
		queue:      queue,
		worker:     worker,
		monitor:    mon,
		registry:   registry,
	}

	// Maintenance wake: refresh gauges even when the queue is idle.
	worker.OnMaintenance(s.refreshGauges)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.RateLimit.Enabled {
		router.Use(rateLimit(cfg.RateLimit))
	}
	s.router = router
	s.registerRoutes()

	reporter.Send(events.BaseStartup+events.OffsetComplete, events.Info,
		"File Manager initialized: queue depth = %d", queue.Capacity())

	return s, nil
}

// serializeCommands funnels requests into the single command context. gin
// runs each handler on its own goroutine, but the queue producer side and
// the stat slot admit exactly one thread.
func (s *Server) serializeCommands() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.cmdMu.Lock()
		defer s.cmdMu.Unlock()
		c.Next()
	}
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/status", s.handleStatus)
	s.router.POST("/status/reset", s.handleStatusReset)
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	v1 := s.router.Group("/v1")
	v1.Use(s.serializeCommands())
	{
		files := v1.Group("/files")
		files.POST("/copy", s.handleCopy)
		files.POST("/move", s.handleMove)
		files.POST("/rename", s.handleRename)
		files.POST("/delete", s.handleDelete)
		files.POST("/delete-all", s.handleDeleteAll)
		files.POST("/decompress", s.handleDecompress)
		files.POST("/concat", s.handleConcat)
		files.POST("/permissions", s.handleSetPerm)
		files.GET("/info", s.handleFileInfo)
		files.GET("/open", s.handleOpenFiles)

		dirs := v1.Group("/dirs")
		dirs.POST("/create", s.handleCreateDir)
		dirs.POST("/remove", s.handleRemoveDir)
		dirs.POST("/list-file", s.handleDirListFile)
		dirs.GET("/list", s.handleDirList)

		v1.GET("/freespace", s.handleFreeSpace)
		v1.POST("/freespace/reload", s.handleFreeSpaceReload)
	}
}

// refreshGauges updates queue and volume gauges. Runs on the worker's
// periodic maintenance wake.
func (s *Server) refreshGauges() {
	s.metrics.QueueDepth.Set(float64(s.queue.Depth()))
	s.metrics.OpenHandles.Set(float64(s.handles.Count()))
	if s.monitor != nil {
		for _, r := range s.monitor.ReportAll() {
			s.metrics.VolumeFreeBytes.WithLabelValues(r.Name).Set(float64(r.FreeBytes))
		}
	}
}

// Run starts the worker and serves HTTP until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	workerCtx, cancel := context.WithCancel(ctx)
	s.workerCancel = cancel
	s.workerDone = make(chan struct{})
	go func() {
		defer close(s.workerDone)
		s.worker.Run(workerCtx)
	}()

	addr := s.cfg.Server.Host + ":" + s.cfg.Server.Port
	s.http = &http.Server{Addr: addr, Handler: s.router}

	s.log.Info("file manager listening",
		zap.String("addr", addr),
		zap.Int("queue_depth", s.queue.Capacity()))

	errCh := make(chan error, 1)
	go func() {
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		return s.Close()
	case err := <-errCh:
		return err
	}
}

// Close shuts down the HTTP listener and stops the worker. Queued entries
// not yet executed are dropped; producers see the queue disabled.
func (s *Server) Close() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var err error
	if s.http != nil {
		err = s.http.Shutdown(shutdownCtx)
	}
	if s.workerCancel != nil {
		s.workerCancel()
		select {
		case <-s.workerDone:
		case <-shutdownCtx.Done():
		}
	}
	return err
}

// Router exposes the gin engine. Used by tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
