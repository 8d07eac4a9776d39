package dispatch

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/orbitward/filemgr/internal/logging"
)

// Handler executes one queued command. A non-nil error counts against the
// worker error counter and produces one failure diagnostic.
type Handler func(ctx context.Context, e Entry) error

var errNoHandler = errors.New("no handler registered for command code")

// Status is a point-in-time snapshot of worker counters.
type Status struct {
	CommandCounter  uint32      `json:"command_counter"`
	ErrorCounter    uint32      `json:"error_counter"`
	WarningCounter  uint32      `json:"warning_counter"`
	QueueDepth      int         `json:"queue_depth"`
	CurrentCommand  CommandCode `json:"current_command"`
	PreviousCommand CommandCode `json:"previous_command"`
}

// Worker drains the command queue in its own goroutine. It blocks on the
// wake signal, executes at most one entry per wake, and additionally wakes
// on a periodic tick so maintenance runs even with an empty queue.
type Worker struct {
	queue    *Queue
	log      *logging.Logger
	interval time.Duration

	handlers    map[CommandCode]Handler
	maintenance func()
	observer    func(code CommandCode, elapsed time.Duration, err error)

	cmdCounter  atomic.Uint32
	errCounter  atomic.Uint32
	warnCounter atomic.Uint32
	currentCC   atomic.Uint32
	previousCC  atomic.Uint32
}

// NewWorker creates a worker over the given queue. Intervals below one
// millisecond fall back to one second.
func NewWorker(q *Queue, log *logging.Logger, interval time.Duration) *Worker {
	if interval < time.Millisecond {
		interval = time.Second
	}
	return &Worker{
		queue:    q,
		log:      log.Named("worker"),
		interval: interval,
		handlers: make(map[CommandCode]Handler),
	}
}

// Register installs the handler for a command code, replacing any previous
// registration.
func (w *Worker) Register(code CommandCode, h Handler) {
	w.handlers[code] = h
}

// OnMaintenance installs a callback invoked on every periodic wake.
func (w *Worker) OnMaintenance(fn func()) {
	w.maintenance = fn
}

// OnExecute installs a callback invoked after every executed entry with the
// command code, elapsed time, and execution error if any.
func (w *Worker) OnExecute(fn func(code CommandCode, elapsed time.Duration, err error)) {
	w.observer = fn
}

// Run enables the queue and drains it until ctx is cancelled. The queue is
// disabled again on exit so producers fail fast instead of filling a queue
// nobody serves.
func (w *Worker) Run(ctx context.Context) {
	w.queue.Enable()
	defer w.queue.Disable()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info("worker started",
		zap.Int("queue_depth", w.queue.Capacity()),
		zap.Duration("maintenance_interval", w.interval))

	for {
		select {
		case <-ctx.Done():
			w.log.Info("worker stopped", zap.Uint32("commands", w.cmdCounter.Load()))
			return
		case <-w.queue.Wake():
			w.executeOne(ctx)
		case <-ticker.C:
			if w.maintenance != nil {
				w.maintenance()
			}
		}
	}
}

// executeOne drains at most one entry. Draining one entry per wake bounds
// per-iteration latency and keeps the maintenance tick responsive.
func (w *Worker) executeOne(ctx context.Context) {
	e, ok := w.queue.Dequeue()
	if !ok {
		// Wake without a queued entry: counters and signals disagree.
		w.warnCounter.Add(1)
		w.log.Warn("wake signal with empty queue")
		return
	}

	w.currentCC.Store(uint32(e.Code))
	started := time.Now()

	var err error
	if h, ok := w.handlers[e.Code]; !ok {
		w.errCounter.Add(1)
		err = errNoHandler
		w.log.Error("no handler for command code",
			zap.String("command", e.Code.String()),
			zap.String("correlation_id", e.CorrelationID))
	} else if err = h(ctx, e); err != nil {
		w.errCounter.Add(1)
		w.log.Error("command failed",
			zap.String("command", e.Code.String()),
			zap.String("correlation_id", e.CorrelationID),
			zap.Error(err))
	} else {
		w.cmdCounter.Add(1)
	}

	if w.observer != nil {
		w.observer(e.Code, time.Since(started), err)
	}

	w.previousCC.Store(uint32(e.Code))
	w.currentCC.Store(uint32(CmdNoop))
}

// ResetCounters zeroes the command, error, and warning counters. Command
// code tracking is left alone.
func (w *Worker) ResetCounters() {
	w.cmdCounter.Store(0)
	w.errCounter.Store(0)
	w.warnCounter.Store(0)
}

// Status returns a snapshot of the worker counters.
func (w *Worker) Status() Status {
	return Status{
		CommandCounter:  w.cmdCounter.Load(),
		ErrorCounter:    w.errCounter.Load(),
		WarningCounter:  w.warnCounter.Load(),
		QueueDepth:      w.queue.Depth(),
		CurrentCommand:  CommandCode(w.currentCC.Load()),
		PreviousCommand: CommandCode(w.previousCC.Load()),
	}
}
