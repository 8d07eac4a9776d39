// Package events reports diagnostic events for command processing.
//
// Every failure a command can hit maps to a stable numeric identifier
// built from a caller-supplied base plus a small fixed offset, so each
// command keeps a distinct code per failure reason without the checks
// knowing the caller's catalog. Internally failures are structured
// (severity, context, text); the numeric rendering happens only here.
package events

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/orbitward/filemgr/internal/logging"
)

// Severity classifies an event.
type Severity int

const (
	Info Severity = iota
	Error
	Critical
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Error:
		return "error"
	case Critical:
		return "critical"
	default:
		return "unknown"
	}
}

// Event is a single reportable diagnostic.
type Event struct {
	ID       uint32
	Severity Severity
	Text     string
}

// Reporter delivers diagnostic events to the outside world.
type Reporter interface {
	Send(id uint32, severity Severity, format string, args ...interface{})
}

// LogReporter renders events through the application logger.
type LogReporter struct {
	log *logging.Logger
}

// NewLogReporter creates a reporter backed by the given logger.
func NewLogReporter(log *logging.Logger) *LogReporter {
	return &LogReporter{log: log}
}

// Send formats and logs one event.
func (r *LogReporter) Send(id uint32, severity Severity, format string, args ...interface{}) {
	text := fmt.Sprintf(format, args...)
	fields := []zap.Field{
		zap.Uint32("event_id", id),
		zap.String("severity", severity.String()),
	}
	switch severity {
	case Info:
		r.log.Info(text, fields...)
	default:
		r.log.Error(text, fields...)
	}
}

// CountingReporter forwards to next and invokes count per event, so the
// metrics layer can tally severities without the checks knowing about it.
type CountingReporter struct {
	next  Reporter
	count func(Severity)
}

// NewCountingReporter wraps next with the given counter callback.
func NewCountingReporter(next Reporter, count func(Severity)) *CountingReporter {
	return &CountingReporter{next: next, count: count}
}

// Send counts and forwards one event.
func (r *CountingReporter) Send(id uint32, severity Severity, format string, args ...interface{}) {
	if r.count != nil {
		r.count(severity)
	}
	r.next.Send(id, severity, format, args...)
}

// Recorder captures events in memory. Used by tests.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// NewRecorder creates an empty event recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Send records one event.
func (r *Recorder) Send(id uint32, severity Severity, format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{ID: id, Severity: severity, Text: fmt.Sprintf(format, args...)})
}

// Events returns a copy of all recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Last returns the most recent event and true, or a zero event and false.
func (r *Recorder) Last() (Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return Event{}, false
	}
	return r.events[len(r.events)-1], true
}

// Reset discards all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
