package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder()

	_, ok := r.Last()
	assert.False(t, ok)

	r.Send(100, Error, "failure %d on %s", 7, "/tmp/x")
	r.Send(111, Info, "done")

	evs := r.Events()
	require.Len(t, evs, 2)
	assert.Equal(t, uint32(100), evs[0].ID)
	assert.Equal(t, "failure 7 on /tmp/x", evs[0].Text)

	last, ok := r.Last()
	require.True(t, ok)
	assert.Equal(t, uint32(111), last.ID)
	assert.Equal(t, Info, last.Severity)

	r.Reset()
	assert.Empty(t, r.Events())
}

func TestCountingReporter(t *testing.T) {
	inner := NewRecorder()
	counts := map[Severity]int{}
	r := NewCountingReporter(inner, func(sev Severity) { counts[sev]++ })

	r.Send(1, Info, "a")
	r.Send(2, Error, "b")
	r.Send(3, Error, "c")

	assert.Equal(t, 1, counts[Info])
	assert.Equal(t, 2, counts[Error])
	assert.Len(t, inner.Events(), 3)
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "info", Info.String())
	assert.Equal(t, "error", Error.String())
	assert.Equal(t, "critical", Critical.String())
	assert.Equal(t, "unknown", Severity(42).String())
}
