package fsobj

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyStates(t *testing.T) {
	dir := t.TempDir()

	closed := filepath.Join(dir, "closed.dat")
	require.NoError(t, os.WriteFile(closed, []byte("payload"), 0o644))

	opened := filepath.Join(dir, "opened.dat")
	require.NoError(t, os.WriteFile(opened, []byte("payload"), 0o644))

	handles := NewHandleTable()
	handles.Register(opened, "test")
	cls := NewClassifier(handles)

	tests := []struct {
		name     string
		path     string
		capacity int
		expected NameState
	}{
		{
			name:     "closed file",
			path:     closed,
			capacity: len(closed) + 2,
			expected: StateFileClosed,
		},
		{
			name:     "open file",
			path:     opened,
			capacity: len(opened) + 2,
			expected: StateFileOpen,
		},
		{
			name:     "directory",
			path:     dir,
			capacity: len(dir) + 2,
			expected: StateDirectory,
		},
		{
			name:     "absent path",
			path:     filepath.Join(dir, "nope.dat"),
			capacity: MaxPathLen * 4,
			expected: StateNotInUse,
		},
		{
			name:     "empty name",
			path:     "",
			capacity: MaxPathLen,
			expected: StateInvalid,
		},
		{
			name:     "unterminated name",
			path:     "/tmp/abcd",
			capacity: 9,
			expected: StateInvalid,
		},
		{
			name:     "illegal character",
			path:     "/tmp/bad name",
			capacity: MaxPathLen,
			expected: StateInvalid,
		},
		{
			name:     "leading terminator",
			path:     "\x00/tmp/x",
			capacity: MaxPathLen,
			expected: StateInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cls.Classify(tt.path, tt.capacity, false))
		})
	}
}

func TestClassifyIdempotent(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "stable.dat")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	cls := NewClassifier(NewHandleTable())
	capacity := len(file) + 2

	first := cls.Classify(file, capacity, false)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, cls.Classify(file, capacity, false))
	}
}

func TestClassifyAbsentRAMPath(t *testing.T) {
	// An absent, well-formed path classifies as not-in-use.
	cls := NewClassifier(NewHandleTable())
	assert.Equal(t, StateNotInUse, cls.Classify("/ram/foo.dat", MaxPathLen, false))
}

func TestClassifyCaptureStat(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "info.dat")
	require.NoError(t, os.WriteFile(file, []byte("12345"), 0o644))

	cls := NewClassifier(NewHandleTable())
	capacity := len(file) + 2

	state := cls.Classify(file, capacity, true)
	require.Equal(t, StateFileClosed, state)
	snap := cls.LastStat()
	assert.Equal(t, int64(5), snap.Size)
	assert.False(t, snap.ModTime.IsZero())

	// Without capture the snapshot is left alone.
	cls.Classify(filepath.Join(dir, "absent.dat"), MaxPathLen*4, false)
	assert.Equal(t, int64(5), cls.LastStat().Size)

	// With capture an absent path zeroes the snapshot.
	cls.Classify(filepath.Join(dir, "absent.dat"), MaxPathLen*4, true)
	assert.Equal(t, int64(0), cls.LastStat().Size)
	assert.True(t, cls.LastStat().ModTime.IsZero())
}
