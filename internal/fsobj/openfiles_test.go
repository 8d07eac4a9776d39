package fsobj

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandleTableRegisterRelease(t *testing.T) {
	table := NewHandleTable()

	assert.False(t, table.IsOpen("/ram/a.dat"))
	assert.Equal(t, 0, table.Count())

	table.Register("/ram/a.dat", "fm-worker")
	assert.True(t, table.IsOpen("/ram/a.dat"))
	assert.Equal(t, 1, table.Count())

	table.Release("/ram/a.dat")
	assert.False(t, table.IsOpen("/ram/a.dat"))
	assert.Equal(t, 0, table.Count())
}

func TestHandleTableMultipleHandles(t *testing.T) {
	table := NewHandleTable()
	table.Register("/ram/a.dat", "reader-1")
	table.Register("/ram/a.dat", "reader-2")

	assert.Equal(t, 2, table.Count())

	// One release leaves the second handle open.
	table.Release("/ram/a.dat")
	assert.True(t, table.IsOpen("/ram/a.dat"))

	table.Release("/ram/a.dat")
	assert.False(t, table.IsOpen("/ram/a.dat"))
}

func TestHandleTableReleaseUnknown(t *testing.T) {
	table := NewHandleTable()
	table.Release("/ram/never-opened.dat")
	assert.Equal(t, 0, table.Count())
}

func TestHandleTableSnapshot(t *testing.T) {
	table := NewHandleTable()
	table.Register("/ram/a.dat", "app-one")
	table.Register("/ram/b.dat", "app-two")

	snap := table.Snapshot()
	assert.Len(t, snap, 2)

	names := make(map[string]string)
	for _, rec := range snap {
		names[rec.LogicalName] = rec.OwnerName
	}
	assert.Equal(t, "app-one", names["/ram/a.dat"])
	assert.Equal(t, "app-two", names["/ram/b.dat"])

	// Snapshot is point-in-time: later registrations do not appear in it.
	table.Register("/ram/c.dat", "app-three")
	assert.Len(t, snap, 2)
}

func TestTerminate(t *testing.T) {
	assert.Equal(t, "/ram/x", Terminate("/ram/x", MaxPathLen))
	assert.Equal(t, "/ra", Terminate("/ram/x", 4))
	assert.Equal(t, "/ram", Terminate("/ram\x00junk", MaxPathLen))
	assert.Equal(t, "", Terminate("anything", 0))
}
