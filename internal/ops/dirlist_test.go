package ops

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitward/filemgr/internal/dispatch"
)

func readListing(t *testing.T, path string) []DirEntry {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var entries []DirEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e DirEntry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &e))
		entries = append(entries, e)
	}
	require.NoError(t, scanner.Err())
	return entries
}

func TestDirListFile(t *testing.T) {
	r, recorder, _ := newTestRunner()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.dat"), "bb")
	writeFile(t, filepath.Join(dir, "a.dat"), "a")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	writeFile(t, filepath.Join(dir, "sub", "c.dat"), "ccc")

	out := filepath.Join(t.TempDir(), "listing.json")
	require.NoError(t, r.DirListFile(context.Background(), dispatch.Entry{
		Code: dispatch.CmdDirListFile, Source1: dir, Target: out, EventBase: testBase,
	}))

	entries := readListing(t, out)
	require.Len(t, entries, 4)
	// Sorted by relative path, subtree included.
	assert.Equal(t, "a.dat", entries[0].Name)
	assert.Equal(t, "b.dat", entries[1].Name)
	assert.Equal(t, "sub", entries[2].Name)
	assert.True(t, entries[2].IsDir)
	assert.Equal(t, filepath.Join("sub", "c.dat"), entries[3].Name)
	assert.Equal(t, int64(3), entries[3].Size)

	ev, ok := recorder.Last()
	require.True(t, ok)
	assert.Contains(t, ev.Text, "dirs = 1")
	assert.Contains(t, ev.Text, "files = 3")
}

func TestDirListFileEmptyDir(t *testing.T) {
	r, _, _ := newTestRunner()
	out := filepath.Join(t.TempDir(), "listing.json")

	require.NoError(t, r.DirListFile(context.Background(), dispatch.Entry{
		Code: dispatch.CmdDirListFile, Source1: t.TempDir(), Target: out, EventBase: testBase,
	}))
	assert.Empty(t, readListing(t, out))
}

func TestListDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a", "b", "c", "d"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644))
	}

	entries, total, err := ListDir(dir, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	require.Len(t, entries, 4)
	assert.Equal(t, "a", entries[0].Name)

	entries, total, err = ListDir(dir, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	require.Len(t, entries, 2)
	assert.Equal(t, "b", entries[0].Name)
	assert.Equal(t, "c", entries[1].Name)

	entries, total, err = ListDir(dir, 10, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	assert.Empty(t, entries)
}

func TestListDirMissing(t *testing.T) {
	_, _, err := ListDir(filepath.Join(t.TempDir(), "absent"), 0, 0)
	assert.Error(t, err)
}
