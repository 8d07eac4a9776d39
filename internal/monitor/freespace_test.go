package monitor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTable(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "volumes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewLoadsTable(t *testing.T) {
	path := writeTable(t, `
volumes:
  - name: scratch
    path: /tmp
    enabled: true
  - name: archive
    path: /var
    enabled: false
`)

	m, err := New(path)
	require.NoError(t, err)

	volumes := m.Volumes()
	require.Len(t, volumes, 2)
	assert.Equal(t, "scratch", volumes[0].Name)
	assert.Equal(t, "/tmp", volumes[0].Path)
	assert.True(t, volumes[0].Enabled)
	assert.False(t, volumes[1].Enabled)
}

func TestNewMissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestReloadRejectsBadTable(t *testing.T) {
	path := writeTable(t, `
volumes:
  - name: scratch
    path: /tmp
    enabled: true
`)
	m, err := New(path)
	require.NoError(t, err)

	// Entry without a path must not replace the loaded table.
	require.NoError(t, os.WriteFile(path, []byte("volumes:\n  - name: broken\n"), 0o644))
	assert.Error(t, m.Reload())

	volumes := m.Volumes()
	require.Len(t, volumes, 1)
	assert.Equal(t, "scratch", volumes[0].Name)
}

func TestReloadPicksUpChanges(t *testing.T) {
	path := writeTable(t, `
volumes:
  - name: scratch
    path: /tmp
    enabled: true
`)
	m, err := New(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`
volumes:
  - name: scratch
    path: /tmp
    enabled: true
  - name: extra
    path: /var
    enabled: true
`), 0o644))
	require.NoError(t, m.Reload())
	assert.Len(t, m.Volumes(), 2)
}

func TestReportAll(t *testing.T) {
	dir := t.TempDir()
	path := writeTable(t, `
volumes:
  - name: scratch
    path: `+dir+`
    enabled: true
  - name: disabled
    path: `+dir+`
    enabled: false
  - name: gone
    path: /nonexistent-mount-point
    enabled: true
`)

	m, err := New(path)
	require.NoError(t, err)

	reports := m.ReportAll()
	require.Len(t, reports, 1)
	assert.Equal(t, "scratch", reports[0].Name)
	assert.Positive(t, reports[0].TotalBytes)
	assert.GreaterOrEqual(t, reports[0].TotalBytes, reports[0].FreeBytes)
}
