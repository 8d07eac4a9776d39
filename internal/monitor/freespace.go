// Package monitor reports free space for a configured set of volumes.
package monitor

import (
	"fmt"
	"os"
	"sync"

	"github.com/goccy/go-yaml"
	"golang.org/x/sys/unix"
)

// Volume is one monitored filesystem mount.
type Volume struct {
	Name    string `yaml:"name" json:"name"`
	Path    string `yaml:"path" json:"path"`
	Enabled bool   `yaml:"enabled" json:"enabled"`
}

// Table is the on-disk monitor configuration.
type Table struct {
	Volumes []Volume `yaml:"volumes"`
}

// Report is the point-in-time usage of one volume.
type Report struct {
	Name       string `json:"name"`
	Path       string `json:"path"`
	FreeBytes  uint64 `json:"free_bytes"`
	TotalBytes uint64 `json:"total_bytes"`
}

// Monitor answers free-space queries against a reloadable volume table.
type Monitor struct {
	mu        sync.RWMutex
	tablePath string
	table     Table
}

// New creates a monitor and loads its table from tablePath.
func New(tablePath string) (*Monitor, error) {
	m := &Monitor{tablePath: tablePath}
	if err := m.Reload(); err != nil {
		return nil, err
	}
	return m, nil
}

// Reload re-reads the volume table from disk, replacing the current table
// only when the new one parses cleanly.
func (m *Monitor) Reload() error {
	data, err := os.ReadFile(m.tablePath)
	if err != nil {
		return fmt.Errorf("failed to read monitor table: %w", err)
	}

	var table Table
	if err := yaml.Unmarshal(data, &table); err != nil {
		return fmt.Errorf("failed to parse monitor table: %w", err)
	}
	for i, v := range table.Volumes {
		if v.Name == "" || v.Path == "" {
			return fmt.Errorf("monitor table entry %d missing name or path", i)
		}
	}

	m.mu.Lock()
	m.table = table
	m.mu.Unlock()
	return nil
}

// Volumes returns a copy of the current table entries.
func (m *Monitor) Volumes() []Volume {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Volume, len(m.table.Volumes))
	copy(out, m.table.Volumes)
	return out
}

// ReportAll queries free space for every enabled volume. Volumes whose
// statfs fails are skipped; they reappear once the mount is back.
func (m *Monitor) ReportAll() []Report {
	volumes := m.Volumes()
	reports := make([]Report, 0, len(volumes))
	for _, v := range volumes {
		if !v.Enabled {
			continue
		}
		var stat unix.Statfs_t
		if err := unix.Statfs(v.Path, &stat); err != nil {
			continue
		}
		reports = append(reports, Report{
			Name:       v.Name,
			Path:       v.Path,
			FreeBytes:  stat.Bavail * uint64(stat.Bsize),
			TotalBytes: stat.Blocks * uint64(stat.Bsize),
		})
	}
	return reports
}
