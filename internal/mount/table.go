// Package mount maps mount points to the devices backing them using the
// kernel's live mount table.
package mount

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// DefaultTablePath is the live mount table of the calling process.
const DefaultTablePath = "/proc/self/mountinfo"

// ErrNotMounted is returned by Lookup when no entry has the requested
// mount point.
var ErrNotMounted = errors.New("mount point not found")

// Entry is one row of the mount table. It is rebuilt on every query.
type Entry struct {
	MountPoint string `json:"mount_point"`
	Source     string `json:"source_device"`
	FSType     string `json:"fs_type,omitempty"`
}

// Table reads the mount table at a fixed path.
type Table struct {
	path   string
	logger *slog.Logger
}

// NewTable returns a Table reading path (DefaultTablePath if empty).
func NewTable(path string, logger *slog.Logger) *Table {
	if path == "" {
		path = DefaultTablePath
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Table{path: path, logger: logger}
}

// Path returns the mount table location.
func (t *Table) Path() string {
	return t.path
}

// FindSourceDevice returns the source of the first entry whose mount point
// equals mountPoint exactly, or "" if there is none or the table cannot be
// read. No path normalization is done: pass "/" for the root filesystem.
func (t *Table) FindSourceDevice(mountPoint string) string {
	entry, err := t.Lookup(mountPoint)
	if err != nil {
		if errors.Is(err, ErrNotMounted) {
			t.logger.Debug("no mount entry", "mount_point", mountPoint, "table", t.path)
		} else {
			t.logger.Warn("mount table lookup failed", "mount_point", mountPoint, "table", t.path, "err", err)
		}
		return ""
	}
	return entry.Source
}

// Lookup returns the first entry in kernel order whose mount point equals
// mountPoint. The table is opened and closed within the call.
func (t *Table) Lookup(mountPoint string) (Entry, error) {
	f, err := os.Open(t.path)
	if err != nil {
		return Entry{}, fmt.Errorf("open mount table: %w", err)
	}
	defer f.Close()

	entry, found, err := firstEntry(f, mountPoint)
	if err != nil {
		return Entry{}, fmt.Errorf("parse mount table %s: %w", t.path, err)
	}
	if !found {
		return Entry{}, fmt.Errorf("%s: %w", mountPoint, ErrNotMounted)
	}
	return entry, nil
}
