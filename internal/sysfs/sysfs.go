// Package sysfs reads single-value text attributes from the kernel's sysfs
// tree. Reads never wake drives and never spawn processes.
package sysfs

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DefaultRoot is where sysfs is normally mounted.
const DefaultRoot = "/sys"

// Reader reads attribute files. A missing attribute is not an error: the
// kernel either exposes a file for a device or it doesn't.
type Reader struct {
	root   string
	logger *slog.Logger
}

// NewReader returns a Reader rooted at root (DefaultRoot if empty).
func NewReader(root string, logger *slog.Logger) *Reader {
	if root == "" {
		root = DefaultRoot
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Reader{root: root, logger: logger}
}

// Root returns the sysfs mount point the reader resolves paths against.
func (r *Reader) Root() string {
	return r.root
}

// BlockAttributePath returns the path of attr for block device name,
// e.g. BlockAttributePath("sda", "wwid") -> /sys/block/sda/wwid.
func (r *Reader) BlockAttributePath(name string, attr ...string) string {
	parts := append([]string{r.root, "block", name}, attr...)
	return filepath.Join(parts...)
}

// Read returns the trimmed contents of the attribute at path, or "" if the
// attribute is absent or unreadable.
func (r *Reader) Read(path string) string {
	value, err := r.ReadAttribute(path)
	if err != nil {
		r.logger.Debug("sysfs attribute unreadable", "path", path, "err", err)
		return ""
	}
	return value
}

// ReadAttribute is Read with the failure reported. A missing file returns
// ("", nil).
func (r *Reader) ReadAttribute(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimRight(string(data), " \t\r\n\x00"), nil
}
