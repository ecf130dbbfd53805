package diskid

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sigreer/rootdiskid/internal/mount"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeMounts maps mount points to source devices.
type fakeMounts map[string]string

func (f fakeMounts) FindSourceDevice(mountPoint string) string {
	return f[mountPoint]
}

func (f fakeMounts) Lookup(mountPoint string) (mount.Entry, error) {
	src, ok := f[mountPoint]
	if !ok {
		return mount.Entry{}, mount.ErrNotMounted
	}
	return mount.Entry{MountPoint: mountPoint, Source: src}, nil
}

// fakeTagCache serves tags from a map and counts sessions.
type fakeTagCache struct {
	devices map[string]Tags
	openErr error
	opened  int
	closed  int
}

func (c *fakeTagCache) Open() (TagSession, error) {
	if c.openErr != nil {
		return nil, c.openErr
	}
	c.opened++
	return &fakeSession{cache: c}, nil
}

type fakeSession struct {
	cache *fakeTagCache
}

func (s *fakeSession) Device(name string) (Tags, error) {
	tags, ok := s.cache.devices[name]
	if !ok {
		return nil, ErrDeviceNotFound
	}
	return tags, nil
}

func (s *fakeSession) Close() error {
	s.cache.closed++
	return nil
}

var errBoom = errors.New("boom")

// writeSysfs creates <root>/block/<dev>/<attr> files.
func writeSysfs(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, value := range files {
		path := filepath.Join(root, "block", rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(value), 0o644))
	}
}
