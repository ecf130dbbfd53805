//go:build linux && !noblkid

package diskid

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openProbeSession(t *testing.T) TagSession {
	t.Helper()
	cache := DefaultTagCache()
	require.NotNil(t, cache)

	session, err := cache.Open()
	require.NoError(t, err)
	return session
}

func TestProbeSessionMissingDevice(t *testing.T) {
	session := openProbeSession(t)
	defer session.Close()

	_, err := session.Device(filepath.Join(t.TempDir(), "sdz1"))
	assert.True(t, errors.Is(err, ErrDeviceNotFound), "got %v", err)
}

func TestProbeSessionRejectsRelativeNames(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "overlay"), make([]byte, 4096), 0o644))

	t.Chdir(dir)

	session := openProbeSession(t)
	defer session.Close()

	for _, name := range []string{"overlay", "rootfs", "tmpfs", "none", "./overlay"} {
		_, err := session.Device(name)
		assert.True(t, errors.Is(err, ErrDeviceNotFound), "%s: got %v", name, err)
	}
}

func TestProbeSessionClosed(t *testing.T) {
	session := openProbeSession(t)
	require.NoError(t, session.Close())

	_, err := session.Device("/dev/sda1")
	assert.True(t, errors.Is(err, errSessionClosed))
}

func TestVolumeLookupOverlayRootWithProbeCache(t *testing.T) {
	v := NewVolumeLookup(fakeMounts{"/": "overlay"}, DefaultTagCache(), testLogger())

	require.True(t, v.HasVolumeLookupCapability())
	_, err := v.LookupVolume("/")
	assert.True(t, errors.Is(err, ErrDeviceNotFound))
	assert.Equal(t, "", v.GetUUIDByMountPoint("/"))
}
