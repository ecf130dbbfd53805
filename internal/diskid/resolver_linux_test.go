//go:build linux

package diskid

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rootMountinfo = "1 0 0:1 / /proc rw - proc proc rw\n" +
	"22 1 8:1 / / rw,relatime shared:1 - ext4 /dev/sda1 rw,errors=remount-ro\n"

func systemOptions(t *testing.T, sysfsFiles map[string]string) Options {
	t.Helper()
	dir := t.TempDir()

	table := filepath.Join(dir, "mountinfo")
	require.NoError(t, os.WriteFile(table, []byte(rootMountinfo), 0o644))

	root := filepath.Join(dir, "sys")
	writeSysfs(t, root, sysfsFiles)

	return Options{
		MountTable:          table,
		SysfsRoot:           root,
		DisableVolumeLookup: true,
		Logger:              testLogger(),
	}
}

func TestScenarioWWID(t *testing.T) {
	r := NewResolver(systemOptions(t, map[string]string{"sda/wwid": "t10.ATA123\n"}))

	assert.Equal(t, "t10.ATA123", r.GetIdentifier())

	res := r.Resolve()
	assert.Equal(t, "/dev/sda1", res.RootDevice)
	assert.Equal(t, "ext4", res.FSType)
	assert.Equal(t, "/dev/sda", res.DiskDevice)
}

func TestScenarioUUID(t *testing.T) {
	r := NewResolver(systemOptions(t, map[string]string{"sda/uuid": "ABCD-1234"}))

	assert.Equal(t, "ABCD-1234", r.GetIdentifier())
}

func TestScenarioNothingWithoutCapability(t *testing.T) {
	r := NewResolver(systemOptions(t, nil))

	assert.Equal(t, "", r.GetIdentifier())
}

func TestScenarioTagCacheFallback(t *testing.T) {
	opts := systemOptions(t, nil)
	opts.DisableVolumeLookup = false
	opts.TagCache = &fakeTagCache{devices: map[string]Tags{"/dev/sda1": {TagUUID: "1111-2222"}}}

	assert.Equal(t, "1111-2222", NewResolver(opts).GetIdentifier())
}

func TestScenarioMissingMountTable(t *testing.T) {
	opts := systemOptions(t, map[string]string{"sda/wwid": "t10.ATA123"})
	opts.MountTable = filepath.Join(t.TempDir(), "absent")

	assert.Equal(t, "", NewResolver(opts).GetIdentifier())
}
