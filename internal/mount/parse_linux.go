//go:build linux

package mount

import (
	"io"

	"github.com/moby/sys/mountinfo"
)

// firstEntry scans a mountinfo-format table and stops at the first row
// mounted on mountPoint.
func firstEntry(r io.Reader, mountPoint string) (Entry, bool, error) {
	infos, err := mountinfo.GetMountsFromReader(r, mountinfo.SingleEntryFilter(mountPoint))
	if err != nil {
		return Entry{}, false, err
	}
	if len(infos) == 0 {
		return Entry{}, false, nil
	}
	return Entry{
		MountPoint: infos[0].Mountpoint,
		Source:     infos[0].Source,
		FSType:     infos[0].FSType,
	}, true, nil
}
