package diskid

import (
	"fmt"
	"log/slog"

	"github.com/sigreer/rootdiskid/internal/blockdev"
)

// Tag names used by the blkid tag cache.
const (
	TagUUID  = "UUID"
	TagType  = "TYPE"
	TagLabel = "LABEL"
)

// Tags are the blkid tags of one device.
type Tags map[string]string

// TagCache opens a device tag cache from its default location.
type TagCache interface {
	Open() (TagSession, error)
}

// TagSession is an open tag cache. Close must be called once the session is
// no longer needed.
type TagSession interface {
	// Device looks the device up by name with normal priority and returns
	// its tags, or an error wrapping ErrDeviceNotFound.
	Device(name string) (Tags, error)
	Close() error
}

// VolumeLookup finds filesystem UUIDs through a device tag cache, without
// touching sysfs.
type VolumeLookup struct {
	mounts blockdev.MountTable
	cache  TagCache
	logger *slog.Logger
}

// NewVolumeLookup returns a lookup over cache. A nil cache yields a lookup
// without the capability.
func NewVolumeLookup(mounts blockdev.MountTable, cache TagCache, logger *slog.Logger) *VolumeLookup {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &VolumeLookup{mounts: mounts, cache: cache, logger: logger}
}

// HasVolumeLookupCapability reports whether a tag cache is wired in.
func (v *VolumeLookup) HasVolumeLookupCapability() bool {
	return v != nil && v.cache != nil
}

// GetUUIDByMountPoint returns the UUID tag of the device mounted on
// mountPoint, or "".
func (v *VolumeLookup) GetUUIDByMountPoint(mountPoint string) string {
	uuid, err := v.LookupVolume(mountPoint)
	if err != nil {
		v.logger.Debug("volume lookup failed", "mount_point", mountPoint, "err", err)
		return ""
	}
	return uuid
}

// LookupVolume is GetUUIDByMountPoint with the reason for a miss. The cache
// session is closed on every path once opened.
func (v *VolumeLookup) LookupVolume(mountPoint string) (uuid string, err error) {
	if !v.HasVolumeLookupCapability() {
		return "", ErrNoVolumeLookup
	}

	entry, err := v.mounts.Lookup(mountPoint)
	if err != nil {
		return "", err
	}
	device := entry.Source
	if len(device) > MaxDevicePathLen {
		return "", fmt.Errorf("%d bytes: %w", len(device), ErrDevicePathTooLong)
	}

	session, err := v.cache.Open()
	if err != nil {
		return "", fmt.Errorf("open tag cache: %w", err)
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			v.logger.Warn("closing tag cache failed", "err", cerr)
		}
	}()

	tags, err := session.Device(device)
	if err != nil {
		return "", fmt.Errorf("%s: %w", device, err)
	}

	uuid = tags[TagUUID]
	if uuid == "" {
		return "", fmt.Errorf("%s: %w", device, ErrNoUUIDTag)
	}
	return uuid, nil
}
