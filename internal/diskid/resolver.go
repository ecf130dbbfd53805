// Package diskid resolves a durable identifier for the disk holding the
// root filesystem: the root mount's device is mapped to its whole disk,
// whose WWID or UUID is read from sysfs. When that yields nothing and a
// device tag cache is available, the filesystem UUID of "/" is used.
package diskid

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/sigreer/rootdiskid/internal/blockdev"
	"github.com/sigreer/rootdiskid/internal/hwid"
	"github.com/sigreer/rootdiskid/internal/mount"
	"github.com/sigreer/rootdiskid/internal/sysfs"
)

// Kind is the name the resolver is registered under in hwid.
const Kind = "disk_uuid"

func init() {
	hwid.Register(Kind, func() hwid.Identifier { return New() })
}

// Options configures a Resolver. The zero value reads the live system.
type Options struct {
	MountTable string // mount table path, mount.DefaultTablePath if empty
	SysfsRoot  string // sysfs root, sysfs.DefaultRoot if empty

	// TagCache backs the volume lookup fallback. Nil selects
	// DefaultTagCache.
	TagCache            TagCache
	DisableVolumeLookup bool

	Logger *slog.Logger
}

// Resolution records each step of one resolution.
type Resolution struct {
	RootDevice   string `json:"root_device,omitempty"`
	FSType       string `json:"fs_type,omitempty"`
	DiskDevice   string `json:"disk_device,omitempty"`
	Source       Source `json:"source,omitempty"`
	Identifier   string `json:"identifier"`
	VolumeLookup bool   `json:"volume_lookup"`
}

type rootDevices interface {
	RootEntry() (mount.Entry, error)
	GetDiskDevice(partition string) string
}

type diskIdentifiers interface {
	ReadIdentifier(diskDevice string) (string, Source, error)
}

type volumeIdentifiers interface {
	HasVolumeLookupCapability() bool
	LookupVolume(mountPoint string) (string, error)
}

// Resolver is the disk_uuid identifier. It keeps no state between calls:
// every call re-reads the mount table and sysfs, so it is safe for
// concurrent use.
type Resolver struct {
	devices rootDevices
	ids     diskIdentifiers
	volumes volumeIdentifiers
	logger  *slog.Logger
}

// New returns a Resolver over the live system with default options.
func New() *Resolver {
	return NewResolver(Options{})
}

// NewResolver returns a Resolver configured by opts.
func NewResolver(opts Options) *Resolver {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	table := mount.NewTable(opts.MountTable, logger)

	var cache TagCache
	if !opts.DisableVolumeLookup {
		cache = opts.TagCache
		if cache == nil {
			cache = DefaultTagCache()
		}
	}

	return &Resolver{
		devices: blockdev.NewResolver(table),
		ids:     NewDeviceReader(sysfs.NewReader(opts.SysfsRoot, logger), logger),
		volumes: NewVolumeLookup(table, cache, logger),
		logger:  logger,
	}
}

// HasVolumeLookupCapability reports whether the tag cache fallback is used.
func (r *Resolver) HasVolumeLookupCapability() bool {
	return r.volumes != nil && r.volumes.HasVolumeLookupCapability()
}

// GetIdentifier returns the root disk's identifier or "" if none could be
// resolved. It never fails.
func (r *Resolver) GetIdentifier() string {
	return r.Resolve().Identifier
}

// Resolve runs the resolution chain:
//
//  1. root mount device -> whole disk -> sysfs wwid, then uuid
//  2. tag cache UUID of "/" (only with the volume lookup capability)
//
// Failures are logged and turn into an empty Identifier.
func (r *Resolver) Resolve() (res Resolution) {
	res.VolumeLookup = r.HasVolumeLookupCapability()

	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("failed to get identifier for disk UUID", "err", fmt.Errorf("panic: %v", p))
			res.Source = SourceNone
			res.Identifier = ""
		}
	}()

	if id, src := r.fromSysfs(&res); id != "" {
		res.Identifier, res.Source = id, src
		return res
	}

	if res.VolumeLookup {
		id, err := r.volumes.LookupVolume(blockdev.RootMountPoint)
		switch {
		case err == nil:
			res.Identifier, res.Source = id, SourceVolumeUUID
			return res
		case errors.Is(err, ErrDeviceNotFound), errors.Is(err, ErrNoUUIDTag), errors.Is(err, mount.ErrNotMounted):
			r.logger.Debug("no volume UUID for root", "err", err)
		default:
			r.logger.Warn("volume lookup failed", "err", err)
		}
	}

	r.logger.Debug("disk identifier unresolved", "root_device", res.RootDevice, "disk_device", res.DiskDevice)
	return res
}

func (r *Resolver) fromSysfs(res *Resolution) (string, Source) {
	entry, err := r.devices.RootEntry()
	if err != nil {
		if errors.Is(err, mount.ErrNotMounted) {
			r.logger.Debug("root filesystem not in mount table")
		} else {
			r.logger.Warn("reading mount table failed", "err", err)
		}
		return "", SourceNone
	}

	res.RootDevice = entry.Source
	res.FSType = entry.FSType
	res.DiskDevice = r.devices.GetDiskDevice(entry.Source)

	id, src, err := r.ids.ReadIdentifier(res.DiskDevice)
	if err != nil {
		r.logger.Warn("reading disk identifier failed", "device", res.DiskDevice, "err", err)
	}
	if id != "" {
		r.logger.Debug("disk identifier resolved", "device", res.DiskDevice, "source", src)
	}
	return id, src
}
