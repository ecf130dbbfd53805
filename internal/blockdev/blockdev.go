// Package blockdev derives the block devices behind the root filesystem.
package blockdev

import (
	"path"
	"regexp"
	"strings"

	"github.com/sigreer/rootdiskid/internal/mount"
)

// RootMountPoint is the mount point of the root filesystem.
const RootMountPoint = "/"

// MountTable is the part of mount.Table the resolver needs.
type MountTable interface {
	FindSourceDevice(mountPoint string) string
	Lookup(mountPoint string) (mount.Entry, error)
}

// Resolver finds the root filesystem device and its parent disk.
type Resolver struct {
	mounts MountTable
}

// NewResolver returns a Resolver reading mounts.
func NewResolver(mounts MountTable) *Resolver {
	return &Resolver{mounts: mounts}
}

// GetRootFilesystemDevice returns the source device of "/", or "".
func (r *Resolver) GetRootFilesystemDevice() string {
	return r.mounts.FindSourceDevice(RootMountPoint)
}

// RootEntry returns the full mount entry of "/".
func (r *Resolver) RootEntry() (mount.Entry, error) {
	return r.mounts.Lookup(RootMountPoint)
}

// GetDiskDevice derives the whole-disk path from a partition path.
func (r *Resolver) GetDiskDevice(partition string) string {
	return DiskDevice(partition)
}

var (
	// nvme0n1p3, mmcblk0p1, loop0p2, md127p1, zd0p1, pmem0p1
	separatedPartition = regexp.MustCompile(`^(.*[0-9])p[0-9]+$`)

	// Whole disks whose kernel name already ends in a digit.
	digitTerminatedDisk = regexp.MustCompile(`^(nvme[0-9]+n[0-9]+|mmcblk[0-9]+|loop[0-9]+|md[0-9]+|nbd[0-9]+|rbd[0-9]+|zram[0-9]+|zd[0-9]+|pmem[0-9]+|bcache[0-9]+|nullb[0-9]+|ram[0-9]+|dm-[0-9]+)$`)
)

// DiskDevice strips the partition suffix from a device path:
// /dev/sda1 -> /dev/sda, /dev/nvme0n1p3 -> /dev/nvme0n1. Paths without a
// recognizable partition suffix are returned unchanged. It only looks at
// the string; nothing on disk is consulted.
func DiskDevice(partition string) string {
	if partition == "" || strings.HasPrefix(partition, "/dev/mapper/") {
		return partition
	}

	dir, name := path.Split(partition)
	if name == "" {
		return partition
	}

	if m := separatedPartition.FindStringSubmatch(name); m != nil {
		return dir + m[1]
	}
	if digitTerminatedDisk.MatchString(name) {
		return partition
	}

	base := strings.TrimRight(name, "0123456789")
	if base == "" {
		return partition
	}
	return dir + base
}
