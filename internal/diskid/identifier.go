package diskid

import (
	"errors"
	"log/slog"
	"strings"
)

// Source names where an identifier was read from.
type Source string

const (
	SourceNone       Source = ""
	SourceWWID       Source = "wwid"
	SourceUUID       Source = "uuid"
	SourceVolumeUUID Source = "volume_uuid"
)

// AttributeReader reads sysfs attributes. Implemented by *sysfs.Reader.
type AttributeReader interface {
	ReadAttribute(path string) (string, error)
	BlockAttributePath(name string, attr ...string) string
}

// wwidLocations are tried in order. Both are the same WWID attribute: NVMe
// and virtio disks expose it on the block device, SCSI disks under device/.
var wwidLocations = [][]string{
	{"wwid"},
	{"device", "wwid"},
}

// DeviceReader reads durable identifiers of whole-disk block devices.
type DeviceReader struct {
	attrs  AttributeReader
	logger *slog.Logger
}

// NewDeviceReader returns a DeviceReader backed by attrs.
func NewDeviceReader(attrs AttributeReader, logger *slog.Logger) *DeviceReader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &DeviceReader{attrs: attrs, logger: logger}
}

// GetUUIDByDiskDevice returns the WWID of the disk, else its UUID, else "".
func (d *DeviceReader) GetUUIDByDiskDevice(diskDevice string) string {
	id, _, err := d.ReadIdentifier(diskDevice)
	if err != nil {
		d.logger.Warn("reading disk identifier failed", "device", diskDevice, "err", err)
	}
	return id
}

// ReadIdentifier is GetUUIDByDiskDevice reporting which attribute matched.
// Absent attributes are not errors; unreadable ones are, but only when no
// identifier could be read at all.
func (d *DeviceReader) ReadIdentifier(diskDevice string) (string, Source, error) {
	name := deviceName(diskDevice)
	if name == "" {
		return "", SourceNone, nil
	}

	var errs []error

	for _, loc := range wwidLocations {
		wwid, err := d.attrs.ReadAttribute(d.attrs.BlockAttributePath(name, loc...))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if wwid != "" {
			return wwid, SourceWWID, nil
		}
	}

	uuid, err := d.attrs.ReadAttribute(d.attrs.BlockAttributePath(name, "uuid"))
	if err != nil {
		errs = append(errs, err)
	} else if uuid != "" {
		return uuid, SourceUUID, nil
	}

	d.logger.Debug("no identifier attributes", "device", name)
	return "", SourceNone, errors.Join(errs...)
}

// deviceName returns the final path segment: /dev/sda -> sda.
func deviceName(devicePath string) string {
	return devicePath[strings.LastIndexByte(devicePath, '/')+1:]
}
