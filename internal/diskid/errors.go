package diskid

import "errors"

// MaxDevicePathLen bounds device paths handed to the tag cache (PATH_MAX).
const MaxDevicePathLen = 4096

var (
	// ErrNoVolumeLookup is returned when the tag cache fallback is not
	// compiled in or has been disabled.
	ErrNoVolumeLookup = errors.New("volume lookup not available")

	// ErrDeviceNotFound is returned by a TagSession that has no entry for
	// the device.
	ErrDeviceNotFound = errors.New("device not found in tag cache")

	// ErrNoUUIDTag is returned when the device is known but carries no
	// UUID tag.
	ErrNoUUIDTag = errors.New("device has no UUID tag")

	// ErrDevicePathTooLong is returned for device paths longer than
	// MaxDevicePathLen. They are rejected, not truncated.
	ErrDevicePathTooLong = errors.New("device path too long")
)
