//go:build linux && !noblkid

package diskid

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/siderolabs/go-blockdevice/v2/blkid"
)

// DefaultTagCache returns the blkid-backed tag cache. Builds tagged
// noblkid return nil instead.
func DefaultTagCache() TagCache {
	return probeCache{}
}

// probeCache answers tag lookups by probing the device superblock.
type probeCache struct{}

func (probeCache) Open() (TagSession, error) {
	return &probeSession{}, nil
}

type probeSession struct {
	closed bool
}

var errSessionClosed = errors.New("tag cache session closed")

// Device probes name. Only absolute paths are probed: mount sources such
// as overlay, tmpfs or rootfs are not devices.
func (s *probeSession) Device(name string) (Tags, error) {
	if s.closed {
		return nil, errSessionClosed
	}
	if !filepath.IsAbs(name) {
		return nil, ErrDeviceNotFound
	}

	info, err := blkid.ProbePath(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrDeviceNotFound
		}
		return nil, fmt.Errorf("probe %s: %w", name, err)
	}

	tags := make(Tags)
	if info.Name != "" {
		tags[TagType] = info.Name
	}
	if info.UUID != nil && *info.UUID != uuid.Nil {
		tags[TagUUID] = info.UUID.String()
	}
	if info.Label != nil && *info.Label != "" {
		tags[TagLabel] = *info.Label
	}
	return tags, nil
}

func (s *probeSession) Close() error {
	s.closed = true
	return nil
}
