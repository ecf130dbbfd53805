//go:build !linux || noblkid

package diskid

// DefaultTagCache returns nil: this build has no tag cache, so the volume
// lookup fallback is absent.
func DefaultTagCache() TagCache {
	return nil
}
