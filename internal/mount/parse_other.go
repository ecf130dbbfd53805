//go:build !linux

package mount

import (
	"errors"
	"io"
)

func firstEntry(io.Reader, string) (Entry, bool, error) {
	return Entry{}, false, errors.ErrUnsupported
}
