// Package hwid is the registry of hardware identifier kinds. Each kind
// registers a factory at init time; callers build identifiers by kind name.
package hwid

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownKind is returned by New for a kind nobody registered.
var ErrUnknownKind = errors.New("unknown identifier kind")

// Identifier produces one hardware-derived identifier. An empty result
// means the identifier could not be resolved on this machine.
type Identifier interface {
	GetIdentifier() string
}

// Factory builds an Identifier.
type Factory func() Identifier

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
)

// Register makes an identifier kind available. It panics if kind is empty,
// factory is nil, or kind is already registered.
func Register(kind string, factory Factory) {
	if kind == "" {
		panic("hwid: Register with empty kind")
	}
	if factory == nil {
		panic("hwid: Register with nil factory for " + kind)
	}

	mu.Lock()
	defer mu.Unlock()

	if _, dup := factories[kind]; dup {
		panic("hwid: Register called twice for " + kind)
	}
	factories[kind] = factory
}

// New builds the identifier registered under kind.
func New(kind string) (Identifier, error) {
	mu.RLock()
	factory, ok := factories[kind]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%q: %w", kind, ErrUnknownKind)
	}
	return factory(), nil
}

// Kinds returns the registered kinds, sorted.
func Kinds() []string {
	mu.RLock()
	defer mu.RUnlock()

	kinds := make([]string, 0, len(factories))
	for k := range factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
