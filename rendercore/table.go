// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rendercore

import (
	"sort"
	"sync"

	"github.com/gogpu/viewport/internal/logger"
)

// globalTable is the default factory table.
var globalTable = &Table{}

// Table maps primitive kinds to core factories.
//
// New kinds are added by registering a factory; the dispatcher never
// branches on Kind itself. Table is safe for concurrent use.
//
// Example registration:
//
//	func init() {
//	    rendercore.Register(rendercore.KindLine, newLineCore)
//	}
type Table struct {
	mu        sync.RWMutex
	factories map[Kind]Factory
}

// NewTable creates a new empty table.
// Most code should use the global table via Register and Resolve.
func NewTable() *Table {
	return &Table{factories: make(map[Kind]Factory)}
}

// Global returns the process-wide table that package-level functions use.
func Global() *Table {
	return globalTable
}

// Register adds factory for kind to the global table.
// Registering a kind that already exists replaces the previous factory.
func Register(kind Kind, factory Factory) {
	globalTable.Register(kind, factory)
}

// Unregister removes kind from the global table.
func Unregister(kind Kind) {
	globalTable.Unregister(kind)
}

// Lookup returns the factory registered for kind in the global table.
func Lookup(kind Kind) (Factory, bool) {
	return globalTable.Lookup(kind)
}

// Resolve returns the factory that serves kind in the global table.
// See Table.Resolve.
func Resolve(kind Kind) (Factory, Kind) {
	return globalTable.Resolve(kind)
}

// Kinds returns the kinds registered in the global table, sorted.
func Kinds() []Kind {
	return globalTable.Kinds()
}

// Register adds factory for kind to this table.
// It panics if factory is nil.
func (t *Table) Register(kind Kind, factory Factory) {
	if factory == nil {
		panic("rendercore: nil factory for " + kind.String())
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.factories == nil {
		t.factories = make(map[Kind]Factory)
	}
	t.factories[kind] = factory
}

// Unregister removes kind from this table.
func (t *Table) Unregister(kind Kind) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.factories, kind)
}

// Lookup returns the factory registered for exactly kind.
func (t *Table) Lookup(kind Kind) (Factory, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	f, ok := t.factories[kind]
	return f, ok
}

// Resolve returns the factory that serves kind and the kind it was
// registered under.
//
// Kinds without a factory resolve to the DefaultKind factory. When the
// default kind is not registered either, Resolve returns a factory for a
// core that draws nothing, so resolution never fails.
func (t *Table) Resolve(kind Kind) (Factory, Kind) {
	if f, ok := t.Lookup(kind); ok {
		return f, kind
	}
	if f, ok := t.Lookup(DefaultKind); ok {
		logger.Logger().Debug("rendercore: unknown kind, using default",
			"kind", kind, "default", DefaultKind)
		return f, DefaultKind
	}
	logger.Logger().Warn("rendercore: no factory for kind or default kind",
		"kind", kind, "default", DefaultKind)
	return newNopCore, kind
}

// Kinds returns the registered kinds in ascending order.
func (t *Table) Kinds() []Kind {
	t.mu.RLock()
	defer t.mu.RUnlock()

	kinds := make([]Kind, 0, len(t.factories))
	for k := range t.factories {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
