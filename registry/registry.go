// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package registry maps scene nodes to the rendering cores that draw them
// and dispatches lifecycle calls to those cores.
//
// Each node is bound to exactly one core, created from the factory table
// when the node is added and owned by the registry until the node is
// removed. The registry keeps every core bound to the active camera and
// forwards the camera's change notifications to a repaint hook.
//
// Thread Safety: a Registry is not safe for concurrent use. All calls are
// expected on the goroutine that owns the graphics context.
package registry

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/gogpu/gg"

	"github.com/gogpu/viewport/camera"
	"github.com/gogpu/viewport/internal/logger"
	"github.com/gogpu/viewport/rendercore"
)

// entry pairs a node with the core the registry created for it.
type entry struct {
	node        rendercore.Node
	kind        rendercore.Kind
	core        rendercore.Core
	initialized bool
}

// Registry is the node registry and frame dispatcher.
type Registry struct {
	cam       *camera.Camera
	token     camera.Token
	canvas    *gg.Context
	factories *rendercore.Table

	entries []*entry
	index   map[rendercore.Node]*entry

	ready    bool
	onChange func()
}

// Option configures a Registry during creation.
type Option func(*Registry)

// WithFactories makes the registry resolve cores from t instead of the
// global rendercore table.
func WithFactories(t *rendercore.Table) Option {
	return func(r *Registry) {
		if t != nil {
			r.factories = t
		}
	}
}

// New creates a registry bound to cam whose cores draw on canvas.
// The registry subscribes to cam's change notifications.
func New(cam *camera.Camera, canvas *gg.Context, opts ...Option) *Registry {
	r := &Registry{
		canvas:    canvas,
		factories: rendercore.Global(),
		index:     make(map[rendercore.Node]*entry),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.SetCamera(cam)
	return r
}

// CameraChanged implements camera.Listener by forwarding to the repaint hook.
func (r *Registry) CameraChanged(*camera.Camera) {
	if r.onChange != nil {
		r.onChange()
	}
}

// OnCameraChanged sets the hook called synchronously whenever the bound
// camera is updated. Passing nil removes the hook.
func (r *Registry) OnCameraChanged(fn func()) {
	r.onChange = fn
}

// Camera returns the active camera.
func (r *Registry) Camera() *camera.Camera {
	return r.cam
}

// SetCamera makes cam the active camera.
//
// The registry stops listening to the previous camera, rebinds every core
// to cam in registration order, and then listens to cam. Subscribing is
// idempotent, so setting the same camera twice does not duplicate
// notifications. A nil camera is ignored.
func (r *Registry) SetCamera(cam *camera.Camera) {
	if cam == nil {
		return
	}
	if r.cam != nil {
		r.cam.Unsubscribe(r.token)
	}

	r.cam = cam
	for _, e := range r.entries {
		e.core.SetCamera(cam)
	}

	r.token = cam.Subscribe(r)
}

// AddNode binds n to a new core chosen by its kind and reports whether the
// node was added.
//
// Adding a node that is already registered does nothing and returns false;
// the existing core is never replaced. Kinds without a registered factory
// get a core of rendercore.DefaultKind. Nil nodes and nodes whose dynamic
// value cannot be used as an identity are rejected, including structs whose
// interface fields hold slices, maps or funcs.
//
// After Close, adding a node subscribes the registry to its camera again.
func (r *Registry) AddNode(n rendercore.Node) bool {
	if n == nil {
		return false
	}
	if !identifiable(n) {
		logger.Logger().Warn("registry: node is not comparable", "type", fmt.Sprintf("%T", n))
		return false
	}
	if _, ok := r.index[n]; ok {
		return false
	}
	r.listen()

	factory, kind := r.factories.Resolve(n.Kind())
	e := &entry{
		node: n,
		kind: kind,
		core: factory(n, r.cam, r.canvas),
	}
	r.entries = append(r.entries, e)
	r.index[n] = e

	logger.Logger().Debug("registry: node added",
		"kind", n.Kind(), "core", kind, "nodes", len(r.entries))
	return true
}

// RemoveNode unregisters n and releases its core before returning.
// It reports whether the node was registered.
func (r *Registry) RemoveNode(n rendercore.Node) bool {
	if !identifiable(n) {
		return false
	}
	e, ok := r.index[n]
	if !ok {
		return false
	}

	delete(r.index, n)
	for i, cur := range r.entries {
		if cur == e {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			break
		}
	}
	release(e)

	logger.Logger().Debug("registry: node removed", "kind", e.kind, "nodes", len(r.entries))
	return true
}

// Core returns the core bound to n.
func (r *Registry) Core(n rendercore.Node) (rendercore.Core, bool) {
	if !identifiable(n) {
		return nil, false
	}
	e, ok := r.index[n]
	if !ok {
		return nil, false
	}
	return e.core, true
}

// Nodes returns the registered nodes in registration order.
func (r *Registry) Nodes() []rendercore.Node {
	nodes := make([]rendercore.Node, len(r.entries))
	for i, e := range r.entries {
		nodes[i] = e.node
	}
	return nodes
}

// Len returns the number of registered nodes.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Ready reports whether InitializeAll has run.
func (r *Registry) Ready() bool {
	return r.ready
}

// InitializeAll initializes every core that has not been initialized yet
// and marks the registry ready. It is meant to run once, when the graphics
// context becomes ready.
//
// A failing core does not stop the others; all failures are joined into
// the returned error. A core whose Initialize failed is not retried.
func (r *Registry) InitializeAll() error {
	r.ready = true
	return r.initializePending()
}

func (r *Registry) initializePending() error {
	var errs []error
	for _, e := range r.entries {
		if e.initialized {
			continue
		}
		e.initialized = true
		if err := e.core.Initialize(); err != nil {
			logger.Logger().Warn("registry: initialize failed", "kind", e.kind, "error", err)
			errs = append(errs, fmt.Errorf("registry: initialize %s: %w", e.kind, err))
		}
	}
	return errors.Join(errs...)
}

// PaintAll paints every core in registration order.
//
// Before InitializeAll has run nothing is painted. Afterwards, cores of
// nodes added since are initialized before their first paint. A failing
// core does not stop the others; all failures are joined into the returned
// error.
func (r *Registry) PaintAll() error {
	if !r.ready {
		return nil
	}
	errs := []error{r.initializePending()}
	for _, e := range r.entries {
		if err := e.core.Paint(); err != nil {
			logger.Logger().Warn("registry: paint failed", "kind", e.kind, "error", err)
			errs = append(errs, fmt.Errorf("registry: paint %s: %w", e.kind, err))
		}
	}
	return errors.Join(errs...)
}

// Close releases every core, stops listening to the camera and empties the
// registry. The registry keeps its camera and can be reused: it is no longer
// ready, and the next AddNode or SetCamera subscribes to the camera again.
func (r *Registry) Close() {
	for _, e := range r.entries {
		release(e)
	}
	r.entries = nil
	r.index = make(map[rendercore.Node]*entry)
	r.ready = false
	if r.cam != nil {
		r.cam.Unsubscribe(r.token)
		r.token = 0
	}
}

// listen subscribes to the active camera unless already subscribed.
func (r *Registry) listen() {
	if r.cam != nil && r.token == 0 {
		r.token = r.cam.Subscribe(r)
	}
}

// identifiable reports whether n can key the node index. The dynamic value
// is checked, since a comparable struct type may still hold a slice in an
// interface field.
func identifiable(n rendercore.Node) bool {
	return n != nil && reflect.ValueOf(n).Comparable()
}

func release(e *entry) {
	if rel, ok := e.core.(rendercore.Releaser); ok {
		rel.Release()
	}
}
