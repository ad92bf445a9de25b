// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package rendercore defines the contract between the node registry and the
// primitive-specific renderers it dispatches to.
//
// A rendering core draws exactly one scene node with the active camera.
// Concrete cores live outside this package and make themselves available by
// registering a Factory for the Kind of node they draw:
//
//	func init() {
//	    rendercore.Register(rendercore.KindCircle, newCircleCore)
//	}
//
// The registry resolves a node's Kind through the factory table. Kinds
// without a factory fall back to DefaultKind instead of failing.
package rendercore

import (
	"github.com/gogpu/gg"

	"github.com/gogpu/viewport/camera"
)

// Core is a primitive-kind specific renderer bound to one node and to the
// active camera.
//
// All methods are called from the goroutine that owns the graphics context.
type Core interface {
	// Initialize allocates whatever persistent resources the primitive
	// needs. It is called once, after the graphics context is ready.
	Initialize() error

	// Paint draws the node using the matrices of the bound camera.
	// It is called once per frame, in registration order.
	Paint() error

	// SetCamera rebinds the core to cam. The core must not keep any
	// reference to the previous camera after SetCamera returns.
	SetCamera(cam *camera.Camera)
}

// Releaser is implemented by cores that hold resources beyond the
// lifetime of their registration. Release is called once when the node is
// removed or the registry is closed.
type Releaser interface {
	Release()
}

// Named is implemented by cores that report a human readable name for
// diagnostics.
type Named interface {
	Name() string
}

// Node is a scene node as seen by the registry: an identity carrying a
// primitive kind. The registry never looks at anything else; cores
// type-assert the node to whatever description they need.
//
// Nodes are compared by identity, so implementations should be pointers.
type Node interface {
	Kind() Kind
}

// Factory creates the core for node n, bound to cam and drawing on dc.
type Factory func(n Node, cam *camera.Camera, dc *gg.Context) Core

// nopCore is used when no factory can serve a node.
type nopCore struct{}

func (nopCore) Initialize() error        { return nil }
func (nopCore) Paint() error             { return nil }
func (nopCore) SetCamera(*camera.Camera) {}
func (nopCore) Name() string             { return "nop" }

func newNopCore(Node, *camera.Camera, *gg.Context) Core { return nopCore{} }
