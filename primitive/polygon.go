// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package primitive

import (
	"fmt"

	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/viewport/camera"
	"github.com/gogpu/viewport/rendercore"
)

// polygonCore fills and outlines a Polygon node.
type polygonCore struct {
	base
	node *Polygon
}

func newPolygonCore(n rendercore.Node, cam *camera.Camera, dc *gg.Context) rendercore.Core {
	poly, _ := n.(*Polygon)
	return &polygonCore{base: base{cam: cam, dc: dc}, node: poly}
}

func (c *polygonCore) Name() string { return "polygon" }

// Topology reports how the core's vertices connect.
func (c *polygonCore) Topology() gputypes.PrimitiveTopology {
	return gputypes.PrimitiveTopologyTriangleList
}

func (c *polygonCore) Initialize() error {
	if c.node == nil {
		return nil
	}
	if len(c.node.Points) < 3 {
		return fmt.Errorf("%w: polygon has %d, needs 3", ErrTooFewPoints, len(c.node.Points))
	}
	return nil
}

func (c *polygonCore) Paint() error {
	if c.node == nil || len(c.node.Points) < 3 || !c.drawable() {
		return nil
	}
	tracePath(c.dc, c.cam, c.node.Points, true)
	return fillAndStroke(c.dc, c.node.Fill, c.node.Stroke, c.node.Width)
}
