// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package primitive

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/viewport/camera"
	"github.com/gogpu/viewport/rendercore"
)

// circleCore draws a Circle node from world-space samples taken in
// Initialize. The samples are offsets from the center, so moving the
// center between frames needs no new Initialize.
type circleCore struct {
	base
	node    *Circle
	offsets []mgl32.Vec3
}

func newCircleCore(n rendercore.Node, cam *camera.Camera, dc *gg.Context) rendercore.Core {
	circle, _ := n.(*Circle)
	return &circleCore{base: base{cam: cam, dc: dc}, node: circle}
}

func (c *circleCore) Name() string { return "circle" }

// Topology reports how the core's vertices connect.
func (c *circleCore) Topology() gputypes.PrimitiveTopology {
	return gputypes.PrimitiveTopologyLineStrip
}

func (c *circleCore) Initialize() error {
	if c.node == nil {
		return nil
	}
	if !(c.node.Radius > 0) {
		return fmt.Errorf("%w: circle radius %v", ErrDegenerate, c.node.Radius)
	}

	u, v := planeBasis(c.node.Normal)
	n := c.node.Segments
	switch {
	case n == 0:
		n = DefaultSegments
	case n < MinSegments:
		n = MinSegments
	}

	r := c.node.Radius
	c.offsets = make([]mgl32.Vec3, n)
	for i := range c.offsets {
		a := 2 * math.Pi * float64(i) / float64(n)
		cos, sin := float32(math.Cos(a)), float32(math.Sin(a))
		c.offsets[i] = u.Mul(r * cos).Add(v.Mul(r * sin))
	}
	return nil
}

func (c *circleCore) Paint() error {
	if c.node == nil || c.offsets == nil || !c.drawable() {
		return nil
	}

	pts := make([]mgl32.Vec3, len(c.offsets))
	for i, off := range c.offsets {
		pts[i] = c.node.Center.Add(off)
	}
	tracePath(c.dc, c.cam, pts, true)
	return fillAndStroke(c.dc, c.node.Fill, c.node.Color, c.node.Width)
}

// planeBasis returns two orthonormal vectors spanning the plane with the
// given normal. A zero normal is taken as +Z.
func planeBasis(normal mgl32.Vec3) (u, v mgl32.Vec3) {
	n := mgl32.Vec3{0, 0, 1}
	if normal.Dot(normal) > 1e-12 {
		n = normal.Normalize()
	}

	ref := mgl32.Vec3{1, 0, 0}
	if math.Abs(float64(n.X())) > 0.9 {
		ref = mgl32.Vec3{0, 1, 0}
	}
	u = ref.Sub(n.Mul(ref.Dot(n))).Normalize()
	v = n.Cross(u)
	return u, v
}
