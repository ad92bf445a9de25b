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

// DefaultTension is the tangent scale of a uniform Catmull-Rom spline.
const DefaultTension = 0.5

// splineCore strokes a Spline node as a chain of cubic Béziers.
type splineCore struct {
	base
	node *Spline
}

func newSplineCore(n rendercore.Node, cam *camera.Camera, dc *gg.Context) rendercore.Core {
	s, _ := n.(*Spline)
	return &splineCore{base: base{cam: cam, dc: dc}, node: s}
}

func (c *splineCore) Name() string { return "spline" }

// Topology reports how the core's vertices connect.
func (c *splineCore) Topology() gputypes.PrimitiveTopology {
	return gputypes.PrimitiveTopologyLineStrip
}

func (c *splineCore) Initialize() error {
	if c.node == nil {
		return nil
	}
	if len(c.node.Points) < 2 {
		return fmt.Errorf("%w: spline has %d, needs 2", ErrTooFewPoints, len(c.node.Points))
	}
	return nil
}

func (c *splineCore) Paint() error {
	if c.node == nil || len(c.node.Points) < 2 || !c.drawable() {
		return nil
	}

	pts := make([]gg.Point, len(c.node.Points))
	for i, p := range c.node.Points {
		pts[i] = gg.Pt(Project(c.cam, p))
	}

	tension := c.node.Tension
	if tension == 0 {
		tension = DefaultTension
	}

	c.dc.MoveTo(pts[0].X, pts[0].Y)
	for i := 0; i < len(pts)-1; i++ {
		c1, c2 := catmullRom(pts, i, tension)
		c.dc.CubicTo(c1.X, c1.Y, c2.X, c2.Y, pts[i+1].X, pts[i+1].Y)
	}
	return fillAndStroke(c.dc, gputypes.Color{}, c.node.Color, c.node.Width)
}

// catmullRom returns the Bézier control points of the segment from pts[i]
// to pts[i+1]. End points are repeated to supply the missing neighbours.
func catmullRom(pts []gg.Point, i int, tension float64) (c1, c2 gg.Point) {
	p0 := pts[max(i-1, 0)]
	p1 := pts[i]
	p2 := pts[i+1]
	p3 := pts[min(i+2, len(pts)-1)]

	k := tension / 3
	c1 = gg.Pt(p1.X+(p2.X-p0.X)*k, p1.Y+(p2.Y-p0.Y)*k)
	c2 = gg.Pt(p2.X-(p3.X-p1.X)*k, p2.Y-(p3.Y-p1.Y)*k)
	return c1, c2
}
