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

// lineCore strokes a Line node.
type lineCore struct {
	base
	node *Line
}

func newLineCore(n rendercore.Node, cam *camera.Camera, dc *gg.Context) rendercore.Core {
	line, _ := n.(*Line)
	return &lineCore{base: base{cam: cam, dc: dc}, node: line}
}

func (c *lineCore) Name() string { return "line" }

// Topology reports how the core's vertices connect.
func (c *lineCore) Topology() gputypes.PrimitiveTopology {
	return gputypes.PrimitiveTopologyLineStrip
}

func (c *lineCore) Initialize() error {
	if c.node == nil {
		return nil
	}
	if len(c.node.Points) < 2 {
		return fmt.Errorf("%w: line has %d, needs 2", ErrTooFewPoints, len(c.node.Points))
	}
	return nil
}

func (c *lineCore) Paint() error {
	if c.node == nil || len(c.node.Points) < 2 || !c.drawable() {
		return nil
	}
	tracePath(c.dc, c.cam, c.node.Points, false)
	return fillAndStroke(c.dc, gputypes.Color{}, c.node.Color, c.node.Width)
}
