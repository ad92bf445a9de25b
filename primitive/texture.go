// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package primitive

import (
	"fmt"
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/viewport/camera"
	"github.com/gogpu/viewport/rendercore"
)

// textureCore draws a Texture node. Orthographic projection keeps
// parallelograms parallelograms, so the whole quad maps from image space
// to pixel space through one affine gg.Matrix.
type textureCore struct {
	base
	node   *Texture
	pixels *image.NRGBA
}

func newTextureCore(n rendercore.Node, cam *camera.Camera, dc *gg.Context) rendercore.Core {
	tex, _ := n.(*Texture)
	return &textureCore{base: base{cam: cam, dc: dc}, node: tex}
}

func (c *textureCore) Name() string { return "texture" }

// Topology reports how the core's vertices connect.
func (c *textureCore) Topology() gputypes.PrimitiveTopology {
	return gputypes.PrimitiveTopologyTriangleStrip
}

func (c *textureCore) Initialize() error {
	if c.node == nil {
		return nil
	}
	if c.node.Image == nil {
		return ErrNoImage
	}
	if c.node.Image.Bounds().Empty() {
		return fmt.Errorf("%w: empty texture image", ErrDegenerate)
	}
	if !spansArea(c.node.U, c.node.V) {
		return fmt.Errorf("%w: texture axes %v and %v span no area", ErrDegenerate, c.node.U, c.node.V)
	}
	c.pixels = toNRGBA(c.node.Image, MaxTextureSize)
	return nil
}

// Release drops the cached pixels.
func (c *textureCore) Release() {
	c.pixels = nil
}

func (c *textureCore) Paint() error {
	if c.node == nil || c.pixels == nil || !c.drawable() {
		return nil
	}

	n := c.node
	ox, oy := Project(c.cam, n.Origin)
	ux, uy := Project(c.cam, n.Origin.Add(n.U))
	vx, vy := Project(c.cam, n.Origin.Add(n.V))

	size := c.pixels.Bounds().Size()
	w, h := float64(size.X), float64(size.Y)
	toScreen := gg.Matrix{
		A: (ux - ox) / w, B: (vx - ox) / h, C: ox,
		D: (uy - oy) / w, E: (vy - oy) / h, F: oy,
	}
	if math.Abs(toScreen.A*toScreen.E-toScreen.B*toScreen.D) < 1e-10 {
		// seen edge-on
		return nil
	}

	opacity := n.Opacity
	if opacity <= 0 {
		opacity = 1
	}
	toImage := toScreen.Invert()
	pixels := c.pixels
	brush := gg.NewCustomBrush(func(x, y float64) gg.RGBA {
		p := toImage.TransformPoint(gg.Pt(x, y))
		ix, iy := int(math.Floor(p.X)), int(math.Floor(p.Y))
		if ix < 0 || iy < 0 || ix >= size.X || iy >= size.Y {
			return gg.RGBA{}
		}
		px := pixels.NRGBAAt(ix, iy)
		return gg.RGBA{
			R: float64(px.R) / 255,
			G: float64(px.G) / 255,
			B: float64(px.B) / 255,
			A: float64(px.A) / 255 * opacity,
		}
	}).WithName("texture")

	c.dc.MoveTo(ox, oy)
	c.dc.LineTo(ux, uy)
	c.dc.LineTo(ux+vx-ox, uy+vy-oy)
	c.dc.LineTo(vx, vy)
	c.dc.ClosePath()
	c.dc.SetFillBrush(brush)
	return c.dc.Fill()
}

// spansArea reports whether u and v are non-zero and not parallel. The
// cross product is compared relative to the axis lengths, so small quads
// are accepted.
func spansArea(u, v mgl32.Vec3) bool {
	scale := u.Len() * v.Len()
	return scale > 0 && u.Cross(v).Len() >= 1e-6*scale
}
