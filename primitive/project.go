// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package primitive

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/viewport/camera"
)

// Project maps world point p to pixel coordinates on cam's viewport.
//
// The point goes through the camera matrix into normalized device
// coordinates, which are then stretched over the viewport with the Y axis
// flipped so that the origin is the top-left pixel corner.
func Project(cam *camera.Camera, p mgl32.Vec3) (x, y float64) {
	ndc := mgl32.TransformCoordinate(p, cam.CameraMatrix())
	vp := cam.Viewport()
	x = float64(vp.X) + float64(ndc.X()+1)/2*float64(vp.Width)
	y = float64(vp.Y) + float64(1-ndc.Y())/2*float64(vp.Height)
	return x, y
}

// rgba converts a node color to the rasterizer's color type.
func rgba(c gputypes.Color) gg.RGBA {
	return gg.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// visible reports whether drawing with c can change a pixel.
func visible(c gputypes.Color) bool {
	return c.A > 0
}

// strokeWidth returns w, or one pixel for non-positive widths.
func strokeWidth(w float64) float64 {
	if w <= 0 {
		return 1
	}
	return w
}

// tracePath appends the projection of pts to dc's current path.
func tracePath(dc *gg.Context, cam *camera.Camera, pts []mgl32.Vec3, closed bool) {
	for i, p := range pts {
		x, y := Project(cam, p)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	if closed {
		dc.ClosePath()
	}
}

// fillAndStroke fills and then strokes the current path, skipping
// invisible colors, and always leaves the path empty.
func fillAndStroke(dc *gg.Context, fill, stroke gputypes.Color, width float64) error {
	if visible(fill) {
		dc.SetFillBrush(gg.Solid(rgba(fill)))
		if err := dc.FillPreserve(); err != nil {
			dc.ClearPath()
			return err
		}
	}
	if !visible(stroke) {
		dc.ClearPath()
		return nil
	}
	dc.SetStrokeBrush(gg.Solid(rgba(stroke)))
	dc.SetLineWidth(strokeWidth(width))
	return dc.Stroke()
}

// base holds what every core shares: the bound camera and the canvas.
type base struct {
	cam *camera.Camera
	dc  *gg.Context
}

func (b *base) SetCamera(cam *camera.Camera) { b.cam = cam }

// drawable reports whether the core has somewhere to draw.
func (b *base) drawable() bool {
	return b.cam != nil && b.dc != nil && !b.cam.Viewport().Empty()
}
