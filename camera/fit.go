// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// basis returns the camera's view-space axes in world coordinates:
// right, up, and back (from the target toward the camera).
// ok is false for a degenerate frame.
func (c *Camera) basis() (right, up, back mgl32.Vec3, ok bool) {
	rel := c.position.Sub(c.target)
	if rel.LenSqr() < degenerate {
		return right, up, back, false
	}
	back = rel.Normalize()
	right = c.up.Cross(back)
	if right.LenSqr() < degenerate {
		return right, up, back, false
	}
	right = right.Normalize()
	up = back.Cross(right)
	return right, up, back, true
}

// Fit recenters the camera on the axis-aligned box [lo, hi] and resizes
// the clip space so that the whole box is visible.
//
// The view direction and the distance to the target are kept. The clip
// rectangle is centered on the new target, covers the box's extent along the
// camera's right and up axes scaled by 1+margin, and is widened on one axis to
// match the viewport aspect ratio. Near and far are set around the box depth.
// Update is called when the camera changed.
//
// An inverted box or a degenerate camera frame leaves the camera untouched.
func (c *Camera) Fit(lo, hi mgl32.Vec3, margin float32) {
	if lo[0] > hi[0] || lo[1] > hi[1] || lo[2] > hi[2] {
		return
	}
	right, up, back, ok := c.basis()
	if !ok {
		return
	}
	if margin < 0 {
		margin = 0
	}

	center := lo.Add(hi).Mul(0.5)
	var halfW, halfH, halfD float32
	for i := 0; i < 8; i++ {
		corner := lo
		if i&1 != 0 {
			corner[0] = hi[0]
		}
		if i&2 != 0 {
			corner[1] = hi[1]
		}
		if i&4 != 0 {
			corner[2] = hi[2]
		}
		local := corner.Sub(center)
		halfW = max(halfW, mgl32.Abs(local.Dot(right)))
		halfH = max(halfH, mgl32.Abs(local.Dot(up)))
		halfD = max(halfD, mgl32.Abs(local.Dot(back)))
	}

	dist := c.position.Sub(c.target).Len()
	c.target = center
	c.position = center.Add(back.Mul(dist))

	scale := 1 + margin
	halfW *= scale
	halfH *= scale
	if halfW == 0 && halfH == 0 {
		halfW, halfH = c.clip.Width()/2, c.clip.Height()/2
	}
	aspect := c.viewport.Aspect()
	if halfH == 0 || halfW/halfH < aspect {
		halfW = halfH * aspect
	} else {
		halfH = halfW / aspect
	}

	depth := halfD * scale
	if depth == 0 {
		depth = 1
	}
	c.clip = ClipSpace{
		Left: -halfW, Right: halfW,
		Bottom: -halfH, Top: halfH,
		Near: dist - depth, Far: dist + depth,
	}
	c.Update()
}

// Unproject maps a point in centered screen coordinates (origin at the
// viewport center, Y up) to the world point it covers on the plane through
// the target facing the camera.
// An empty viewport or a degenerate frame returns the target.
func (c *Camera) Unproject(p mgl32.Vec2) mgl32.Vec3 {
	right, up, _, ok := c.basis()
	if !ok || c.viewport.Empty() {
		return c.target
	}
	ndcX := p[0] / (c.viewport.Width / 2)
	ndcY := p[1] / (c.viewport.Height / 2)
	x := c.clip.Left + (ndcX+1)/2*c.clip.Width()
	y := c.clip.Bottom + (ndcY+1)/2*c.clip.Height()
	return c.target.Add(right.Mul(x)).Add(up.Mul(y))
}
