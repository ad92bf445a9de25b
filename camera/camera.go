// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/viewport/internal/logger"
)

// Default camera configuration, matching a unit scene viewed down -Z.
var (
	DefaultTarget   = mgl32.Vec3{0, 0, 0}
	DefaultPosition = mgl32.Vec3{0, 0, 5}
	DefaultUp       = mgl32.Vec3{0, 1, 0}
	DefaultClip     = ClipSpace{Left: -0.5, Right: 0.5, Bottom: -0.5, Top: 0.5, Near: 1, Far: 10}
)

// screenNormal is the normal of the screen plane in screen space.
var screenNormal = mgl32.Vec3{0, 0, 1}

// degenerate is the squared length under which a vector is treated as zero.
const degenerate = 1e-12

// Camera is an orthographic camera driven by pointer gestures.
type Camera struct {
	target   mgl32.Vec3
	position mgl32.Vec3
	up       mgl32.Vec3

	clip     ClipSpace
	viewport Viewport

	view       mgl32.Mat4
	projection mgl32.Mat4
	matrix     mgl32.Mat4

	subs      []subscription
	nextToken Token
}

// New returns a camera with the default frame and clip space, and with its
// derived matrices already computed. The viewport is empty until SetViewport.
func New() *Camera {
	c := &Camera{}
	c.reset()
	c.refresh()
	return c
}

func (c *Camera) reset() {
	c.target = DefaultTarget
	c.position = DefaultPosition
	c.up = DefaultUp
	c.clip = DefaultClip
}

// Reset restores the default frame and clip space and calls Update.
// The viewport and the subscriptions are kept.
func (c *Camera) Reset() {
	c.reset()
	c.Update()
}

// Target returns the point the camera looks at.
func (c *Camera) Target() mgl32.Vec3 { return c.target }

// SetTarget sets the point the camera looks at.
func (c *Camera) SetTarget(v mgl32.Vec3) { c.target = v }

// Position returns the camera position.
func (c *Camera) Position() mgl32.Vec3 { return c.position }

// SetPosition sets the camera position.
func (c *Camera) SetPosition(v mgl32.Vec3) { c.position = v }

// Up returns the up vector. It is orthogonal to the view direction after
// an Orbit but is not required to be unit length.
func (c *Camera) Up() mgl32.Vec3 { return c.up }

// SetUp sets the up vector.
func (c *Camera) SetUp(v mgl32.Vec3) { c.up = v }

// Viewport returns the pixel viewport.
func (c *Camera) Viewport() Viewport { return c.viewport }

// SetViewport sets the pixel viewport, typically on every surface resize.
func (c *Camera) SetViewport(v Viewport) { c.viewport = v }

// ClipSpace returns the orthographic viewing volume.
func (c *Camera) ClipSpace() ClipSpace { return c.clip }

// SetClipSpace sets all six clip-space edges at once.
// Callers must pass right > left, top > bottom and far > near.
func (c *Camera) SetClipSpace(left, right, bottom, top, near, far float32) {
	c.clip = ClipSpace{Left: left, Right: right, Bottom: bottom, Top: top, Near: near, Far: far}
}

// SetLeft sets the left clip edge.
func (c *Camera) SetLeft(v float32) { c.clip.Left = v }

// SetRight sets the right clip edge.
func (c *Camera) SetRight(v float32) { c.clip.Right = v }

// SetBottom sets the bottom clip edge.
func (c *Camera) SetBottom(v float32) { c.clip.Bottom = v }

// SetTop sets the top clip edge.
func (c *Camera) SetTop(v float32) { c.clip.Top = v }

// SetNear sets the near plane distance.
func (c *Camera) SetNear(v float32) { c.clip.Near = v }

// SetFar sets the far plane distance.
func (c *Camera) SetFar(v float32) { c.clip.Far = v }

// ViewMatrix returns the world-to-view matrix cached by the last Update.
func (c *Camera) ViewMatrix() mgl32.Mat4 { return c.view }

// ProjectionMatrix returns the orthographic projection cached by the last Update.
func (c *Camera) ProjectionMatrix() mgl32.Mat4 { return c.projection }

// CameraMatrix returns ProjectionMatrix * ViewMatrix as cached by the last Update.
func (c *Camera) CameraMatrix() mgl32.Mat4 { return c.matrix }

// Orbit rotates the camera around its target by the drag from prev to cur,
// both given in centered screen coordinates (origin at the viewport center,
// Y up).
//
// The drag is turned into a rotation axis lying in the screen plane,
// perpendicular to the drag: screenNormal x drag. Its X and Y components are
// used directly as pitch and yaw angles in degrees, which is only meaningful
// for the small per-event deltas of an incremental drag. The camera is
// pitched about its right axis, then yawed about its up axis, and up is
// re-derived so that the frame stays orthonormal. The target does not move
// and the distance to it is preserved.
//
// Both rotations act on the offset from the target, which is added back
// once at the end. Adding the target after each rotation, as some orbit
// controllers do, pushes the camera away from a target off the origin.
//
// A zero drag, a camera sitting on its target or an up vector parallel to
// the view direction leaves the camera untouched.
func (c *Camera) Orbit(cur, prev mgl32.Vec2) {
	drag := mgl32.Vec3{cur[0] - prev[0], cur[1] - prev[1], 0}
	if drag[0] == 0 && drag[1] == 0 {
		return
	}

	axis := screenNormal.Cross(drag)
	degreeX := axis.Dot(mgl32.Vec3{1, 0, 0})
	degreeY := axis.Dot(mgl32.Vec3{0, 1, 0})

	rel := c.position.Sub(c.target)
	if rel.LenSqr() < degenerate || c.up.LenSqr() < degenerate {
		return
	}
	up := c.up.Normalize()
	right := up.Cross(rel.Normalize())
	if right.LenSqr() < degenerate {
		return
	}
	right = right.Normalize()

	pitch := mgl32.HomogRotate3D(mgl32.DegToRad(-degreeX), right)
	rel = pitch.Mul4x1(rel.Vec4(0)).Vec3()

	yaw := mgl32.HomogRotate3D(mgl32.DegToRad(-degreeY), up)
	rel = yaw.Mul4x1(rel.Vec4(0)).Vec3()
	right = yaw.Mul4x1(right.Vec4(0)).Vec3()

	c.position = c.target.Add(rel)
	c.up = rel.Normalize().Cross(right).Normalize()
}

// rates returns the clip-space units per viewport pixel on each axis.
func (c *Camera) rates() (h, v float32, ok bool) {
	if c.viewport.Empty() {
		return 0, 0, false
	}
	return c.clip.Width() / c.viewport.Width, c.clip.Height() / c.viewport.Height, true
}

// Move pans the clip-space rectangle by the drag from prev to cur, given in
// centered screen coordinates. Each edge pair is shifted by the same amount,
// so the rectangle keeps its size and the content follows the pointer.
// An empty viewport leaves the camera untouched.
func (c *Camera) Move(cur, prev mgl32.Vec2) {
	h, v, ok := c.rates()
	if !ok {
		return
	}
	dx := (cur[0] - prev[0]) * h
	dy := (cur[1] - prev[1]) * v

	c.clip.Left -= dx
	c.clip.Right -= dx
	c.clip.Top -= dy
	c.clip.Bottom -= dy
}

// Zoom scales the clip-space rectangle by rate wheel ticks, converted to
// clip units with the same per-pixel rates as Move.
//
// A positive rate brings the left and right edges toward each other by
// rate*h each and moves the bottom and top edges apart by rate*v each: the
// width shrinks by 2*rate*h and the height grows by 2*rate*v. A negative rate
// does the opposite. An empty viewport, or a zoom that would collapse the
// rectangle, leaves the camera untouched.
func (c *Camera) Zoom(rate float32) {
	h, v, ok := c.rates()
	if !ok || rate == 0 {
		return
	}
	next := c.clip
	next.Left += rate * h
	next.Right -= rate * h
	next.Top += rate * v
	next.Bottom -= rate * v
	if next.Width() <= 0 || next.Height() <= 0 {
		return
	}
	c.clip = next
}

// Update recomputes the view, projection and camera matrices from the
// current frame and clip space, then notifies every listener.
//
// The view matrix is only recomputed for a usable frame and the projection
// only for a valid clip space; otherwise the previous matrix is kept.
func (c *Camera) Update() {
	c.refresh()
	c.notify()
}

func (c *Camera) refresh() {
	rel := c.position.Sub(c.target)
	if rel.LenSqr() >= degenerate && c.up.Cross(rel).LenSqr() >= degenerate {
		c.view = mgl32.LookAtV(c.position, c.target, c.up)
	} else {
		logger.Logger().Debug("camera: degenerate frame, keeping view matrix",
			"position", c.position, "target", c.target, "up", c.up)
	}
	if c.clip.Valid() {
		cl := c.clip
		c.projection = mgl32.Ortho(cl.Left, cl.Right, cl.Bottom, cl.Top, cl.Near, cl.Far)
	} else {
		logger.Logger().Debug("camera: invalid clip space, keeping projection", "clip", c.clip)
	}
	c.matrix = c.projection.Mul4(c.view)
}
