// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package camera

// ClipSpace is the orthographic viewing volume: the left/right/bottom/top
// extents in world units that map onto the full viewport, plus the near and
// far plane distances.
type ClipSpace struct {
	Left, Right float32
	Bottom, Top float32
	Near, Far   float32
}

// Width returns Right - Left.
func (c ClipSpace) Width() float32 { return c.Right - c.Left }

// Height returns Top - Bottom.
func (c ClipSpace) Height() float32 { return c.Top - c.Bottom }

// Center returns the center of the left/right/bottom/top rectangle.
func (c ClipSpace) Center() (x, y float32) {
	return (c.Left + c.Right) / 2, (c.Bottom + c.Top) / 2
}

// Valid reports whether the volume can produce a projection:
// Right > Left, Top > Bottom and Far > Near.
func (c ClipSpace) Valid() bool {
	return c.Right > c.Left && c.Top > c.Bottom && c.Far > c.Near
}

// Viewport is the pixel rectangle the clip space is mapped onto.
type Viewport struct {
	X, Y          float32
	Width, Height float32
}

// Empty reports whether the viewport has no area. Pan and zoom divide by
// the viewport size and are skipped for empty viewports.
func (v Viewport) Empty() bool {
	return v.Width == 0 || v.Height == 0
}

// Aspect returns Width / Height, or 1 for an empty viewport.
func (v Viewport) Aspect() float32 {
	if v.Empty() {
		return 1
	}
	return v.Width / v.Height
}
