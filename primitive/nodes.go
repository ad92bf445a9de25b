// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package primitive

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/viewport/rendercore"
)

// Line is a polyline through Points.
type Line struct {
	Points []mgl32.Vec3
	Color  gputypes.Color
	Width  float64 // pixels; non-positive means 1
}

// Kind implements rendercore.Node.
func (*Line) Kind() rendercore.Kind { return rendercore.KindLine }

// Spline is a Catmull-Rom spline passing through every point of Points.
type Spline struct {
	Points []mgl32.Vec3
	Color  gputypes.Color
	Width  float64

	// Tension scales the tangents at each point. Zero selects 0.5, the
	// uniform Catmull-Rom spline.
	Tension float64
}

// Kind implements rendercore.Node.
func (*Spline) Kind() rendercore.Kind { return rendercore.KindSpline }

// Circle is a circle of Radius around Center in the plane whose normal is
// Normal. A zero Normal faces +Z.
type Circle struct {
	Center mgl32.Vec3
	Normal mgl32.Vec3
	Radius float32

	Color gputypes.Color // outline
	Width float64
	Fill  gputypes.Color

	// Segments is the number of samples along the circle. Values under
	// MinSegments are raised to it; zero selects DefaultSegments.
	Segments int
}

// Kind implements rendercore.Node.
func (*Circle) Kind() rendercore.Kind { return rendercore.KindCircle }

// Circle sampling limits.
const (
	DefaultSegments = 64
	MinSegments     = 8
)

// Polygon is a closed planar polygon.
type Polygon struct {
	Points []mgl32.Vec3
	Fill   gputypes.Color
	Stroke gputypes.Color
	Width  float64
}

// Kind implements rendercore.Node.
func (*Polygon) Kind() rendercore.Kind { return rendercore.KindPolygon }

// Texture maps Image onto the parallelogram spanned by U and V at Origin.
// The image's top-left corner sits at Origin, its width runs along U and
// its height along V.
type Texture struct {
	Image  image.Image
	Origin mgl32.Vec3
	U, V   mgl32.Vec3

	// Opacity multiplies the image alpha. Zero is treated as 1.
	Opacity float64
}

// Kind implements rendercore.Node.
func (*Texture) Kind() rendercore.Kind { return rendercore.KindTexture }
