// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package rendercore

import "strconv"

// Kind selects which rendering core draws a node.
type Kind uint8

// Primitive kinds known to the built-in cores.
const (
	// KindLine is a polyline through the node's points.
	KindLine Kind = iota

	// KindSpline is a Catmull-Rom spline through the node's points.
	KindSpline

	// KindCircle is a planar circle.
	KindCircle

	// KindPolygon is a filled planar polygon.
	KindPolygon

	// KindTexture is an image mapped onto a planar quad.
	KindTexture
)

// DefaultKind is used for nodes whose kind has no registered factory.
const DefaultKind = KindLine

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindLine:
		return "Line"
	case KindSpline:
		return "Spline"
	case KindCircle:
		return "Circle"
	case KindPolygon:
		return "Polygon"
	case KindTexture:
		return "Texture"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}
