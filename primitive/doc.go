// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package primitive provides scene node types and the software rendering
// cores that draw them on a gg.Context.
//
// Importing the package registers a core for every rendercore.Kind in the
// global factory table:
//
//	import _ "github.com/gogpu/viewport/primitive"
//
// Node geometry is given in world coordinates. Cores project it through the
// bound camera with Project and rasterize the result in pixel space, so a
// circle seen at an angle is drawn as an ellipse and a textured quad maps
// its image through a single affine transform.
//
// Nodes are plain structs; the registry identifies them by pointer. A node
// may be edited between frames: cores read the node's fields on every
// Paint except for the geometry they cache in Initialize (circle samples
// and texture pixels).
package primitive
