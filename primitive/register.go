// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package primitive

import "github.com/gogpu/viewport/rendercore"

func init() {
	rendercore.Register(rendercore.KindLine, newLineCore)
	rendercore.Register(rendercore.KindSpline, newSplineCore)
	rendercore.Register(rendercore.KindCircle, newCircleCore)
	rendercore.Register(rendercore.KindPolygon, newPolygonCore)
	rendercore.Register(rendercore.KindTexture, newTextureCore)
}

// Register adds the five built-in cores to t. Use it to populate a private
// table passed to registry.WithFactories.
func Register(t *rendercore.Table) {
	t.Register(rendercore.KindLine, newLineCore)
	t.Register(rendercore.KindSpline, newSplineCore)
	t.Register(rendercore.KindCircle, newCircleCore)
	t.Register(rendercore.KindPolygon, newPolygonCore)
	t.Register(rendercore.KindTexture, newTextureCore)
}
