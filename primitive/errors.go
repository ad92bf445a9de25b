// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package primitive

import "errors"

var (
	// ErrTooFewPoints is returned by Initialize when a node has fewer points
	// than its primitive needs.
	ErrTooFewPoints = errors.New("primitive: too few points")

	// ErrNoImage is returned by Initialize for a Texture without an image.
	ErrNoImage = errors.New("primitive: texture has no image")

	// ErrDegenerate is returned by Initialize for geometry without area or
	// length, such as a zero radius or parallel texture axes.
	ErrDegenerate = errors.New("primitive: degenerate geometry")
)
