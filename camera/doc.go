// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package camera implements the orthographic viewport camera.
//
// A Camera owns a look-at frame (target, position, up), an orthographic
// clip-space rectangle and the pixel viewport it maps onto. Pointer gestures
// are applied through three mutators:
//
//   - Orbit rotates the camera around its target from a screen-space drag.
//   - Move pans the clip-space rectangle by the drag distance.
//   - Zoom grows or shrinks the clip-space rectangle by a wheel tick count.
//
// Mutators never recompute the derived matrices. Callers sequence an explicit
// Update after each gesture; Update refreshes the view, projection and camera
// matrices and then notifies every subscribed Listener synchronously:
//
//	cam := camera.New()
//	cam.SetViewport(camera.Viewport{Width: 800, Height: 600})
//	cam.Move(mgl32.Vec2{100, 0}, mgl32.Vec2{0, 0})
//	cam.Update()
//
// Degenerate input (a click without drag, a zero-sized viewport, an up vector
// parallel to the view direction) is absorbed as a no-op, so the camera never
// holds NaN state.
//
// Thread Safety: a Camera is not safe for concurrent use. It is meant to be
// driven from the goroutine that owns the graphics context.
package camera
