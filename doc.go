// Package viewport is an interactive 3D viewport: an orthographic camera
// driven by pointer gestures and a registry that dispatches scene nodes to
// primitive-specific rendering cores.
//
// # Overview
//
// A Viewport glues three pieces together:
//
//   - camera.Camera holds the eye frame and the orthographic clip space and
//     turns drags and wheel ticks into orbit, pan and zoom.
//   - registry.Registry binds every scene node to one rendering core chosen
//     by the node's kind and forwards initialize and paint calls.
//   - A gg.Context canvas that the built-in cores of package primitive draw
//     on.
//
// Events come from a host window through the gpucontext interfaces, so the
// viewport runs under any gogpu host, or headless with no host at all.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/viewport"
//	    "github.com/gogpu/viewport/primitive"
//	)
//
//	func main() {
//	    vp, err := viewport.New(800, 600)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer vp.Close()
//
//	    vp.AddNode(&primitive.Circle{Radius: 0.3, Fill: gputypes.ColorBlue})
//	    vp.HandleContextReady(nil)
//	    vp.Frame()
//	    vp.SavePNG("circle.png")
//	}
//
// # Interaction
//
// Attach connects a gpucontext.EventSource. By default the left button
// orbits, the right and middle buttons pan, and the wheel zooms. Every
// camera change requests a redraw from the window given with WithWindow.
//
// # Logging
//
// The package is silent by default. SetLogger enables structured logging
// through log/slog for the viewport, its sub-packages and the gg
// rasterizer.
//
// # Thread Safety
//
// A Viewport is not safe for concurrent use. Event callbacks, Frame and
// node management are expected on the host's main thread.
package viewport
