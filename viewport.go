package viewport

import (
	"fmt"
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gg"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/viewport/camera"
	"github.com/gogpu/viewport/internal/logger"
	"github.com/gogpu/viewport/registry"
	"github.com/gogpu/viewport/rendercore"
)

// Viewport turns host window events into camera gestures and paints the
// registered scene nodes onto a canvas.
type Viewport struct {
	cam    *camera.Camera
	canvas *gg.Context
	reg    *registry.Registry
	window gpucontext.WindowProvider

	background gputypes.Color
	actions    map[gpucontext.MouseButton]Action
	wheelStep  float64

	width, height int

	drag     drag
	wheelAcc float64
	pending  bool
}

// drag is the gesture of the button currently held.
type drag struct {
	active bool
	button gpucontext.MouseButton
	action Action
	last   mgl32.Vec2
}

// New creates a viewport of width x height pixels.
//
// Non-positive dimensions are taken from the window set with WithWindow;
// without a window they are an error.
func New(width, height int, opts ...Option) (*Viewport, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if (width <= 0 || height <= 0) && o.window != nil {
		width, height = o.window.Size()
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("viewport: invalid size %dx%d", width, height)
	}

	cam := o.camera
	if cam == nil {
		cam = camera.New()
	}

	v := &Viewport{
		cam:        cam,
		canvas:     gg.NewContext(width, height),
		window:     o.window,
		background: o.background,
		actions:    o.actions,
		wheelStep:  o.wheelStep,
		width:      width,
		height:     height,
	}
	v.syncCamera(cam)

	var regOpts []registry.Option
	if o.factories != nil {
		regOpts = append(regOpts, registry.WithFactories(o.factories))
	}
	v.reg = registry.New(cam, v.canvas, regOpts...)
	v.reg.OnCameraChanged(v.requestRedraw)

	logger.Logger().Debug("viewport: created", "width", width, "height", height)
	return v, nil
}

// syncCamera sizes cam's viewport to the canvas and refreshes its matrices.
func (v *Viewport) syncCamera(cam *camera.Camera) {
	cam.SetViewport(camera.Viewport{Width: float32(v.width), Height: float32(v.height)})
	cam.Update()
}

// Attach registers the viewport's handlers on src: mouse buttons drive
// the camera, the wheel zooms and window resizes resize the canvas.
func (v *Viewport) Attach(src gpucontext.EventSource) {
	src.OnMousePress(v.handlePress)
	src.OnMouseMove(v.handleMotion)
	src.OnMouseRelease(v.handleRelease)
	src.OnScroll(func(_, dy float64) { v.handleWheel(dy / v.wheelStep) })
	src.OnResize(v.HandleResize)
}

// AttachPointer registers the viewport's handlers on the unified pointer
// stream. Use it instead of the mouse callbacks of Attach, not in addition.
func (v *Viewport) AttachPointer(src gpucontext.PointerEventSource) {
	src.OnPointer(func(ev gpucontext.PointerEvent) {
		switch ev.Type {
		case gpucontext.PointerDown:
			if b, ok := mouseButton(ev.Button); ok {
				v.handlePress(b, ev.X, ev.Y)
			}
		case gpucontext.PointerMove:
			v.handleMotion(ev.X, ev.Y)
		case gpucontext.PointerUp:
			if b, ok := mouseButton(ev.Button); ok {
				v.handleRelease(b, ev.X, ev.Y)
			}
		case gpucontext.PointerCancel:
			v.drag = drag{}
		}
	})
}

// AttachScroll registers the wheel handler on the detailed scroll stream.
// Pixel deltas are converted to notches of 120 pixels.
func (v *Viewport) AttachScroll(src gpucontext.ScrollEventSource) {
	src.OnScrollEvent(func(ev gpucontext.ScrollEvent) {
		dy := ev.DeltaY
		if ev.DeltaMode == gpucontext.ScrollDeltaPixel {
			dy /= pixelsPerNotch
		}
		v.handleWheel(dy / v.wheelStep)
	})
}

// mouseButton maps a pointer button to the mouse button of the legacy
// event stream.
func mouseButton(b gpucontext.Button) (gpucontext.MouseButton, bool) {
	switch b {
	case gpucontext.ButtonLeft:
		return gpucontext.MouseButtonLeft, true
	case gpucontext.ButtonRight:
		return gpucontext.MouseButtonRight, true
	case gpucontext.ButtonMiddle:
		return gpucontext.MouseButtonMiddle, true
	case gpucontext.ButtonX1:
		return gpucontext.MouseButton4, true
	case gpucontext.ButtonX2:
		return gpucontext.MouseButton5, true
	default:
		return 0, false
	}
}

// screen converts window coordinates to the camera's screen space: origin
// at the viewport center, Y up.
func (v *Viewport) screen(x, y float64) mgl32.Vec2 {
	return mgl32.Vec2{
		float32(x - float64(v.width)/2),
		float32(float64(v.height)/2 - y),
	}
}

func (v *Viewport) handlePress(b gpucontext.MouseButton, x, y float64) {
	if v.drag.active {
		return
	}
	a := v.actions[b]
	if a == ActionNone {
		return
	}
	v.drag = drag{active: true, button: b, action: a, last: v.screen(x, y)}
}

func (v *Viewport) handleMotion(x, y float64) {
	if !v.drag.active {
		return
	}
	cur := v.screen(x, y)
	if cur == v.drag.last {
		return
	}

	switch v.drag.action {
	case ActionOrbit:
		v.cam.Orbit(cur, v.drag.last)
	case ActionMove:
		v.cam.Move(cur, v.drag.last)
	}
	v.drag.last = cur
	v.cam.Update()
}

func (v *Viewport) handleRelease(b gpucontext.MouseButton, x, y float64) {
	if !v.drag.active || b != v.drag.button {
		return
	}
	v.handleMotion(x, y)
	v.drag = drag{}
	v.requestRedraw()
}

// handleWheel zooms by whole ticks of notches. Scrolling up zooms in.
// Fractions are carried over to the next event.
func (v *Viewport) handleWheel(notches float64) {
	v.wheelAcc -= notches
	ticks := math.Trunc(v.wheelAcc)
	if ticks == 0 {
		return
	}
	v.wheelAcc -= ticks
	v.cam.Zoom(float32(ticks))
	v.cam.Update()
}

// HandleResize resizes the canvas and the camera viewport.
// Non-positive sizes are ignored.
func (v *Viewport) HandleResize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if width == v.width && height == v.height {
		return
	}
	if err := v.canvas.Resize(width, height); err != nil {
		logger.Logger().Warn("viewport: resize canvas", "error", err)
		return
	}
	v.width, v.height = width, height
	v.syncCamera(v.cam)
}

// HandleContextReady records the process-wide adapter capabilities on the
// first call in the process and initializes every registered core.
// p may be nil for headless rendering.
func (v *Viewport) HandleContextReady(p gpucontext.DeviceProvider) error {
	initCapabilities(p)
	err := v.reg.InitializeAll()
	v.requestRedraw()
	return err
}

// Frame clears the canvas with the background color and paints every
// registered node. It clears the pending redraw request.
func (v *Viewport) Frame() error {
	v.pending = false
	bg := v.background
	v.canvas.ClearWithColor(gg.RGBA{R: bg.R, G: bg.G, B: bg.B, A: bg.A})
	return v.reg.PaintAll()
}

// NeedsRedraw reports whether the scene changed since the last Frame.
func (v *Viewport) NeedsRedraw() bool {
	return v.pending
}

func (v *Viewport) requestRedraw() {
	v.pending = true
	if v.window != nil {
		v.window.RequestRedraw()
	}
}

// Image returns a copy of the last painted frame.
func (v *Viewport) Image() image.Image {
	return v.canvas.Image()
}

// SavePNG writes the last painted frame to path.
func (v *Viewport) SavePNG(path string) error {
	return v.canvas.SavePNG(path)
}

// Size returns the canvas size in pixels.
func (v *Viewport) Size() (width, height int) {
	return v.width, v.height
}

// Camera returns the camera the viewport drives.
func (v *Viewport) Camera() *camera.Camera {
	return v.cam
}

// SetCamera makes the viewport drive cam and rebinds every core to it.
// A drag in progress is cancelled. A nil camera is ignored.
func (v *Viewport) SetCamera(cam *camera.Camera) {
	if cam == nil || cam == v.cam {
		return
	}
	v.drag = drag{}
	v.cam = cam
	v.syncCamera(cam)
	v.reg.SetCamera(cam)
	v.requestRedraw()
}

// AddNode registers n and reports whether it was added.
func (v *Viewport) AddNode(n rendercore.Node) bool {
	if !v.reg.AddNode(n) {
		return false
	}
	v.requestRedraw()
	return true
}

// RemoveNode unregisters n and reports whether it was registered.
func (v *Viewport) RemoveNode(n rendercore.Node) bool {
	if !v.reg.RemoveNode(n) {
		return false
	}
	v.requestRedraw()
	return true
}

// Registry returns the node registry.
func (v *Viewport) Registry() *registry.Registry {
	return v.reg
}

// Close releases every core and the canvas.
func (v *Viewport) Close() error {
	v.reg.Close()
	return v.canvas.Close()
}
