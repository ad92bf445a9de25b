package viewport

import (
	"errors"
	"image/color"
	"math"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/viewport/camera"
	"github.com/gogpu/viewport/primitive"
	"github.com/gogpu/viewport/rendercore"
)

// mockEvents records the callbacks registered by Attach.
type mockEvents struct {
	gpucontext.NullEventSource

	press   func(gpucontext.MouseButton, float64, float64)
	move    func(float64, float64)
	release func(gpucontext.MouseButton, float64, float64)
	scroll  func(float64, float64)
	resize  func(int, int)
}

func (m *mockEvents) OnMousePress(fn func(gpucontext.MouseButton, float64, float64)) {
	m.press = fn
}

func (m *mockEvents) OnMouseMove(fn func(float64, float64)) { m.move = fn }

func (m *mockEvents) OnMouseRelease(fn func(gpucontext.MouseButton, float64, float64)) {
	m.release = fn
}

func (m *mockEvents) OnScroll(fn func(float64, float64)) { m.scroll = fn }
func (m *mockEvents) OnResize(fn func(int, int))         { m.resize = fn }

// drag presses b at from, moves to to and releases there.
func (m *mockEvents) drag(b gpucontext.MouseButton, from, to [2]float64) {
	m.press(b, from[0], from[1])
	m.move(to[0], to[1])
	m.release(b, to[0], to[1])
}

type mockPointer struct {
	fn func(gpucontext.PointerEvent)
}

func (m *mockPointer) OnPointer(fn func(gpucontext.PointerEvent)) { m.fn = fn }

type mockScroll struct {
	fn func(gpucontext.ScrollEvent)
}

func (m *mockScroll) OnScrollEvent(fn func(gpucontext.ScrollEvent)) { m.fn = fn }

type mockWindow struct {
	w, h    int
	redraws int
}

func (m *mockWindow) Size() (int, int)     { return m.w, m.h }
func (m *mockWindow) ScaleFactor() float64 { return 1 }
func (m *mockWindow) RequestRedraw()       { m.redraws++ }

type mockProvider struct {
	info gpucontext.AdapterInfo
}

func (m *mockProvider) Device() gpucontext.Device             { return nil }
func (m *mockProvider) Queue() gpucontext.Queue               { return nil }
func (m *mockProvider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatUndefined }
func (m *mockProvider) Adapter() gpucontext.Adapter           { return nil }
func (m *mockProvider) AdapterInfo() gpucontext.AdapterInfo   { return m.info }

func newTestViewport(t *testing.T, opts ...Option) (*Viewport, *mockEvents) {
	t.Helper()
	vp, err := New(800, 600, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { vp.Close() })

	ev := &mockEvents{}
	vp.Attach(ev)
	return vp, ev
}

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func checkClip(t *testing.T, got camera.ClipSpace, left, right, bottom, top float32) {
	t.Helper()
	if !near(got.Left, left) || !near(got.Right, right) || !near(got.Bottom, bottom) || !near(got.Top, top) {
		t.Errorf("clip = (%v, %v, %v, %v), want (%v, %v, %v, %v)",
			got.Left, got.Right, got.Bottom, got.Top, left, right, bottom, top)
	}
}

func TestNew(t *testing.T) {
	vp, _ := newTestViewport(t)

	if w, h := vp.Size(); w != 800 || h != 600 {
		t.Errorf("Size() = %dx%d, want 800x600", w, h)
	}
	want := camera.Viewport{Width: 800, Height: 600}
	if got := vp.Camera().Viewport(); got != want {
		t.Errorf("camera viewport = %v, want %v", got, want)
	}
	if vp.Registry().Camera() != vp.Camera() {
		t.Error("registry is not bound to the viewport camera")
	}
	if b := vp.Image().Bounds(); b.Dx() != 800 || b.Dy() != 600 {
		t.Errorf("canvas bounds = %v, want 800x600", b)
	}
}

func TestNewSize(t *testing.T) {
	if _, err := New(0, 10); err == nil {
		t.Error("New(0, 10) returned no error")
	}

	win := &mockWindow{w: 320, h: 240}
	vp, err := New(0, 0, WithWindow(win))
	if err != nil {
		t.Fatalf("New() with window error = %v", err)
	}
	defer vp.Close()
	if w, h := vp.Size(); w != 320 || h != 240 {
		t.Errorf("Size() = %dx%d, want the window size 320x240", w, h)
	}
}

func TestWithCamera(t *testing.T) {
	cam := camera.New()
	vp, _ := newTestViewport(t, WithCamera(cam))
	if vp.Camera() != cam {
		t.Fatal("viewport does not drive the given camera")
	}
	if cam.Viewport().Width != 800 {
		t.Errorf("camera viewport width = %v, want 800", cam.Viewport().Width)
	}
}

func TestScreen(t *testing.T) {
	vp, _ := newTestViewport(t)
	tests := []struct {
		x, y float64
		want mgl32.Vec2
	}{
		{400, 300, mgl32.Vec2{0, 0}},
		{0, 0, mgl32.Vec2{-400, 300}},
		{800, 600, mgl32.Vec2{400, -300}},
		{500, 250, mgl32.Vec2{100, 50}},
	}
	for _, tt := range tests {
		if got := vp.screen(tt.x, tt.y); got != tt.want {
			t.Errorf("screen(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

// TestMoveDrag tests panning with the right button: a 100 pixel drag to the
// right on an 800 pixel wide viewport shifts the unit clip by 1/8.
func TestMoveDrag(t *testing.T) {
	vp, ev := newTestViewport(t)
	ev.drag(gpucontext.MouseButtonRight, [2]float64{400, 300}, [2]float64{500, 300})

	checkClip(t, vp.Camera().ClipSpace(), -0.625, 0.375, -0.5, 0.5)
}

func TestOrbitDrag(t *testing.T) {
	win := &mockWindow{}
	vp, ev := newTestViewport(t, WithWindow(win))
	cam := vp.Camera()
	before := cam.Position()

	ev.press(gpucontext.MouseButtonLeft, 400, 300)
	ev.move(420, 300)
	ev.move(440, 310)
	ev.release(gpucontext.MouseButtonLeft, 440, 310)

	after := cam.Position()
	if after.ApproxEqualThreshold(before, 1e-4) {
		t.Error("orbit drag did not move the eye")
	}
	dist := after.Sub(cam.Target()).Len()
	if !near(dist, 5) {
		t.Errorf("eye distance = %v, want 5", dist)
	}
	if win.redraws < 2 {
		t.Errorf("redraws = %d, want at least one per move", win.redraws)
	}
}

func TestMoveWithoutPress(t *testing.T) {
	vp, ev := newTestViewport(t)
	ev.move(100, 100)
	ev.release(gpucontext.MouseButtonLeft, 100, 100)
	checkClip(t, vp.Camera().ClipSpace(), -0.5, 0.5, -0.5, 0.5)
	if vp.Camera().Position() != camera.DefaultPosition {
		t.Error("motion without a pressed button moved the camera")
	}
}

func TestButtonActionNone(t *testing.T) {
	vp, ev := newTestViewport(t, WithButtonAction(gpucontext.MouseButtonRight, ActionNone))
	ev.drag(gpucontext.MouseButtonRight, [2]float64{400, 300}, [2]float64{500, 300})
	checkClip(t, vp.Camera().ClipSpace(), -0.5, 0.5, -0.5, 0.5)
}

func TestSecondButtonIgnoredDuringDrag(t *testing.T) {
	vp, ev := newTestViewport(t)
	ev.press(gpucontext.MouseButtonRight, 400, 300)
	ev.press(gpucontext.MouseButtonLeft, 400, 300)
	ev.release(gpucontext.MouseButtonLeft, 400, 300)
	ev.move(500, 300)
	ev.release(gpucontext.MouseButtonRight, 500, 300)

	checkClip(t, vp.Camera().ClipSpace(), -0.625, 0.375, -0.5, 0.5)
	if vp.Camera().Position() != camera.DefaultPosition {
		t.Error("second button orbited the camera")
	}
}

func TestWheelZoom(t *testing.T) {
	vp, ev := newTestViewport(t)

	// one notch up zooms in by one tick
	ev.scroll(0, -1)
	h, v := float32(1.0/800), float32(1.0/600)
	checkClip(t, vp.Camera().ClipSpace(), -0.5+h, 0.5-h, -0.5-v, 0.5+v)

	// and back out
	ev.scroll(0, 1)
	checkClip(t, vp.Camera().ClipSpace(), -0.5, 0.5, -0.5, 0.5)
}

func TestWheelStep(t *testing.T) {
	vp, ev := newTestViewport(t, WithWheelStep(2))

	ev.scroll(0, -1)
	checkClip(t, vp.Camera().ClipSpace(), -0.5, 0.5, -0.5, 0.5)

	ev.scroll(0, -1)
	h := float32(1.0 / 800)
	if got := vp.Camera().ClipSpace().Left; !near(got, -0.5+h) {
		t.Errorf("left = %v, want %v after two half notches", got, -0.5+h)
	}
}

func TestAttachScroll(t *testing.T) {
	vp, _ := newTestViewport(t)
	src := &mockScroll{}
	vp.AttachScroll(src)

	src.fn(gpucontext.ScrollEvent{DeltaY: -60, DeltaMode: gpucontext.ScrollDeltaPixel})
	checkClip(t, vp.Camera().ClipSpace(), -0.5, 0.5, -0.5, 0.5)

	src.fn(gpucontext.ScrollEvent{DeltaY: -60, DeltaMode: gpucontext.ScrollDeltaPixel})
	h := float32(1.0 / 800)
	if got := vp.Camera().ClipSpace().Left; !near(got, -0.5+h) {
		t.Errorf("left = %v, want %v after 120 pixels", got, -0.5+h)
	}

	src.fn(gpucontext.ScrollEvent{DeltaY: -2, DeltaMode: gpucontext.ScrollDeltaLine})
	if got := vp.Camera().ClipSpace().Left; !near(got, -0.5+3*h) {
		t.Errorf("left = %v, want %v after two lines", got, -0.5+3*h)
	}
}

func TestAttachPointer(t *testing.T) {
	vp, _ := newTestViewport(t)
	src := &mockPointer{}
	vp.AttachPointer(src)

	src.fn(gpucontext.PointerEvent{Type: gpucontext.PointerDown, Button: gpucontext.ButtonRight, X: 400, Y: 300})
	src.fn(gpucontext.PointerEvent{Type: gpucontext.PointerMove, Button: gpucontext.ButtonNone, X: 500, Y: 300})
	src.fn(gpucontext.PointerEvent{Type: gpucontext.PointerUp, Button: gpucontext.ButtonRight, X: 500, Y: 300})

	checkClip(t, vp.Camera().ClipSpace(), -0.625, 0.375, -0.5, 0.5)

	// cancel ends the gesture
	src.fn(gpucontext.PointerEvent{Type: gpucontext.PointerDown, Button: gpucontext.ButtonRight, X: 400, Y: 300})
	src.fn(gpucontext.PointerEvent{Type: gpucontext.PointerCancel})
	src.fn(gpucontext.PointerEvent{Type: gpucontext.PointerMove, X: 500, Y: 300})
	checkClip(t, vp.Camera().ClipSpace(), -0.625, 0.375, -0.5, 0.5)
}

func TestMouseButton(t *testing.T) {
	tests := []struct {
		in   gpucontext.Button
		want gpucontext.MouseButton
		ok   bool
	}{
		{gpucontext.ButtonLeft, gpucontext.MouseButtonLeft, true},
		{gpucontext.ButtonRight, gpucontext.MouseButtonRight, true},
		{gpucontext.ButtonMiddle, gpucontext.MouseButtonMiddle, true},
		{gpucontext.ButtonX1, gpucontext.MouseButton4, true},
		{gpucontext.ButtonX2, gpucontext.MouseButton5, true},
		{gpucontext.ButtonNone, 0, false},
		{gpucontext.ButtonEraser, 0, false},
	}
	for _, tt := range tests {
		got, ok := mouseButton(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("mouseButton(%v) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestResize(t *testing.T) {
	vp, ev := newTestViewport(t)
	ev.resize(1024, 768)

	if w, h := vp.Size(); w != 1024 || h != 768 {
		t.Errorf("Size() = %dx%d, want 1024x768", w, h)
	}
	want := camera.Viewport{Width: 1024, Height: 768}
	if got := vp.Camera().Viewport(); got != want {
		t.Errorf("camera viewport = %v, want %v", got, want)
	}
	if got := vp.screen(512, 384); got != (mgl32.Vec2{}) {
		t.Errorf("center after resize = %v, want origin", got)
	}

	ev.resize(0, 100)
	ev.resize(100, -1)
	if w, h := vp.Size(); w != 1024 || h != 768 {
		t.Errorf("non-positive resize changed size to %dx%d", w, h)
	}
}

func square(c gputypes.Color) *primitive.Polygon {
	return &primitive.Polygon{
		Points: []mgl32.Vec3{{-0.25, -0.25, 0}, {0.25, -0.25, 0}, {0.25, 0.25, 0}, {-0.25, 0.25, 0}},
		Fill:   c,
	}
}

func pixel(vp *Viewport, x, y int) color.RGBA {
	return color.RGBAModel.Convert(vp.Image().At(x, y)).(color.RGBA)
}

func TestFrame(t *testing.T) {
	vp, err := New(100, 100, WithBackground(gputypes.ColorBlack))
	if err != nil {
		t.Fatal(err)
	}
	defer vp.Close()

	if !vp.AddNode(square(gputypes.ColorRed)) {
		t.Fatal("AddNode returned false")
	}
	if err := vp.HandleContextReady(nil); err != nil {
		t.Fatalf("HandleContextReady() = %v", err)
	}
	if err := vp.Frame(); err != nil {
		t.Fatalf("Frame() = %v", err)
	}

	if p := pixel(vp, 50, 50); p != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("center pixel = %v, want red", p)
	}
	if p := pixel(vp, 5, 5); p != (color.RGBA{A: 255}) {
		t.Errorf("corner pixel = %v, want black background", p)
	}

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := vp.SavePNG(path); err != nil {
		t.Errorf("SavePNG() = %v", err)
	}
}

func TestFrameBeforeContextReady(t *testing.T) {
	vp, err := New(20, 20, WithBackground(gputypes.ColorBlack))
	if err != nil {
		t.Fatal(err)
	}
	defer vp.Close()

	vp.AddNode(square(gputypes.ColorRed))
	if err := vp.Frame(); err != nil {
		t.Fatalf("Frame() = %v", err)
	}
	if p := pixel(vp, 10, 10); p != (color.RGBA{A: 255}) {
		t.Errorf("center pixel = %v, want background before the context is ready", p)
	}
}

func TestFrameErrors(t *testing.T) {
	tbl := rendercore.NewTable()
	primitive.Register(tbl)
	vp, err := New(20, 20, WithFactories(tbl))
	if err != nil {
		t.Fatal(err)
	}
	defer vp.Close()

	vp.AddNode(&primitive.Line{})
	vp.AddNode(&primitive.Texture{})
	err = vp.HandleContextReady(nil)
	if !errors.Is(err, primitive.ErrTooFewPoints) || !errors.Is(err, primitive.ErrNoImage) {
		t.Errorf("HandleContextReady() = %v, want both node errors", err)
	}
	if err := vp.Frame(); err != nil {
		t.Errorf("Frame() = %v, want nil", err)
	}
}

func TestNeedsRedraw(t *testing.T) {
	win := &mockWindow{}
	vp, ev := newTestViewport(t, WithWindow(win))
	vp.Frame()
	if vp.NeedsRedraw() {
		t.Fatal("NeedsRedraw() = true after Frame")
	}

	n := square(gputypes.ColorRed)
	vp.AddNode(n)
	if !vp.NeedsRedraw() {
		t.Error("AddNode did not request a redraw")
	}
	vp.Frame()

	if vp.AddNode(n) {
		t.Error("duplicate AddNode returned true")
	}
	if vp.NeedsRedraw() {
		t.Error("duplicate AddNode requested a redraw")
	}

	ev.scroll(0, -1)
	if !vp.NeedsRedraw() {
		t.Error("wheel zoom did not request a redraw")
	}
	vp.Frame()

	if !vp.RemoveNode(n) || !vp.NeedsRedraw() {
		t.Error("RemoveNode did not request a redraw")
	}
	if vp.RemoveNode(n) {
		t.Error("second RemoveNode returned true")
	}
	if win.redraws == 0 {
		t.Error("window was never asked to redraw")
	}
}

func TestSetCamera(t *testing.T) {
	win := &mockWindow{}
	vp, ev := newTestViewport(t, WithWindow(win))
	old := vp.Camera()

	next := camera.New()
	vp.SetCamera(next)

	if vp.Camera() != next || vp.Registry().Camera() != next {
		t.Fatal("SetCamera did not replace the camera")
	}
	if next.Viewport() != (camera.Viewport{Width: 800, Height: 600}) {
		t.Errorf("new camera viewport = %v", next.Viewport())
	}

	vp.Frame()
	before := win.redraws
	old.Update()
	if vp.NeedsRedraw() || win.redraws != before {
		t.Error("previous camera still requests redraws")
	}

	ev.drag(gpucontext.MouseButtonRight, [2]float64{400, 300}, [2]float64{500, 300})
	checkClip(t, next.ClipSpace(), -0.625, 0.375, -0.5, 0.5)
	checkClip(t, old.ClipSpace(), -0.5, 0.5, -0.5, 0.5)

	vp.SetCamera(nil)
	if vp.Camera() != next {
		t.Error("SetCamera(nil) replaced the camera")
	}
}

func TestHandleContextReadyCapabilities(t *testing.T) {
	before, recorded := Capabilities()

	gpu := &mockProvider{info: gpucontext.AdapterInfo{Name: "Test GPU", Type: gpucontext.AdapterTypeDiscrete}}
	vp, _ := newTestViewport(t)
	if err := vp.HandleContextReady(gpu); err != nil {
		t.Fatal(err)
	}

	got, ok := Capabilities()
	if !ok {
		t.Fatal("Capabilities() not recorded after HandleContextReady")
	}
	want := before
	if !recorded {
		want = DeviceCaps{Adapter: "Test GPU", Type: gpucontext.AdapterTypeDiscrete}
	}
	if got != want {
		t.Errorf("Capabilities() = %+v, want %+v", got, want)
	}

	// later contexts reuse the first record
	other := &mockProvider{info: gpucontext.AdapterInfo{Name: "Other", Type: gpucontext.AdapterTypeSoftware}}
	vp2, _ := newTestViewport(t)
	vp2.HandleContextReady(other)
	if again, _ := Capabilities(); again != got {
		t.Errorf("Capabilities() changed to %+v, want %+v", again, got)
	}
}

func TestDetectCaps(t *testing.T) {
	if got := detectCaps(nil); got != softwareCaps {
		t.Errorf("detectCaps(nil) = %+v, want software fallback", got)
	}

	p := &mockProvider{info: gpucontext.AdapterInfo{Name: "llvmpipe", Type: gpucontext.AdapterTypeSoftware}}
	got := detectCaps(p)
	if got.Adapter != "llvmpipe" || !got.Software {
		t.Errorf("detectCaps(llvmpipe) = %+v, want a software adapter", got)
	}
}

func TestClose(t *testing.T) {
	vp, err := New(10, 10)
	if err != nil {
		t.Fatal(err)
	}
	cam := vp.Camera()
	vp.AddNode(square(gputypes.ColorRed))

	vp.Close()
	if vp.Registry().Len() != 0 {
		t.Error("Close did not empty the registry")
	}
	if cam.Listeners() != 0 {
		t.Errorf("camera has %d listeners after Close", cam.Listeners())
	}
}

var (
	_ gpucontext.EventSource    = (*mockEvents)(nil)
	_ gpucontext.WindowProvider = (*mockWindow)(nil)
	_ gpucontext.DeviceProvider = (*mockProvider)(nil)
)
