// Command viewdemo renders a small scene through the viewport and writes it
// to a PNG file. Camera gestures are replayed as pointer and wheel events,
// the same way a host window would deliver them.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/viewport"
	"github.com/gogpu/viewport/primitive"
)

// config holds the parsed command line.
type config struct {
	width, height int
	output        string
	orbit, pan    string
	zoom          int
	fit           bool
	texture       string
}

func main() {
	var cfg config
	flag.IntVar(&cfg.width, "width", 800, "image width")
	flag.IntVar(&cfg.height, "height", 600, "image height")
	flag.StringVar(&cfg.output, "output", "viewdemo.png", "output file")
	flag.StringVar(&cfg.orbit, "orbit", "", "orbit drag in pixels, as dx,dy")
	flag.StringVar(&cfg.pan, "pan", "", "pan drag in pixels, as dx,dy")
	flag.IntVar(&cfg.zoom, "zoom", 0, "wheel ticks, positive zooms in")
	flag.BoolVar(&cfg.fit, "fit", false, "fit the camera to the scene before the gestures")
	flag.StringVar(&cfg.texture, "texture", "", "image file mapped onto the floor quad")
	verbose := flag.Bool("v", false, "log debug output to stderr")
	flag.Parse()

	if *verbose {
		viewport.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

// run renders the demo scene and writes it to cfg.output. The viewport is
// closed on every return path.
func run(cfg config) error {
	// Gestures are parsed before any resource is created.
	var orbit, pan *[2]float64
	if cfg.orbit != "" {
		dx, dy, err := parsePair(cfg.orbit)
		if err != nil {
			return fmt.Errorf("invalid -orbit: %w", err)
		}
		orbit = &[2]float64{dx, dy}
	}
	if cfg.pan != "" {
		dx, dy, err := parsePair(cfg.pan)
		if err != nil {
			return fmt.Errorf("invalid -pan: %w", err)
		}
		pan = &[2]float64{dx, dy}
	}

	img := checkerboard(64, 8)
	if cfg.texture != "" {
		var err error
		if img, err = primitive.LoadImage(cfg.texture); err != nil {
			return fmt.Errorf("failed to load texture: %w", err)
		}
	}

	vp, err := viewport.New(cfg.width, cfg.height, viewport.WithBackground(gputypes.Color{R: 0.12, G: 0.14, B: 0.18, A: 1}))
	if err != nil {
		return fmt.Errorf("failed to create viewport: %w", err)
	}
	defer vp.Close()

	lo, hi := buildScene(vp, img)
	if err := vp.HandleContextReady(nil); err != nil {
		log.Printf("Some nodes failed to initialize: %v", err)
	}

	if cfg.fit {
		vp.Camera().Fit(lo, hi, 0.1)
	}

	ev := &scriptedEvents{}
	vp.Attach(ev)
	cx, cy := float64(cfg.width)/2, float64(cfg.height)/2
	if orbit != nil {
		ev.drag(gpucontext.MouseButtonLeft, cx, cy, cx+orbit[0], cy+orbit[1])
	}
	if pan != nil {
		ev.drag(gpucontext.MouseButtonRight, cx, cy, cx+pan[0], cy+pan[1])
	}
	if cfg.zoom != 0 {
		ev.wheel(-float64(cfg.zoom))
	}

	if err := vp.Frame(); err != nil {
		log.Printf("Some nodes failed to paint: %v", err)
	}
	if err := vp.SavePNG(cfg.output); err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}

	if caps, ok := viewport.Capabilities(); ok {
		log.Printf("Rendered with %s adapter", caps.Adapter)
	}
	log.Printf("Demo saved to %s (%dx%d, %d nodes)", cfg.output, cfg.width, cfg.height, vp.Registry().Len())
	return nil
}

// buildScene adds the demo nodes and returns their bounding box.
func buildScene(vp *viewport.Viewport, floor image.Image) (lo, hi mgl32.Vec3) {
	axes := []struct {
		dir mgl32.Vec3
		col gputypes.Color
	}{
		{mgl32.Vec3{0.45, 0, 0}, gputypes.ColorRed},
		{mgl32.Vec3{0, 0.45, 0}, gputypes.ColorGreen},
		{mgl32.Vec3{0, 0, 0.45}, gputypes.ColorBlue},
	}

	vp.AddNode(&primitive.Texture{
		Image:   floor,
		Origin:  mgl32.Vec3{-0.4, -0.05, -0.4},
		U:       mgl32.Vec3{0.8, 0, 0},
		V:       mgl32.Vec3{0, 0, 0.8},
		Opacity: 0.9,
	})
	vp.AddNode(&primitive.Polygon{
		Points: []mgl32.Vec3{{-0.3, 0, -0.2}, {0.1, 0, -0.3}, {0, 0.3, -0.1}},
		Fill:   gputypes.Color{R: 1, G: 0.8, B: 0.2, A: 0.6},
		Stroke: gputypes.ColorYellow,
		Width:  1.5,
	})
	vp.AddNode(&primitive.Circle{
		Center: mgl32.Vec3{0, 0.1, 0},
		Normal: mgl32.Vec3{0, 1, 0},
		Radius: 0.3,
		Color:  gputypes.ColorCyan,
		Width:  2,
	})
	vp.AddNode(&primitive.Circle{
		Center: mgl32.Vec3{0.25, 0.25, 0},
		Radius: 0.08,
		Fill:   gputypes.ColorMagenta,
	})
	vp.AddNode(&primitive.Spline{
		Points: []mgl32.Vec3{{-0.4, 0, 0.3}, {-0.2, 0.3, 0.2}, {0, 0.05, 0.1}, {0.2, 0.35, 0}, {0.4, 0.1, -0.1}},
		Color:  gputypes.ColorWhite,
		Width:  2.5,
	})
	for _, a := range axes {
		vp.AddNode(&primitive.Line{Points: []mgl32.Vec3{{}, a.dir}, Color: a.col, Width: 2})
	}

	return mgl32.Vec3{-0.45, -0.05, -0.45}, mgl32.Vec3{0.45, 0.45, 0.45}
}

// checkerboard returns a size x size image of n x n squares.
func checkerboard(size, n int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	cell := max(1, size/n)
	light := color.NRGBA{R: 200, G: 200, B: 210, A: 255}
	dark := color.NRGBA{R: 60, G: 70, B: 90, A: 255}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.SetNRGBA(x, y, light)
			} else {
				img.SetNRGBA(x, y, dark)
			}
		}
	}
	return img
}

// parsePair parses "dx,dy".
func parsePair(s string) (float64, float64, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("%q is not of the form dx,dy", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return 0, 0, err
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

// scriptedEvents is an event source whose events are fired by the demo
// itself instead of a window.
type scriptedEvents struct {
	gpucontext.NullEventSource

	press   func(gpucontext.MouseButton, float64, float64)
	move    func(float64, float64)
	release func(gpucontext.MouseButton, float64, float64)
	scroll  func(float64, float64)
}

func (s *scriptedEvents) OnMousePress(fn func(gpucontext.MouseButton, float64, float64)) {
	s.press = fn
}

func (s *scriptedEvents) OnMouseMove(fn func(float64, float64)) { s.move = fn }

func (s *scriptedEvents) OnMouseRelease(fn func(gpucontext.MouseButton, float64, float64)) {
	s.release = fn
}

func (s *scriptedEvents) OnScroll(fn func(float64, float64)) { s.scroll = fn }

// drag replays a straight drag in ten steps.
func (s *scriptedEvents) drag(b gpucontext.MouseButton, x0, y0, x1, y1 float64) {
	const steps = 10
	s.press(b, x0, y0)
	for i := 1; i <= steps; i++ {
		t := float64(i) / steps
		s.move(x0+(x1-x0)*t, y0+(y1-y0)*t)
	}
	s.release(b, x1, y1)
}

func (s *scriptedEvents) wheel(dy float64) {
	s.scroll(0, dy)
}
