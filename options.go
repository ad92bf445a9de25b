package viewport

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/viewport/camera"
	"github.com/gogpu/viewport/rendercore"
)

// Action is what a held mouse button does to the camera while dragging.
type Action uint8

const (
	// ActionNone ignores drags with the button.
	ActionNone Action = iota

	// ActionOrbit rotates the eye around the target.
	ActionOrbit

	// ActionMove pans the clip rectangle.
	ActionMove
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionOrbit:
		return "Orbit"
	case ActionMove:
		return "Move"
	default:
		return "Unknown"
	}
}

// DefaultWheelStep is the wheel delta that makes one zoom tick.
const DefaultWheelStep = 1.0

// pixelsPerNotch converts pixel scroll deltas to classic wheel notches.
const pixelsPerNotch = 120.0

// Option configures a Viewport during creation.
//
// Example:
//
//	vp, err := viewport.New(800, 600,
//	    viewport.WithWindow(win),
//	    viewport.WithBackground(gputypes.ColorBlack),
//	    viewport.WithButtonAction(gpucontext.MouseButtonRight, viewport.ActionOrbit),
//	)
type Option func(*options)

// options holds optional configuration for Viewport creation.
type options struct {
	camera     *camera.Camera
	window     gpucontext.WindowProvider
	background gputypes.Color
	actions    map[gpucontext.MouseButton]Action
	wheelStep  float64
	factories  *rendercore.Table
}

// defaultOptions returns the default viewport options.
func defaultOptions() options {
	return options{
		background: gputypes.ColorWhite,
		actions: map[gpucontext.MouseButton]Action{
			gpucontext.MouseButtonLeft:   ActionOrbit,
			gpucontext.MouseButtonRight:  ActionMove,
			gpucontext.MouseButtonMiddle: ActionMove,
		},
		wheelStep: DefaultWheelStep,
	}
}

// WithCamera makes the viewport drive cam instead of a new default camera.
// The viewport overwrites the camera's viewport rectangle.
func WithCamera(cam *camera.Camera) Option {
	return func(o *options) {
		o.camera = cam
	}
}

// WithWindow sets the window asked to redraw whenever the camera changes.
// When width or height passed to New is not positive, the window size is
// used instead.
func WithWindow(w gpucontext.WindowProvider) Option {
	return func(o *options) {
		o.window = w
	}
}

// WithBackground sets the color each frame starts from. The default is
// opaque white.
func WithBackground(c gputypes.Color) Option {
	return func(o *options) {
		o.background = c
	}
}

// WithButtonAction binds a mouse button to a drag action. ActionNone
// disables dragging with the button.
func WithButtonAction(b gpucontext.MouseButton, a Action) Option {
	return func(o *options) {
		o.actions[b] = a
	}
}

// WithWheelStep sets the wheel delta that makes one zoom tick.
// Non-positive steps are ignored.
func WithWheelStep(step float64) Option {
	return func(o *options) {
		if step > 0 {
			o.wheelStep = step
		}
	}
}

// WithFactories makes the viewport's registry resolve cores from t instead
// of the global rendercore table.
func WithFactories(t *rendercore.Table) Option {
	return func(o *options) {
		o.factories = t
	}
}
