package viewport

import (
	"sync"
	"sync/atomic"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/viewport/internal/logger"
)

// DeviceCaps describes the graphics adapter the process renders with.
type DeviceCaps struct {
	// Adapter is the adapter name reported by the host.
	Adapter string

	// Type is the physical adapter type.
	Type gpucontext.AdapterType

	// SurfaceFormat is the host's preferred surface format, or
	// gputypes.TextureFormatUndefined when headless.
	SurfaceFormat gputypes.TextureFormat

	// Software is true when rendering happens on the CPU.
	Software bool
}

// softwareCaps is recorded when the first context becomes ready without a
// device provider.
var softwareCaps = DeviceCaps{
	Adapter:       "software",
	Type:          gpucontext.AdapterTypeSoftware,
	SurfaceFormat: gputypes.TextureFormatUndefined,
	Software:      true,
}

var (
	capsOnce  sync.Once
	caps      DeviceCaps
	capsReady atomic.Bool
)

// Capabilities returns the process-wide adapter description and whether it
// has been recorded yet. It is recorded once, by the first
// Viewport.HandleContextReady in the process.
//
// Capabilities is safe for concurrent use.
func Capabilities() (DeviceCaps, bool) {
	if !capsReady.Load() {
		return DeviceCaps{}, false
	}
	return caps, true
}

// initCapabilities records the adapter of p on the first call and returns
// the recorded value on every call.
func initCapabilities(p gpucontext.DeviceProvider) DeviceCaps {
	capsOnce.Do(func() {
		caps = detectCaps(p)
		capsReady.Store(true)
		logger.Logger().Info("viewport: graphics context ready",
			"adapter", caps.Adapter, "type", caps.Type, "software", caps.Software)
	})
	return caps
}

func detectCaps(p gpucontext.DeviceProvider) DeviceCaps {
	if p == nil {
		return softwareCaps
	}
	info := p.AdapterInfo()
	return DeviceCaps{
		Adapter:       info.Name,
		Type:          info.Type,
		SurfaceFormat: p.SurfaceFormat(),
		Software:      info.Type == gpucontext.AdapterTypeSoftware,
	}
}
