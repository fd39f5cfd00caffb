package gpu

import (
	"errors"

	"github.com/cogentcore/webgpu/wgpu"
)

// Logger is the subset of the application logger the render path needs.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// ErrDeviceLost is returned when the GPU context has been invalidated.
// There is no reconnection logic; the caller is expected to shut down.
var ErrDeviceLost = errors.New("gpu device lost")

// RenderContext bundles the device-level state every render resource needs.
// It is created once at startup and owned by the application; all GPU
// resources hang off the single device and queue in here. Nothing in the
// render path touches the device from more than one goroutine.
type RenderContext struct {
	Device *wgpu.Device
	Queue  *wgpu.Queue
	Format wgpu.TextureFormat
	Log    Logger
}

// FrameContext is the per-frame submission target: one command encoder and
// one surface texture view, valid for a single frame.
type FrameContext struct {
	Encoder *wgpu.CommandEncoder
	Target  *wgpu.TextureView
	Width   uint32
	Height  uint32
}
