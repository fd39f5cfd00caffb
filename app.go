package complementary

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/SkaillZ/complementary/render/core"
	"github.com/SkaillZ/complementary/render/gpu"
)

// Config is the startup configuration of the game shell.
type Config struct {
	Title    string
	Width    int
	Height   int
	AssetDir string
	FontPath string
	Debug    bool
}

// One simulation tick is 10ms; rendering skips at most maxTicksPerFrame
// steps between frames when it can't keep up.
const (
	tickDuration     = 1.0 / 100.0
	maxTicksPerFrame = 5
)

// App owns the window, the GPU device state and the game loop.
type App struct {
	cfg Config
	log Logger

	window        *glfw.Window
	instance      *wgpu.Instance
	surface       *wgpu.Surface
	adapter       *wgpu.Adapter
	device        *wgpu.Device
	queue         *wgpu.Queue
	surfaceConfig *wgpu.SurfaceConfiguration

	ctx      *gpu.RenderContext
	camera   *core.Camera
	renderer *gpu.FrameRenderer
	game     *Game

	lastTime       float64
	accumulator    float64
	frameCount     int
	fps            float64
	fpsTime        float64
	lastRenderTime float64
}

func NewApp(cfg Config, log Logger) *App {
	return &App{cfg: cfg, log: log}
}

// Init acquires the GPU device, configures the surface for the window and
// builds the renderer and game state. Any failure here aborts startup.
func (a *App) Init(window *glfw.Window) error {
	a.window = window
	a.instance = wgpu.CreateInstance(nil)
	a.surface = a.instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(window))

	adapter, err := a.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: a.surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fmt.Errorf("failed to acquire adapter: %w", err)
	}
	a.adapter = adapter

	a.device, err = adapter.RequestDevice(nil)
	if err != nil {
		return fmt.Errorf("failed to acquire device: %w", err)
	}
	a.queue = a.device.GetQueue()

	width, height := window.GetFramebufferSize()
	caps := a.surface.GetCapabilities(adapter)
	format := caps.Formats[0]

	a.surfaceConfig = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      format,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	a.surface.Configure(a.adapter, a.device, a.surfaceConfig)

	a.ctx = &gpu.RenderContext{
		Device: a.device,
		Queue:  a.queue,
		Format: format,
		Log:    a.log,
	}

	var atlas *core.TextAtlas
	if a.cfg.FontPath != "" {
		atlas, err = core.NewTextAtlas(a.cfg.FontPath, 32)
		if err != nil {
			a.log.Warnf("failed to load font, HUD disabled: %v", err)
			atlas = nil
		}
	}

	a.camera = core.NewCamera(1, 1)
	a.renderer, err = gpu.NewFrameRenderer(a.ctx, a.camera, atlas)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	a.game, err = NewGame(a.log, a.cfg.AssetDir, a.cfg.Debug)
	if err != nil {
		return err
	}
	if err := a.game.InstallLevel(a.renderer); err != nil {
		return err
	}

	a.lastTime = glfw.GetTime()
	return nil
}

// Resize reconfigures the surface. Must run before the next frame renders.
func (a *App) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	a.surfaceConfig.Width = uint32(width)
	a.surfaceConfig.Height = uint32(height)
	a.surface.Configure(a.adapter, a.device, a.surfaceConfig)
}

func (a *App) readInput() *Input {
	pressed := func(keys ...glfw.Key) bool {
		for _, k := range keys {
			if a.window.GetKey(k) == glfw.Press {
				return true
			}
		}
		return false
	}
	return &Input{
		Left:   pressed(glfw.KeyA, glfw.KeyLeft),
		Right:  pressed(glfw.KeyD, glfw.KeyRight),
		Jump:   pressed(glfw.KeySpace, glfw.KeyW, glfw.KeyUp),
		Switch: pressed(glfw.KeyLeftShift, glfw.KeyRightShift),
	}
}

// Run drives the fixed-tick loop until the window closes.
func (a *App) Run() error {
	for !a.window.ShouldClose() {
		glfw.PollEvents()

		now := glfw.GetTime()
		a.accumulator += now - a.lastTime
		a.lastTime = now

		input := a.readInput()
		ticks := 0
		for a.accumulator >= tickDuration && ticks < maxTicksPerFrame {
			changed, err := a.game.Tick(input)
			if err != nil {
				return err
			}
			if changed {
				if err := a.game.InstallLevel(a.renderer); err != nil {
					return err
				}
			}
			a.accumulator -= tickDuration
			ticks++
		}
		// Drop time the simulation can't catch up on.
		if a.accumulator >= tickDuration {
			a.accumulator = 0
		}

		if err := a.renderOnce(); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) renderOnce() error {
	next, err := a.surface.GetCurrentTexture()
	if err != nil {
		return errors.Join(gpu.ErrDeviceLost, err)
	}
	defer next.Release()

	view, err := next.CreateView(nil)
	if err != nil {
		return fmt.Errorf("failed to create surface view: %w", err)
	}
	defer view.Release()

	encoder, err := a.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("failed to create command encoder: %w", err)
	}

	frame := &gpu.FrameContext{
		Encoder: encoder,
		Target:  view,
		Width:   a.surfaceConfig.Width,
		Height:  a.surfaceConfig.Height,
	}
	if err := a.renderer.RenderFrame(frame, a.game.Snapshot(a.fps)); err != nil {
		return err
	}

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("failed to finish encoder: %w", err)
	}
	a.queue.Submit(cmd)
	a.surface.Present()

	now := glfw.GetTime()
	if a.lastRenderTime > 0 {
		a.frameCount++
		a.fpsTime += now - a.lastRenderTime
		if a.fpsTime >= 1.0 {
			a.fps = float64(a.frameCount) / a.fpsTime
			a.frameCount = 0
			a.fpsTime = 0
		}
	}
	a.lastRenderTime = now
	return nil
}

// Release frees all GPU state. The window is owned by the caller.
func (a *App) Release() {
	if a.renderer != nil {
		a.renderer.Release()
	}
	if a.device != nil {
		a.device.Release()
	}
}
