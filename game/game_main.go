package main

import (
	"flag"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	complementary "github.com/SkaillZ/complementary"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	debug := flag.Bool("debug", false, "Enable debug rendering and the FPS overlay")
	assets := flag.String("assets", "assets/maps", "Directory containing level files")
	font := flag.String("font", "assets/Roboto-Medium.ttf", "Font for the debug overlay (empty disables it)")
	flag.Parse()

	log := complementary.NewDefaultLogger("complementary", *debug)

	if err := glfw.Init(); err != nil {
		log.Errorf("glfw init failed: %v", err)
		panic(err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	window, err := glfw.CreateWindow(1280, 720, "Complementary", nil, nil)
	if err != nil {
		panic(err)
	}
	defer window.Destroy()

	app := complementary.NewApp(complementary.Config{
		Title:    "Complementary",
		Width:    1280,
		Height:   720,
		AssetDir: *assets,
		FontPath: *font,
		Debug:    *debug,
	}, log)
	if err := app.Init(window); err != nil {
		log.Errorf("startup failed: %v", err)
		panic(err)
	}
	defer app.Release()

	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		app.Resize(width, height)
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	if err := app.Run(); err != nil {
		log.Errorf("game loop aborted: %v", err)
		panic(err)
	}
}
