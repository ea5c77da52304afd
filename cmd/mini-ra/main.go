package main

import (
	"log/slog"
	"os"
	"runtime"

	"mini-ra/internal/config"
	"mini-ra/internal/graphics"
	"mini-ra/internal/graphics/glbackend"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/closer"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	settings, err := config.LoadSettings("settings.yaml")
	if err != nil {
		slog.Warn("could not load settings, using defaults", "error", err)
		settings = config.DefaultSettings()
	}
	settings.Apply()

	if err := glfw.Init(); err != nil {
		panic(err)
	}

	// Window setup
	window, err := setupWindow()
	if err != nil {
		panic(err)
	}

	backend, err := glbackend.NewContext(config.GetTempBufferSize())
	if err != nil {
		panic(err)
	}

	shader, err := glbackend.NewShader("assets/shaders/combined.vert", "assets/shaders/combined.frag")
	if err != nil {
		panic(err)
	}

	renderer := graphics.NewRenderer(backend)

	scene, err := NewScene(renderer, backend, shader)
	if err != nil {
		panic(err)
	}

	closer.Bind(func() {
		scene.Dispose()
		shader.Dispose()
		backend.Dispose()
		glfw.Terminate()
	})

	setupInputHandlers(window, scene)

	app := NewApp(window, scene)
	app.Run()

	closer.Close()
}

func setupWindow() (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	width, height := config.GetWindowSize()
	window, err := glfw.CreateWindow(width, height, "mini-ra", nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	if config.GetVSync() {
		glfw.SwapInterval(1)
	} else {
		// Disable V-Sync; we'll use our own FPS limiter
		glfw.SwapInterval(0)
	}

	return window, nil
}

func setupInputHandlers(window *glfw.Window, scene *Scene) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		case glfw.KeyF1:
			scene.ToggleDepthPreview()
		case glfw.KeyF2:
			scene.ToggleHUD()
		case glfw.KeySpace:
			scene.ShakeCamera()
		}
	})

	window.SetSizeCallback(func(w *glfw.Window, width, height int) {
		scene.Resize(width, height)
	})
}
