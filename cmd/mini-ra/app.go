package main

import (
	"log/slog"
	"time"

	"mini-ra/internal/profiling"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// App drives the frame loop: poll input, update the scene, render, present,
// then hold the frame to the configured FPS cap.
type App struct {
	window *glfw.Window
	scene  *Scene

	fpsLimiter *FPSLimiter
	lastTime   time.Time
}

func NewApp(window *glfw.Window, scene *Scene) *App {
	return &App{
		window:     window,
		scene:      scene,
		fpsLimiter: NewFPSLimiter(),
		lastTime:   time.Now(),
	}
}

func (a *App) Run() {
	for !a.window.ShouldClose() {
		a.tick()
	}
}

func (a *App) tick() {
	profiling.ResetFrame()
	startTick := time.Now() // Measure pure processing time
	now := time.Now()
	dt := now.Sub(a.lastTime).Seconds()
	a.lastTime = now

	func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()

	a.scene.Update(dt)
	func() { defer profiling.Track("scene.Render")(); a.scene.Render() }()

	func() { defer profiling.Track("glfw.SwapBuffers")(); a.window.SwapBuffers() }()

	// Check if frame took too long (> 16ms)
	processingDuration := time.Since(startTick)
	if processingDuration > 16*time.Millisecond {
		slog.Warn("slow frame", "took", processingDuration, "top", profiling.TopNCurrentFrame(5))
	}

	a.fpsLimiter.Wait()
}
