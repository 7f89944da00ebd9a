// Package app implements the viewer's render loop.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/watersim/internal/config"
	"github.com/Faultbox/watersim/internal/engine/camera"
	"github.com/Faultbox/watersim/internal/engine/debug"
	"github.com/Faultbox/watersim/internal/engine/input"
	"github.com/Faultbox/watersim/internal/engine/renderer"
	"github.com/Faultbox/watersim/internal/logger"
	"github.com/Faultbox/watersim/internal/waves"
)

// Starting camera.
var (
	InitialPosition  = mgl32.Vec3{0, 0, 1}
	InitialDirection = mgl32.Vec3{0.1, 0, -0.7}
)

// FieldOfView is the vertical field of view in radians. The aspect ratio is
// fixed at 1 regardless of the window shape.
const FieldOfView float32 = 1.0

// Pipeline is the part of renderer.Pipeline the loop drives.
type Pipeline interface {
	SetFloat(name string, v float32)
	SetInt(name string, v int32)
	SetVec3(name string, v mgl32.Vec3)
	SetMat4(name string, m mgl32.Mat4)
	SetFloats(name string, v []float32)
	Resize(width, height int)
	Draw()
	Snapshot() (pixels []byte, width, height int)
}

// Surface is the window the loop polls and presents on. window.Surface
// satisfies it.
type Surface interface {
	PollEvents() []input.Event
	SwapBuffers()
	DrawableSize() (width, height int)
}

// Capturer saves a read-back frame and returns where it went.
type Capturer interface {
	CaptureFromPixels(pixels []byte, width, height int) (string, error)
}

// Scene is everything the loop needs besides the window and the GPU.
type Scene struct {
	Waves      waves.Set
	MultiWave  bool
	Speed      float32
	Camera     camera.State
	Controller camera.Controller

	// Screenshots receives F12 captures. Nil disables them.
	Screenshots Capturer
}

// NewScene synthesizes the waves and picks the camera controller for cfg.
func NewScene(cfg *config.Config) (*Scene, error) {
	controller, err := camera.ControllerForMode(cfg.CameraMode)
	if err != nil {
		return nil, err
	}

	set := waves.Synthesize(cfg.Seed, cfg.WaveCount())
	if err := set.Validate(); err != nil {
		return nil, fmt.Errorf("wave parameters: %w", err)
	}

	cam := camera.New(InitialPosition, InitialDirection)
	if !cfg.MultiWave() {
		cam = camera.NewNormalized(InitialPosition, InitialDirection)
	}

	logger.Info("scene ready",
		zap.Bool("multi_wave", cfg.MultiWave()),
		zap.Int("waves", set.Len()),
		zap.Uint64("seed", cfg.Seed),
		zap.String("camera_mode", cfg.CameraMode),
	)

	return &Scene{
		Waves:       set,
		MultiWave:   cfg.MultiWave(),
		Speed:       cfg.Speed,
		Camera:      cam,
		Controller:  controller,
		Screenshots: debug.NewScreenshotCapture(cfg.ScreenshotDir, "watersim"),
	}, nil
}

// Perspective returns the projection matrix. The single-wave renderer uses
// a short depth range around the unit camera; the multi-wave one looks far
// over the surface.
func Perspective(multiWave bool) mgl32.Mat4 {
	if multiWave {
		return mgl32.Perspective(FieldOfView, 1, 0.1, 1000)
	}
	return mgl32.Perspective(FieldOfView, 1, 0.01, 10)
}

// Setup pushes the uniforms that are written once before the first frame.
func Setup(p Pipeline, s *Scene) {
	p.SetMat4(renderer.UniformPerspective, Perspective(s.MultiWave))
	p.SetInt(renderer.UniformNumParams, int32(s.Waves.Len()))
	p.SetFloats(renderer.UniformA, s.Waves.A)
	p.SetFloats(renderer.UniformB, s.Waves.B)
	p.SetFloats(renderer.UniformC, s.Waves.C)
	p.SetFloats(renderer.UniformD, s.Waves.D)
	pushCamera(p, s.Camera)
	p.SetFloat(renderer.UniformTime, 0)
}

func pushCamera(p Pipeline, c camera.State) {
	p.SetMat4(renderer.UniformCamera, c.ViewMatrix())
	p.SetVec3(renderer.UniformCameraPos, c.Position)
}

// loop is the per-run state of Run.
type loop struct {
	pipeline Pipeline
	scene    *Scene
	camera   camera.State
	time     float32
	quit     bool
	capture  bool
}

// Run draws frames until the window is closed, Escape is pressed or ctx is
// cancelled. Each frame handles input, advances time by the scene speed,
// draws and presents. A quit request still finishes the current frame.
//
// Run returns nil on a requested quit and ctx.Err() on cancellation.
func Run(ctx context.Context, surface Surface, p Pipeline, s *Scene) error {
	l := &loop{
		pipeline: p,
		scene:    s,
		camera:   s.Camera,
	}

	p.Resize(surface.DrawableSize())
	Setup(p, s)

	// Timing
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting render loop")

	for {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		l.handleEvents(surface.PollEvents())

		l.time += s.Speed
		p.SetFloat(renderer.UniformTime, l.time)

		p.Draw()
		if l.capture {
			l.screenshot()
		}
		surface.SwapBuffers()

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps",
				zap.Int("count", frameCount),
				zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}

		if l.quit {
			logger.Info("render loop finished", zap.Float32("time", l.time))
			return nil
		}
		if err := ctx.Err(); err != nil {
			logger.Info("render loop cancelled", zap.Error(err))
			return err
		}
	}
}

func (l *loop) handleEvents(events []input.Event) {
	for _, event := range events {
		switch event.Type {
		case input.EventQuit:
			l.quit = true
		case input.EventWindowResize:
			l.pipeline.Resize(event.Width, event.Height)
		case input.EventKeyDown:
			switch event.Key {
			case input.KeyEscape:
				l.quit = true
				continue
			case input.KeyF12:
				l.capture = true
				continue
			}
			l.camera = l.scene.Controller.Apply(l.camera, event.Key)
			pushCamera(l.pipeline, l.camera)
			logger.Debug("camera moved",
				zap.Stringer("key", event.Key),
				zap.Float32s("position", l.camera.Position[:]),
				zap.Float32s("direction", l.camera.Direction[:]),
			)
		}
	}
}

// screenshot saves the frame just drawn. Failures are logged and the loop
// keeps running.
func (l *loop) screenshot() {
	l.capture = false
	if l.scene.Screenshots == nil {
		return
	}

	pixels, width, height := l.pipeline.Snapshot()
	path, err := l.scene.Screenshots.CaptureFromPixels(pixels, width, height)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}
