package window

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"

	"github.com/Faultbox/watersim/internal/config"
	"github.com/Faultbox/watersim/internal/engine/input"
	"github.com/Faultbox/watersim/internal/logger"
)

// glfwWindow wraps a GLFW window. GLFW reports input through callbacks
// that fire inside glfw.PollEvents; they feed the queue drained by PollEvents.
type glfwWindow struct {
	window *glfw.Window
	queue  *input.Queue
	closed bool
}

func newGLFW(cfg Config) (*glfwWindow, error) {
	logger.Info("initializing GLFW")
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw.Init failed: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, glMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, glMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glfw.CreateWindow failed: %w", err)
	}
	win.MakeContextCurrent()

	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w := &glfwWindow{window: win, queue: input.NewQueue()}

	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		// Repeats count as presses so holding a key keeps moving the camera,
		// matching SDL's repeated KEYDOWN events.
		if action == glfw.Press || action == glfw.Repeat {
			w.queue.PushKey(glfwKey(key))
		}
	})
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.queue.Push(input.Event{Type: input.EventWindowResize, Width: width, Height: height})
	})
	win.SetCloseCallback(func(_ *glfw.Window) {
		w.queue.Push(input.Event{Type: input.EventQuit})
	})

	logger.Info("window created",
		zap.String("backend", config.BackendGLFW),
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("vsync", cfg.VSync),
	)

	return w, nil
}

func (w *glfwWindow) PollEvents() []input.Event {
	glfw.PollEvents()
	return w.queue.Drain()
}

func (w *glfwWindow) SwapBuffers() {
	w.window.SwapBuffers()
}

func (w *glfwWindow) DrawableSize() (int, int) {
	return w.window.GetFramebufferSize()
}

func (w *glfwWindow) Close() {
	if w.closed {
		return
	}
	w.closed = true

	logger.Info("closing window", zap.String("backend", config.BackendGLFW))
	w.window.Destroy()
	glfw.Terminate()
}

var glfwKeys = map[glfw.Key]input.Key{
	glfw.KeyW:      input.KeyW,
	glfw.KeyA:      input.KeyA,
	glfw.KeyS:      input.KeyS,
	glfw.KeyD:      input.KeyD,
	glfw.KeyE:      input.KeyE,
	glfw.KeyQ:      input.KeyQ,
	glfw.KeyUp:     input.KeyUp,
	glfw.KeyDown:   input.KeyDown,
	glfw.KeyLeft:   input.KeyLeft,
	glfw.KeyRight:  input.KeyRight,
	glfw.KeyEscape: input.KeyEscape,
	glfw.KeyF12:    input.KeyF12,
}

func glfwKey(key glfw.Key) input.Key {
	if k, ok := glfwKeys[key]; ok {
		return k
	}
	return input.KeyUnknown
}
