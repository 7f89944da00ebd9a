// Package window creates the native window and OpenGL context.
//
// Two backends are available: SDL2 (the default) and GLFW. Both produce a
// Surface that the render loop polls for input and presents frames on.
package window

import (
	"fmt"
	"runtime"

	"github.com/Faultbox/watersim/internal/config"
	"github.com/Faultbox/watersim/internal/engine/input"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// OpenGL context version requested from every backend.
const (
	glMajor = 4
	glMinor = 1
)

// Config holds window configuration.
type Config struct {
	Title  string
	Width  int
	Height int
	VSync  bool
}

// Surface is a window with a current OpenGL context.
type Surface interface {
	// PollEvents drains pending native events without blocking.
	PollEvents() []input.Event
	// SwapBuffers presents the back buffer. It may block on vsync.
	SwapBuffers()
	// DrawableSize returns the framebuffer size in pixels.
	DrawableSize() (width, height int)
	// Close destroys the context and the window.
	Close()
}

// Open creates a window using the named backend.
func Open(backend string, cfg Config) (Surface, error) {
	switch backend {
	case "", config.BackendSDL:
		return newSDL(cfg)
	case config.BackendGLFW:
		return newGLFW(cfg)
	default:
		return nil, fmt.Errorf("unknown window backend %q", backend)
	}
}
