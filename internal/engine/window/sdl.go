package window

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/watersim/internal/config"
	"github.com/Faultbox/watersim/internal/engine/input"
	"github.com/Faultbox/watersim/internal/logger"
)

// sdlWindow wraps an SDL2 window and OpenGL context.
type sdlWindow struct {
	window    *sdl.Window
	glContext sdl.GLContext
	queue     *input.Queue
}

func newSDL(cfg Config) (*sdlWindow, error) {
	w := &sdlWindow{queue: input.NewQueue()}

	logger.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// Set OpenGL attributes BEFORE creating window
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, glMajor)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, glMinor)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)

	var err error
	w.window, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		sdl.WINDOW_OPENGL|sdl.WINDOW_RESIZABLE,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	w.glContext, err = w.window.GLCreateContext()
	if err != nil {
		w.window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	interval := 0
	if cfg.VSync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		logger.Warn("failed to set swap interval", zap.Int("interval", interval), zap.Error(err))
	}

	logger.Info("window created",
		zap.String("backend", config.BackendSDL),
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("vsync", cfg.VSync),
	)

	return w, nil
}

func (w *sdlWindow) PollEvents() []input.Event {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			w.queue.Push(input.Event{Type: input.EventQuit})

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				width, height := w.DrawableSize()
				w.queue.Push(input.Event{
					Type:   input.EventWindowResize,
					Width:  width,
					Height: height,
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN {
				w.queue.PushKey(sdlKey(e.Keysym.Sym))
			}
		}
	}
	return w.queue.Drain()
}

func (w *sdlWindow) SwapBuffers() {
	w.window.GLSwap()
}

func (w *sdlWindow) DrawableSize() (int, int) {
	width, height := w.window.GLGetDrawableSize()
	return int(width), int(height)
}

func (w *sdlWindow) Close() {
	logger.Info("closing window", zap.String("backend", config.BackendSDL))

	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
	}
	if w.window != nil {
		w.window.Destroy()
	}

	sdl.Quit()
}

var sdlKeys = map[sdl.Keycode]input.Key{
	sdl.K_w:      input.KeyW,
	sdl.K_a:      input.KeyA,
	sdl.K_s:      input.KeyS,
	sdl.K_d:      input.KeyD,
	sdl.K_e:      input.KeyE,
	sdl.K_q:      input.KeyQ,
	sdl.K_UP:     input.KeyUp,
	sdl.K_DOWN:   input.KeyDown,
	sdl.K_LEFT:   input.KeyLeft,
	sdl.K_RIGHT:  input.KeyRight,
	sdl.K_ESCAPE: input.KeyEscape,
	sdl.K_F12:    input.KeyF12,
}

func sdlKey(code sdl.Keycode) input.Key {
	if k, ok := sdlKeys[code]; ok {
		return k
	}
	return input.KeyUnknown
}
