// Package config loads the viewer settings.
package config

import (
	"github.com/Faultbox/watersim/internal/engine/camera"
	"github.com/Faultbox/watersim/internal/waves"
)

// MaxNumParams is the size of the wave arrays declared by the shader.
const MaxNumParams = 64

// Window backends.
const (
	BackendSDL  = "sdl"
	BackendGLFW = "glfw"
)

// Config holds all viewer settings.
type Config struct {
	ShaderDir string  `yaml:"shader_dir"`
	GridSize  uint32  `yaml:"grid_size"`
	Scale     float32 `yaml:"scale"`
	Speed     float32 `yaml:"speed"` // Time added per frame

	// NumParams is only set for the multi-wave renderer.
	NumParams *uint32 `yaml:"num_params,omitempty"`
	Seed      uint64  `yaml:"seed"`

	CameraMode string `yaml:"camera_mode"`

	Backend string `yaml:"backend"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	VSync   bool   `yaml:"vsync"`

	ScreenshotDir string `yaml:"screenshot_dir"` // F12 captures land here

	Logging LoggingConfig `yaml:"-"`
}

// LoggingConfig holds logging settings. It comes from flags only.
type LoggingConfig struct {
	Level   string
	LogFile string
}

// Default returns a Config with every optional key at its default.
// Required keys are left zero and must come from the file.
func Default() *Config {
	return &Config{
		Seed:          waves.DefaultSeed,
		CameraMode:    camera.ModeNavigate,
		Backend:       BackendSDL,
		Width:         1280,
		Height:        720,
		VSync:         true,
		ScreenshotDir: "screenshots",
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// MultiWave reports whether the wave-sum renderer is configured.
func (c *Config) MultiWave() bool {
	return c.NumParams != nil
}

// WaveCount returns the configured number of waves, zero when unset.
func (c *Config) WaveCount() uint32 {
	if c.NumParams == nil {
		return 0
	}
	return *c.NumParams
}
