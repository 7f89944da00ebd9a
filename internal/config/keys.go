package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/Faultbox/watersim/internal/engine/camera"
	"github.com/Faultbox/watersim/internal/engine/water"
)

// Configuration errors.
var (
	ErrUnknownKey   = errors.New("unknown property")
	ErrDuplicateKey = errors.New("duplicate property")
	ErrMissingKey   = errors.New("missing required property")
	ErrInvalidValue = errors.New("invalid value")
	ErrSyntax       = errors.New("malformed line")
)

type setter func(c *Config, value string) error

// properties lists every accepted key.
var properties = map[string]setter{
	"shader_dir": func(c *Config, v string) error {
		c.ShaderDir = v
		return nil
	},
	"grid_size": func(c *Config, v string) error {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return err
		}
		if n > water.MaxSize {
			return fmt.Errorf("%d exceeds the grid limit of %d", n, water.MaxSize)
		}
		c.GridSize = uint32(n)
		return nil
	},
	"scale": func(c *Config, v string) error {
		f, err := parseFinite(v)
		if err != nil {
			return err
		}
		if f <= 0 {
			return fmt.Errorf("must be positive")
		}
		c.Scale = f
		return nil
	},
	"speed": func(c *Config, v string) error {
		f, err := parseFinite(v)
		c.Speed = f
		return err
	},
	"num_params": func(c *Config, v string) error {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return err
		}
		if n > MaxNumParams {
			return fmt.Errorf("%d exceeds the shader limit of %d", n, MaxNumParams)
		}
		count := uint32(n)
		c.NumParams = &count
		return nil
	},
	"seed": func(c *Config, v string) error {
		n, err := strconv.ParseUint(v, 0, 64)
		c.Seed = n
		return err
	},
	"camera_mode": func(c *Config, v string) error {
		if _, err := camera.ControllerForMode(v); err != nil {
			return err
		}
		c.CameraMode = v
		return nil
	},
	"backend": func(c *Config, v string) error {
		if v != BackendSDL && v != BackendGLFW {
			return fmt.Errorf("unknown backend %q", v)
		}
		c.Backend = v
		return nil
	},
	"width": func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err == nil && n <= 0 {
			return fmt.Errorf("must be positive")
		}
		c.Width = n
		return err
	},
	"height": func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err == nil && n <= 0 {
			return fmt.Errorf("must be positive")
		}
		c.Height = n
		return err
	},
	"screenshot_dir": func(c *Config, v string) error {
		c.ScreenshotDir = v
		return nil
	},
	"vsync": func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		c.VSync = b
		return err
	},
}

// parseFinite parses a float32, rejecting NaN and values that overflow to
// infinity.
func parseFinite(v string) (float32, error) {
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("must be finite")
	}
	return float32(f), nil
}

// required keys, in the order they are reported when missing.
var required = []string{"shader_dir", "grid_size", "scale", "speed"}

// assigner applies key/value pairs to a Config and tracks which keys were seen.
type assigner struct {
	cfg  *Config
	seen map[string]bool
}

func newAssigner(cfg *Config) *assigner {
	return &assigner{cfg: cfg, seen: make(map[string]bool)}
}

func (a *assigner) set(key, value string) error {
	set, ok := properties[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if a.seen[key] {
		return fmt.Errorf("%w: %s", ErrDuplicateKey, key)
	}
	a.seen[key] = true

	if err := set(a.cfg, value); err != nil {
		return fmt.Errorf("%w for %s %q: %v", ErrInvalidValue, key, value, err)
	}
	return nil
}

func (a *assigner) finish() error {
	for _, key := range required {
		if !a.seen[key] {
			return fmt.Errorf("%w: %s", ErrMissingKey, key)
		}
	}
	return nil
}
