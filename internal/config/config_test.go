package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/watersim/internal/waves"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Seed != waves.DefaultSeed {
		t.Errorf("expected default seed %d, got %d", waves.DefaultSeed, cfg.Seed)
	}
	if cfg.CameraMode != "navigate" {
		t.Errorf("expected camera mode navigate, got %s", cfg.CameraMode)
	}
	if cfg.Backend != "sdl" {
		t.Errorf("expected backend sdl, got %s", cfg.Backend)
	}
	if cfg.Width != 1280 || cfg.Height != 720 {
		t.Errorf("expected 1280x720, got %dx%d", cfg.Width, cfg.Height)
	}
	if !cfg.VSync {
		t.Error("expected vsync to be true by default")
	}
	if cfg.MultiWave() || cfg.WaveCount() != 0 {
		t.Error("expected num_params unset by default")
	}
	if cfg.ScreenshotDir != "screenshots" {
		t.Errorf("expected screenshot dir screenshots, got %s", cfg.ScreenshotDir)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
}

func TestLoadFlat(t *testing.T) {
	path := writeConfig(t, "water.conf", `
# basic surface
shader_dir   ./shaders
grid_size 4
scale 0.5
speed	0.01
num_params 3
seed 0x2a
camera_mode additive
backend glfw
width 960
height 1050
vsync false
screenshot_dir /tmp/shots
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.ShaderDir != "./shaders" {
		t.Errorf("expected shader_dir ./shaders, got %s", cfg.ShaderDir)
	}
	if cfg.GridSize != 4 {
		t.Errorf("expected grid_size 4, got %d", cfg.GridSize)
	}
	if cfg.Scale != 0.5 {
		t.Errorf("expected scale 0.5, got %f", cfg.Scale)
	}
	if cfg.Speed != 0.01 {
		t.Errorf("expected speed 0.01, got %f", cfg.Speed)
	}
	if !cfg.MultiWave() || cfg.WaveCount() != 3 {
		t.Errorf("expected num_params 3, got %d", cfg.WaveCount())
	}
	if cfg.Seed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.Seed)
	}
	if cfg.CameraMode != "additive" {
		t.Errorf("expected camera_mode additive, got %s", cfg.CameraMode)
	}
	if cfg.Backend != "glfw" {
		t.Errorf("expected backend glfw, got %s", cfg.Backend)
	}
	if cfg.Width != 960 || cfg.Height != 1050 {
		t.Errorf("expected 960x1050, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.VSync {
		t.Error("expected vsync false")
	}
	if cfg.ScreenshotDir != "/tmp/shots" {
		t.Errorf("expected screenshot_dir /tmp/shots, got %s", cfg.ScreenshotDir)
	}
}

func TestLoadFlatRequiredOnly(t *testing.T) {
	path := writeConfig(t, "water.conf", "shader_dir s\ngrid_size 100\nscale 0.02\nspeed 0.01\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.MultiWave() {
		t.Error("num_params should stay unset")
	}
	if cfg.Seed != waves.DefaultSeed {
		t.Errorf("seed should default, got %d", cfg.Seed)
	}
}

func TestLoadFlatErrors(t *testing.T) {
	const base = "shader_dir s\ngrid_size 4\nscale 0.5\nspeed 0.01\n"

	tests := []struct {
		name    string
		content string
		wantErr error
		wantKey string
	}{
		{"unknown key", base + "colour blue\n", ErrUnknownKey, "colour"},
		{"duplicate key", base + "scale 1\n", ErrDuplicateKey, "scale"},
		{"missing shader_dir", "grid_size 4\nscale 0.5\nspeed 0.01\n", ErrMissingKey, "shader_dir"},
		{"missing speed", "shader_dir s\ngrid_size 4\nscale 0.5\n", ErrMissingKey, "speed"},
		{"bad grid_size", "shader_dir s\ngrid_size -4\nscale 0.5\nspeed 0.01\n", ErrInvalidValue, "grid_size"},
		{"bad scale", "shader_dir s\ngrid_size 4\nscale big\nspeed 0.01\n", ErrInvalidValue, "scale"},
		{"too many waves", base + "num_params 65\n", ErrInvalidValue, "num_params"},
		{"bad camera mode", base + "camera_mode orbit\n", ErrInvalidValue, "camera_mode"},
		{"bad backend", base + "backend vulkan\n", ErrInvalidValue, "backend"},
		{"zero width", base + "width 0\n", ErrInvalidValue, "width"},
		{"huge grid_size", "shader_dir s\ngrid_size 4000000000\nscale 0.5\nspeed 0.01\n", ErrInvalidValue, "grid_size"},
		{"grid_size past draw limit", "shader_dir s\ngrid_size 18919\nscale 0.5\nspeed 0.01\n", ErrInvalidValue, "grid_size"},
		{"NaN scale", "shader_dir s\ngrid_size 4\nscale NaN\nspeed 0.01\n", ErrInvalidValue, "scale"},
		{"negative scale", "shader_dir s\ngrid_size 4\nscale -1\nspeed 0.01\n", ErrInvalidValue, "scale"},
		{"zero scale", "shader_dir s\ngrid_size 4\nscale 0\nspeed 0.01\n", ErrInvalidValue, "scale"},
		{"infinite speed", "shader_dir s\ngrid_size 4\nscale 0.5\nspeed Inf\n", ErrInvalidValue, "speed"},
		{"overflowing speed", "shader_dir s\ngrid_size 4\nscale 0.5\nspeed 1e39\n", ErrInvalidValue, "speed"},
		{"three fields", base + "seed 1 2\n", ErrSyntax, "seed 1 2"},
		{"one field", base + "vsync\n", ErrSyntax, "vsync"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, "water.conf", tt.content)

			_, err := Load(path)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantKey) {
				t.Errorf("error %q does not name %q", err, tt.wantKey)
			}
		})
	}
}

func TestLoadLargestGrid(t *testing.T) {
	path := writeConfig(t, "water.conf", "shader_dir s\ngrid_size 18918\nscale 0.5\nspeed -0.01\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.GridSize != 18918 {
		t.Errorf("expected grid_size 18918, got %d", cfg.GridSize)
	}
	if cfg.Speed != -0.01 {
		t.Errorf("expected speed -0.01, got %f", cfg.Speed)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/water.conf"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "water.yaml", `
shader_dir: shaders
grid_size: 8
scale: 0.25
speed: 0.02
num_params: 0
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.GridSize != 8 || cfg.Scale != 0.25 || cfg.Speed != 0.02 {
		t.Errorf("unexpected values: %+v", cfg)
	}
	if !cfg.MultiWave() || cfg.WaveCount() != 0 {
		t.Error("num_params 0 should select the multi-wave renderer with no waves")
	}
}

func TestLoadYAMLErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"unknown key", "shader_dir: s\ngrid_size: 4\nscale: 1\nspeed: 1\nfoo: 1\n", ErrUnknownKey},
		{"duplicate key", "shader_dir: s\ngrid_size: 4\nscale: 1\nspeed: 1\nspeed: 2\n", ErrDuplicateKey},
		{"missing key", "shader_dir: s\ngrid_size: 4\n", ErrMissingKey},
		{"nested value", "shader_dir: s\ngrid_size: [4]\nscale: 1\nspeed: 1\n", ErrSyntax},
		{"not a mapping", "- a\n- b\n", ErrSyntax},
		{"empty file", "", ErrMissingKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, "water.yml", tt.content)
			if _, err := Load(path); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	count := uint32(5)
	cfg := Default()
	cfg.ShaderDir = "shaders"
	cfg.GridSize = 16
	cfg.Scale = 0.125
	cfg.Speed = 0.01
	cfg.NumParams = &count
	cfg.CameraMode = "additive"

	path := filepath.Join(t.TempDir(), "out", "resolved.yaml")
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if loaded.GridSize != 16 || loaded.Scale != 0.125 || loaded.Speed != 0.01 {
		t.Errorf("reloaded values differ: %+v", loaded)
	}
	if loaded.WaveCount() != 5 || loaded.CameraMode != "additive" || loaded.Seed != cfg.Seed {
		t.Errorf("reloaded optional values differ: %+v", loaded)
	}
}

func TestConfigPath(t *testing.T) {
	tests := []struct {
		args    []string
		want    string
		wantErr bool
	}{
		{[]string{"water.conf"}, "water.conf", false},
		{nil, "", true},
		{[]string{"a", "b"}, "", true},
	}

	for _, tt := range tests {
		got, err := configPath(tt.args)
		if (err != nil) != tt.wantErr {
			t.Errorf("configPath(%v) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			continue
		}
		if tt.wantErr && !errors.Is(err, ErrUsage) {
			t.Errorf("configPath(%v) error = %v, want ErrUsage", tt.args, err)
		}
		if got != tt.want {
			t.Errorf("configPath(%v) = %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name: "debug wins over log-level",
			setup: func() {
				*flagDebug = true
				*flagLogLevel = "error"
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
				*flagLogLevel = ""
			},
		},
		{
			name: "log file and backend",
			setup: func() {
				*flagLogFile = "watersim.log"
				*flagBackend = "glfw"
			},
			verify: func(cfg *Config) {
				if cfg.Logging.LogFile != "watersim.log" {
					t.Errorf("expected log file watersim.log, got %s", cfg.Logging.LogFile)
				}
				if cfg.Backend != "glfw" {
					t.Errorf("expected backend glfw, got %s", cfg.Backend)
				}
			},
			teardown: func() {
				*flagLogFile = ""
				*flagBackend = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	path := writeConfig(t, "water.conf", "shader_dir s\ngrid_size 4\nscale 0.5\nspeed 0.01\nbackend sdl\n")

	*flagBackend = "glfw"
	defer func() { *flagBackend = "" }()

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Backend != "glfw" {
		t.Errorf("expected backend glfw from flag, got %s", cfg.Backend)
	}
}

func TestLoadShippedConfigs(t *testing.T) {
	for _, name := range []string{"water.conf", "water.yaml"} {
		t.Run(name, func(t *testing.T) {
			cfg, err := Load(filepath.Join("..", "..", "configs", name))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg.ShaderDir != "shaders" || cfg.GridSize == 0 {
				t.Errorf("unexpected config: %+v", cfg)
			}
		})
	}
}
