// Package shader compiles and links GLSL programs and resolves their uniforms.
package shader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/watersim/internal/engine/gpu"
	"github.com/Faultbox/watersim/internal/logger"
)

// Shader file names expected inside the configured shader directory.
const (
	VertexFile   = "shader.vert"
	FragmentFile = "shader.frag"
)

var (
	ErrCompile = errors.New("shader compilation failed")
	ErrLink    = errors.New("program link failed")
)

// Sources holds the GLSL text of both stages.
type Sources struct {
	Vertex   string
	Fragment string
}

// LoadSources reads shader.vert and shader.frag from dir.
func LoadSources(dir string) (Sources, error) {
	vert, err := os.ReadFile(filepath.Join(dir, VertexFile))
	if err != nil {
		return Sources{}, fmt.Errorf("could not read vertex shader: %w", err)
	}
	frag, err := os.ReadFile(filepath.Join(dir, FragmentFile))
	if err != nil {
		return Sources{}, fmt.Errorf("could not read fragment shader: %w", err)
	}
	return Sources{Vertex: string(vert), Fragment: string(frag)}, nil
}

// CompileProgram compiles vertex and fragment shaders and links them into a program.
// The intermediate shader objects are detached and deleted once linking
// succeeds. On failure every object created so far is released and the
// returned error carries the driver's info log verbatim.
func CompileProgram(dev gpu.Device, src Sources) (gpu.Program, error) {
	vertShader, err := compileShader(dev, src.Vertex, gpu.VertexStage)
	if err != nil {
		return 0, err
	}
	defer dev.DeleteShader(vertShader)

	fragShader, err := compileShader(dev, src.Fragment, gpu.FragmentStage)
	if err != nil {
		return 0, err
	}
	defer dev.DeleteShader(fragShader)

	program := dev.CreateProgram()
	dev.AttachShader(program, vertShader)
	dev.AttachShader(program, fragShader)

	if ok, log := dev.LinkProgram(program); !ok {
		dev.DeleteProgram(program)
		return 0, fmt.Errorf("%w: %s", ErrLink, log)
	}

	dev.DetachShader(program, vertShader)
	dev.DetachShader(program, fragShader)

	return program, nil
}

// compileShader compiles a single shader of the given stage.
func compileShader(dev gpu.Device, source string, stage gpu.ShaderStage) (gpu.Shader, error) {
	s := dev.CreateShader(stage)
	if ok, log := dev.CompileShader(s, source); !ok {
		dev.DeleteShader(s)
		return 0, fmt.Errorf("%w: %s shader: %s", ErrCompile, stage, log)
	}
	return s, nil
}

// Uniforms maps uniform names to the locations of one linked program.
type Uniforms map[string]gpu.UniformLocation

// ResolveUniforms looks up every name once. Names the program does not use
// resolve to gpu.NoUniform, which uniform writes skip.
func ResolveUniforms(dev gpu.Device, program gpu.Program, names ...string) Uniforms {
	u := make(Uniforms, len(names))
	for _, name := range names {
		loc := dev.UniformLocation(program, name)
		if !loc.Valid() {
			logger.Debug("uniform not active in program", zap.String("name", name))
			loc = gpu.NoUniform
		}
		u[name] = loc
	}
	return u
}

// Location returns the location of name, or gpu.NoUniform if it was never resolved.
func (u Uniforms) Location(name string) gpu.UniformLocation {
	if loc, ok := u[name]; ok {
		return loc
	}
	return gpu.NoUniform
}
