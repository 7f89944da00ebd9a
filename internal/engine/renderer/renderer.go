// Package renderer owns the GPU resources of the water surface.
package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/watersim/internal/engine/gpu"
	"github.com/Faultbox/watersim/internal/engine/shader"
	"github.com/Faultbox/watersim/internal/engine/water"
	"github.com/Faultbox/watersim/internal/logger"
)

// Uniform names written by the viewer.
const (
	UniformTime        = "time"
	UniformCamera      = "camera"
	UniformCameraPos   = "camera_pos"
	UniformPerspective = "perspective"
	UniformNumParams   = "num_params"
	UniformA           = "a"
	UniformB           = "b"
	UniformC           = "c"
	UniformD           = "d"
)

// UniformNames lists every uniform resolved after linking.
var UniformNames = []string{
	UniformTime,
	UniformCamera,
	UniformCameraPos,
	UniformPerspective,
	UniformNumParams,
	UniformA,
	UniformB,
	UniformC,
	UniformD,
}

// DefaultClearColor is the background behind the water.
var DefaultClearColor = [4]float32{0.1, 0.2, 0.3, 1.0}

// Spec describes the pipeline to build.
type Spec struct {
	Sources    shader.Sources
	Grid       *water.Grid
	ClearColor [4]float32
}

// Pipeline holds the linked program, the grid mesh and resolved uniforms.
//
// A Pipeline only exists inside With. Its resources are released when the
// callback returns and every later call is ignored.
type Pipeline struct {
	dev      gpu.Device
	program  gpu.Program
	mesh     Mesh
	uniforms shader.Uniforms
	width    int
	height   int
	released bool
}

// With builds the pipeline, runs fn and releases the GPU resources exactly
// once however fn exits, including by panic.
// Build errors (compile or link failures) are returned without calling fn.
func With(dev gpu.Device, spec Spec, fn func(p *Pipeline) error) error {
	p, err := build(dev, spec)
	if err != nil {
		return err
	}
	defer p.release()

	return fn(p)
}

// build creates GPU state in the fixed order compile, link, shader cleanup,
// uniform lookup, then uploads the grid.
func build(dev gpu.Device, spec Spec) (*Pipeline, error) {
	if spec.Grid == nil {
		return nil, fmt.Errorf("pipeline spec has no grid")
	}

	program, err := shader.CompileProgram(dev, spec.Sources)
	if err != nil {
		return nil, fmt.Errorf("water shader: %w", err)
	}

	dev.UseProgram(program)
	uniforms := shader.ResolveUniforms(dev, program, UniformNames...)

	mesh := UploadGrid(dev, spec.Grid)

	dev.EnableBackFaceCulling()
	dev.ClearColor(spec.ClearColor[0], spec.ClearColor[1], spec.ClearColor[2], spec.ClearColor[3])

	logger.Info("pipeline created",
		zap.Uint32("program", uint32(program)),
		zap.Int32("vertices", mesh.count),
		zap.Uint32("grid_size", spec.Grid.Size),
		zap.Float32("extent", spec.Grid.Extent()),
	)

	return &Pipeline{
		dev:      dev,
		program:  program,
		mesh:     mesh,
		uniforms: uniforms,
	}, nil
}

// release deletes program, vertex array and buffer. Only With calls it.
func (p *Pipeline) release() {
	if p.released {
		return
	}
	p.released = true

	p.dev.DeleteProgram(p.program)
	p.mesh.delete(p.dev)
	logger.Info("pipeline released")
}

func (p *Pipeline) location(name string) gpu.UniformLocation {
	if p.released {
		logger.Warn("uniform write after pipeline release", zap.String("name", name))
		return gpu.NoUniform
	}
	return p.uniforms.Location(name)
}

// SetFloat writes a float uniform. Unused uniforms are skipped.
func (p *Pipeline) SetFloat(name string, v float32) {
	if loc := p.location(name); loc.Valid() {
		p.dev.Uniform1f(loc, v)
	}
}

// SetInt writes an int uniform.
func (p *Pipeline) SetInt(name string, v int32) {
	if loc := p.location(name); loc.Valid() {
		p.dev.Uniform1i(loc, v)
	}
}

// SetVec3 writes a vec3 uniform.
func (p *Pipeline) SetVec3(name string, v mgl32.Vec3) {
	if loc := p.location(name); loc.Valid() {
		p.dev.Uniform3f(loc, v.X(), v.Y(), v.Z())
	}
}

// SetMat4 writes a column-major mat4 uniform.
func (p *Pipeline) SetMat4(name string, m mgl32.Mat4) {
	if loc := p.location(name); loc.Valid() {
		p.dev.UniformMatrix4(loc, [16]float32(m))
	}
}

// SetFloats writes a float array uniform. Empty arrays are skipped.
func (p *Pipeline) SetFloats(name string, v []float32) {
	if len(v) == 0 {
		return
	}
	if loc := p.location(name); loc.Valid() {
		p.dev.Uniform1fv(loc, v)
	}
}

// Resize updates the viewport to the drawable size.
func (p *Pipeline) Resize(width, height int) {
	if p.released {
		return
	}
	p.width, p.height = width, height
	p.dev.Viewport(int32(width), int32(height))
	logger.Debug("viewport resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Draw clears the color buffer and draws the whole grid as triangles.
func (p *Pipeline) Draw() {
	if p.released {
		logger.Warn("draw after pipeline release")
		return
	}
	p.dev.ClearColorBuffer()
	p.mesh.draw(p.dev)
}

// Snapshot reads back the current viewport as RGBA bytes, bottom row first.
// It returns nil before the first Resize and after release.
func (p *Pipeline) Snapshot() (pixels []byte, width, height int) {
	if p.released || p.width <= 0 || p.height <= 0 {
		return nil, 0, 0
	}
	return p.dev.ReadPixels(int32(p.width), int32(p.height)), p.width, p.height
}

// VertexCount returns the number of vertices issued per draw.
func (p *Pipeline) VertexCount() int32 {
	return p.mesh.count
}
