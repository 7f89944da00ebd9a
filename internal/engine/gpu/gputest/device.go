// Package gputest provides a recording gpu.Device for tests.
package gputest

import (
	"fmt"

	"github.com/Faultbox/watersim/internal/engine/gpu"
)

// Device is an in-memory gpu.Device. It records every call in order and
// tracks which objects are alive.
type Device struct {
	// Uniforms maps the uniform names the "linked program" exposes to their
	// locations. Names not present resolve to gpu.NoUniform.
	Uniforms map[string]gpu.UniformLocation

	// FailCompile makes compilation of the given stage fail with CompileLog.
	FailCompile map[gpu.ShaderStage]bool
	CompileLog  string

	// FailLink makes linking fail with LinkLog.
	FailLink bool
	LinkLog  string

	Calls []string

	// Values written to uniform locations, last write wins.
	Floats   map[gpu.UniformLocation]float32
	Ints     map[gpu.UniformLocation]int32
	Vec3s    map[gpu.UniformLocation][3]float32
	Matrices map[gpu.UniformLocation][16]float32
	Arrays   map[gpu.UniformLocation][]float32

	BufferData []byte
	Draws      []int32

	next          uint32
	liveShaders   map[gpu.Shader]bool
	livePrograms  map[gpu.Program]bool
	liveBuffers   map[gpu.Buffer]bool
	liveArrays    map[gpu.VertexArray]bool
	shaderStage   map[gpu.Shader]gpu.ShaderStage
	deleteCounts  map[string]int
	boundArray    gpu.VertexArray
	boundBuffer   gpu.Buffer
	activeProgram gpu.Program
}

// New creates a device that exposes the given uniforms, numbered in order.
func New(uniforms ...string) *Device {
	d := &Device{
		Uniforms:     make(map[string]gpu.UniformLocation),
		FailCompile:  make(map[gpu.ShaderStage]bool),
		Floats:       make(map[gpu.UniformLocation]float32),
		Ints:         make(map[gpu.UniformLocation]int32),
		Vec3s:        make(map[gpu.UniformLocation][3]float32),
		Matrices:     make(map[gpu.UniformLocation][16]float32),
		Arrays:       make(map[gpu.UniformLocation][]float32),
		liveShaders:  make(map[gpu.Shader]bool),
		livePrograms: make(map[gpu.Program]bool),
		liveBuffers:  make(map[gpu.Buffer]bool),
		liveArrays:   make(map[gpu.VertexArray]bool),
		shaderStage:  make(map[gpu.Shader]gpu.ShaderStage),
		deleteCounts: make(map[string]int),
	}
	for i, name := range uniforms {
		d.Uniforms[name] = gpu.UniformLocation(i)
	}
	return d
}

func (d *Device) id() uint32 {
	d.next++
	return d.next
}

func (d *Device) record(format string, args ...any) {
	d.Calls = append(d.Calls, fmt.Sprintf(format, args...))
}

// Live returns the number of objects created and not yet deleted.
func (d *Device) Live() int {
	return len(d.liveShaders) + len(d.livePrograms) + len(d.liveBuffers) + len(d.liveArrays)
}

// LiveShaders returns the number of shader objects not yet deleted.
func (d *Device) LiveShaders() int {
	return len(d.liveShaders)
}

// DeleteCount returns how many times a delete call of the given kind
// ("shader", "program", "buffer", "vertex array") was issued.
func (d *Device) DeleteCount(kind string) int {
	return d.deleteCounts[kind]
}

// Index returns the position of the first recorded call equal to call, or -1.
func (d *Device) Index(call string) int {
	for i, c := range d.Calls {
		if c == call {
			return i
		}
	}
	return -1
}

func (d *Device) CreateShader(stage gpu.ShaderStage) gpu.Shader {
	s := gpu.Shader(d.id())
	d.liveShaders[s] = true
	d.shaderStage[s] = stage
	d.record("CreateShader %s", stage)
	return s
}

func (d *Device) CompileShader(s gpu.Shader, source string) (bool, string) {
	stage := d.shaderStage[s]
	d.record("CompileShader %s", stage)
	if d.FailCompile[stage] {
		return false, d.CompileLog
	}
	return true, ""
}

func (d *Device) DeleteShader(s gpu.Shader) {
	d.record("DeleteShader %s", d.shaderStage[s])
	d.deleteCounts["shader"]++
	delete(d.liveShaders, s)
}

func (d *Device) CreateProgram() gpu.Program {
	p := gpu.Program(d.id())
	d.livePrograms[p] = true
	d.record("CreateProgram")
	return p
}

func (d *Device) AttachShader(p gpu.Program, s gpu.Shader) {
	d.record("AttachShader %s", d.shaderStage[s])
}

func (d *Device) DetachShader(p gpu.Program, s gpu.Shader) {
	d.record("DetachShader %s", d.shaderStage[s])
}

func (d *Device) LinkProgram(p gpu.Program) (bool, string) {
	d.record("LinkProgram")
	if d.FailLink {
		return false, d.LinkLog
	}
	return true, ""
}

func (d *Device) UseProgram(p gpu.Program) {
	d.activeProgram = p
	d.record("UseProgram")
}

func (d *Device) DeleteProgram(p gpu.Program) {
	d.record("DeleteProgram")
	d.deleteCounts["program"]++
	delete(d.livePrograms, p)
}

func (d *Device) UniformLocation(p gpu.Program, name string) gpu.UniformLocation {
	d.record("UniformLocation %s", name)
	if loc, ok := d.Uniforms[name]; ok {
		return loc
	}
	return gpu.NoUniform
}

func (d *Device) Uniform1f(l gpu.UniformLocation, v float32) {
	d.record("Uniform1f %d", l)
	d.Floats[l] = v
}

func (d *Device) Uniform1i(l gpu.UniformLocation, v int32) {
	d.record("Uniform1i %d", l)
	d.Ints[l] = v
}

func (d *Device) Uniform3f(l gpu.UniformLocation, x, y, z float32) {
	d.record("Uniform3f %d", l)
	d.Vec3s[l] = [3]float32{x, y, z}
}

func (d *Device) UniformMatrix4(l gpu.UniformLocation, m [16]float32) {
	d.record("UniformMatrix4 %d", l)
	d.Matrices[l] = m
}

func (d *Device) Uniform1fv(l gpu.UniformLocation, v []float32) {
	d.record("Uniform1fv %d", l)
	d.Arrays[l] = append([]float32(nil), v...)
}

func (d *Device) CreateBuffer() gpu.Buffer {
	b := gpu.Buffer(d.id())
	d.liveBuffers[b] = true
	d.record("CreateBuffer")
	return b
}

func (d *Device) BindArrayBuffer(b gpu.Buffer) {
	d.boundBuffer = b
	if b == 0 {
		d.record("UnbindArrayBuffer")
		return
	}
	d.record("BindArrayBuffer")
}

func (d *Device) StaticArrayBufferData(data []byte) {
	d.record("StaticArrayBufferData %d", len(data))
	if d.boundBuffer == 0 {
		panic("gputest: buffer data uploaded with no array buffer bound")
	}
	d.BufferData = append([]byte(nil), data...)
}

func (d *Device) DeleteBuffer(b gpu.Buffer) {
	d.record("DeleteBuffer")
	d.deleteCounts["buffer"]++
	delete(d.liveBuffers, b)
}

func (d *Device) CreateVertexArray() gpu.VertexArray {
	v := gpu.VertexArray(d.id())
	d.liveArrays[v] = true
	d.record("CreateVertexArray")
	return v
}

func (d *Device) BindVertexArray(v gpu.VertexArray) {
	d.boundArray = v
	if v == 0 {
		d.record("UnbindVertexArray")
		return
	}
	d.record("BindVertexArray")
}

func (d *Device) VertexAttribFloats(index uint32, size int32, stride int32, offset int) {
	d.record("VertexAttribFloats %d %d %d %d", index, size, stride, offset)
	if d.boundArray == 0 || d.boundBuffer == 0 {
		panic("gputest: vertex attribute configured without bound vertex array and buffer")
	}
}

func (d *Device) DeleteVertexArray(v gpu.VertexArray) {
	d.record("DeleteVertexArray")
	d.deleteCounts["vertex array"]++
	delete(d.liveArrays, v)
}

func (d *Device) EnableBackFaceCulling() {
	d.record("EnableBackFaceCulling")
}

func (d *Device) Viewport(width, height int32) {
	d.record("Viewport %d %d", width, height)
}

func (d *Device) ClearColor(r, g, b, a float32) {
	d.record("ClearColor")
}

func (d *Device) ClearColorBuffer() {
	d.record("ClearColorBuffer")
}

func (d *Device) DrawTriangles(first, count int32) {
	d.record("DrawTriangles %d %d", first, count)
	if d.activeProgram == 0 || d.boundArray == 0 {
		panic("gputest: draw with no active program or vertex array")
	}
	d.Draws = append(d.Draws, count)
}

// ReadPixels returns a buffer whose bytes count up from zero, so tests can
// tell rows apart.
func (d *Device) ReadPixels(width, height int32) []byte {
	d.record("ReadPixels %d %d", width, height)
	pixels := make([]byte, int(width)*int(height)*4)
	for i := range pixels {
		pixels[i] = byte(i)
	}
	return pixels
}

var _ gpu.Device = (*Device)(nil)
