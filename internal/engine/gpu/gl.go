package gpu

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/watersim/internal/logger"
)

// glDevice forwards to the go-gl bindings of the current context.
type glDevice struct{}

// NewGL loads the OpenGL entry points for the current context.
// IMPORTANT: Must be called AFTER the window has made its context current!
func NewGL() (Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	return glDevice{}, nil
}

func (glDevice) CreateShader(stage ShaderStage) Shader {
	kind := uint32(gl.VERTEX_SHADER)
	if stage == FragmentStage {
		kind = gl.FRAGMENT_SHADER
	}
	return Shader(gl.CreateShader(kind))
}

func (glDevice) CompileShader(s Shader, source string) (bool, string) {
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(uint32(s), 1, csource, nil)
	free()
	gl.CompileShader(uint32(s))

	var status int32
	gl.GetShaderiv(uint32(s), gl.COMPILE_STATUS, &status)
	if status == gl.TRUE {
		return true, ""
	}

	var logLen int32
	gl.GetShaderiv(uint32(s), gl.INFO_LOG_LENGTH, &logLen)
	return false, infoLog(logLen, func(buf *uint8) {
		gl.GetShaderInfoLog(uint32(s), logLen, nil, buf)
	})
}

func (glDevice) DeleteShader(s Shader) {
	gl.DeleteShader(uint32(s))
}

func (glDevice) CreateProgram() Program {
	return Program(gl.CreateProgram())
}

func (glDevice) AttachShader(p Program, s Shader) {
	gl.AttachShader(uint32(p), uint32(s))
}

func (glDevice) DetachShader(p Program, s Shader) {
	gl.DetachShader(uint32(p), uint32(s))
}

func (glDevice) LinkProgram(p Program) (bool, string) {
	gl.LinkProgram(uint32(p))

	var status int32
	gl.GetProgramiv(uint32(p), gl.LINK_STATUS, &status)
	if status == gl.TRUE {
		return true, ""
	}

	var logLen int32
	gl.GetProgramiv(uint32(p), gl.INFO_LOG_LENGTH, &logLen)
	return false, infoLog(logLen, func(buf *uint8) {
		gl.GetProgramInfoLog(uint32(p), logLen, nil, buf)
	})
}

func (glDevice) UseProgram(p Program) {
	gl.UseProgram(uint32(p))
}

func (glDevice) DeleteProgram(p Program) {
	gl.DeleteProgram(uint32(p))
}

func (glDevice) UniformLocation(p Program, name string) UniformLocation {
	return UniformLocation(gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00")))
}

func (glDevice) Uniform1f(l UniformLocation, v float32) {
	gl.Uniform1f(int32(l), v)
}

func (glDevice) Uniform1i(l UniformLocation, v int32) {
	gl.Uniform1i(int32(l), v)
}

func (glDevice) Uniform3f(l UniformLocation, x, y, z float32) {
	gl.Uniform3f(int32(l), x, y, z)
}

func (glDevice) UniformMatrix4(l UniformLocation, m [16]float32) {
	gl.UniformMatrix4fv(int32(l), 1, false, &m[0])
}

func (glDevice) Uniform1fv(l UniformLocation, v []float32) {
	if len(v) == 0 {
		return
	}
	gl.Uniform1fv(int32(l), int32(len(v)), &v[0])
}

func (glDevice) CreateBuffer() Buffer {
	var b uint32
	gl.GenBuffers(1, &b)
	return Buffer(b)
}

func (glDevice) BindArrayBuffer(b Buffer) {
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(b))
}

func (glDevice) StaticArrayBufferData(data []byte) {
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data), gl.Ptr(data), gl.STATIC_DRAW)
}

func (glDevice) DeleteBuffer(b Buffer) {
	id := uint32(b)
	gl.DeleteBuffers(1, &id)
}

func (glDevice) CreateVertexArray() VertexArray {
	var v uint32
	gl.GenVertexArrays(1, &v)
	return VertexArray(v)
}

func (glDevice) BindVertexArray(v VertexArray) {
	gl.BindVertexArray(uint32(v))
}

func (glDevice) VertexAttribFloats(index uint32, size int32, stride int32, offset int) {
	gl.EnableVertexAttribArray(index)
	gl.VertexAttribPointerWithOffset(index, size, gl.FLOAT, false, stride, uintptr(offset))
}

func (glDevice) DeleteVertexArray(v VertexArray) {
	id := uint32(v)
	gl.DeleteVertexArrays(1, &id)
}

func (glDevice) EnableBackFaceCulling() {
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
}

func (glDevice) Viewport(width, height int32) {
	gl.Viewport(0, 0, width, height)
}

func (glDevice) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (glDevice) ClearColorBuffer() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (glDevice) DrawTriangles(first, count int32) {
	gl.DrawArrays(gl.TRIANGLES, first, count)
}

func (glDevice) ReadPixels(width, height int32) []byte {
	pixels := make([]byte, int(width)*int(height)*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, width, height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}

// infoLog reads a NUL-terminated GL info log of logLen bytes.
func infoLog(logLen int32, read func(buf *uint8)) string {
	if logLen <= 0 {
		return "(no info log)"
	}
	buf := make([]byte, logLen)
	read(&buf[0])
	return strings.TrimRight(string(buf), "\x00")
}
