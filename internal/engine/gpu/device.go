// Package gpu abstracts the OpenGL calls used by the water pipeline.
//
// OpenGL keeps the bound buffer, bound vertex array and active program as
// hidden global state. Device makes every object an explicit typed handle so
// callers in shader and renderer can encode the required call order.
package gpu

// ShaderStage selects the pipeline stage a shader object is compiled for.
type ShaderStage int

const (
	VertexStage ShaderStage = iota
	FragmentStage
)

// String returns the stage name used in diagnostics.
func (s ShaderStage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	default:
		return "unknown"
	}
}

// Object handles. Zero is never a valid object.
type (
	Shader      uint32
	Program     uint32
	Buffer      uint32
	VertexArray uint32
)

// UniformLocation is a shader-assigned uniform slot.
type UniformLocation int32

// NoUniform is the location of a uniform the linked program does not use.
const NoUniform UniformLocation = -1

// Valid reports whether writes to the location reach the program.
func (l UniformLocation) Valid() bool {
	return l >= 0
}

// Device is the subset of OpenGL the viewer needs.
// Implementations must be used from the thread owning the GL context.
type Device interface {
	CreateShader(stage ShaderStage) Shader
	CompileShader(s Shader, source string) (ok bool, log string)
	DeleteShader(s Shader)

	CreateProgram() Program
	AttachShader(p Program, s Shader)
	DetachShader(p Program, s Shader)
	LinkProgram(p Program) (ok bool, log string)
	UseProgram(p Program)
	DeleteProgram(p Program)
	UniformLocation(p Program, name string) UniformLocation

	Uniform1f(l UniformLocation, v float32)
	Uniform1i(l UniformLocation, v int32)
	Uniform3f(l UniformLocation, x, y, z float32)
	UniformMatrix4(l UniformLocation, m [16]float32)
	Uniform1fv(l UniformLocation, v []float32)

	CreateBuffer() Buffer
	BindArrayBuffer(b Buffer)
	StaticArrayBufferData(data []byte)
	DeleteBuffer(b Buffer)

	CreateVertexArray() VertexArray
	BindVertexArray(v VertexArray)
	VertexAttribFloats(index uint32, size int32, stride int32, offset int)
	DeleteVertexArray(v VertexArray)

	EnableBackFaceCulling()
	Viewport(width, height int32)
	ClearColor(r, g, b, a float32)
	ClearColorBuffer()
	DrawTriangles(first, count int32)

	// ReadPixels returns the RGBA bytes of the back buffer, bottom row first.
	ReadPixels(width, height int32) []byte
}
