package renderer

import (
	"github.com/Faultbox/watersim/internal/engine/gpu"
	"github.com/Faultbox/watersim/internal/engine/water"
)

// Mesh is a vertex array with its single static vertex buffer.
type Mesh struct {
	vao   gpu.VertexArray
	vbo   gpu.Buffer
	count int32
}

// UploadGrid uploads grid vertices once as a static buffer with one
// attribute: location 0, two tightly packed floats.
func UploadGrid(dev gpu.Device, grid *water.Grid) Mesh {
	m := Mesh{count: grid.VertexCount}

	// The attribute pointer is captured by the VAO bound at the time of
	// the call, so both objects are bound before configuring it.
	m.vao = dev.CreateVertexArray()
	dev.BindVertexArray(m.vao)

	m.vbo = dev.CreateBuffer()
	dev.BindArrayBuffer(m.vbo)
	dev.StaticArrayBufferData(gpu.Float32Bytes(grid.Vertices))

	dev.VertexAttribFloats(0, water.FloatsPerVertex, water.FloatsPerVertex*gpu.Float32Size, 0)

	dev.BindVertexArray(0)
	dev.BindArrayBuffer(0)

	return m
}

func (m Mesh) draw(dev gpu.Device) {
	dev.BindVertexArray(m.vao)
	dev.DrawTriangles(0, m.count)
	dev.BindVertexArray(0)
}

func (m Mesh) delete(dev gpu.Device) {
	dev.DeleteVertexArray(m.vao)
	dev.DeleteBuffer(m.vbo)
}
