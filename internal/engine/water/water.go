// Package water provides water surface geometry.
package water

// FloatsPerVertex is the number of floats describing one grid vertex (x, y).
const FloatsPerVertex = 2

// VerticesPerCell is the vertex count of one grid cell: two triangles.
const VerticesPerCell = 6

// MaxSize is the largest grid whose vertex count fits the int32 draw count.
const MaxSize = 18918

// Grid holds the flat water surface ready for GPU upload.
// The shader displaces it along Z.
type Grid struct {
	Vertices    []float32 // Flat array: x,y for each vertex
	VertexCount int32     // Vertices passed to the draw call
	Size        uint32    // Cells per side
	Scale       float32   // World size of one cell
}

// BuildGrid creates size×size square cells of side scale, starting at the
// origin and growing along +X and +Y. Each cell is split into two
// counter-clockwise triangles so the surface survives back-face culling when
// seen from above. size must not exceed MaxSize.
func BuildGrid(size uint32, scale float32) *Grid {
	cells := int(size) * int(size)
	vertices := make([]float32, 0, cells*VerticesPerCell*FloatsPerVertex)

	for i := uint32(0); i < size; i++ {
		for j := uint32(0); j < size; j++ {
			// Corner with the lowest coordinates
			x0 := float32(j) * scale
			y0 := float32(i) * scale
			x1 := x0 + scale
			y1 := y0 + scale

			vertices = append(vertices,
				x0, y0, x1, y0, x0, y1, // First triangle
				x0, y1, x1, y0, x1, y1, // Second triangle
			)
		}
	}

	return &Grid{
		Vertices:    vertices,
		VertexCount: int32(len(vertices) / FloatsPerVertex),
		Size:        size,
		Scale:       scale,
	}
}

// Extent returns the world size of one side of the grid.
func (g *Grid) Extent() float32 {
	return float32(g.Size) * g.Scale
}
