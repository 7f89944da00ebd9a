package gpu

import (
	"encoding/binary"
	"math"
)

// Float32Size is the byte width of one float attribute component.
const Float32Size = 4

// Float32Bytes serializes floats in the host byte order GL expects for
// buffer uploads. The result is always exactly 4*len(v) bytes.
func Float32Bytes(v []float32) []byte {
	out := make([]byte, len(v)*Float32Size)
	for i, f := range v {
		binary.NativeEndian.PutUint32(out[i*Float32Size:], math.Float32bits(f))
	}
	return out
}
