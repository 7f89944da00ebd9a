// Package waves synthesizes the parameters of a sum of traveling sine waves.
//
// A Set is generated once at startup from a seed and uploaded verbatim to the
// water shader as the uniform arrays a, b, c and d.
package waves

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

// DefaultSeed is used when the configuration does not name a seed.
const DefaultSeed uint64 = 0x5eed

// MaxAmplitude is the exclusive upper bound of a wave amplitude.
const MaxAmplitude float32 = 0.1

// ErrLengthMismatch is returned by Validate when the sequences differ in length.
var ErrLengthMismatch = errors.New("wave parameter sequences differ in length")

// Set holds four parallel sequences describing num_params waves.
//
//	height(x, y, t) = sum_i A[i] * sin(B[i]*x + C[i]*y + D[i]*t)
type Set struct {
	A []float32 // Amplitude in [0, MaxAmplitude)
	B []float32 // Spatial frequency along x
	C []float32 // Spatial frequency along y
	D []float32 // Phase speed, currently always 1
}

// Synthesize generates n waves deterministically from seed.
// Equal (seed, n) pairs always produce bit-identical sets; n == 0 yields
// four empty sequences.
func Synthesize(seed uint64, n uint32) Set {
	rng := rand.New(rand.NewPCG(seed, seed))

	set := Set{
		A: make([]float32, n),
		B: make([]float32, n),
		C: make([]float32, n),
		D: make([]float32, n),
	}

	for i := range set.A {
		a := float32(float64(MaxAmplitude) * rng.Float64())
		if a >= MaxAmplitude {
			// float32 rounding can land exactly on the bound
			a = math.Nextafter32(MaxAmplitude, 0)
		}

		theta := 2 * math.Pi * rng.Float64()
		s := float64(InverseScaling(a))

		set.A[i] = a
		set.B[i] = float32(math.Sin(theta) * s)
		set.C[i] = float32(math.Cos(theta) * s)
		set.D[i] = 1.0
	}

	return set
}

// InverseScaling maps an amplitude to the length of its frequency vector.
// Flat waves get short wavelengths and tall waves get long ones.
func InverseScaling(amplitude float32) float32 {
	return 1 / (0.01 + 10*amplitude)
}

// Len returns the number of waves in the set.
func (s Set) Len() int {
	return len(s.A)
}

// Validate checks that all four sequences have the same length.
func (s Set) Validate() error {
	n := len(s.A)
	if len(s.B) != n || len(s.C) != n || len(s.D) != n {
		return fmt.Errorf("%w: a=%d b=%d c=%d d=%d", ErrLengthMismatch, n, len(s.B), len(s.C), len(s.D))
	}
	return nil
}
