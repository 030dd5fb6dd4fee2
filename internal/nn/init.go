package nn

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Uniform fills a new rows×cols matrix with independent values drawn
// from U[lo, hi).
//
// Parameters:
//   - rows, cols: Shape of the matrix
//   - lo, hi: Bounds of the distribution
//   - src: Random source; nil draws from the global math/rand/v2 generator
//
// Returns the initialized matrix.
func Uniform(rows, cols int, lo, hi float64, src rand.Source) *mat.Dense {
	dist := distuv.Uniform{Min: lo, Max: hi, Src: src}

	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = dist.Rand()
	}
	return mat.NewDense(rows, cols, data)
}

// Zeros creates a zero vector of length n.
//
// This is used for bias initialization.
func Zeros(n int) *mat.VecDense {
	return mat.NewVecDense(n, nil)
}

// Ones creates a vector of length n filled with ones.
func Ones(n int) *mat.VecDense {
	data := make([]float64, n)
	for i := range data {
		data[i] = 1
	}
	return mat.NewVecDense(n, data)
}

// NewSource returns a PCG source seeded with seed.
//
// Tests and the trainer use it to make weight initialization reproducible.
func NewSource(seed uint64) rand.Source {
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
}
