package nn

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// SquaredError computes Σ(output - target)².
//
// Network.Loss divides this by the layer count; the trainer reports it
// as-is per example.
//
// Panics if the lengths differ.
func SquaredError(output, target mat.Vector) float64 {
	if output.Len() != target.Len() {
		panic(fmt.Sprintf("SquaredError: length mismatch %d != %d", output.Len(), target.Len()))
	}

	diff := mat.NewVecDense(output.Len(), nil)
	diff.SubVec(output, target)
	return mat.Dot(diff, diff)
}
