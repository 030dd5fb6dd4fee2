package nn

import (
	"fmt"
	"math/rand/v2"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Dense implements a fully connected layer with an optional activation.
//
// Performs the transformation: f(z) where z = x · W + b
// where:
//   - x is the input row vector with length in_features
//   - W is the weight matrix with shape [in_features, out_features]
//   - b is the bias vector with length out_features
//   - f is the activation, or identity when none is set
//
// Weights are drawn from U[-1, 1) once at construction. Biases start at zero.
//
// A Dense exclusively owns its weight matrix and bias vector: accessors
// return copies and setters copy in, so no buffer is ever aliased.
type Dense struct {
	inFeatures  int
	outFeatures int
	weights     *mat.Dense    // [in_features, out_features]
	bias        *mat.VecDense // [out_features]
	activation  Activation
}

// NewDense creates a new Dense layer.
//
// Parameters:
//   - inFeatures: Number of input features
//   - outFeatures: Number of output features
//   - activation: Element-wise nonlinearity; nil means identity
//   - src: Random source for weight initialization; nil uses the global generator
//
// Returns ErrInvalidConstruction if either size is not positive.
func NewDense(inFeatures, outFeatures int, activation Activation, src rand.Source) (*Dense, error) {
	if inFeatures <= 0 || outFeatures <= 0 {
		return nil, errors.Wrapf(ErrInvalidConstruction,
			"layer sizes must be positive, got %d -> %d", inFeatures, outFeatures)
	}

	return &Dense{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weights:     Uniform(inFeatures, outFeatures, -1, 1, src),
		bias:        Zeros(outFeatures),
		activation:  activation,
	}, nil
}

// Eval computes the layer output for a single input vector.
//
// Returns both the activated output f(z) and the pre-activation z.
// Inference only needs f(z); backpropagation needs z as well.
// Without an activation the two are equal but never share storage.
//
// Panics if the input length differs from InFeatures.
func (d *Dense) Eval(input mat.Vector) (fz, z *mat.VecDense) {
	if input.Len() != d.inFeatures {
		panic(fmt.Sprintf("Dense.Eval: expected input with %d features, got %d", d.inFeatures, input.Len()))
	}

	// x · W is computed as Wᵀ · x to stay in column-vector form.
	z = mat.NewVecDense(d.outFeatures, nil)
	z.MulVec(d.weights.T(), input)
	z.AddVec(z, d.bias)

	if d.activation == nil {
		return mat.VecDenseCopyOf(z), z
	}
	return mapVec(z, d.activation.Activate), z
}

// EvalDerivZ computes f'(z) element-wise.
//
// Without an activation this is a vector of ones with the bias length.
func (d *Dense) EvalDerivZ(z mat.Vector) *mat.VecDense {
	if d.activation == nil {
		return Ones(d.outFeatures)
	}
	return mapVec(z, d.activation.Derivative)
}

// InFeatures returns the number of input features.
func (d *Dense) InFeatures() int {
	return d.inFeatures
}

// OutFeatures returns the number of output features.
func (d *Dense) OutFeatures() int {
	return d.outFeatures
}

// Activation returns the layer activation, or nil for identity.
func (d *Dense) Activation() Activation {
	return d.activation
}

// Weights returns a copy of the weight matrix.
func (d *Dense) Weights() *mat.Dense {
	return mat.DenseCopyOf(d.weights)
}

// Bias returns a copy of the bias vector.
func (d *Dense) Bias() *mat.VecDense {
	return mat.VecDenseCopyOf(d.bias)
}

// SetWeights overwrites the weights with a copy of w.
//
// Returns ErrShapeMismatch if w is not [in_features, out_features].
func (d *Dense) SetWeights(w mat.Matrix) error {
	r, c := w.Dims()
	if r != d.inFeatures || c != d.outFeatures {
		return errors.Wrapf(ErrShapeMismatch, "weights: expected %dx%d, got %dx%d",
			d.inFeatures, d.outFeatures, r, c)
	}
	d.weights.Copy(w)
	return nil
}

// SetBias overwrites the bias with a copy of b.
//
// Returns ErrShapeMismatch if b does not have out_features elements.
func (d *Dense) SetBias(b mat.Vector) error {
	if b.Len() != d.outFeatures {
		return errors.Wrapf(ErrShapeMismatch, "bias: expected length %d, got %d",
			d.outFeatures, b.Len())
	}
	d.bias.CopyVec(b)
	return nil
}

// mapVec applies f to every element of v.
func mapVec(v mat.Vector, f func(float64) float64) *mat.VecDense {
	n := v.Len()
	out := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		out.SetVec(i, f(v.AtVec(i)))
	}
	return out
}
