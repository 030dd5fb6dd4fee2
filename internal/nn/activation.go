package nn

import "math"

// Activation is an element-wise nonlinearity applied to a layer's
// pre-activation values.
//
// Derivative is taken with respect to the pre-activation z, not the
// activated output. Implementations must be pure: the network calls both
// methods once per output component on every forward and backward pass.
//
// A nil Activation on a layer means identity: f(z) = z, f'(z) = 1.
//
// Example (user-supplied activation):
//
//	type softplus struct{}
//
//	func (softplus) Activate(z float64) float64   { return math.Log1p(math.Exp(z)) }
//	func (softplus) Derivative(z float64) float64 { return 1 / (1 + math.Exp(-z)) }
//
//	net.AddLayer(8, nn.WithInputSize(2), nn.WithActivation(softplus{}))
type Activation interface {
	// Activate computes f(z).
	Activate(z float64) float64

	// Derivative computes f'(z).
	Derivative(z float64) float64
}

// Identity is the pass-through activation: f(z) = z.
//
// Using Identity is equivalent to leaving the layer's activation unset.
type Identity struct{}

// Activate returns z unchanged.
func (Identity) Activate(z float64) float64 { return z }

// Derivative returns 1.
func (Identity) Derivative(float64) float64 { return 1 }

// Sigmoid is the logistic activation: σ(z) = 1 / (1 + exp(-z)).
//
// Sigmoid squashes values to the range (0, 1).
type Sigmoid struct{}

// Activate computes σ(z).
func (Sigmoid) Activate(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

// Derivative computes σ'(z) = σ(z) * (1 - σ(z)).
func (s Sigmoid) Derivative(z float64) float64 {
	v := s.Activate(z)
	return v * (1 - v)
}

// Tanh is the hyperbolic tangent activation.
//
// Tanh squashes values to the range (-1, 1) and is zero-centered.
type Tanh struct{}

// Activate computes tanh(z).
func (Tanh) Activate(z float64) float64 { return math.Tanh(z) }

// Derivative computes 1 - tanh²(z).
func (Tanh) Derivative(z float64) float64 {
	v := math.Tanh(z)
	return 1 - v*v
}

// ReLU is the rectified linear activation: f(z) = max(0, z).
//
// The derivative at exactly zero is taken as 0.
type ReLU struct{}

// Activate computes max(0, z).
func (ReLU) Activate(z float64) float64 {
	if z > 0 {
		return z
	}
	return 0
}

// Derivative returns 1 for z > 0 and 0 otherwise.
func (ReLU) Derivative(z float64) float64 {
	if z > 0 {
		return 1
	}
	return 0
}
