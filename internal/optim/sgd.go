package optim

import "gonum.org/v1/gonum/mat"

// DefaultLR is the learning rate used when SGDConfig.LR is zero.
const DefaultLR = 0.1

// SGD implements plain Stochastic Gradient Descent.
//
// Update rule:
//
//	param = param - lr * gradient
//
// Applied after every single example (online learning); there is no
// momentum or batching.
//
// Example:
//
//	sgd := optim.NewSGD(optim.SGDConfig{LR: 0.01})
//	sgd.Step(weights, weightGrad)
//	sgd.StepVec(bias, biasGrad)
type SGD struct {
	lr float64
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR float64 // Learning rate (default: 0.1)
}

// NewSGD creates a new SGD optimizer.
//
// A zero LR selects DefaultLR.
func NewSGD(config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = DefaultLR
	}
	return &SGD{lr: config.LR}
}

// Step performs param -= lr * grad on a matrix in place.
//
// Panics (from gonum) if the shapes differ.
func (s *SGD) Step(param *mat.Dense, grad mat.Matrix) {
	var scaled mat.Dense
	scaled.Scale(s.lr, grad)
	param.Sub(param, &scaled)
}

// StepVec performs param -= lr * grad on a vector in place.
func (s *SGD) StepVec(param *mat.VecDense, grad mat.Vector) {
	param.AddScaledVec(param, -s.lr, grad)
}

// GetLR returns the current learning rate.
func (s *SGD) GetLR() float64 {
	return s.lr
}

// SetLR updates the learning rate.
//
// Useful for learning rate scheduling during training.
func (s *SGD) SetLR(lr float64) {
	s.lr = lr
}
