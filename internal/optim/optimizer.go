// Package optim implements the parameter update step for training dense networks.
//
// This package provides:
//   - Optimizer interface: Base interface for update rules
//   - SGD: Plain stochastic gradient descent
//
// Updates operate in place on gonum matrices and vectors owned by the caller.
//
// Example usage:
//
//	sgd := optim.NewSGD(optim.SGDConfig{LR: 0.1})
//
//	wGrads, bGrads, err := net.Gradient(input, target)
//	...
//	sgd.Step(weights, wGrads[i])
//	sgd.StepVec(bias, bGrads[i])
package optim

import "gonum.org/v1/gonum/mat"

// Optimizer is the base interface for update rules.
//
// Implementations update parameters in place given their gradients.
type Optimizer interface {
	// Step applies an update to a weight matrix.
	Step(param *mat.Dense, grad mat.Matrix)

	// StepVec applies an update to a bias vector.
	StepVec(param *mat.VecDense, grad mat.Vector)

	// GetLR returns the current learning rate.
	GetLR() float64
}

// Config is the base configuration for all optimizers.
type Config struct {
	LR float64 // Learning rate
}
