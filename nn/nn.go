// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand/v2"

	"github.com/born-ml/densenn/internal/nn"
	"gonum.org/v1/gonum/mat"
)

// Errors

var (
	// ErrInvalidConstruction is returned when a layer cannot be added.
	ErrInvalidConstruction = nn.ErrInvalidConstruction

	// ErrEmptyNetwork is returned when an operation needs at least one layer.
	ErrEmptyNetwork = nn.ErrEmptyNetwork

	// ErrShapeMismatch is returned when a vector or matrix has the wrong size.
	ErrShapeMismatch = nn.ErrShapeMismatch
)

// Activations

// Activation is an element-wise nonlinearity with its derivative.
type Activation = nn.Activation

// Identity is the pass-through activation.
type Identity = nn.Identity

// Sigmoid is the logistic activation.
type Sigmoid = nn.Sigmoid

// Tanh is the hyperbolic tangent activation.
type Tanh = nn.Tanh

// ReLU is the rectified linear activation.
type ReLU = nn.ReLU

// Layers

// Dense represents a fully connected layer with an optional activation.
type Dense = nn.Dense

// NewDense creates a standalone Dense layer with weights drawn from U[-1, 1).
//
// Example:
//
//	layer, err := nn.NewDense(2, 16, nn.Sigmoid{}, nil)
func NewDense(inFeatures, outFeatures int, activation Activation, src rand.Source) (*Dense, error) {
	return nn.NewDense(inFeatures, outFeatures, activation, src)
}

// Network

// Network is an ordered stack of Dense layers trained by online gradient descent.
type Network = nn.Network

// Config holds configuration for a Network.
type Config = nn.Config

// LayerOption configures a layer passed to Network.AddLayer.
type LayerOption = nn.LayerOption

// DefaultConfig returns a Config with the default learning rate of 0.1.
func DefaultConfig() Config {
	return nn.DefaultConfig()
}

// NewNetwork creates an empty network.
//
// Example:
//
//	net := nn.NewNetwork(nn.Config{LearningRate: 0.05})
//	if _, err := net.AddLayer(16, nn.WithInputSize(2), nn.WithActivation(nn.Sigmoid{})); err != nil {
//	    return err
//	}
func NewNetwork(cfg Config) *Network {
	return nn.NewNetwork(cfg)
}

// Must panics if err is non-nil and returns n otherwise.
func Must(n *Network, err error) *Network {
	return nn.Must(n, err)
}

// WithInputSize sets the input size of the first layer.
func WithInputSize(n int) LayerOption {
	return nn.WithInputSize(n)
}

// WithActivation sets the activation of a layer.
func WithActivation(a Activation) LayerOption {
	return nn.WithActivation(a)
}

// Utilities

// NewSource returns a seeded random source for reproducible initialization.
func NewSource(seed uint64) rand.Source {
	return nn.NewSource(seed)
}

// SquaredError computes Σ(output - target)².
func SquaredError(output, target mat.Vector) float64 {
	return nn.SquaredError(output, target)
}
