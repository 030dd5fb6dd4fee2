// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides a dense feed-forward network trained one example at a time.
//
// # Overview
//
// This package contains:
//   - Layers: Dense (fully connected, optional activation)
//   - Activations: Identity, Sigmoid, Tanh, ReLU, or any type implementing Activation
//   - Network: incremental builder with Forward, Gradient, Learn and Loss
//   - Errors: ErrInvalidConstruction, ErrEmptyNetwork, ErrShapeMismatch
//
// Vectors and matrices are gonum.org/v1/gonum/mat types.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/densenn/nn"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    net := nn.NewNetwork(nn.DefaultConfig())
//	    net = nn.Must(net.AddLayer(16, nn.WithInputSize(2), nn.WithActivation(nn.Sigmoid{})))
//	    net = nn.Must(net.AddLayer(16, nn.WithActivation(nn.Sigmoid{})))
//	    net = nn.Must(net.AddLayer(2))
//
//	    input := mat.NewVecDense(2, []float64{0.5, -0.25})
//	    target := mat.NewVecDense(2, []float64{0.125, -0.5})
//	    if err := net.Learn(input, target); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    output, _ := net.Forward(input)
//	}
//
// # Building
//
// The first layer must be given an input size; every later layer takes its
// input size from the previous layer's output:
//
//	net.AddLayer(4, nn.WithInputSize(2)) // weights 2x4
//	net.AddLayer(3)                      // weights 4x3
//
// Omitting the input size on the first layer returns ErrInvalidConstruction.
//
// # Training
//
// Learn performs one gradient-descent step on a single example. Gradient
// exposes the per-layer weight and bias gradients without applying them.
// The loss being minimized is (1/S) * Σ(output - target)² where S is the
// number of layers.
//
// # Concurrency
//
// A Network does no locking. Forward and Gradient only read; Learn writes
// every layer. Callers must not run anything concurrently with Learn.
package nn
