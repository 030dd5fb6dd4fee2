// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the gradient-descent update step.
//
// # Overview
//
// This package contains:
//   - SGD: plain Stochastic Gradient Descent (param -= lr * grad)
//   - Optimizer interface for update rules
//
// nn.Network.Learn already applies SGD internally. Use this package
// directly when working with the gradients returned by Network.Gradient.
//
// # Basic Usage
//
//	sgd := optim.NewSGD(optim.SGDConfig{LR: 0.01})
//
//	wGrads, bGrads, err := net.Gradient(input, target)
//	if err != nil {
//	    return err
//	}
//	for i := range wGrads {
//	    sgd.Step(myWeights[i], wGrads[i])
//	    sgd.StepVec(myBiases[i], bGrads[i])
//	}
package optim
