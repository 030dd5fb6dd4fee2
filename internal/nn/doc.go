// Package nn implements a dense feed-forward network trained by online
// gradient descent.
//
// This package provides:
//   - Activation interface: Identity, Sigmoid, Tanh, ReLU, or user-supplied
//   - Dense: Fully connected layer with optional activation
//   - Network: Ordered stack of Dense layers with Forward, Gradient and Learn
//   - Initialization: Uniform, Zeros, Ones
//
// Vectors and matrices are gonum mat types. Everything is synchronous;
// a Network must not be read while Learn is running on it.
package nn
