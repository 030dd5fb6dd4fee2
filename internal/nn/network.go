package nn

import (
	"math/rand/v2"

	"github.com/born-ml/densenn/internal/optim"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Config holds configuration for a Network.
type Config struct {
	LearningRate float64     // Step size used by Learn (default: 0.1)
	Source       rand.Source // Weight initialization randomness (default: global generator)
}

// DefaultConfig returns a Config with the default learning rate.
func DefaultConfig() Config {
	return Config{LearningRate: optim.DefaultLR}
}

// LayerOption configures a layer passed to AddLayer.
type LayerOption func(*layerOptions)

type layerOptions struct {
	inputSize  int
	hasInput   bool
	activation Activation
}

// WithInputSize sets the input size of the layer.
//
// Required on the first layer. Later layers take their input size from the
// previous layer's output; passing a different size there is an error.
func WithInputSize(n int) LayerOption {
	return func(o *layerOptions) {
		o.inputSize = n
		o.hasInput = true
	}
}

// WithActivation sets the layer activation. Without it the layer is linear.
func WithActivation(a Activation) LayerOption {
	return func(o *layerOptions) {
		o.activation = a
	}
}

// Network is an ordered stack of Dense layers.
//
// The output size of layer i is always the input size of layer i+1.
// Layer shapes never change once added; only weights and biases move,
// and only through Learn (or explicit SetWeights/SetBias calls).
//
// Example:
//
//	net := nn.NewNetwork(nn.DefaultConfig())
//	net = nn.Must(net.AddLayer(16, nn.WithInputSize(2), nn.WithActivation(nn.Sigmoid{})))
//	net = nn.Must(net.AddLayer(16, nn.WithActivation(nn.Sigmoid{})))
//	net = nn.Must(net.AddLayer(2))
//
//	for range steps {
//	    if err := net.Learn(input, target); err != nil {
//	        return err
//	    }
//	}
//	output, err := net.Forward(input)
//
// Network performs no locking: at most one Learn may run at a time, and no
// Forward or Gradient may overlap it.
type Network struct {
	layers []*Dense
	src    rand.Source
	sgd    *optim.SGD
}

// NewNetwork creates an empty network.
//
// A zero LearningRate selects the default of 0.1.
func NewNetwork(cfg Config) *Network {
	return &Network{
		src: cfg.Source,
		sgd: optim.NewSGD(optim.SGDConfig{LR: cfg.LearningRate}),
	}
}

// Must panics if err is non-nil and returns n otherwise.
//
// It lets AddLayer calls be chained when the layer sizes are static:
//
//	net := nn.Must(nn.Must(nn.NewNetwork(cfg).AddLayer(4, nn.WithInputSize(2))).AddLayer(3))
func Must(n *Network, err error) *Network {
	if err != nil {
		panic(err)
	}
	return n
}

// AddLayer appends a Dense layer with outputSize outputs.
//
// Returns the network itself so calls can be chained.
// Returns ErrInvalidConstruction, leaving the network unchanged, if:
//   - this is the first layer and WithInputSize was not given
//   - this is a later layer and WithInputSize disagrees with the previous output size
//   - a size is not positive
func (n *Network) AddLayer(outputSize int, opts ...LayerOption) (*Network, error) {
	var o layerOptions
	for _, opt := range opts {
		opt(&o)
	}

	inputSize := o.inputSize
	if len(n.layers) == 0 {
		if !o.hasInput {
			return n, errors.Wrap(ErrInvalidConstruction, "first layer must provide an input size")
		}
	} else {
		prev := n.layers[len(n.layers)-1].OutFeatures()
		if o.hasInput && o.inputSize != prev {
			return n, errors.Wrapf(ErrInvalidConstruction,
				"layer %d: input size %d conflicts with previous output size %d",
				len(n.layers), o.inputSize, prev)
		}
		inputSize = prev
	}

	layer, err := NewDense(inputSize, outputSize, o.activation, n.src)
	if err != nil {
		return n, errors.Wrapf(err, "layer %d", len(n.layers))
	}
	n.layers = append(n.layers, layer)
	return n, nil
}

// Forward runs input through every layer and returns the final output.
//
// Only each layer's activated output is kept; nothing is cached and
// nothing is mutated.
func (n *Network) Forward(input mat.Vector) (*mat.VecDense, error) {
	if err := n.checkInput(input); err != nil {
		return nil, err
	}

	var output *mat.VecDense
	prev := input
	for _, layer := range n.layers {
		output, _ = layer.Eval(prev)
		prev = output
	}
	return output, nil
}

// Gradient computes the loss gradients for one (input, target) pair.
//
// Returns one weight gradient per layer (same shape as that layer's
// weights) and one bias gradient per layer, indexed like the layers.
//
// The loss is (1/S) * Σ(output - target)² with S the number of layers,
// so the output-layer delta is scaled by 2/S. The scale uses the layer
// count rather than the output size, which effectively lowers the step
// size for deeper networks. Existing learning rates are tuned against it.
func (n *Network) Gradient(input, target mat.Vector) ([]*mat.Dense, []*mat.VecDense, error) {
	if err := n.checkInput(input); err != nil {
		return nil, nil, err
	}
	if err := n.checkTarget(target); err != nil {
		return nil, nil, err
	}

	numLayers := len(n.layers)

	// Forward pass, keeping every z and f(z).
	zs := make([]*mat.VecDense, numLayers)
	fzs := make([]*mat.VecDense, numLayers)
	prev := input
	for s, layer := range n.layers {
		fzs[s], zs[s] = layer.Eval(prev)
		prev = fzs[s]
	}

	// Output layer: delta = (2/S) * (f(z) - target) ⊙ f'(z)
	last := numLayers - 1
	deltas := make([]*mat.VecDense, numLayers)
	delta := mat.NewVecDense(n.layers[last].OutFeatures(), nil)
	delta.SubVec(fzs[last], target)
	delta.MulElemVec(delta, n.layers[last].EvalDerivZ(zs[last]))
	delta.ScaleVec(2/float64(numLayers), delta)
	deltas[last] = delta

	// Hidden layers: delta_s = (W_{s+1} · delta_{s+1}) ⊙ f'(z_s)
	for s := last - 1; s >= 0; s-- {
		d := mat.NewVecDense(n.layers[s].OutFeatures(), nil)
		d.MulVec(n.layers[s+1].weights, deltas[s+1])
		d.MulElemVec(d, n.layers[s].EvalDerivZ(zs[s]))
		deltas[s] = d
	}

	// Weight gradient is the outer product of the layer input and its delta.
	wGrads := make([]*mat.Dense, numLayers)
	for s := range n.layers {
		in := input
		if s > 0 {
			in = fzs[s-1]
		}
		g := &mat.Dense{}
		g.Outer(1, in, deltas[s])
		wGrads[s] = g
	}

	// ∂z/∂b is the identity, so the deltas double as bias gradients.
	return wGrads, deltas, nil
}

// Learn performs one gradient-descent step on a single example.
//
// Every layer is updated in place:
//
//	weights -= lr * weightGradient
//	bias    -= lr * biasGradient
func (n *Network) Learn(input, target mat.Vector) error {
	wGrads, bGrads, err := n.Gradient(input, target)
	if err != nil {
		return err
	}

	for s, layer := range n.layers {
		n.sgd.Step(layer.weights, wGrads[s])
		n.sgd.StepVec(layer.bias, bGrads[s])
	}
	return nil
}

// Loss computes (1/S) * Σ(Forward(input) - target)², the quantity whose
// gradient Gradient returns.
func (n *Network) Loss(input, target mat.Vector) (float64, error) {
	if err := n.checkTarget(target); err != nil {
		return 0, err
	}
	output, err := n.Forward(input)
	if err != nil {
		return 0, err
	}
	return SquaredError(output, target) / float64(len(n.layers)), nil
}

// Len returns the number of layers.
func (n *Network) Len() int {
	return len(n.layers)
}

// Layer returns the layer at the given index.
//
// The layer is still owned by the network: SetWeights and SetBias on it
// change the network, and must not overlap Learn.
//
// Panics if index is out of bounds.
func (n *Network) Layer(index int) *Dense {
	if index < 0 || index >= len(n.layers) {
		panic("Network.Layer: index out of bounds")
	}
	return n.layers[index]
}

// InFeatures returns the input size of the first layer, or 0 when empty.
func (n *Network) InFeatures() int {
	if len(n.layers) == 0 {
		return 0
	}
	return n.layers[0].InFeatures()
}

// OutFeatures returns the output size of the last layer, or 0 when empty.
func (n *Network) OutFeatures() int {
	if len(n.layers) == 0 {
		return 0
	}
	return n.layers[len(n.layers)-1].OutFeatures()
}

// LearningRate returns the step size used by Learn.
func (n *Network) LearningRate() float64 {
	return n.sgd.GetLR()
}

// SetLearningRate updates the step size used by Learn.
func (n *Network) SetLearningRate(lr float64) {
	n.sgd.SetLR(lr)
}

func (n *Network) checkInput(input mat.Vector) error {
	if len(n.layers) == 0 {
		return ErrEmptyNetwork
	}
	if input.Len() != n.InFeatures() {
		return errors.Wrapf(ErrShapeMismatch, "input: expected length %d, got %d",
			n.InFeatures(), input.Len())
	}
	return nil
}

func (n *Network) checkTarget(target mat.Vector) error {
	if len(n.layers) == 0 {
		return ErrEmptyNetwork
	}
	if target.Len() != n.OutFeatures() {
		return errors.Wrapf(ErrShapeMismatch, "target: expected length %d, got %d",
			n.OutFeatures(), target.Len())
	}
	return nil
}
