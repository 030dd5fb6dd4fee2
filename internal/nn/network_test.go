package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
)

func vec(values ...float64) *mat.VecDense {
	return mat.NewVecDense(len(values), values)
}

// identityNetwork builds a single linear 2->2 layer with W = I and b = 0.
func identityNetwork(t *testing.T) *Network {
	t.Helper()

	net, err := NewNetwork(DefaultConfig()).AddLayer(2, WithInputSize(2), WithActivation(Identity{}))
	require.NoError(t, err)
	require.NoError(t, net.Layer(0).SetWeights(mat.NewDense(2, 2, []float64{1, 0, 0, 1})))
	require.NoError(t, net.Layer(0).SetBias(vec(0, 0)))
	return net
}

// sigmoidNetwork builds a seeded network with sigmoid activations on every layer.
func sigmoidNetwork(t *testing.T, seed uint64, sizes ...int) *Network {
	t.Helper()

	net := NewNetwork(Config{Source: NewSource(seed)})
	_, err := net.AddLayer(sizes[1], WithInputSize(sizes[0]), WithActivation(Sigmoid{}))
	require.NoError(t, err)
	for _, size := range sizes[2:] {
		_, err = net.AddLayer(size, WithActivation(Sigmoid{}))
		require.NoError(t, err)
	}
	return net
}

// TestNetwork_FirstLayerNeedsInputSize tests the construction error.
func TestNetwork_FirstLayerNeedsInputSize(t *testing.T) {
	net := NewNetwork(DefaultConfig())

	_, err := net.AddLayer(4)
	require.ErrorIs(t, err, ErrInvalidConstruction)
	assert.Equal(t, 0, net.Len(), "failed AddLayer must not leave a layer behind")

	_, err = net.Forward(vec(1, 2))
	require.ErrorIs(t, err, ErrEmptyNetwork)

	got, err := net.AddLayer(4, WithInputSize(2))
	require.NoError(t, err)
	assert.Same(t, net, got, "AddLayer returns the network for chaining")
	assert.Equal(t, 1, net.Len())
}

// TestNetwork_ChainedInputSize tests that later layers inherit the previous output size.
func TestNetwork_ChainedInputSize(t *testing.T) {
	net := Must(Must(NewNetwork(DefaultConfig()).AddLayer(4, WithInputSize(2))).AddLayer(3))

	require.Equal(t, 2, net.Len())
	r, c := net.Layer(1).Weights().Dims()
	assert.Equal(t, 4, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, 2, net.InFeatures())
	assert.Equal(t, 3, net.OutFeatures())
}

// TestNetwork_LaterLayerInputSize tests explicit input sizes on later layers.
func TestNetwork_LaterLayerInputSize(t *testing.T) {
	net := Must(NewNetwork(DefaultConfig()).AddLayer(4, WithInputSize(2)))

	_, err := net.AddLayer(3, WithInputSize(5))
	require.ErrorIs(t, err, ErrInvalidConstruction)
	assert.Equal(t, 1, net.Len())

	// Restating the inherited size is harmless.
	_, err = net.AddLayer(3, WithInputSize(4))
	require.NoError(t, err)
	assert.Equal(t, 4, net.Layer(1).InFeatures())
}

// TestNetwork_NonPositiveSize tests size validation through AddLayer.
func TestNetwork_NonPositiveSize(t *testing.T) {
	net := NewNetwork(DefaultConfig())

	_, err := net.AddLayer(0, WithInputSize(2))
	require.ErrorIs(t, err, ErrInvalidConstruction)

	_, err = net.AddLayer(2, WithInputSize(-3))
	require.ErrorIs(t, err, ErrInvalidConstruction)
	assert.Equal(t, 0, net.Len())
}

// TestMust tests that Must panics on error.
func TestMust(t *testing.T) {
	assert.Panics(t, func() {
		Must(NewNetwork(DefaultConfig()).AddLayer(3))
	})
}

// TestNetwork_EmptyNetwork tests that every operation rejects an empty network.
func TestNetwork_EmptyNetwork(t *testing.T) {
	net := NewNetwork(DefaultConfig())

	_, err := net.Forward(vec(1))
	require.ErrorIs(t, err, ErrEmptyNetwork)

	_, _, err = net.Gradient(vec(1), vec(1))
	require.ErrorIs(t, err, ErrEmptyNetwork)

	err = net.Learn(vec(1), vec(1))
	require.ErrorIs(t, err, ErrEmptyNetwork)

	_, err = net.Loss(vec(1), vec(1))
	require.ErrorIs(t, err, ErrEmptyNetwork)

	assert.Equal(t, 0, net.InFeatures())
	assert.Equal(t, 0, net.OutFeatures())
}

// TestNetwork_ShapeMismatch tests input and target length validation.
func TestNetwork_ShapeMismatch(t *testing.T) {
	net := sigmoidNetwork(t, 1, 2, 3, 2)

	_, err := net.Forward(vec(1, 2, 3))
	require.ErrorIs(t, err, ErrShapeMismatch)

	_, _, err = net.Gradient(vec(1, 2), vec(1))
	require.ErrorIs(t, err, ErrShapeMismatch)

	err = net.Learn(vec(1), vec(1, 2))
	require.ErrorIs(t, err, ErrShapeMismatch)

	_, err = net.Loss(vec(1, 2), vec(1, 2, 3))
	require.ErrorIs(t, err, ErrShapeMismatch)
}

// TestNetwork_IdentityForward tests Forward through an identity layer.
func TestNetwork_IdentityForward(t *testing.T) {
	net := identityNetwork(t)

	out, err := net.Forward(vec(1, 2))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, out.RawVector().Data)
}

// TestNetwork_LearnAtZeroError tests that a perfect prediction changes nothing.
func TestNetwork_LearnAtZeroError(t *testing.T) {
	net := identityNetwork(t)
	before := net.Layer(0).Weights()
	beforeBias := net.Layer(0).Bias()

	require.NoError(t, net.Learn(vec(1, 2), vec(1, 2)))

	assert.True(t, mat.Equal(before, net.Layer(0).Weights()))
	assert.True(t, mat.Equal(beforeBias, net.Layer(0).Bias()))
}

// TestNetwork_GradientSingleLayer tests Gradient against hand-computed values.
func TestNetwork_GradientSingleLayer(t *testing.T) {
	net := identityNetwork(t)

	// S = 1: delta = 2 * (f(z) - target) = 2 * ([1, 2] - [0, 0]) = [2, 4]
	// W grad = input^T · delta = [[2, 4], [4, 8]]
	wGrads, bGrads, err := net.Gradient(vec(1, 2), vec(0, 0))
	require.NoError(t, err)
	require.Len(t, wGrads, 1)
	require.Len(t, bGrads, 1)

	assert.Equal(t, []float64{2, 4}, bGrads[0].RawVector().Data)
	assert.True(t, mat.Equal(mat.NewDense(2, 2, []float64{2, 4, 4, 8}), wGrads[0]))
}

// TestNetwork_GradientScalesByLayerCount tests the 2/S output scale.
func TestNetwork_GradientScalesByLayerCount(t *testing.T) {
	// Two 1->1 linear layers with unit weights: output = x.
	net := Must(Must(NewNetwork(DefaultConfig()).AddLayer(1, WithInputSize(1))).AddLayer(1))
	for i := 0; i < net.Len(); i++ {
		require.NoError(t, net.Layer(i).SetWeights(mat.NewDense(1, 1, []float64{1})))
	}

	// delta_1 = (2/2) * (3 - 1) = 2, delta_0 = 1 * 2 = 2
	_, bGrads, err := net.Gradient(vec(3), vec(1))
	require.NoError(t, err)
	assert.InDelta(t, 2.0, bGrads[1].AtVec(0), 1e-12)
	assert.InDelta(t, 2.0, bGrads[0].AtVec(0), 1e-12)
}

// TestNetwork_GradientShapes tests that gradients line up with layer shapes.
func TestNetwork_GradientShapes(t *testing.T) {
	net := sigmoidNetwork(t, 7, 3, 5, 4, 2)

	wGrads, bGrads, err := net.Gradient(vec(0.1, -0.2, 0.3), vec(0.5, 0.5))
	require.NoError(t, err)
	require.Len(t, wGrads, net.Len())
	require.Len(t, bGrads, net.Len())

	for s := 0; s < net.Len(); s++ {
		layer := net.Layer(s)
		r, c := wGrads[s].Dims()
		assert.Equal(t, layer.InFeatures(), r, "layer %d rows", s)
		assert.Equal(t, layer.OutFeatures(), c, "layer %d cols", s)
		assert.Equal(t, layer.OutFeatures(), bGrads[s].Len(), "layer %d bias", s)
	}
}

// TestNetwork_GradientMatchesFiniteDifference checks backpropagation against
// a central finite difference of Loss for every weight and bias.
func TestNetwork_GradientMatchesFiniteDifference(t *testing.T) {
	tests := []struct {
		name  string
		seed  uint64
		sizes []int
	}{
		{"2 layers", 11, []int{2, 3, 2}},
		{"3 layers", 12, []int{3, 4, 3, 2}},
		{"3 layers wide", 13, []int{2, 5, 5, 1}},
	}

	settings := &fd.Settings{Formula: fd.Central, Step: 1e-5}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			net := sigmoidNetwork(t, tt.seed, tt.sizes...)

			inputData := make([]float64, tt.sizes[0])
			for i := range inputData {
				inputData[i] = 0.3*float64(i) - 0.4
			}
			targetData := make([]float64, tt.sizes[len(tt.sizes)-1])
			for i := range targetData {
				targetData[i] = 0.2 + 0.1*float64(i)
			}
			input := vec(inputData...)
			target := vec(targetData...)

			wGrads, bGrads, err := net.Gradient(input, target)
			require.NoError(t, err)

			loss := func() float64 {
				l, err := net.Loss(input, target)
				require.NoError(t, err)
				return l
			}

			for s := 0; s < net.Len(); s++ {
				layer := net.Layer(s)
				weights := layer.Weights()
				rows, cols := weights.Dims()

				numeric := fd.Gradient(nil, func(x []float64) float64 {
					require.NoError(t, layer.SetWeights(mat.NewDense(rows, cols, x)))
					return loss()
				}, mat.DenseCopyOf(weights).RawMatrix().Data, settings)
				require.NoError(t, layer.SetWeights(weights))

				analytic := mat.DenseCopyOf(wGrads[s]).RawMatrix().Data
				assert.InDeltaSlice(t, numeric, analytic, 1e-3, "layer %d weights", s)

				bias := layer.Bias()
				numericBias := fd.Gradient(nil, func(x []float64) float64 {
					require.NoError(t, layer.SetBias(mat.NewVecDense(len(x), x)))
					return loss()
				}, mat.VecDenseCopyOf(bias).RawVector().Data, settings)
				require.NoError(t, layer.SetBias(bias))

				assert.InDeltaSlice(t, numericBias, bGrads[s].RawVector().Data, 1e-3, "layer %d bias", s)
			}
		})
	}
}

// TestNetwork_LearnAppliesLearningRate tests the update rule W -= lr * grad.
func TestNetwork_LearnAppliesLearningRate(t *testing.T) {
	net := sigmoidNetwork(t, 21, 2, 3, 2)
	net.SetLearningRate(0.5)
	assert.Equal(t, 0.5, net.LearningRate())

	input, target := vec(0.4, -0.6), vec(0.9, 0.1)
	wGrads, bGrads, err := net.Gradient(input, target)
	require.NoError(t, err)

	before := make([]*mat.Dense, net.Len())
	beforeBias := make([]*mat.VecDense, net.Len())
	for s := 0; s < net.Len(); s++ {
		before[s] = net.Layer(s).Weights()
		beforeBias[s] = net.Layer(s).Bias()
	}

	require.NoError(t, net.Learn(input, target))

	for s := 0; s < net.Len(); s++ {
		var want mat.Dense
		want.Scale(0.5, wGrads[s])
		want.Sub(before[s], &want)
		assert.True(t, mat.EqualApprox(&want, net.Layer(s).Weights(), 1e-12), "layer %d weights", s)

		var wantBias mat.VecDense
		wantBias.AddScaledVec(beforeBias[s], -0.5, bGrads[s])
		assert.True(t, mat.EqualApprox(&wantBias, net.Layer(s).Bias(), 1e-12), "layer %d bias", s)
	}
}

// TestNetwork_DefaultLearningRate tests the zero-value default.
func TestNetwork_DefaultLearningRate(t *testing.T) {
	assert.Equal(t, 0.1, NewNetwork(Config{}).LearningRate())
	assert.Equal(t, 0.1, DefaultConfig().LearningRate)
	assert.Equal(t, 0.02, NewNetwork(Config{LearningRate: 0.02}).LearningRate())
}

// TestNetwork_LearnDecreasesError tests that repeated steps on a fixed
// pair never increase the squared error.
func TestNetwork_LearnDecreasesError(t *testing.T) {
	net := NewNetwork(Config{LearningRate: 0.01, Source: NewSource(31)})
	net = Must(net.AddLayer(4, WithInputSize(2), WithActivation(Sigmoid{})))
	net = Must(net.AddLayer(2))

	input, target := vec(0.5, -0.3), vec(0.7, -0.2)

	errAt := func() float64 {
		out, err := net.Forward(input)
		require.NoError(t, err)
		return SquaredError(out, target)
	}

	first := errAt()
	prev := first
	for i := 0; i < 200; i++ {
		require.NoError(t, net.Learn(input, target))
		cur := errAt()
		assert.LessOrEqual(t, cur, prev+1e-12, "step %d", i)
		prev = cur
	}
	assert.Less(t, prev, first)
}

// TestNetwork_ForwardIsDeterministic tests that Forward is a pure read.
func TestNetwork_ForwardIsDeterministic(t *testing.T) {
	net := sigmoidNetwork(t, 41, 3, 6, 2)
	input := vec(0.2, 0.4, -0.9)

	a, err := net.Forward(input)
	require.NoError(t, err)
	b, err := net.Forward(input)
	require.NoError(t, err)

	assert.Equal(t, a.RawVector().Data, b.RawVector().Data)

	// Gradient must not mutate either.
	_, _, err = net.Gradient(input, vec(0, 1))
	require.NoError(t, err)
	c, err := net.Forward(input)
	require.NoError(t, err)
	assert.Equal(t, a.RawVector().Data, c.RawVector().Data)
}

// TestNetwork_LossMatchesDefinition tests Loss = SquaredError / S.
func TestNetwork_LossMatchesDefinition(t *testing.T) {
	net := identityNetwork(t)

	loss, err := net.Loss(vec(1, 2), vec(0, 0))
	require.NoError(t, err)
	assert.InDelta(t, 5.0, loss, 1e-12)
}

// TestSquaredError tests the sum of squared differences.
func TestSquaredError(t *testing.T) {
	assert.InDelta(t, 1+4+9, SquaredError(vec(1, 2, 3), vec(0, 0, 0)), 1e-12)
	assert.Panics(t, func() {
		SquaredError(vec(1), vec(1, 2))
	})
}
