// Package fit trains a network online against a synthetic 2-D target
// function.
//
// The target maps (x, y) in [-1, 1)² to
//
//	(x² + x·y, 2·x·y - y² + x³)
//
// which is smooth enough for a small sigmoid network to approximate.
package fit

import (
	"context"
	"log/slog"
	"math/rand/v2"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Learner is the part of a network the trainer drives.
type Learner interface {
	Learn(input, target mat.Vector) error
	Forward(input mat.Vector) (*mat.VecDense, error)
}

// Target evaluates the synthetic function at (x, y).
func Target(x, y float64) (tx, ty float64) {
	tx = x*x + y*x
	ty = 2*x*y - y*y + x*x*x
	return tx, ty
}

// Sample draws one training pair with x, y uniform in [-1, 1).
func Sample(r *rand.Rand) (input, target *mat.VecDense) {
	x := r.Float64()*2 - 1
	y := r.Float64()*2 - 1
	tx, ty := Target(x, y)
	return mat.NewVecDense(2, []float64{x, y}), mat.NewVecDense(2, []float64{tx, ty})
}

// Stats summarizes a training run.
type Stats struct {
	Steps    int     // Learn calls completed
	MeanLoss float64 // Mean squared error over the last report window
}

// Prediction pairs a network output with the target it should match.
type Prediction struct {
	Input  []float64
	Output []float64
	Target []float64
}

// Trainer runs online gradient descent on freshly drawn samples.
type Trainer struct {
	Net         Learner
	Rand        *rand.Rand
	Steps       int          // Number of Learn calls
	ReportEvery int          // Log progress every N steps; 0 disables
	Logger      *slog.Logger // Defaults to slog.Default()
}

// Run trains for t.Steps steps or until ctx is cancelled.
//
// Each step draws a new sample, measures the pre-update squared error and
// calls Learn. On cancellation Run returns the stats so far together with
// the context error.
func (t *Trainer) Run(ctx context.Context) (Stats, error) {
	logger := t.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var (
		stats  Stats
		window []float64
	)
	for step := 0; step < t.Steps; step++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		input, target := Sample(t.Rand)
		output, err := t.Net.Forward(input)
		if err != nil {
			return stats, errors.Wrapf(err, "step %d: forward", step)
		}
		window = append(window, squaredError(output, target))

		if err := t.Net.Learn(input, target); err != nil {
			return stats, errors.Wrapf(err, "step %d: learn", step)
		}
		stats.Steps++

		if t.ReportEvery > 0 && stats.Steps%t.ReportEvery == 0 {
			stats.MeanLoss = floats.Sum(window) / float64(len(window))
			window = window[:0]
			logger.Info("training", "step", stats.Steps, "mean_loss", stats.MeanLoss)
		}
	}

	if len(window) > 0 {
		stats.MeanLoss = floats.Sum(window) / float64(len(window))
	}
	logger.Debug("training finished", "steps", stats.Steps, "mean_loss", stats.MeanLoss)
	return stats, nil
}

// Predict draws n fresh samples and returns the network output for each.
func (t *Trainer) Predict(n int) ([]Prediction, error) {
	preds := make([]Prediction, 0, n)
	for i := 0; i < n; i++ {
		input, target := Sample(t.Rand)
		output, err := t.Net.Forward(input)
		if err != nil {
			return nil, errors.Wrap(err, "predict")
		}
		preds = append(preds, Prediction{
			Input:  mat.Col(nil, 0, input),
			Output: mat.Col(nil, 0, output),
			Target: mat.Col(nil, 0, target),
		})
	}
	return preds, nil
}

func squaredError(output, target *mat.VecDense) float64 {
	diff := make([]float64, output.Len())
	floats.SubTo(diff, output.RawVector().Data, target.RawVector().Data)
	return floats.Dot(diff, diff)
}
