// Package main provides the densenn CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"

	"github.com/born-ml/densenn/internal/fit"
	"github.com/born-ml/densenn/nn"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const version = "v0.1.0-dev"

type trainOptions struct {
	steps       int
	lr          float64
	hidden      []int
	seed        uint64
	reportEvery int
	samples     int
	verbose     bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "densenn",
		Short:        "Dense feed-forward network trained by online gradient descent",
		SilenceUsage: true,
	}
	root.AddCommand(newTrainCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "densenn %s\n", version)
		},
	}
}

func newTrainCmd() *cobra.Command {
	opts := trainOptions{}
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Fit the 2-D polynomial target and print sample predictions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runTrain(ctx, cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&opts.steps, "steps", 1_000_000, "number of online training steps")
	flags.Float64Var(&opts.lr, "lr", nn.DefaultConfig().LearningRate, "learning rate")
	flags.IntSliceVar(&opts.hidden, "hidden", []int{16, 16}, "sizes of the sigmoid hidden layers")
	flags.Uint64Var(&opts.seed, "seed", 1, "seed for weight initialization and sampling")
	flags.IntVar(&opts.reportEvery, "report-every", 100_000, "log mean loss every N steps (0 disables)")
	flags.IntVar(&opts.samples, "samples", 10, "number of predictions to print after training")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

// buildNetwork creates 2 -> hidden... (sigmoid) -> 2 (identity).
func buildNetwork(opts trainOptions) (*nn.Network, error) {
	net := nn.NewNetwork(nn.Config{
		LearningRate: opts.lr,
		Source:       nn.NewSource(opts.seed),
	})

	layerOpts := []nn.LayerOption{nn.WithInputSize(2)}
	for i, size := range opts.hidden {
		layerOpts = append(layerOpts, nn.WithActivation(nn.Sigmoid{}))
		if _, err := net.AddLayer(size, layerOpts...); err != nil {
			return nil, errors.Wrapf(err, "hidden layer %d", i)
		}
		layerOpts = nil
	}
	if _, err := net.AddLayer(2, layerOpts...); err != nil {
		return nil, errors.Wrap(err, "output layer")
	}
	return net, nil
}

func runTrain(ctx context.Context, cmd *cobra.Command, opts trainOptions) error {
	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	net, err := buildNetwork(opts)
	if err != nil {
		return err
	}
	logger.Debug("network built", "layers", net.Len(), "lr", net.LearningRate())

	trainer := &fit.Trainer{
		Net:         net,
		Rand:        rand.New(rand.NewPCG(opts.seed, opts.seed+1)),
		Steps:       opts.steps,
		ReportEvery: opts.reportEvery,
		Logger:      logger,
	}

	stats, err := trainer.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("training stopped", "steps", stats.Steps, "mean_loss", stats.MeanLoss)

	preds, err := trainer.Predict(opts.samples)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, p := range preds {
		fmt.Fprintf(out, "in=(% .4f, % .4f)  out=(% .4f, % .4f)  target=(% .4f, % .4f)\n",
			p.Input[0], p.Input[1], p.Output[0], p.Output[1], p.Target[0], p.Target[1])
	}
	return nil
}
