package main

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/demask/internal/decoder"
	"github.com/samcharles93/demask/internal/toy"
)

func lossCmd() *cli.Command {
	var (
		batch int64
		seed  int64
	)

	return &cli.Command{
		Name:  "loss",
		Usage: "Compute the masked training loss on a random batch",
		Flags: append(modelFlags(),
			&cli.Int64Flag{
				Name:        "batch",
				Aliases:     []string{"b"},
				Usage:       "number of sequences in the batch",
				Value:       4,
				Destination: &batch,
			},
			&cli.Int64Flag{
				Name:        "seed",
				Usage:       "random seed for masking and data",
				Value:       0,
				Destination: &seed,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := LoadConfig()
			applyModelConfig(cmd, cfg)
			log := newLogger()

			sched, err := scheduleByName(schedName)
			if err != nil {
				return err
			}

			net := toy.NewSeqLM(int(vocab), int(hidden), int(seqLen), modelSeed)
			ctrl := decoder.New(net, decoder.Config{
				MaskID:   net.MaskID(),
				Steps:    int(steps),
				Schedule: sched,
				Seed:     seed,
			})

			// Random fully observed batch over the vocabulary.
			rng := rand.New(rand.NewSource(seed))
			x := make([][]int, batch)
			for b := range x {
				x[b] = make([]int, seqLen)
				for i := range x[b] {
					x[b][i] = rng.Intn(int(vocab))
				}
			}

			loss, err := ctrl.Loss(x, nil)
			if err != nil {
				return fmt.Errorf("loss: %w", err)
			}
			log.Info("loss computed", "batch", batch, "seq_len", seqLen)
			fmt.Printf("loss: %.6f\n", loss)
			return nil
		},
	}
}
