package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/demask/internal/decoder"
	"github.com/samcharles93/demask/internal/toy"
)

func generateCmd() *cli.Command {
	var (
		batch       int64
		temp        float64
		filterThres float64
		seed        int64
	)

	return &cli.Command{
		Name:  "generate",
		Usage: "Generate sequences by iterative unmasking of the toy model",
		Flags: append(modelFlags(),
			&cli.Int64Flag{
				Name:        "batch",
				Aliases:     []string{"b"},
				Usage:       "number of sequences to generate",
				Value:       1,
				Destination: &batch,
			},
			&cli.Float64Flag{
				Name:        "temp",
				Aliases:     []string{"temperature", "t"},
				Usage:       "starting sampling temperature",
				Value:       1.0,
				Destination: &temp,
			},
			&cli.Float64Flag{
				Name:        "filter-thres",
				Aliases:     []string{"filter_thres"},
				Usage:       "top-k filter threshold in [0,1); negative disables",
				Value:       -1,
				Destination: &filterThres,
			},
			&cli.Int64Flag{
				Name:        "seed",
				Usage:       "random seed for generation",
				Value:       0,
				Destination: &seed,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := LoadConfig()
			applyModelConfig(cmd, cfg)
			applyGenerateConfig(cmd, cfg, &temp, &filterThres, &seed)
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

			opts := decoder.GenerateOptions{
				BatchSize:   int(batch),
				Temperature: temp,
			}
			if filterThres >= 0 {
				opts.FilterThres = &filterThres
			}

			log.Info("generating",
				"batch", batch, "seq_len", seqLen, "steps", steps,
				"schedule", schedName, "seed", seed)

			start := time.Now()
			seqs, err := ctrl.Generate(opts)
			if err != nil {
				return fmt.Errorf("generate: %w", err)
			}
			elapsed := time.Since(start)

			for _, seq := range seqs {
				parts := make([]string, len(seq))
				for i, tok := range seq {
					parts[i] = fmt.Sprint(tok)
				}
				fmt.Println(strings.Join(parts, " "))
			}

			total := len(seqs) * int(seqLen)
			log.Info("done",
				"tokens", total,
				"duration", elapsed.String(),
				"tokens_per_sec", fmt.Sprintf("%.1f", float64(total)/elapsed.Seconds()))
			return nil
		},
	}
}
