package main

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/demask/internal/api"
	"github.com/samcharles93/demask/internal/decoder"
	"github.com/samcharles93/demask/internal/toy"
)

func serveCmd() *cli.Command {
	var (
		addr        string
		ratePerSec  float64
		burst       int64
		readTimeout time.Duration
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the generation REST API",
		Flags: append(modelFlags(),
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
			&cli.Float64Flag{
				Name:        "rate",
				Usage:       "generation requests allowed per second",
				Value:       10,
				Destination: &ratePerSec,
			},
			&cli.Int64Flag{
				Name:        "burst",
				Usage:       "generation request burst size",
				Value:       10,
				Destination: &burst,
			},
			&cli.DurationFlag{
				Name:        "read-timeout",
				Usage:       "read timeout",
				Value:       30 * time.Second,
				Destination: &readTimeout,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := LoadConfig()
			applyModelConfig(cmd, cfg)
			applyServeConfig(cmd, cfg, &addr)
			log := newLogger()

			sched, err := scheduleByName(schedName)
			if err != nil {
				return err
			}

			// One toy model shared across requests; a fresh controller
			// per request pins each response to its seed.
			net := toy.NewSeqLM(int(vocab), int(hidden), int(seqLen), modelSeed)
			build := func(seed int64) api.Generator {
				return decoder.New(net, decoder.Config{
					MaskID:   net.MaskID(),
					Steps:    int(steps),
					Schedule: sched,
					Seed:     seed,
				})
			}

			server := api.NewServer(api.Config{
				Build:      build,
				RatePerSec: ratePerSec,
				Burst:      int(burst),
				Log:        log,
			})
			e := echo.New()
			e.Use(middleware.RequestLogger())
			e.Use(middleware.Recover())
			server.Register(e)

			log.Info("starting server", "address", addr, "seq_len", seqLen, "steps", steps)
			sc := echo.StartConfig{
				Address: addr,
				BeforeServeFunc: func(srv *http.Server) error {
					srv.ReadHeaderTimeout = readTimeout
					return nil
				},
			}
			return sc.Start(ctx, e)
		},
	}
}
