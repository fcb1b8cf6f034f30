package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/demask/internal/logger"
	"github.com/samcharles93/demask/internal/schedule"
)

// Shared model/decoder settings, populated by flags and the config
// file. The model here is always the built-in toy model; real models
// plug into the decoder as library users.
var (
	vocab     int64 = 64
	hidden    int64 = 32
	seqLen    int64 = 16
	modelSeed int64 = 1
	steps     int64 = 18
	schedName       = "cosine"
	logLevel        = "info"
	logFormat       = "pretty"
)

func modelFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Int64Flag{
			Name:        "vocab",
			Usage:       "vocabulary size of the toy model",
			Value:       vocab,
			Destination: &vocab,
		},
		&cli.Int64Flag{
			Name:        "hidden",
			Usage:       "hidden width of the toy model",
			Value:       hidden,
			Destination: &hidden,
		},
		&cli.Int64Flag{
			Name:        "seq-len",
			Aliases:     []string{"seq_len", "l"},
			Usage:       "fixed sequence length",
			Value:       seqLen,
			Destination: &seqLen,
		},
		&cli.Int64Flag{
			Name:        "model-seed",
			Usage:       "seed for the toy model weights",
			Value:       modelSeed,
			Destination: &modelSeed,
		},
		&cli.Int64Flag{
			Name:        "steps",
			Aliases:     []string{"n"},
			Usage:       "number of unmasking rounds",
			Value:       steps,
			Destination: &steps,
		},
		&cli.StringFlag{
			Name:        "schedule",
			Usage:       "masking decay schedule (cosine|linear)",
			Value:       schedName,
			Destination: &schedName,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug|info|warn|error)",
			Value:       logLevel,
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty|text|json)",
			Value:       logFormat,
			Destination: &logFormat,
		},
	}
}

func scheduleByName(name string) (schedule.Func, error) {
	switch name {
	case "cosine", "":
		return schedule.Cosine, nil
	case "linear":
		return schedule.Linear, nil
	default:
		return nil, fmt.Errorf("unknown schedule %q (want cosine or linear)", name)
	}
}

func newLogger() logger.Logger {
	level := logger.ParseLevel(logLevel)
	switch logFormat {
	case "json":
		return logger.JSON(os.Stderr, level)
	case "text":
		return logger.Default()
	default:
		return logger.Pretty(os.Stderr, level)
	}
}
