// Package decoder implements iterative non-autoregressive masked-token
// decoding. A Controller wraps an opaque sequence model: training draws
// a random mask per example and scores the model's predictions at the
// masked positions only, and generation starts from a fully masked
// sequence and commits the most confident predictions over a fixed
// number of rounds until every position holds a real token.
package decoder

import (
	"fmt"
	"math/rand"

	"github.com/samcharles93/demask/internal/logits"
	"github.com/samcharles93/demask/internal/schedule"
	"github.com/samcharles93/demask/internal/tensor"
)

// Model is the capability the controller needs from a sequence model.
// Forward maps a batch of token-id sequences (which may contain the
// mask sentinel) plus side-channel arguments to one logits matrix per
// example, each [max_seq_len x vocab]. The args map is forwarded
// verbatim and never examined here. MaxSeqLen is consulted once at
// construction; the training flag is saved, cleared, and restored
// around generation.
type Model interface {
	Forward(seq [][]int, args map[string]any) ([]tensor.Mat, error)
	MaxSeqLen() int
	Training() bool
	SetTraining(bool)
}

// Config configures a Controller. Zero values fall back to defaults:
// 18 steps, the cosine schedule, and a random source seeded from Seed.
type Config struct {
	// MaskID is the sentinel token id standing for "not yet decided".
	// It must be distinct from every vocabulary id; the controller
	// trusts the caller on this and does not check.
	MaskID int

	// Steps is the number of unmasking rounds per generation.
	Steps int

	// Schedule maps normalized progress to the target masked fraction.
	Schedule schedule.Func

	// Rand supplies all randomness: mask times, position keys and
	// multinomial draws. When nil a source seeded with Seed is used.
	Rand *rand.Rand
	Seed int64
}

// Controller owns the masking schedule and the unmasking loop around a
// caller-supplied model. It is not safe for concurrent use: the random
// source and the model call are shared state.
type Controller struct {
	net       Model
	maskID    int
	maxSeqLen int
	steps     int
	schedule  schedule.Func
	rng       *rand.Rand
	sampler   *logits.Sampler
}

// New builds a Controller over net. The sequence length is fixed to
// net.MaxSeqLen() for the controller's lifetime.
func New(net Model, cfg Config) *Controller {
	if cfg.Steps <= 0 {
		cfg.Steps = 18
	}
	if cfg.Schedule == nil {
		cfg.Schedule = schedule.Cosine
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}
	return &Controller{
		net:       net,
		maskID:    cfg.MaskID,
		maxSeqLen: net.MaxSeqLen(),
		steps:     cfg.Steps,
		schedule:  cfg.Schedule,
		rng:       rng,
		sampler:   logits.NewSampler(rng),
	}
}

// MaxSeqLen returns the fixed sequence length the controller operates at.
func (c *Controller) MaxSeqLen() int { return c.maxSeqLen }

// Steps returns the configured number of unmasking rounds.
func (c *Controller) Steps() int { return c.steps }

func (c *Controller) checkLen(seq []int, example int) {
	if len(seq) != c.maxSeqLen {
		panic(fmt.Sprintf("decoder: example %d has length %d, model expects %d",
			example, len(seq), c.maxSeqLen))
	}
}
