package decoder

import (
	"math"

	"github.com/samcharles93/demask/internal/logits"
	"github.com/samcharles93/demask/internal/tensor"
)

// GenerateOptions controls a single generation call.
type GenerateOptions struct {
	// BatchSize is the number of sequences to generate together.
	// Values <= 0 mean 1.
	BatchSize int

	// Temperature is the starting sampling temperature; it decays
	// linearly to (near) zero over the rounds. <= 0 means 1.0.
	Temperature float64

	// FilterThres, when non-nil, truncates each position's
	// distribution to its top ceil((1-thres)*V) logits before
	// sampling.
	FilterThres *float64

	// Args is forwarded verbatim to the model on every query.
	Args map[string]any
}

// Generate materialises opts.BatchSize sequences by iterative
// unmasking. The buffer starts fully masked; every round queries the
// model, samples a token for each position still masked, commits them,
// then re-masks the least confident positions down to the schedule's
// target count for that round. After the final round the target count
// is zero, so the result contains no mask sentinel.
//
// The model's training flag is cleared for the duration of the call
// and restored afterwards, including when a model query fails.
func (c *Controller) Generate(opts GenerateOptions) ([][]int, error) {
	n := opts.BatchSize
	if n <= 0 {
		n = 1
	}
	t0 := opts.Temperature
	if t0 <= 0 {
		t0 = 1.0
	}
	L := c.maxSeqLen

	wasTraining := c.net.Training()
	c.net.SetTraining(false)
	defer c.net.SetTraining(wasTraining)

	seq := make([][]int, n)
	mask := make([][]bool, n)
	for b := range seq {
		seq[b] = make([]int, L)
		mask[b] = make([]bool, L)
		for i := 0; i < L; i++ {
			seq[b][i] = c.maskID
			mask[b][i] = true
		}
	}

	// Target masked count after each round, from the schedule sampled
	// on an evenly spaced grid over (0,1]. The last entry is zero by
	// the schedule contract, which is what guarantees a fully
	// committed result.
	maskNum := make([]int, c.steps)
	for i := range maskNum {
		t := float64(i+1) / float64(c.steps)
		maskNum[i] = int(math.Round(c.schedule(t) * float64(L)))
	}

	scores := make([]float32, L)

	for i := 0; i < c.steps; i++ {
		out, err := c.net.Forward(seq, opts.Args)
		if err != nil {
			return nil, err
		}

		stepsUntilX0 := c.steps - 1 - i
		temp := t0 * float64(stepsUntilX0) / float64(c.steps)
		if temp < 1e-3 {
			temp = 1e-3
		}
		invTemp := float32(1 / temp)

		for b := 0; b < n; b++ {
			m := &out[b]
			k := m.C
			if opts.FilterThres != nil {
				k = int(math.Ceil((1 - *opts.FilterThres) * float64(m.C)))
			}

			for pos := 0; pos < L; pos++ {
				row := m.Row(pos)
				if k < m.C {
					logits.FilterTopK(row, k)
				}
				tensor.Scale(row, invTemp)
				tensor.Softmax(row)

				id := c.sampler.Multinomial(row)
				if mask[b][pos] {
					seq[b][pos] = id
				}

				// Confidence-inverse score of the freshly sampled
				// token; positions committed before this round can
				// never be re-masked.
				if mask[b][pos] {
					scores[pos] = 1 - row[id]
				} else {
					scores[pos] = -math.MaxFloat32
				}
			}

			remask := logits.TopM(scores, maskNum[i])
			for pos := range mask[b] {
				mask[b][pos] = false
			}
			for _, pos := range remask {
				mask[b][pos] = true
				seq[b][pos] = c.maskID
			}
		}
	}

	return seq, nil
}

// GenerateOne is the single-sequence form of Generate: batch size 1,
// batch dimension stripped from the result.
func (c *Controller) GenerateOne(opts GenerateOptions) ([]int, error) {
	opts.BatchSize = 1
	out, err := c.Generate(opts)
	if err != nil {
		return nil, err
	}
	return out[0], nil
}
