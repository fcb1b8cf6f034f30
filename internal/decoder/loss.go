package decoder

import (
	"math"

	"github.com/samcharles93/demask/internal/logits"
	"github.com/samcharles93/demask/internal/tensor"
)

// Loss runs the training forward pass: each example gets an
// independent random mask whose size follows the schedule evaluated at
// a uniform random time, the masked input is forwarded through the
// model, and the cross-entropy of the original tokens is averaged over
// the masked positions only. Unmasked positions never contribute.
//
// Every sequence in x must have the controller's fixed length; a
// mismatch is a programmer error and panics. Model errors propagate
// unmodified.
func (c *Controller) Loss(x [][]int, args map[string]any) (float64, error) {
	n := c.maxSeqLen
	masked := make([][]int, len(x))
	maskSets := make([][]int, len(x))

	for b, seq := range x {
		c.checkLen(seq, b)

		r := c.rng.Float64()
		p := c.schedule(r)
		// At least one position is always masked so the loss never
		// degenerates to an empty average.
		m := int(math.Round(p * float64(n)))
		if m < 1 {
			m = 1
		}

		// Uniform selection without replacement: rank one random key
		// per position and take the m smallest.
		keys := make([]float32, n)
		for i := range keys {
			keys[i] = c.rng.Float32()
		}
		sel := logits.BottomM(keys, m)

		row := make([]int, n)
		copy(row, seq)
		for _, pos := range sel {
			row[pos] = c.maskID
		}
		masked[b] = row
		maskSets[b] = sel
	}

	out, err := c.net.Forward(masked, args)
	if err != nil {
		return 0, err
	}

	var sum float64
	var count int
	for b, sel := range maskSets {
		for _, pos := range sel {
			row := out[b].Row(pos)
			tensor.Softmax(row)
			sum += -math.Log(float64(row[x[b][pos]]))
			count++
		}
	}
	return sum / float64(count), nil
}
