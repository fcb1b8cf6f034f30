// Package logits holds the sampling and selection primitives used by
// the masked decoder: multinomial draws from per-position
// distributions, top-k logit truncation, and partial top-m index
// selection by score.
package logits

import (
	"math"
	"math/rand"
)

// Sampler draws token ids from probability distributions using an
// injected random source, so generation is reproducible under a fixed
// seed.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler returns a sampler backed by the provided random source.
func NewSampler(rng *rand.Rand) *Sampler {
	return &Sampler{rng: rng}
}

// Multinomial draws a single index from probs, interpreted as a
// (possibly unnormalised due to rounding) probability distribution.
// It walks the cumulative sum until a uniform draw is covered; if
// rounding leaves the tail short, the last index with nonzero mass is
// returned.
func (s *Sampler) Multinomial(probs []float32) int {
	if len(probs) == 0 {
		panic("multinomial: empty distribution")
	}
	r := s.rng.Float64()
	var c float64
	for i, p := range probs {
		c += float64(p)
		if r <= c {
			return i
		}
	}
	for i := len(probs) - 1; i >= 0; i-- {
		if probs[i] > 0 {
			return i
		}
	}
	return 0
}

// FilterTopK keeps the k largest values in row and sets every other
// entry to -Inf, truncating the distribution the subsequent softmax
// produces. k <= 0 clears the whole row; k >= len(row) is a no-op.
func FilterTopK(row []float32, k int) {
	negInf := float32(math.Inf(-1))
	if k >= len(row) {
		return
	}
	if k <= 0 {
		for i := range row {
			row[i] = negInf
		}
		return
	}
	keep := TopM(row, k)
	kept := make(map[int]struct{}, k)
	for _, i := range keep {
		kept[i] = struct{}{}
	}
	for i := range row {
		if _, ok := kept[i]; !ok {
			row[i] = negInf
		}
	}
}

// TopM returns the indices of the m largest values in scores, ordered
// from largest to smallest. Ties are broken toward the earlier index.
// m <= 0 returns nil; m >= len(scores) returns every index. This is an
// insertion-based partial selection, O(n*m), which beats a full sort
// for the small m the decoder uses per round.
func TopM(scores []float32, m int) []int {
	if m <= 0 {
		return nil
	}
	if m > len(scores) {
		m = len(scores)
	}
	topIdx := make([]int, 0, m+1)
	topVal := make([]float32, 0, m+1)

	for i, v := range scores {
		pos := len(topVal)
		for pos > 0 && topVal[pos-1] < v {
			pos--
		}
		if pos >= m {
			continue
		}

		topIdx = append(topIdx, 0)
		topVal = append(topVal, 0)
		copy(topIdx[pos+1:], topIdx[pos:])
		copy(topVal[pos+1:], topVal[pos:])
		topIdx[pos] = i
		topVal[pos] = v

		if len(topVal) > m {
			topIdx = topIdx[:m]
			topVal = topVal[:m]
		}
	}
	return topIdx
}

// BottomM returns the indices of the m smallest values in scores.
// Used for ranking random position keys during mask construction.
func BottomM(scores []float32, m int) []int {
	if m <= 0 {
		return nil
	}
	neg := make([]float32, len(scores))
	for i, v := range scores {
		neg[i] = -v
	}
	return TopM(neg, m)
}
