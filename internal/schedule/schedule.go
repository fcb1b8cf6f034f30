// Package schedule provides masking decay schedules for iterative
// unmasking. A schedule maps normalized generation progress t in [0,1]
// to the fraction of sequence positions that should still be masked at
// that point.
package schedule

import "math"

// Func maps normalized time t in [0,1] to a masked fraction in [0,1].
// Implementations must satisfy f(0)=1, f(1)=0 (within floating point
// tolerance) and be monotonically non-increasing. The decoder accepts
// any function with this contract.
type Func func(t float64) float64

// Linear decays the masked fraction linearly: 1 - t.
func Linear(t float64) float64 {
	return 1 - t
}

// Cosine decays the masked fraction along a quarter cosine wave,
// cos(t*pi/2). Unmasking starts slow and accelerates toward the end.
// This is the default schedule.
func Cosine(t float64) float64 {
	return math.Cos(t * math.Pi / 2)
}
