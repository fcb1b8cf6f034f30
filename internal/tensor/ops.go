package tensor

import "math"

// Softmax applies the softmax function to x in place, using the usual
// max-subtraction for numerical stability. Entries equal to -Inf end
// up with probability zero.
func Softmax(x []float32) {
	if len(x) == 0 {
		return
	}
	maxv := x[0]
	for i := 1; i < len(x); i++ {
		if x[i] > maxv {
			maxv = x[i]
		}
	}
	var sum float64
	for i := range x {
		v := math.Exp(float64(x[i] - maxv))
		x[i] = float32(v)
		sum += v
	}
	if sum == 0 {
		return
	}
	inv := float32(1.0 / sum)
	for i := range x {
		x[i] *= inv
	}
}

// Scale multiplies every element of x by s in place. -Inf entries stay
// -Inf for positive s, which is what the temperature path relies on.
func Scale(x []float32, s float32) {
	for i := range x {
		x[i] *= s
	}
}
