package schedule

import (
	"math"
	"testing"
)

// TestEndpoints checks the schedule contract at the boundaries:
// fully masked at t=0, fully unmasked at t=1.
func TestEndpoints(t *testing.T) {
	for _, tc := range []struct {
		name string
		fn   Func
	}{
		{"linear", Linear},
		{"cosine", Cosine},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.fn(0); math.Abs(got-1) > 1e-9 {
				t.Fatalf("f(0) = %v, want 1", got)
			}
			if got := tc.fn(1); math.Abs(got) > 1e-9 {
				t.Fatalf("f(1) = %v, want 0", got)
			}
		})
	}
}

// TestMonotone samples the domain and verifies the masked fraction
// never increases with t, and stays within [0,1].
func TestMonotone(t *testing.T) {
	for _, tc := range []struct {
		name string
		fn   Func
	}{
		{"linear", Linear},
		{"cosine", Cosine},
	} {
		t.Run(tc.name, func(t *testing.T) {
			const n = 1000
			prev := tc.fn(0)
			for i := 1; i <= n; i++ {
				x := float64(i) / n
				v := tc.fn(x)
				if v > prev+1e-12 {
					t.Fatalf("f not non-increasing at t=%v: %v > %v", x, v, prev)
				}
				if v < -1e-12 || v > 1+1e-12 {
					t.Fatalf("f(%v) = %v outside [0,1]", x, v)
				}
				prev = v
			}
		})
	}
}
