package logits

import (
	"math"
	"math/rand"
	"testing"
)

// TestMultinomialDeterminism ensures two samplers seeded identically
// draw the same index sequence from the same distribution.
func TestMultinomialDeterminism(t *testing.T) {
	probs := []float32{0.1, 0.2, 0.3, 0.4}
	s1 := NewSampler(rand.New(rand.NewSource(42)))
	s2 := NewSampler(rand.New(rand.NewSource(42)))
	for i := 0; i < 20; i++ {
		a := s1.Multinomial(probs)
		b := s2.Multinomial(probs)
		if a != b {
			t.Fatalf("draw %d differs: %d vs %d", i, a, b)
		}
	}
}

// TestMultinomialSupport verifies draws never land on zero-probability
// entries.
func TestMultinomialSupport(t *testing.T) {
	probs := []float32{0, 0.5, 0, 0.5, 0}
	s := NewSampler(rand.New(rand.NewSource(7)))
	for i := 0; i < 100; i++ {
		idx := s.Multinomial(probs)
		if idx != 1 && idx != 3 {
			t.Fatalf("sampled index %d with zero probability", idx)
		}
	}
}

// TestMultinomialDegenerate checks that a one-hot distribution always
// returns its hot index, including when rounding leaves the cumulative
// sum marginally short of 1.
func TestMultinomialDegenerate(t *testing.T) {
	probs := []float32{0, 0, 0.9999999, 0}
	s := NewSampler(rand.New(rand.NewSource(1)))
	for i := 0; i < 50; i++ {
		if idx := s.Multinomial(probs); idx != 2 {
			t.Fatalf("expected index 2, got %d", idx)
		}
	}
}

func TestFilterTopK(t *testing.T) {
	row := []float32{3, 1, 4, 1, 5, 9, 2, 6}
	FilterTopK(row, 3)
	negInf := float32(math.Inf(-1))
	// 9, 6 and 5 survive; everything else is -Inf.
	want := []float32{negInf, negInf, negInf, negInf, 5, 9, negInf, 6}
	for i := range row {
		if row[i] != want[i] {
			t.Fatalf("position %d: got %v, want %v", i, row[i], want[i])
		}
	}
}

func TestFilterTopKAll(t *testing.T) {
	row := []float32{1, 2, 3}
	FilterTopK(row, 3)
	for i, v := range row {
		if math.IsInf(float64(v), -1) {
			t.Fatalf("k = len(row) must keep everything, lost index %d", i)
		}
	}
}

func TestTopM(t *testing.T) {
	scores := []float32{0.5, 0.9, 0.1, 0.9, 0.3}
	got := TopM(scores, 2)
	if len(got) != 2 {
		t.Fatalf("want 2 indices, got %d", len(got))
	}
	// Both 0.9 entries win, earlier index first.
	if got[0] != 1 || got[1] != 3 {
		t.Fatalf("want [1 3], got %v", got)
	}
}

func TestTopMZero(t *testing.T) {
	if got := TopM([]float32{1, 2}, 0); got != nil {
		t.Fatalf("m=0 must select nothing, got %v", got)
	}
}

func TestBottomM(t *testing.T) {
	keys := []float32{0.7, 0.2, 0.9, 0.4}
	got := BottomM(keys, 2)
	if len(got) != 2 {
		t.Fatalf("want 2 indices, got %d", len(got))
	}
	seen := map[int]bool{got[0]: true, got[1]: true}
	if !seen[1] || !seen[3] {
		t.Fatalf("want smallest keys at indices 1 and 3, got %v", got)
	}
}
