package toy

import "testing"

// TestForwardShape checks the logits layout: one matrix per example,
// one row per position, one column per vocabulary entry (the mask
// sentinel gets no logit).
func TestForwardShape(t *testing.T) {
	m := NewSeqLM(8, 6, 4, 5)
	out, err := m.Forward([][]int{{0, 1, 2, 3}, {4, 5, 6, 7}}, nil)
	if err != nil {
		t.Fatalf("Forward: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("want 2 logits matrices, got %d", len(out))
	}
	for b, mat := range out {
		if mat.R != 4 || mat.C != 8 {
			t.Fatalf("example %d: shape %dx%d, want 4x8", b, mat.R, mat.C)
		}
	}
}

// TestForwardDeterministic verifies that the same seed and input
// always produce identical logits.
func TestForwardDeterministic(t *testing.T) {
	a := NewSeqLM(5, 4, 3, 9)
	b := NewSeqLM(5, 4, 3, 9)
	in := [][]int{{5, 2, 0}} // includes the mask sentinel (Vocab=5)
	oa, err := a.Forward(in, nil)
	if err != nil {
		t.Fatalf("Forward: %v", err)
	}
	ob, err := b.Forward(in, nil)
	if err != nil {
		t.Fatalf("Forward: %v", err)
	}
	for i := range oa[0].Data {
		if oa[0].Data[i] != ob[0].Data[i] {
			t.Fatalf("logit mismatch at flat index %d", i)
		}
	}
}

func TestForwardRejectsBadInput(t *testing.T) {
	m := NewSeqLM(5, 4, 3, 1)
	if _, err := m.Forward([][]int{{0, 1}}, nil); err == nil {
		t.Fatal("expected error for wrong sequence length")
	}
	if _, err := m.Forward([][]int{{0, 1, 6}}, nil); err == nil {
		t.Fatal("expected error for out-of-range token id")
	}
	if _, err := m.Forward([][]int{{0, -1, 2}}, nil); err == nil {
		t.Fatal("expected error for negative token id")
	}
}

func TestTrainingFlag(t *testing.T) {
	m := NewSeqLM(5, 4, 3, 1)
	if m.Training() {
		t.Fatal("models start in eval mode")
	}
	m.SetTraining(true)
	if !m.Training() {
		t.Fatal("SetTraining(true) not observed")
	}
}
