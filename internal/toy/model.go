// Package toy provides a minimal deterministic sequence model used to
// exercise the masked decoder in tests, the CLI, and the demo server.
// It is not a real language model; it exists so the decoding loop has
// a concrete logits producer with reproducible weights.
package toy

import (
	"fmt"

	"github.com/samcharles93/demask/internal/tensor"
)

// SeqLM is a tiny masked sequence model: token and position embeddings,
// a mean-pooled context vector so every position sees the rest of the
// sequence, and a linear projection to vocabulary logits. The mask
// sentinel is Vocab itself, so the embedding table has Vocab+1 rows.
type SeqLM struct {
	Vocab  int
	Hidden int
	SeqLen int

	Emb  tensor.Mat // [(Vocab+1) x Hidden] token embeddings, last row = mask sentinel
	Pos  tensor.Mat // [SeqLen x Hidden] position embeddings
	W    tensor.Mat // [Hidden x Vocab] output projection
	Bias []float32  // [Vocab]

	training bool
}

// NewSeqLM constructs a model with the given vocabulary size, hidden
// width and sequence length. Weights are filled deterministically from
// the seed; the same seed always yields the same model.
func NewSeqLM(vocab, hidden, seqLen int, seed int64) *SeqLM {
	m := &SeqLM{
		Vocab:  vocab,
		Hidden: hidden,
		SeqLen: seqLen,
		Emb:    tensor.NewMat(vocab+1, hidden),
		Pos:    tensor.NewMat(seqLen, hidden),
		W:      tensor.NewMat(hidden, vocab),
		Bias:   make([]float32, vocab),
	}
	tensor.FillRand(&m.Emb, seed+11)
	tensor.FillRand(&m.Pos, seed+17)
	tensor.FillRand(&m.W, seed+23)
	return m
}

// MaskID returns the sentinel id the model reserves for masked
// positions.
func (m *SeqLM) MaskID() int { return m.Vocab }

// MaxSeqLen returns the fixed sequence length.
func (m *SeqLM) MaxSeqLen() int { return m.SeqLen }

// Training reports whether the model is in training mode.
func (m *SeqLM) Training() bool { return m.training }

// SetTraining toggles training mode. The toy model has no dropout, so
// the flag only exists to satisfy the decoder's save/restore contract.
func (m *SeqLM) SetTraining(v bool) { m.training = v }

// Forward computes per-position vocabulary logits for a batch of
// sequences. Token ids must lie in [0, Vocab]; anything else is a
// malformed query and returns an error. The args map is accepted for
// interface compatibility and ignored.
func (m *SeqLM) Forward(seq [][]int, args map[string]any) ([]tensor.Mat, error) {
	_ = args
	out := make([]tensor.Mat, len(seq))
	ctx := make([]float32, m.Hidden)
	h := make([]float32, m.Hidden)

	for b, toks := range seq {
		if len(toks) != m.SeqLen {
			return nil, fmt.Errorf("toy: example %d has length %d, want %d", b, len(toks), m.SeqLen)
		}

		// Mean-pool token+position embeddings into a context vector.
		for i := range ctx {
			ctx[i] = 0
		}
		for pos, tok := range toks {
			if tok < 0 || tok > m.Vocab {
				return nil, fmt.Errorf("toy: token id %d at position %d outside [0, %d]", tok, pos, m.Vocab)
			}
			emb := m.Emb.Row(tok)
			pe := m.Pos.Row(pos)
			for i := range ctx {
				ctx[i] += emb[i] + pe[i]
			}
		}
		inv := float32(1) / float32(m.SeqLen)
		for i := range ctx {
			ctx[i] *= inv
		}

		logitsMat := tensor.NewMat(m.SeqLen, m.Vocab)
		for pos, tok := range toks {
			emb := m.Emb.Row(tok)
			pe := m.Pos.Row(pos)
			for i := range h {
				h[i] = emb[i] + pe[i] + ctx[i]
			}
			row := logitsMat.Row(pos)
			for j := 0; j < m.Vocab; j++ {
				var sum float32
				for i := 0; i < m.Hidden; i++ {
					sum += h[i] * m.W.Row(i)[j]
				}
				row[j] = sum + m.Bias[j]
			}
		}
		out[b] = logitsMat
	}
	return out, nil
}
