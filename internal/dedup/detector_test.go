package dedup

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubEmbedder struct {
	vectors map[string][]float32
	err     error
	calls   int
}

func (e *stubEmbedder) EmbedText(_ context.Context, text string) ([]float32, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	return e.vectors[text], nil
}

func TestIsDuplicateFirstThenRepeat(t *testing.T) {
	embedder := &stubEmbedder{vectors: map[string][]float32{
		"hello": {1, 0, 0},
		"again": {0.999, 0.01, 0},
	}}
	d := NewDetector(embedder, DefaultThreshold, zap.NewNop())

	ctx := context.Background()
	assert.False(t, d.IsDuplicate(ctx, "hello"))
	// Near-identical embedding crosses the similarity threshold
	assert.True(t, d.IsDuplicate(ctx, "again"))
	// The duplicate was not stored
	assert.Equal(t, 1, d.Size())
}

func TestIsDuplicateDistinctTexts(t *testing.T) {
	embedder := &stubEmbedder{vectors: map[string][]float32{
		"billing": {1, 0, 0},
		"outage":  {0, 1, 0},
		"praise":  {0, 0, 1},
	}}
	d := NewDetector(embedder, DefaultThreshold, zap.NewNop())

	ctx := context.Background()
	assert.False(t, d.IsDuplicate(ctx, "billing"))
	assert.False(t, d.IsDuplicate(ctx, "outage"))
	assert.False(t, d.IsDuplicate(ctx, "praise"))
	assert.Equal(t, 3, d.Size())
}

func TestIsDuplicateFailsOpen(t *testing.T) {
	embedder := &stubEmbedder{err: errors.New("embedding service down")}
	d := NewDetector(embedder, DefaultThreshold, zap.NewNop())

	assert.False(t, d.IsDuplicate(context.Background(), "anything"))
	// Nothing was stored for the failed embedding
	assert.Equal(t, 0, d.Size())
}

func TestReset(t *testing.T) {
	embedder := &stubEmbedder{vectors: map[string][]float32{
		"hello": {1, 0, 0},
	}}
	d := NewDetector(embedder, DefaultThreshold, zap.NewNop())

	ctx := context.Background()
	assert.False(t, d.IsDuplicate(ctx, "hello"))
	assert.True(t, d.IsDuplicate(ctx, "hello"))

	d.Reset()
	assert.Equal(t, 0, d.Size())
	assert.False(t, d.IsDuplicate(ctx, "hello"))
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 2, 3}, []float32{1, 2, 3}), 1e-6)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-6)
	assert.InDelta(t, -1.0, cosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-6)

	// Symmetry
	a, b := []float32{0.3, 0.7, 0.1}, []float32{0.5, 0.2, 0.9}
	assert.InDelta(t, cosineSimilarity(a, b), cosineSimilarity(b, a), 1e-9)

	// Degenerate inputs
	assert.Equal(t, 0.0, cosineSimilarity(nil, nil))
	assert.Equal(t, 0.0, cosineSimilarity([]float32{1}, []float32{1, 2}))
	assert.Equal(t, 0.0, cosineSimilarity([]float32{0, 0}, []float32{1, 1}))
}

func TestDisabledDetector(t *testing.T) {
	d := NewDisabledDetector()
	assert.False(t, d.IsDuplicate(context.Background(), "anything"))
	d.Reset()
	assert.False(t, d.IsDuplicate(context.Background(), "anything"))
}
