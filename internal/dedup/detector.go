// Package dedup decides whether a text blob semantically duplicates
// content already processed in the current run, by comparing embedding
// vectors via cosine similarity.
package dedup

import (
	"context"
	"math"
	"sync"

	"go.uber.org/zap"

	"github.com/mikey/llm-email-triage/internal/core"
)

// DefaultThreshold is the cosine similarity above which two texts are
// considered duplicates.
const DefaultThreshold = 0.95

// Detector holds the embedding vectors seen during one run. State lives
// for the run only; Reset discards it. The mutex serializes access for the
// SMTP ingest path, where sessions push messages from server goroutines.
type Detector struct {
	embedder  core.Embedder
	threshold float64
	logger    *zap.Logger

	mu      sync.Mutex
	vectors [][]float32
}

// NewDetector creates a detector. A threshold <= 0 selects DefaultThreshold.
func NewDetector(embedder core.Embedder, threshold float64, logger *zap.Logger) *Detector {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Detector{
		embedder:  embedder,
		threshold: threshold,
		logger:    logger,
	}
}

// IsDuplicate embeds text and compares it against every vector stored in
// this run. On a similarity above the threshold it reports true without
// storing the new vector; otherwise the vector is stored and it reports
// false. An embedding provider failure fails open: the text is treated as
// new and nothing is stored.
func (d *Detector) IsDuplicate(ctx context.Context, text string) bool {
	vector, err := d.embedder.EmbedText(ctx, text)
	if err != nil {
		d.logger.Error("Embedding provider failed, treating text as non-duplicate", zap.Error(err))
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	for _, seen := range d.vectors {
		if similarity := cosineSimilarity(vector, seen); similarity > d.threshold {
			d.logger.Debug("Duplicate content detected",
				zap.Float64("similarity", similarity),
				zap.Float64("threshold", d.threshold))
			return true
		}
	}

	d.vectors = append(d.vectors, vector)
	return false
}

// Reset discards all vectors accumulated during the current run.
func (d *Detector) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.vectors = nil
}

// Size returns the number of stored vectors.
func (d *Detector) Size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.vectors)
}

// cosineSimilarity returns the dot product of a and b divided by the
// product of their magnitudes, in [-1, 1]. Mismatched lengths and zero
// vectors yield 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
