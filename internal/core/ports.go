package core

import (
	"context"
)

// Analyzer classifies an email's combined text via an LLM service.
type Analyzer interface {
	// AnalyzeEmail returns the structured analysis of an email.
	AnalyzeEmail(ctx context.Context, email *Email) (*AnalysisResult, error)
}

// Embedder produces a semantic embedding vector for a text blob.
type Embedder interface {
	// EmbedText returns a fixed-length vector representing text.
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// Decomposer splits a raw message into body text and attachment text.
// Implementations never fail: undecodable content degrades to empty text.
type Decomposer interface {
	Decompose(raw []byte) *Email
}

// DuplicateDetector decides whether text duplicates previously seen content.
type DuplicateDetector interface {
	// IsDuplicate reports whether text is semantically close to content
	// already seen in this run. Detection failures report false (fail open).
	IsDuplicate(ctx context.Context, text string) bool

	// Reset discards all state accumulated during the current run.
	Reset()
}

// EmailRepository persists and retrieves processed email records.
type EmailRepository interface {
	// Save stores a record and fills in its assigned ID.
	Save(ctx context.Context, record *EmailRecord) error

	// List returns all stored records, oldest first.
	List(ctx context.Context) ([]*EmailRecord, error)

	// UpdateFeedback sets the feedback field of an existing record.
	UpdateFeedback(ctx context.Context, id int64, feedback string) error
}

// MessageSource is a finite, non-restartable stream of raw messages
// produced by a mailbox transport for one run.
type MessageSource interface {
	// Next returns the next raw message, or io.EOF when the sequence is
	// exhausted. Any other error is a transport failure that ends the run.
	Next(ctx context.Context) ([]byte, error)

	// Close releases the underlying connection.
	Close() error
}
