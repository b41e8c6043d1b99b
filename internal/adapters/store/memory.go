package store

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/mikey/llm-email-triage/internal/core"
)

// MemoryStore is an in-memory implementation of the EmailRepository
// interface, used by the CLI and by tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[int64]*core.EmailRecord
	nextID  int64
	logger  *zap.Logger
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	return &MemoryStore{
		records: make(map[int64]*core.EmailRecord),
		nextID:  1,
		logger:  logger,
	}
}

// Save stores a record and assigns its ID.
func (s *MemoryStore) Save(_ context.Context, record *core.EmailRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record.ID = s.nextID
	s.nextID++

	stored := *record
	s.records[record.ID] = &stored
	return nil
}

// List returns all stored records ordered by ID.
func (s *MemoryStore) List(_ context.Context) ([]*core.EmailRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]*core.EmailRecord, 0, len(s.records))
	for _, record := range s.records {
		copied := *record
		records = append(records, &copied)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

// UpdateFeedback sets the feedback field of an existing record.
func (s *MemoryStore) UpdateFeedback(_ context.Context, id int64, feedback string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[id]
	if !ok {
		return ErrNotFound
	}
	record.Feedback = feedback
	return nil
}
