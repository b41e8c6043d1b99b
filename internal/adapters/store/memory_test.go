package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mikey/llm-email-triage/internal/core"
)

func testRecord(subject string) *core.EmailRecord {
	return &core.EmailRecord{
		Sender:           "alice@example.com",
		Subject:          subject,
		Date:             time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		Body:             "body text",
		Priority:         core.PriorityHigh,
		Intent:           core.IntentBilling,
		RequiresFollowup: true,
		ProcessedAt:      time.Date(2025, 3, 1, 12, 5, 0, 0, time.UTC),
	}
}

func TestMemoryStoreSaveAssignsIDs(t *testing.T) {
	s := NewMemoryStore(zap.NewNop())
	ctx := context.Background()

	first := testRecord("first")
	second := testRecord("second")
	require.NoError(t, s.Save(ctx, first))
	require.NoError(t, s.Save(ctx, second))

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
}

func TestMemoryStoreListReturnsCopies(t *testing.T) {
	s := NewMemoryStore(zap.NewNop())
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, testRecord("second")))
	require.NoError(t, s.Save(ctx, testRecord("first")))

	records, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(1), records[0].ID)
	assert.Equal(t, int64(2), records[1].ID)

	// Mutating a listed record must not affect the store
	records[0].Feedback = "mutated"
	again, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", again[0].Feedback)
}

func TestMemoryStoreUpdateFeedback(t *testing.T) {
	s := NewMemoryStore(zap.NewNop())
	ctx := context.Background()

	record := testRecord("needs feedback")
	require.NoError(t, s.Save(ctx, record))

	require.NoError(t, s.UpdateFeedback(ctx, record.ID, "correct classification"))

	records, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "correct classification", records[0].Feedback)
}

func TestMemoryStoreUpdateFeedbackNotFound(t *testing.T) {
	s := NewMemoryStore(zap.NewNop())

	err := s.UpdateFeedback(context.Background(), 99, "whatever")
	assert.ErrorIs(t, err, ErrNotFound)
}
