package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mikey/llm-email-triage/internal/core"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "emails.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStoreRoundtrip(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	record := testRecord("sqlite roundtrip")
	require.NoError(t, s.Save(ctx, record))
	assert.Equal(t, int64(1), record.ID)

	records, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, record.ID, got.ID)
	assert.Equal(t, "alice@example.com", got.Sender)
	assert.Equal(t, "sqlite roundtrip", got.Subject)
	assert.Equal(t, "body text", got.Body)
	assert.Equal(t, core.PriorityHigh, got.Priority)
	assert.Equal(t, core.IntentBilling, got.Intent)
	assert.True(t, got.RequiresFollowup)
	assert.Equal(t, "", got.Feedback)
	assert.True(t, record.Date.Equal(got.Date))
	assert.True(t, record.ProcessedAt.Equal(got.ProcessedAt))
}

func TestSQLiteStoreListOrder(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, testRecord("one")))
	require.NoError(t, s.Save(ctx, testRecord("two")))
	require.NoError(t, s.Save(ctx, testRecord("three")))

	records, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "one", records[0].Subject)
	assert.Equal(t, "two", records[1].Subject)
	assert.Equal(t, "three", records[2].Subject)
}

func TestSQLiteStoreUpdateFeedback(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	record := testRecord("feedback target")
	require.NoError(t, s.Save(ctx, record))

	require.NoError(t, s.UpdateFeedback(ctx, record.ID, "wrong priority"))

	records, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "wrong priority", records[0].Feedback)

	assert.ErrorIs(t, s.UpdateFeedback(ctx, 999, "x"), ErrNotFound)
}
