package core

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mikey/llm-email-triage/internal/utils"
)

type stubDecomposer struct {
	email *Email
}

func (d *stubDecomposer) Decompose(_ []byte) *Email {
	return d.email
}

type stubDetector struct {
	duplicate bool
	calls     []string
	resets    int
}

func (d *stubDetector) IsDuplicate(_ context.Context, text string) bool {
	d.calls = append(d.calls, text)
	return d.duplicate
}

func (d *stubDetector) Reset() {
	d.resets++
}

type stubAnalyzer struct {
	result   *AnalysisResult
	err      error
	failures int
	calls    int
	prompts  []string
}

func (a *stubAnalyzer) AnalyzeEmail(_ context.Context, email *Email) (*AnalysisResult, error) {
	a.calls++
	a.prompts = append(a.prompts, email.Body)
	if a.err != nil && (a.failures == 0 || a.calls <= a.failures) {
		return nil, a.err
	}
	return a.result, nil
}

type stubRepo struct {
	saved []*EmailRecord
	err   error
}

func (r *stubRepo) Save(_ context.Context, record *EmailRecord) error {
	if r.err != nil {
		return r.err
	}
	record.ID = int64(len(r.saved) + 1)
	r.saved = append(r.saved, record)
	return nil
}

func (r *stubRepo) List(_ context.Context) ([]*EmailRecord, error) {
	return r.saved, nil
}

func (r *stubRepo) UpdateFeedback(_ context.Context, _ int64, _ string) error {
	return nil
}

type stubSource struct {
	messages [][]byte
	err      error
	pos      int
}

func (s *stubSource) Next(_ context.Context) ([]byte, error) {
	if s.pos >= len(s.messages) {
		if s.err != nil {
			return nil, s.err
		}
		return nil, io.EOF
	}
	raw := s.messages[s.pos]
	s.pos++
	return raw, nil
}

func (s *stubSource) Close() error {
	return nil
}

func newTestService(
	decomposer Decomposer,
	detector DuplicateDetector,
	analyzer Analyzer,
	repo EmailRepository,
	maxPromptSize int,
) *TriageService {
	logger := zap.NewNop()
	return NewTriageService(
		decomposer,
		detector,
		analyzer,
		repo,
		utils.NewTextProcessor(logger),
		logger,
		maxPromptSize,
		3,
		time.Millisecond,
		time.Second,
	)
}

func testEmail() *Email {
	return &Email{
		From:           "alice@example.com",
		To:             []string{"support@example.com"},
		Subject:        "Invoice question",
		Date:           time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		Body:           "Why was I charged twice?",
		AttachmentText: "invoice.pdf contents\n",
	}
}

func testAnalysis() *AnalysisResult {
	return &AnalysisResult{
		PrimaryIntent:    IntentBilling,
		Priority:         PriorityHigh,
		Summary:          "Customer disputes a duplicate charge.",
		Sentiment:        SentimentNegative,
		KeyEntities:      []string{"invoice"},
		MultipleRequests: []string{},
		AnalyzedAt:       time.Now(),
		ModelUsed:        "test-model",
	}
}

func TestProcessMessageHappyPath(t *testing.T) {
	email := testEmail()
	repo := &stubRepo{}
	analyzer := &stubAnalyzer{result: testAnalysis()}
	svc := newTestService(&stubDecomposer{email: email}, &stubDetector{}, analyzer, repo, 3000)

	record, err := svc.ProcessMessage(context.Background(), []byte("raw"))
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.Equal(t, int64(1), record.ID)
	assert.Equal(t, "alice@example.com", record.Sender)
	assert.Equal(t, "Invoice question", record.Subject)
	assert.Equal(t, email.CombinedText(), record.Body)
	assert.Equal(t, PriorityHigh, record.Priority)
	assert.Equal(t, IntentBilling, record.Intent)
	assert.False(t, record.RequiresFollowup)
	assert.False(t, record.ProcessedAt.IsZero())
	assert.Len(t, repo.saved, 1)
	assert.Equal(t, 1, analyzer.calls)
}

func TestProcessMessageDuplicateDropped(t *testing.T) {
	repo := &stubRepo{}
	analyzer := &stubAnalyzer{result: testAnalysis()}
	detector := &stubDetector{duplicate: true}
	svc := newTestService(&stubDecomposer{email: testEmail()}, detector, analyzer, repo, 3000)

	record, err := svc.ProcessMessage(context.Background(), []byte("raw"))
	require.NoError(t, err)
	assert.Nil(t, record)
	assert.Zero(t, analyzer.calls)
	assert.Empty(t, repo.saved)
	// The detector saw the full combined text
	require.Len(t, detector.calls, 1)
	assert.Equal(t, testEmail().CombinedText(), detector.calls[0])
}

func TestProcessMessageRetriesThenSucceeds(t *testing.T) {
	repo := &stubRepo{}
	analyzer := &stubAnalyzer{result: testAnalysis(), err: errors.New("rate limited"), failures: 2}
	svc := newTestService(&stubDecomposer{email: testEmail()}, &stubDetector{}, analyzer, repo, 3000)

	record, err := svc.ProcessMessage(context.Background(), []byte("raw"))
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.Equal(t, 3, analyzer.calls)
	assert.Equal(t, IntentBilling, record.Intent)
}

func TestProcessMessageFallbackAfterExhaustedRetries(t *testing.T) {
	repo := &stubRepo{}
	analyzer := &stubAnalyzer{err: errors.New("provider down")}
	svc := newTestService(&stubDecomposer{email: testEmail()}, &stubDetector{}, analyzer, repo, 3000)

	record, err := svc.ProcessMessage(context.Background(), []byte("raw"))
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.Equal(t, 3, analyzer.calls)
	assert.Equal(t, IntentUnknown, record.Intent)
	assert.Equal(t, PriorityMedium, record.Priority)
	assert.False(t, record.RequiresFollowup)
	// The fallback record is still persisted
	assert.Len(t, repo.saved, 1)
}

func TestProcessMessageTruncatesPromptNotRecord(t *testing.T) {
	email := testEmail()
	email.Body = strings.Repeat("a", 5000)
	repo := &stubRepo{}
	analyzer := &stubAnalyzer{result: testAnalysis()}
	svc := newTestService(&stubDecomposer{email: email}, &stubDetector{}, analyzer, repo, 3000)

	record, err := svc.ProcessMessage(context.Background(), []byte("raw"))
	require.NoError(t, err)
	require.NotNil(t, record)

	require.Len(t, analyzer.prompts, 1)
	assert.LessOrEqual(t, len(analyzer.prompts[0]), 3000+len("\n[... Content truncated due to size limits ...]"))
	assert.Contains(t, analyzer.prompts[0], "Content truncated")
	// The persisted body keeps the full text
	assert.Equal(t, email.CombinedText(), record.Body)
	assert.NotContains(t, record.Body, "Content truncated")
}

func TestProcessMessageFollowupFlag(t *testing.T) {
	analysis := testAnalysis()
	analysis.MultipleRequests = []string{"refund the charge", "update billing address"}
	analyzer := &stubAnalyzer{result: analysis}
	svc := newTestService(&stubDecomposer{email: testEmail()}, &stubDetector{}, analyzer, &stubRepo{}, 3000)

	record, err := svc.ProcessMessage(context.Background(), []byte("raw"))
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.True(t, record.RequiresFollowup)
}

func TestProcessMessagePersistFailureIsNotFatal(t *testing.T) {
	repo := &stubRepo{err: errors.New("disk full")}
	analyzer := &stubAnalyzer{result: testAnalysis()}
	svc := newTestService(&stubDecomposer{email: testEmail()}, &stubDetector{}, analyzer, repo, 3000)

	record, err := svc.ProcessMessage(context.Background(), []byte("raw"))
	require.NoError(t, err)
	assert.NotNil(t, record)
}

func TestRunProcessesAllMessages(t *testing.T) {
	repo := &stubRepo{}
	detector := &stubDetector{}
	analyzer := &stubAnalyzer{result: testAnalysis()}
	svc := newTestService(&stubDecomposer{email: testEmail()}, detector, analyzer, repo, 3000)

	src := &stubSource{messages: [][]byte{[]byte("one"), []byte("two"), []byte("three")}}
	err := svc.Run(context.Background(), src)
	require.NoError(t, err)

	assert.Len(t, repo.saved, 3)
	assert.Equal(t, 1, detector.resets)
}

func TestRunReturnsTransportError(t *testing.T) {
	repo := &stubRepo{}
	analyzer := &stubAnalyzer{result: testAnalysis()}
	svc := newTestService(&stubDecomposer{email: testEmail()}, &stubDetector{}, analyzer, repo, 3000)

	transportErr := errors.New("connection reset")
	src := &stubSource{messages: [][]byte{[]byte("one")}, err: transportErr}
	err := svc.Run(context.Background(), src)
	assert.ErrorIs(t, err, transportErr)
	// The message consumed before the failure was still processed
	assert.Len(t, repo.saved, 1)
}
