package core

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mikey/llm-email-triage/internal/utils"
)

// TriageService sequences the pipeline for one message at a time:
// decomposition, duplicate detection, LLM analysis and persistence.
type TriageService struct {
	decomposer    Decomposer
	detector      DuplicateDetector
	analyzer      Analyzer
	repo          EmailRepository
	textProcessor *utils.TextProcessor
	logger        *zap.Logger

	maxPromptSize  int
	retryAttempts  int
	retryBackoff   time.Duration
	messageTimeout time.Duration
}

// NewTriageService creates a new triage service.
func NewTriageService(
	decomposer Decomposer,
	detector DuplicateDetector,
	analyzer Analyzer,
	repo EmailRepository,
	textProcessor *utils.TextProcessor,
	logger *zap.Logger,
	maxPromptSize int,
	retryAttempts int,
	retryBackoff time.Duration,
	messageTimeout time.Duration,
) *TriageService {
	return &TriageService{
		decomposer:     decomposer,
		detector:       detector,
		analyzer:       analyzer,
		repo:           repo,
		textProcessor:  textProcessor,
		logger:         logger,
		maxPromptSize:  maxPromptSize,
		retryAttempts:  retryAttempts,
		retryBackoff:   retryBackoff,
		messageTimeout: messageTimeout,
	}
}

// ProcessMessage runs one raw message through the pipeline. It returns nil
// without error when the message is dropped as a duplicate. A persistence
// failure is logged and does not fail the message: the record is returned
// and the duplicate detector keeps the text marked as seen.
func (s *TriageService) ProcessMessage(ctx context.Context, raw []byte) (*EmailRecord, error) {
	messageID := uuid.NewString()
	logger := s.logger.With(zap.String("message_id", messageID))

	email := s.decomposer.Decompose(raw)
	combined := email.CombinedText()

	logger.Debug("Decomposed message",
		zap.String("sender", email.From),
		zap.String("subject", email.Subject),
		zap.Int("body_size", len(email.Body)),
		zap.Int("attachment_text_size", len(email.AttachmentText)))

	if s.detector.IsDuplicate(ctx, combined) {
		logger.Info("Duplicate email detected, dropping",
			zap.String("sender", email.From),
			zap.String("subject", email.Subject))
		return nil, nil
	}

	analysis := s.analyzeWithRetry(ctx, logger, email, combined)

	record := &EmailRecord{
		Sender:           email.From,
		Subject:          email.Subject,
		Date:             email.Date,
		Body:             combined,
		Priority:         analysis.Priority,
		Intent:           analysis.PrimaryIntent,
		RequiresFollowup: len(analysis.MultipleRequests) > 0,
		ProcessedAt:      time.Now(),
	}

	if err := s.repo.Save(ctx, record); err != nil {
		// The text stays marked as seen: a later retry of the same message
		// would be dropped as a duplicate within this run.
		logger.Error("Failed to persist email record",
			zap.String("sender", email.From),
			zap.String("subject", email.Subject),
			zap.Error(err))
	}

	logger.Info("Processed email",
		zap.String("sender", email.From),
		zap.String("subject", email.Subject),
		zap.String("intent", string(analysis.PrimaryIntent)),
		zap.String("priority", string(analysis.Priority)),
		zap.Bool("requires_followup", record.RequiresFollowup))

	return record, nil
}

// analyzeWithRetry calls the analysis provider with the prompt text capped
// at maxPromptSize, retrying on failure and falling back to a default
// analysis once the budget is exhausted.
func (s *TriageService) analyzeWithRetry(ctx context.Context, logger *zap.Logger, email *Email, combined string) *AnalysisResult {
	prompt := s.textProcessor.ProcessText(combined, s.maxPromptSize)

	analysisInput := &Email{
		From:    email.From,
		To:      email.To,
		Subject: email.Subject,
		Date:    email.Date,
		Body:    prompt,
	}

	backoff := s.retryBackoff
	for attempt := 1; attempt <= s.retryAttempts; attempt++ {
		result, err := s.analyzer.AnalyzeEmail(ctx, analysisInput)
		if err == nil {
			return result
		}

		logger.Warn("Email analysis attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", s.retryAttempts),
			zap.Error(err))

		if attempt == s.retryAttempts {
			break
		}

		select {
		case <-time.After(backoff):
			backoff *= 2
		case <-ctx.Done():
			logger.Warn("Analysis retry cancelled", zap.Error(ctx.Err()))
			return DefaultAnalysisResult()
		}
	}

	logger.Error("Email analysis retry budget exhausted, using fallback analysis",
		zap.Int("attempts", s.retryAttempts))
	return DefaultAnalysisResult()
}

// Run consumes a message source to completion. Duplicate detection state is
// reset at the start, so the dedup scope is exactly one run. A transport
// error ends the iteration and is returned; per-message failures do not.
func (s *TriageService) Run(ctx context.Context, src MessageSource) error {
	s.detector.Reset()

	processed := 0
	dropped := 0
	for {
		raw, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			s.logger.Error("Mailbox transport error, ending run",
				zap.Int("processed", processed),
				zap.Error(err))
			return err
		}

		msgCtx, cancel := context.WithTimeout(ctx, s.messageTimeout)
		record, err := s.ProcessMessage(msgCtx, raw)
		cancel()
		if err != nil {
			s.logger.Error("Failed to process message", zap.Error(err))
			continue
		}
		if record == nil {
			dropped++
			continue
		}
		processed++
	}

	s.logger.Info("Run complete",
		zap.Int("processed", processed),
		zap.Int("dropped_duplicates", dropped))
	return nil
}
