package factory

import (
	"go.uber.org/zap"

	"github.com/mikey/llm-email-triage/internal/config"
	"github.com/mikey/llm-email-triage/internal/core"
	"github.com/mikey/llm-email-triage/internal/dedup"
)

// DetectorFactory creates duplicate detectors
type DetectorFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewDetectorFactory creates a new detector factory
func NewDetectorFactory(cfg *config.Config, logger *zap.Logger) *DetectorFactory {
	return &DetectorFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateDetector creates a duplicate detector. When deduplication is
// disabled every message is treated as unique and no embedder is built.
func (f *DetectorFactory) CreateDetector(embedderFactory *EmbedderFactory) (core.DuplicateDetector, error) {
	if !f.cfg.GetBool("dedup.enabled") {
		f.logger.Info("Duplicate detection disabled")
		return dedup.NewDisabledDetector(), nil
	}

	embedder, err := embedderFactory.CreateEmbedder()
	if err != nil {
		return nil, err
	}

	threshold := f.cfg.GetFloat64("dedup.threshold")
	return dedup.NewDetector(embedder, threshold, f.logger), nil
}
