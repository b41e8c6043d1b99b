package gemini

import (
	"go.uber.org/zap"

	"github.com/mikey/llm-email-triage/internal/config"
	"github.com/mikey/llm-email-triage/internal/core"
)

// Factory creates Gemini-backed analyzers and embedders
type Factory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewFactory creates a new factory for Gemini adapters
func NewFactory(cfg *config.Config, logger *zap.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateAnalyzer creates a new Gemini analyzer
func (f *Factory) CreateAnalyzer() (core.Analyzer, error) {
	geminiCfg := f.cfg.GetGemini()
	return NewAnalyzer(
		geminiCfg.APIKey,
		geminiCfg.ModelName,
		geminiCfg.MaxTokens,
		geminiCfg.Temperature,
		geminiCfg.TopP,
		f.logger,
	)
}

// CreateEmbedder creates a new Gemini embedder
func (f *Factory) CreateEmbedder() (core.Embedder, error) {
	return NewEmbedder(
		f.cfg.GetGemini().APIKey,
		f.cfg.GetString("embedding.gemini_model"),
		f.logger,
	)
}
