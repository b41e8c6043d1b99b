package openai

import (
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/mikey/llm-email-triage/internal/config"
	"github.com/mikey/llm-email-triage/internal/core"
)

// Factory creates OpenAI-backed analyzers and embedders sharing one client
type Factory struct {
	cfg    *config.Config
	logger *zap.Logger
	client *openai.Client
}

// NewFactory creates a new factory for OpenAI adapters
func NewFactory(cfg *config.Config, logger *zap.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		logger: logger,
		client: openai.NewClient(cfg.GetOpenAI().APIKey),
	}
}

// CreateAnalyzer creates a new OpenAI analyzer
func (f *Factory) CreateAnalyzer() (core.Analyzer, error) {
	openaiCfg := f.cfg.GetOpenAI()
	return NewAnalyzer(
		f.client,
		openaiCfg.ModelName,
		openaiCfg.MaxTokens,
		openaiCfg.Temperature,
		openaiCfg.TopP,
		f.logger,
	), nil
}

// CreateEmbedder creates a new OpenAI embedder
func (f *Factory) CreateEmbedder() (core.Embedder, error) {
	return NewEmbedder(f.client, f.cfg.GetString("embedding.openai_model"), f.logger), nil
}
