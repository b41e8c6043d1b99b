package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mikey/llm-email-triage/internal/adapters/bedrock"
	"github.com/mikey/llm-email-triage/internal/adapters/gemini"
	"github.com/mikey/llm-email-triage/internal/adapters/openai"
	"github.com/mikey/llm-email-triage/internal/config"
	"github.com/mikey/llm-email-triage/internal/core"
)

// EmbedderFactory creates text embedders for duplicate detection
type EmbedderFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewEmbedderFactory creates a new embedder factory
func NewEmbedderFactory(cfg *config.Config, logger *zap.Logger) *EmbedderFactory {
	return &EmbedderFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateEmbedder creates a new embedder based on the configured provider.
// The embedding provider is configured independently of the LLM provider
// so a cheap embedding model can back an expensive analysis model.
func (f *EmbedderFactory) CreateEmbedder() (core.Embedder, error) {
	provider := f.cfg.GetString("embedding.provider")

	switch provider {
	case "bedrock":
		return bedrock.NewFactory(f.cfg, f.logger).CreateEmbedder()
	case "gemini":
		return gemini.NewFactory(f.cfg, f.logger).CreateEmbedder()
	case "openai":
		return openai.NewFactory(f.cfg, f.logger).CreateEmbedder()
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", provider)
	}
}
