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

// AnalyzerFactory creates LLM analyzers
type AnalyzerFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewAnalyzerFactory creates a new analyzer factory
func NewAnalyzerFactory(cfg *config.Config, logger *zap.Logger) *AnalyzerFactory {
	return &AnalyzerFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateAnalyzer creates a new analyzer based on the configured provider
func (f *AnalyzerFactory) CreateAnalyzer() (core.Analyzer, error) {
	provider := f.cfg.GetString("llm.provider")

	switch provider {
	case "bedrock":
		return bedrock.NewFactory(f.cfg, f.logger).CreateAnalyzer()
	case "gemini":
		return gemini.NewFactory(f.cfg, f.logger).CreateAnalyzer()
	case "openai":
		return openai.NewFactory(f.cfg, f.logger).CreateAnalyzer()
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
}
