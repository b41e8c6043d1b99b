package bedrock

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"go.uber.org/zap"

	"github.com/mikey/llm-email-triage/internal/config"
	"github.com/mikey/llm-email-triage/internal/core"
)

// Factory creates Bedrock-backed analyzers and embedders
type Factory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewFactory creates a new Bedrock factory
func NewFactory(cfg *config.Config, logger *zap.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateAnalyzer creates a new Bedrock analyzer
func (f *Factory) CreateAnalyzer() (core.Analyzer, error) {
	client, err := f.runtimeClient()
	if err != nil {
		return nil, err
	}

	bedrockCfg := f.cfg.GetBedrock()
	return NewAnalyzer(
		client,
		bedrockCfg.ModelID,
		bedrockCfg.MaxTokens,
		bedrockCfg.Temperature,
		bedrockCfg.TopP,
		f.logger,
	), nil
}

// CreateEmbedder creates a new Bedrock embedder
func (f *Factory) CreateEmbedder() (core.Embedder, error) {
	client, err := f.runtimeClient()
	if err != nil {
		return nil, err
	}
	return NewEmbedder(client, f.cfg.GetString("embedding.bedrock_model"), f.logger), nil
}

func (f *Factory) runtimeClient() (*bedrockruntime.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(f.cfg.GetBedrock().Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return bedrockruntime.NewFromConfig(awsCfg), nil
}
