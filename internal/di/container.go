package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/llm-email-triage/internal/config"
	"github.com/mikey/llm-email-triage/internal/core"
	"github.com/mikey/llm-email-triage/internal/decompose"
	"github.com/mikey/llm-email-triage/internal/extract"
	"github.com/mikey/llm-email-triage/internal/factory"
	"github.com/mikey/llm-email-triage/internal/logging"
	"github.com/mikey/llm-email-triage/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewAnalyzerFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewEmbedderFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewDetectorFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewStoreFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewSourceFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}

	// Register attachment extractor registry
	if err := container.Provide(extract.NewRegistry); err != nil {
		return nil, err
	}

	// Register decomposer
	if err := container.Provide(func(registry *extract.Registry, cfg *config.Config, logger *zap.Logger) core.Decomposer {
		return decompose.NewDecomposer(registry, cfg.GetPipeline().StripHTML, logger)
	}); err != nil {
		return nil, err
	}

	// Register analyzer
	if err := container.Provide(func(f *factory.AnalyzerFactory) (core.Analyzer, error) {
		return f.CreateAnalyzer()
	}); err != nil {
		return nil, err
	}

	// Register duplicate detector
	if err := container.Provide(func(f *factory.DetectorFactory, ef *factory.EmbedderFactory) (core.DuplicateDetector, error) {
		return f.CreateDetector(ef)
	}); err != nil {
		return nil, err
	}

	// Register email repository
	if err := container.Provide(func(f *factory.StoreFactory) (core.EmailRepository, error) {
		return f.CreateEmailRepository()
	}); err != nil {
		return nil, err
	}

	// Register triage service
	if err := container.Provide(func(
		decomposer core.Decomposer,
		detector core.DuplicateDetector,
		analyzer core.Analyzer,
		repo core.EmailRepository,
		textProcessor *utils.TextProcessor,
		logger *zap.Logger,
		cfg *config.Config,
	) *core.TriageService {
		pipeline := cfg.GetPipeline()
		return core.NewTriageService(
			decomposer,
			detector,
			analyzer,
			repo,
			textProcessor,
			logger,
			pipeline.MaxPromptSize,
			pipeline.RetryAttempts,
			pipeline.RetryBackoff,
			pipeline.MessageTimeout,
		)
	}); err != nil {
		return nil, err
	}

	return container, nil
}
