package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/llm-email-triage/internal/adapters/smtpingest"
	"github.com/mikey/llm-email-triage/internal/adapters/web"
	"github.com/mikey/llm-email-triage/internal/config"
	"github.com/mikey/llm-email-triage/internal/core"
	"github.com/mikey/llm-email-triage/internal/di"
	"github.com/mikey/llm-email-triage/internal/factory"
	"github.com/mikey/llm-email-triage/internal/ports"
)

func main() {
	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	logger *zap.Logger,
	cfg *config.Config,
	service *core.TriageService,
	repo core.EmailRepository,
	analyzer core.Analyzer,
	sourceFactory *factory.SourceFactory,
) error {
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var servers []ports.Server

	// Start the HTTP API
	if cfg.GetBool("server.http.enabled") {
		servers = append(servers, web.NewServer(repo, logger, cfg.GetString("server.http.listen_address")))
	}

	// Start the SMTP ingestion server
	if cfg.GetBool("server.smtp.enabled") {
		servers = append(servers, smtpingest.NewServer(
			service,
			logger,
			cfg.GetString("server.smtp.listen_address"),
			cfg.GetString("server.smtp.domain"),
			cfg.GetPipeline().MessageTimeout,
		))
	}

	for _, srv := range servers {
		if err := srv.Start(); err != nil {
			logger.Error("Failed to start server", zap.Error(err))
			return err
		}
	}

	// Poll the mailbox until shutdown
	go pollMailbox(ctx, logger, cfg, service, sourceFactory)

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	<-sigCh
	logger.Info("Shutting down...")
	cancel()

	for _, srv := range servers {
		if err := srv.Stop(); err != nil {
			logger.Error("Failed to stop server", zap.Error(err))
		}
	}

	// Close any resources that need closing
	if closer, ok := analyzer.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close analyzer", zap.Error(err))
		}
	}
	if closer, ok := repo.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close repository", zap.Error(err))
		}
	}

	logger.Info("Shutdown complete")
	return nil
}

// pollMailbox runs one pass over the mailbox immediately and then on
// every tick of the configured poll interval. A fresh source is opened
// per pass so each run sees the mailbox's current state.
func pollMailbox(
	ctx context.Context,
	logger *zap.Logger,
	cfg *config.Config,
	service *core.TriageService,
	sourceFactory *factory.SourceFactory,
) {
	interval := cfg.GetPipeline().PollInterval
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	runOnce(ctx, logger, service, sourceFactory)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce(ctx, logger, service, sourceFactory)
		}
	}
}

func runOnce(
	ctx context.Context,
	logger *zap.Logger,
	service *core.TriageService,
	sourceFactory *factory.SourceFactory,
) {
	src, err := sourceFactory.CreateMessageSource(ctx)
	if err != nil {
		logger.Error("Failed to open message source", zap.Error(err))
		return
	}
	defer src.Close()

	if err := service.Run(ctx, src); err != nil {
		logger.Error("Mailbox run aborted", zap.Error(err))
	}
}
