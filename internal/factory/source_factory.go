package factory

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mikey/llm-email-triage/internal/adapters/mailbox"
	"github.com/mikey/llm-email-triage/internal/config"
	"github.com/mikey/llm-email-triage/internal/core"
)

// SourceFactory creates message sources based on configuration
type SourceFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewSourceFactory creates a new source factory
func NewSourceFactory(cfg *config.Config, logger *zap.Logger) *SourceFactory {
	return &SourceFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateMessageSource opens a message source based on the configuration.
// A fresh source is opened for every polling run, so connection state
// never outlives a single pass over the mailbox.
func (f *SourceFactory) CreateMessageSource(ctx context.Context) (core.MessageSource, error) {
	sourceType := f.cfg.GetString("mailbox.type")

	switch sourceType {
	case "imap":
		return mailbox.OpenIMAP(ctx, f.cfg.GetIMAP(), f.logger)
	case "dir":
		return mailbox.OpenDir(f.cfg.GetString("mailbox.dir.path"), f.logger)
	default:
		return nil, fmt.Errorf("unsupported mailbox type: %s", sourceType)
	}
}
