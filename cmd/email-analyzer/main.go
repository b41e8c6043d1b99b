package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/llm-email-triage/internal/config"
	"github.com/mikey/llm-email-triage/internal/core"
	"github.com/mikey/llm-email-triage/internal/di"
	"github.com/mikey/llm-email-triage/internal/utils"
)

func main() {
	flags := di.ParseFlags()

	// Build the dependency injection container
	container, err := di.BuildCLIContainer(flags)
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the analysis
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run analyzes a single message and prints the result
func run(
	logger *zap.Logger,
	flags *di.CLIFlags,
	cfg *config.Config,
	decomposer core.Decomposer,
	analyzer core.Analyzer,
	textProcessor *utils.TextProcessor,
) error {
	defer logger.Sync()

	// Read email from file or stdin
	var emailReader io.Reader
	if flags.InputFile != "" {
		file, err := os.Open(flags.InputFile)
		if err != nil {
			logger.Fatal("Failed to open input file", zap.Error(err), zap.String("file", flags.InputFile))
		}
		defer file.Close()
		emailReader = file
		logger.Info("Reading email from file", zap.String("file", flags.InputFile))
	} else {
		emailReader = os.Stdin
		logger.Info("Reading email from stdin")
	}

	raw, err := io.ReadAll(emailReader)
	if err != nil {
		logger.Fatal("Failed to read email", zap.Error(err))
	}

	// Decompose the message into body and attachment text
	email := decomposer.Decompose(raw)
	combined := email.CombinedText()

	// Print email summary
	fmt.Printf("\n=== Email Summary ===\n")
	fmt.Printf("From: %s\n", email.From)
	fmt.Printf("To: %s\n", strings.Join(email.To, ", "))
	fmt.Printf("Subject: %s\n", email.Subject)
	fmt.Printf("Body length: %d bytes\n", len(email.Body))
	fmt.Printf("Attachment text length: %d bytes\n", len(email.AttachmentText))
	fmt.Printf("\n")

	// Analyze email
	fmt.Printf("=== Analysis ===\n")
	fmt.Printf("Provider: %s\n", cfg.GetString("llm.provider"))

	pipeline := cfg.GetPipeline()
	analysisInput := &core.Email{
		From:    email.From,
		To:      email.To,
		Subject: email.Subject,
		Date:    email.Date,
		Headers: email.Headers,
		Body:    textProcessor.ProcessText(combined, pipeline.MaxPromptSize),
	}

	startTime := time.Now()
	result, err := analyzer.AnalyzeEmail(context.Background(), analysisInput)
	if err != nil {
		logger.Fatal("Failed to analyze email", zap.Error(err))
	}
	duration := time.Since(startTime)

	// Print results
	fmt.Printf("\n=== Results ===\n")
	fmt.Printf("Intent: %s\n", result.PrimaryIntent)
	fmt.Printf("Priority: %s\n", result.Priority)
	fmt.Printf("Sentiment: %s\n", result.Sentiment)
	fmt.Printf("Summary: %s\n", result.Summary)
	fmt.Printf("Key entities: %s\n", strings.Join(result.KeyEntities, ", "))
	fmt.Printf("Multiple requests: %s\n", strings.Join(result.MultipleRequests, "; "))
	fmt.Printf("Requires followup: %t\n", len(result.MultipleRequests) > 0)
	fmt.Printf("Model used: %s\n", result.ModelUsed)
	fmt.Printf("Processing time: %v\n", duration)

	// Close any resources that need closing
	if closer, ok := analyzer.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close analyzer", zap.Error(err))
		}
	}

	return nil
}
