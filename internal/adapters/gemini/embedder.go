package gemini

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// Embedder implements the core.Embedder interface using a Gemini
// embedding model.
type Embedder struct {
	client *genai.Client
	model  *genai.EmbeddingModel
	logger *zap.Logger
}

// NewEmbedder creates a new Gemini embedder.
func NewEmbedder(apiKey, modelName string, logger *zap.Logger) (*Embedder, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Embedder{
		client: client,
		model:  client.EmbeddingModel(modelName),
		logger: logger,
	}, nil
}

// Close closes the underlying Gemini client.
func (e *Embedder) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// EmbedText returns the embedding vector for text.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("failed to embed content with Gemini: %w", err)
	}
	if resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("empty embedding response from Gemini")
	}
	return resp.Embedding.Values, nil
}
