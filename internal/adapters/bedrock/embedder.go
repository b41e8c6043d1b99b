package bedrock

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"go.uber.org/zap"
)

// Embedder implements the core.Embedder interface using an Amazon Titan
// embedding model on Bedrock.
type Embedder struct {
	client  *bedrockruntime.Client
	modelID string
	logger  *zap.Logger
}

// NewEmbedder creates a new Bedrock embedder.
func NewEmbedder(client *bedrockruntime.Client, modelID string, logger *zap.Logger) *Embedder {
	return &Embedder{
		client:  client,
		modelID: modelID,
		logger:  logger,
	}
}

// EmbedText returns the embedding vector for text.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	payload, err := json.Marshal(map[string]string{"inputText": text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal embedding payload: %w", err)
	}

	resp, err := e.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     &e.modelID,
		Body:        payload,
		Accept:      aws.String("application/json"),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to invoke Bedrock embedding model: %w", err)
	}

	var embeddingResp struct {
		Embedding []float32 `json:"embedding"`
	}
	if err := json.Unmarshal(resp.Body, &embeddingResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal embedding response: %w", err)
	}
	if len(embeddingResp.Embedding) == 0 {
		return nil, fmt.Errorf("empty embedding response from Bedrock")
	}
	return embeddingResp.Embedding, nil
}
