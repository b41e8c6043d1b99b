package llm

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mikey/llm-email-triage/internal/core"
)

// analysisResponse mirrors the JSON object the prompt asks for. Pointer
// fields distinguish a missing required field from an empty one.
type analysisResponse struct {
	PrimaryIntent    *string  `json:"primary_intent"`
	Priority         *string  `json:"priority"`
	Summary          *string  `json:"summary"`
	Sentiment        *string  `json:"sentiment"`
	KeyEntities      []string `json:"key_entities"`
	MultipleRequests []string `json:"multiple_requests"`
}

// ParseAnalysis parses and validates a raw LLM response. Models sometimes
// wrap the JSON object in prose, so on a direct unmarshal failure the text
// between the outermost braces is retried. A response missing any of the
// required fields (primary_intent, priority, summary, sentiment) is a
// parse error.
func ParseAnalysis(responseText, modelUsed string) (*core.AnalysisResult, error) {
	var resp analysisResponse
	if err := json.Unmarshal([]byte(responseText), &resp); err != nil {
		salvaged, ok := extractJSONObject(responseText)
		if !ok {
			return nil, fmt.Errorf("failed to extract JSON from LLM response: %w", err)
		}
		if err := json.Unmarshal([]byte(salvaged), &resp); err != nil {
			return nil, fmt.Errorf("failed to parse LLM response as JSON: %w", err)
		}
	}

	var missing []string
	for field, value := range map[string]*string{
		"primary_intent": resp.PrimaryIntent,
		"priority":       resp.Priority,
		"summary":        resp.Summary,
		"sentiment":      resp.Sentiment,
	} {
		if value == nil {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("LLM response missing required fields: %s", strings.Join(missing, ", "))
	}

	result := &core.AnalysisResult{
		PrimaryIntent:    core.ParseIntent(*resp.PrimaryIntent),
		Priority:         core.ParsePriority(*resp.Priority),
		Summary:          *resp.Summary,
		Sentiment:        core.ParseSentiment(*resp.Sentiment),
		KeyEntities:      resp.KeyEntities,
		MultipleRequests: resp.MultipleRequests,
		AnalyzedAt:       time.Now(),
		ModelUsed:        modelUsed,
	}
	if result.KeyEntities == nil {
		result.KeyEntities = []string{}
	}
	if result.MultipleRequests == nil {
		result.MultipleRequests = []string{}
	}
	return result, nil
}

// extractJSONObject returns the substring between the first '{' and the
// last '}' of text.
func extractJSONObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}
