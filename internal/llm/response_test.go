package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikey/llm-email-triage/internal/core"
)

func TestParseAnalysisValid(t *testing.T) {
	raw := `{
		"primary_intent": "billing",
		"priority": "high",
		"summary": "Customer disputes a charge.",
		"sentiment": "negative",
		"key_entities": ["invoice 42", "March 3rd"],
		"multiple_requests": ["refund", "call back"]
	}`

	result, err := ParseAnalysis(raw, "gpt-4")
	require.NoError(t, err)

	assert.Equal(t, core.IntentBilling, result.PrimaryIntent)
	assert.Equal(t, core.PriorityHigh, result.Priority)
	assert.Equal(t, "Customer disputes a charge.", result.Summary)
	assert.Equal(t, core.SentimentNegative, result.Sentiment)
	assert.Equal(t, []string{"invoice 42", "March 3rd"}, result.KeyEntities)
	assert.Equal(t, []string{"refund", "call back"}, result.MultipleRequests)
	assert.Equal(t, "gpt-4", result.ModelUsed)
	assert.False(t, result.AnalyzedAt.IsZero())
}

func TestParseAnalysisWrappedInProse(t *testing.T) {
	raw := "Here is the analysis you asked for:\n" +
		`{"primary_intent": "support", "priority": "low", "summary": "Question about setup.", "sentiment": "neutral"}` +
		"\nLet me know if you need anything else."

	result, err := ParseAnalysis(raw, "gemini-pro")
	require.NoError(t, err)
	assert.Equal(t, core.IntentSupport, result.PrimaryIntent)
	assert.Equal(t, core.PriorityLow, result.Priority)
}

func TestParseAnalysisMissingRequiredFields(t *testing.T) {
	raw := `{"primary_intent": "sales", "summary": "An offer."}`

	_, err := ParseAnalysis(raw, "gpt-4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required fields")
	assert.Contains(t, err.Error(), "priority")
	assert.Contains(t, err.Error(), "sentiment")
}

func TestParseAnalysisNotJSON(t *testing.T) {
	_, err := ParseAnalysis("I could not classify this email.", "gpt-4")
	assert.Error(t, err)
}

func TestParseAnalysisNormalizesEnums(t *testing.T) {
	raw := `{"primary_intent": "SPAM", "priority": "urgent", "summary": "x", "sentiment": "furious"}`

	result, err := ParseAnalysis(raw, "gpt-4")
	require.NoError(t, err)
	assert.Equal(t, core.IntentUnknown, result.PrimaryIntent)
	assert.Equal(t, core.PriorityMedium, result.Priority)
	assert.Equal(t, core.SentimentUnknown, result.Sentiment)
}

func TestParseAnalysisDefaultsOptionalLists(t *testing.T) {
	raw := `{"primary_intent": "other", "priority": "medium", "summary": "x", "sentiment": "neutral"}`

	result, err := ParseAnalysis(raw, "gpt-4")
	require.NoError(t, err)
	assert.NotNil(t, result.KeyEntities)
	assert.NotNil(t, result.MultipleRequests)
	assert.Empty(t, result.KeyEntities)
	assert.Empty(t, result.MultipleRequests)
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("email body text")
	assert.Contains(t, prompt, "email body text")
	assert.Contains(t, prompt, "primary_intent")
	assert.Contains(t, prompt, "multiple_requests")
	assert.Contains(t, prompt, "Respond only with the JSON object")
}
