package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIntent(t *testing.T) {
	assert.Equal(t, IntentSales, ParseIntent("sales"))
	assert.Equal(t, IntentSupport, ParseIntent(" Support "))
	assert.Equal(t, IntentBilling, ParseIntent("BILLING"))
	assert.Equal(t, IntentOther, ParseIntent("other"))
	assert.Equal(t, IntentUnknown, ParseIntent("spam"))
	assert.Equal(t, IntentUnknown, ParseIntent(""))
}

func TestParsePriority(t *testing.T) {
	assert.Equal(t, PriorityHigh, ParsePriority("High"))
	assert.Equal(t, PriorityLow, ParsePriority("low"))
	assert.Equal(t, PriorityMedium, ParsePriority("medium"))
	// Unrecognized values degrade to medium rather than unknown
	assert.Equal(t, PriorityMedium, ParsePriority("urgent"))
	assert.Equal(t, PriorityMedium, ParsePriority(""))
}

func TestParseSentiment(t *testing.T) {
	assert.Equal(t, SentimentPositive, ParseSentiment("positive"))
	assert.Equal(t, SentimentNeutral, ParseSentiment("Neutral"))
	assert.Equal(t, SentimentNegative, ParseSentiment("negative"))
	assert.Equal(t, SentimentUnknown, ParseSentiment("angry"))
}

func TestCombinedText(t *testing.T) {
	email := &Email{Body: "body text", AttachmentText: "attachment text\n"}
	assert.Equal(t, "body text\nattachment text\n", email.CombinedText())

	empty := &Email{}
	assert.Equal(t, "\n", empty.CombinedText())
}

func TestDefaultAnalysisResult(t *testing.T) {
	result := DefaultAnalysisResult()

	assert.Equal(t, IntentUnknown, result.PrimaryIntent)
	assert.Equal(t, PriorityMedium, result.Priority)
	assert.Equal(t, SentimentNeutral, result.Sentiment)
	assert.Equal(t, "No summary available.", result.Summary)
	assert.Equal(t, "fallback", result.ModelUsed)
	assert.NotNil(t, result.KeyEntities)
	assert.NotNil(t, result.MultipleRequests)
	assert.Empty(t, result.KeyEntities)
	assert.Empty(t, result.MultipleRequests)
	assert.False(t, result.AnalyzedAt.IsZero())
}
