package core

import (
	"strings"
	"time"
)

// Intent is the primary intent the LLM assigns to an email.
type Intent string

const (
	IntentSales   Intent = "sales"
	IntentSupport Intent = "support"
	IntentBilling Intent = "billing"
	IntentOther   Intent = "other"
	IntentUnknown Intent = "unknown"
)

// ParseIntent normalizes a raw intent value, falling back to unknown.
func ParseIntent(s string) Intent {
	switch Intent(strings.ToLower(strings.TrimSpace(s))) {
	case IntentSales:
		return IntentSales
	case IntentSupport:
		return IntentSupport
	case IntentBilling:
		return IntentBilling
	case IntentOther:
		return IntentOther
	default:
		return IntentUnknown
	}
}

// Priority is the urgency the LLM assigns to an email.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ParsePriority normalizes a raw priority value, falling back to medium.
func ParsePriority(s string) Priority {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityHigh:
		return PriorityHigh
	case PriorityLow:
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// Sentiment is the overall tone the LLM assigns to an email.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
	SentimentUnknown  Sentiment = "unknown"
)

// ParseSentiment normalizes a raw sentiment value, falling back to unknown.
func ParseSentiment(s string) Sentiment {
	switch Sentiment(strings.ToLower(strings.TrimSpace(s))) {
	case SentimentPositive:
		return SentimentPositive
	case SentimentNeutral:
		return SentimentNeutral
	case SentimentNegative:
		return SentimentNegative
	default:
		return SentimentUnknown
	}
}

// Email is a decomposed email message. Body holds the text assembled from
// inline text/plain and text/html parts; AttachmentText holds the text
// extracted from attachments, in MIME tree traversal order.
type Email struct {
	From           string
	To             []string
	Subject        string
	Date           time.Time
	Headers        map[string][]string
	Body           string
	AttachmentText string
}

// CombinedText is the text submitted to duplicate detection and analysis:
// body, a separating newline, then the attachment text.
func (e *Email) CombinedText() string {
	return e.Body + "\n" + e.AttachmentText
}

// AnalysisResult is the structured classification of one email.
type AnalysisResult struct {
	PrimaryIntent    Intent    `json:"primary_intent"`
	Priority         Priority  `json:"priority"`
	Summary          string    `json:"summary"`
	Sentiment        Sentiment `json:"sentiment"`
	KeyEntities      []string  `json:"key_entities"`
	MultipleRequests []string  `json:"multiple_requests"`
	AnalyzedAt       time.Time `json:"analyzed_at"`
	ModelUsed        string    `json:"model_used"`
}

// DefaultAnalysisResult is the fallback used when the analysis provider
// fails or keeps returning unusable responses after the retry budget.
func DefaultAnalysisResult() *AnalysisResult {
	return &AnalysisResult{
		PrimaryIntent:    IntentUnknown,
		Priority:         PriorityMedium,
		Summary:          "No summary available.",
		Sentiment:        SentimentNeutral,
		KeyEntities:      []string{},
		MultipleRequests: []string{},
		AnalyzedAt:       time.Now(),
		ModelUsed:        "fallback",
	}
}

// EmailRecord is the persisted unit: one row per accepted (non-duplicate)
// message. It is never mutated after creation except for the Feedback field.
type EmailRecord struct {
	ID               int64     `json:"id"`
	Sender           string    `json:"sender"`
	Subject          string    `json:"subject"`
	Date             time.Time `json:"date"`
	Body             string    `json:"body"`
	Priority         Priority  `json:"priority"`
	Intent           Intent    `json:"intent"`
	RequiresFollowup bool      `json:"requires_followup"`
	Feedback         string    `json:"feedback,omitempty"`
	ProcessedAt      time.Time `json:"processed_at"`
}
