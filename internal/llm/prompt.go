// Package llm holds the analysis prompt and the response parsing shared by
// the LLM provider adapters.
package llm

import "fmt"

// promptFormat instructs the model to classify an email's combined text as
// a strict JSON object.
const promptFormat = `You are an email triage system. Analyze the following email content and classify it.
Respond with a JSON object containing:
- primary_intent: one of "sales", "support", "billing", "other"
- priority: one of "high", "medium", "low"
- summary: string (brief summary of the email)
- sentiment: one of "positive", "neutral", "negative"
- key_entities: list of strings (names, dates, amounts mentioned)
- multiple_requests: list of strings (the individual requests found, empty if there is a single request)

Email content:
%s

Respond only with the JSON object and nothing else.`

// SystemMessage primes chat-style providers for strict JSON output.
const SystemMessage = "You are an email triage system. Respond only with JSON."

// BuildPrompt formats the analysis prompt for a combined email text that
// has already been truncated to the provider input limit.
func BuildPrompt(text string) string {
	return fmt.Sprintf(promptFormat, text)
}
