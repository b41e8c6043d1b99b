// Package store provides EmailRepository implementations.
package store

import (
	"errors"

	"github.com/mikey/llm-email-triage/internal/core"
)

// ErrNotFound is returned when no record matches the given id.
var ErrNotFound = errors.New("email record not found")

// followupValue maps the followup flag to its stored form.
func followupValue(record *core.EmailRecord) string {
	if record.RequiresFollowup {
		return "yes"
	}
	return "no"
}
