package dedup

import "context"

// DisabledDetector treats every message as unique
type DisabledDetector struct{}

// NewDisabledDetector creates a detector that never reports duplicates
func NewDisabledDetector() *DisabledDetector {
	return &DisabledDetector{}
}

// IsDuplicate always returns false
func (d *DisabledDetector) IsDuplicate(_ context.Context, _ string) bool {
	return false
}

// Reset is a no-op
func (d *DisabledDetector) Reset() {}
