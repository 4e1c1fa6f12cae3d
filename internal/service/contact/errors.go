package contact

import "errors"

// Sentinel errors for the submission pipeline. Only these two surface to
// the caller as a failed outcome; enrichment and notification failures
// are absorbed at their own step.
var (
	// ErrRateCheckUnavailable means the submission history could not be
	// queried, so the rate decision is indeterminate. The submission is
	// aborted rather than silently admitted or rejected.
	ErrRateCheckUnavailable = errors.New("rate check unavailable")

	// ErrPersistence means the contact could not be durably recorded.
	ErrPersistence = errors.New("contact could not be persisted")
)
