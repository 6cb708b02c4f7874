package services

import "errors"

// Failure kinds surfaced by the forecasting services. Handlers map these to
// HTTP statuses; nothing below the handler layer panics or returns raw
// driver errors across its boundary.
var (
	// ErrStoreUnavailable wraps any session-store query failure, so callers
	// can tell "the store broke" apart from "the store is empty".
	ErrStoreUnavailable = errors.New("session store unavailable")

	// ErrNoSessions means the sessions table has no usable rows.
	ErrNoSessions = errors.New("no session history")

	// ErrInsufficientData means the aggregated series is below the
	// configured minimum observation count.
	ErrInsufficientData = errors.New("insufficient observations")

	// ErrEmptyFeatures means feature construction produced no rows.
	ErrEmptyFeatures = errors.New("no feature rows")

	// ErrModelNotFound means prediction was requested before any successful
	// training run.
	ErrModelNotFound = errors.New("demand model not trained")
)
