package models

import "errors"

// Sentinel errors of the signal pipeline. Callers match with errors.Is;
// wrapped messages carry the specific condition that was violated.
var (
	// ErrNoData means the provider returned an empty or too-short bar
	// sequence. Recovered locally: downstream degrades, never crashes.
	ErrNoData = errors.New("no data")

	// ErrTrainingDataInsufficient means fewer than two labeled rows or a
	// single-class label set. The ticker is skipped, batches continue.
	ErrTrainingDataInsufficient = errors.New("training data insufficient")

	// ErrModelNotFound means the registry has no active entry for a ticker.
	ErrModelNotFound = errors.New("model not found")

	// ErrInvalidRiskInput means a risk-sizing precondition was violated.
	ErrInvalidRiskInput = errors.New("invalid risk input")

	// ErrStorageFailure means an artifact write or metadata upsert could
	// not complete; prior registry state is left unchanged.
	ErrStorageFailure = errors.New("storage failure")
)
