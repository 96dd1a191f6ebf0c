package models

import (
	"errors"
)

var (
	ErrValidation = errors.New("validation error")

	// ErrAssetUnavailable: the tagging model for the detected language cannot
	// be obtained. The caller may pick another scheme or retry later; the
	// core never retries on its own.
	ErrAssetUnavailable = errors.New("tagging asset not available")
	// ErrAssetFetchFailed: the fetch attempt itself errored at the provider.
	ErrAssetFetchFailed = errors.New("tagging asset fetch failed")
	// ErrRankerInconsistency: the provider returned spans or hypotheses that
	// violate the data-model invariants (overlap, ordering, hypothesis cap).
	ErrRankerInconsistency = errors.New("ranker returned inconsistent results")
)
