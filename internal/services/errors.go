package services

import "errors"

// Sentinel errors returned by the service layer. Handlers translate these
// into API errors with the right status codes; anything unrecognized falls
// through as an internal error.
var (
	// ErrDatasetNotLoaded signals that no dataset snapshot is available,
	// either because startup loading failed or has not finished yet.
	ErrDatasetNotLoaded = errors.New("dataset not loaded")

	// ErrUnknownView signals a view name outside the dashboard's vocabulary.
	ErrUnknownView = errors.New("unknown view")

	// ErrUnknownFormat signals an export format other than csv or xlsx.
	ErrUnknownFormat = errors.New("unknown format")
)
