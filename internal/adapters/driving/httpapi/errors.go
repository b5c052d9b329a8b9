package httpapi

import "errors"

var (
	// ErrInvalidPorts indicates nil ports were provided.
	ErrInvalidPorts = errors.New("httpapi: ports cannot be nil")

	// ErrMissingAnalysis indicates the analysis service is missing.
	ErrMissingAnalysis = errors.New("httpapi: analysis service is required")

	// ErrMissingRegions indicates the region directory is missing.
	ErrMissingRegions = errors.New("httpapi: region directory is required")

	// ErrMissingViews indicates the view resolver is missing.
	ErrMissingViews = errors.New("httpapi: view resolver is required")
)
