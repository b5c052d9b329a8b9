package tui

import "errors"

// ErrMissingVisualizer is returned when the visualizer is not provided.
var ErrMissingVisualizer = errors.New("tui: visualizer is required")

// ErrMissingRegionSelector is returned when the region selector is not provided.
var ErrMissingRegionSelector = errors.New("tui: region selector is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
