// Package mcp provides an MCP (Model Context Protocol) server adapter for brainview.
// It lets AI assistants inspect stored analyses, resolve views and look up
// brain regions.
package mcp

import "errors"

var (
	// ErrMissingAnalysisService is returned when the analysis service is not provided.
	ErrMissingAnalysisService = errors.New("mcp: analysis service is required")

	// ErrMissingViewResolver is returned when the view resolver is not provided.
	ErrMissingViewResolver = errors.New("mcp: view resolver is required")
)
