// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/brainview-cli/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewVisualizer shows the slice or volume view with the region panel.
	ViewVisualizer ViewType = iota
	// ViewLibrary lists stored analyses.
	ViewLibrary
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewVisualizer:
		return "visualizer"
	case ViewLibrary:
		return "library"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// StateChanged signals that the visualizer state moved. Views re-read the
// state from the service, so coalesced signals lose nothing.
type StateChanged struct{}

// PanelChanged signals that the region panel changed.
type PanelChanged struct{}

// FrameReady signals that the volumetric scene presented a new frame.
type FrameReady struct{}

// DatasetLoaded carries an analysis to show.
type DatasetLoaded struct {
	Result *domain.AnalysisResult
	Err    error
}

// DatasetReloaded carries a watched file reload.
type DatasetReloaded struct {
	Event domain.DatasetEvent
}

// AnalysesLoaded carries the stored analysis summaries.
type AnalysesLoaded struct {
	Summaries []domain.AnalysisSummary
	Err       error
}

// AnalysisSelected asks the app to open a stored analysis.
type AnalysisSelected struct {
	ID string
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
