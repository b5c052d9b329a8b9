package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/brainview-cli/internal/core/domain"
)

// ErrRegionsUnavailable is returned by region_info when no directory is wired.
var ErrRegionsUnavailable = errors.New("region lookup not configured")

// ResolveViewInput is the input schema for the resolve_view tool.
type ResolveViewInput struct {
	AnalysisID string `json:"analysis_id" jsonschema:"ID of a stored analysis"`
	Mode       string `json:"mode" jsonschema:"view mode: axial, sagittal, coronal, volumetric (or 3d)"`
	SliceIndex *int   `json:"slice_index,omitempty" jsonschema:"slice to return for 2D modes; defaults to the centre slice"`
}

// ResolveViewOutput is the output schema for the resolve_view tool.
type ResolveViewOutput struct {
	Mode       string        `json:"mode"`
	Source     string        `json:"source"`
	Modes      []string      `json:"modes"`
	SliceCount int           `json:"slice_count"`
	SliceIndex int           `json:"slice_index"`
	Frame      *FrameOutput  `json:"frame,omitempty"`
	Volume     *VolumeOutput `json:"volume,omitempty"`
}

// FrameOutput describes the layers of one 2D slice.
type FrameOutput struct {
	Empty   bool     `json:"empty"`
	Message string   `json:"message,omitempty"`
	Base    string   `json:"base,omitempty"`
	Overlay string   `json:"overlay,omitempty"`
	Opacity float64  `json:"overlay_opacity,omitempty"`
	Regions []string `json:"regions,omitempty"`
}

// VolumeOutput summarises the samples of the volumetric mode.
type VolumeOutput struct {
	Samples     int `json:"samples"`
	Significant int `json:"significant"`
}

// RegionInfoInput is the input schema for the region_info tool.
type RegionInfoInput struct {
	Region string `json:"region" jsonschema:"region key such as amygdala or prefrontal_cortex"`
}

// RegionInfoOutput is the output schema for the region_info tool.
type RegionInfoOutput struct {
	Key           string   `json:"key"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Functions     []string `json:"functions"`
	MusicRelation string   `json:"music_relation"`
	Emotions      []string `json:"emotions"`
}

// ActivationInput is the input schema for the activation_summary tool.
type ActivationInput struct {
	AnalysisID string `json:"analysis_id" jsonschema:"ID of a stored analysis"`
}

// ActivationOutput is the output schema for the activation_summary tool.
type ActivationOutput struct {
	Name          string             `json:"name"`
	Emotions      map[string]float64 `json:"emotions"`
	Dominant      string             `json:"dominant_emotion,omitempty"`
	DominantScore float64            `json:"dominant_score"`
	Count         int                `json:"count"`
	Significant   int                `json:"significant"`
	Mean          float64            `json:"mean"`
	StdDev        float64            `json:"std_dev"`
	Median        float64            `json:"median"`
	P90           float64            `json:"p90"`
	Max           float64            `json:"max"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "resolve_view",
		Description: "Resolve a view mode of a stored analysis and describe the slice or volume it shows",
	}, s.handleResolveView)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "region_info",
		Description: "Look up the description, functions and music relation of a brain region",
	}, s.handleRegionInfo)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "activation_summary",
		Description: "Summarise the emotion scores and voxel activation statistics of a stored analysis",
	}, s.handleActivationSummary)
}

func (s *Server) handleResolveView(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ResolveViewInput,
) (*mcp.CallToolResult, ResolveViewOutput, error) {
	mode, err := domain.ParseViewMode(input.Mode)
	if err != nil {
		return nil, ResolveViewOutput{}, err
	}
	result, err := s.ports.Analysis.Get(ctx, input.AnalysisID)
	if err != nil {
		return nil, ResolveViewOutput{}, fmt.Errorf("loading analysis: %w", err)
	}

	view := s.ports.Views.Resolve(result, mode)
	output := ResolveViewOutput{
		Mode:       string(view.Mode),
		Source:     string(view.Source),
		Modes:      modeNames(s.ports.Views.Modes(result)),
		SliceCount: view.SliceCount,
		SliceIndex: view.SliceIndex,
	}

	if mode == domain.ViewVolumetric {
		output.Volume = &VolumeOutput{Samples: view.Voxels.Len()}
		if view.Voxels != nil {
			for _, sample := range view.Voxels.Samples {
				if sample.IsSignificant() {
					output.Volume.Significant++
				}
			}
		}
		return nil, output, nil
	}

	index := view.SliceIndex
	if input.SliceIndex != nil {
		index = *input.SliceIndex
	}
	frame, err := s.ports.Views.Slice(result, mode, index)
	if err != nil {
		return nil, ResolveViewOutput{}, err
	}
	output.SliceIndex = frame.Index
	output.Frame = frameOutput(frame)
	return nil, output, nil
}

func (s *Server) handleRegionInfo(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RegionInfoInput,
) (*mcp.CallToolResult, RegionInfoOutput, error) {
	if s.ports.Regions == nil {
		return nil, RegionInfoOutput{}, ErrRegionsUnavailable
	}
	info, err := s.ports.Regions.Info(ctx, domain.RegionKey(input.Region))
	if err != nil {
		return nil, RegionInfoOutput{}, err
	}

	output := RegionInfoOutput{
		Key:           string(info.Key),
		Name:          info.Name,
		Description:   info.Description,
		Functions:     info.Functions,
		MusicRelation: info.MusicRelation,
	}
	for _, e := range info.DisplayEmotions() {
		output.Emotions = append(output.Emotions, string(e))
	}
	return nil, output, nil
}

func (s *Server) handleActivationSummary(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ActivationInput,
) (*mcp.CallToolResult, ActivationOutput, error) {
	result, err := s.ports.Analysis.Get(ctx, input.AnalysisID)
	if err != nil {
		return nil, ActivationOutput{}, fmt.Errorf("loading analysis: %w", err)
	}

	stats := s.ports.Analysis.Summarise(result)
	dominant, score := result.DominantEmotion()
	output := ActivationOutput{
		Name:          result.Name,
		Emotions:      make(map[string]float64, len(result.Emotions)),
		Dominant:      string(dominant),
		DominantScore: score,
		Count:         stats.Count,
		Significant:   stats.Significant,
		Mean:          stats.Mean,
		StdDev:        stats.StdDev,
		Median:        stats.Median,
		P90:           stats.P90,
		Max:           stats.Max,
	}
	for label, v := range result.Emotions {
		output.Emotions[string(label)] = v
	}
	return nil, output, nil
}

func frameOutput(frame domain.SliceFrame) *FrameOutput {
	out := &FrameOutput{Empty: frame.Empty, Message: frame.Message}
	if frame.Base != nil {
		out.Base = string(frame.Base.Image)
	}
	if frame.Overlay != nil {
		out.Overlay = string(frame.Overlay.Image)
		out.Opacity = frame.Overlay.Opacity
	}
	for _, key := range frame.Regions {
		out.Regions = append(out.Regions, string(key))
	}
	return out
}

func modeNames(modes []domain.ViewMode) []string {
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = string(m)
	}
	return names
}
