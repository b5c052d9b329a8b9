package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/brainview-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for brainview resources.
	uriScheme = "brainview://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "analyses",
		Name:        "analyses",
		Description: "Stored analyses, newest first",
		MIMEType:    "application/json",
	}, s.handleAnalysesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "analyses/{analysisId}",
		Name:        "analysis",
		Description: "Summary, emotions and available view modes of one analysis",
		MIMEType:    "application/json",
	}, s.handleAnalysisResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "regions",
		Name:        "regions",
		Description: "Known brain region keys",
		MIMEType:    "application/json",
	}, s.handleRegionsResource)
}

func (s *Server) handleAnalysesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	summaries, err := s.ports.Analysis.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing analyses: %w", err)
	}
	if summaries == nil {
		summaries = []domain.AnalysisSummary{}
	}
	return jsonResource(req.Params.URI, summaries)
}

func (s *Server) handleAnalysisResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractAnalysisID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	result, err := s.ports.Analysis.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting analysis: %w", err)
	}

	detail := struct {
		domain.AnalysisSummary
		Emotions map[domain.EmotionLabel]float64 `json:"emotions"`
		Modes    []domain.ViewMode                `json:"modes"`
	}{
		AnalysisSummary: result.Summarise(),
		Emotions:        result.Emotions,
		Modes:           s.ports.Views.Modes(result),
	}
	return jsonResource(req.Params.URI, detail)
}

func (s *Server) handleRegionsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	keys := []domain.RegionKey{}
	if s.ports.Regions != nil {
		keys = append(keys, s.ports.Regions.Keys()...)
	}
	return jsonResource(req.Params.URI, keys)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractAnalysisID extracts the ID from a URI like brainview://analyses/{analysisId}.
func extractAnalysisID(uri string) string {
	const prefix = uriScheme + "analyses/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
