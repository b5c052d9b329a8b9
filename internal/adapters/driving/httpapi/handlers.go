package httpapi

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/custodia-labs/brainview-cli/internal/adapters/driving/chart"
	"github.com/custodia-labs/brainview-cli/internal/core/domain"
	"github.com/custodia-labs/brainview-cli/internal/core/ports/driving"
)

// analysisDetail is the body of GET /api/analyses/{id}.
type analysisDetail struct {
	domain.AnalysisSummary
	Emotions   map[domain.EmotionLabel]float64 `json:"emotions"`
	Modes      []domain.ViewMode                `json:"modes"`
	Activation driving.ActivationSummary        `json:"activation"`
}

// viewResponse is a resolved view with its voxel samples inlined.
type viewResponse struct {
	domain.ResolvedView
	Voxels *domain.VoxelData `json:"voxel_data,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleRegionInfo serves GET /api/info/regions?region=KEY.
func (s *Server) handleRegionInfo(w http.ResponseWriter, r *http.Request) {
	key := domain.RegionKey(r.URL.Query().Get("region"))
	if key != "" {
		info, err := s.ports.Regions.Info(r.Context(), key)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, info)
		return
	}

	all := make(map[domain.RegionKey]*domain.RegionInfo)
	for _, k := range s.ports.Regions.Keys() {
		info, err := s.ports.Regions.Info(r.Context(), k)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		all[k] = info
	}
	writeJSON(w, http.StatusOK, all)
}

func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.ports.Analysis.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if summaries == nil {
		summaries = []domain.AnalysisSummary{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"analyses": summaries,
		"count":    len(summaries),
	})
}

func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	result, ok := s.analysis(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, analysisDetail{
		AnalysisSummary: result.Summarise(),
		Emotions:        result.Emotions,
		Modes:           s.ports.Views.Modes(result),
		Activation:      s.ports.Analysis.Summarise(result),
	})
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	mode, err := domain.ParseViewMode(mux.Vars(r)["mode"])
	if err != nil {
		writeDomainError(w, err)
		return
	}
	result, ok := s.analysis(w, r)
	if !ok {
		return
	}

	view := s.ports.Views.Resolve(result, mode)
	writeJSON(w, http.StatusOK, viewResponse{ResolvedView: view, Voxels: view.Voxels})
}

func (s *Server) handleSlice(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	mode, err := domain.ParseViewMode(vars["mode"])
	if err != nil {
		writeDomainError(w, err)
		return
	}
	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "slice index must be an integer")
		return
	}
	result, ok := s.analysis(w, r)
	if !ok {
		return
	}

	frame, err := s.ports.Views.Slice(result, mode, index)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, frame)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	plane, err := domain.ParseViewMode(mux.Vars(r)["plane"])
	if err != nil {
		writeDomainError(w, err)
		return
	}
	result, ok := s.analysis(w, r)
	if !ok {
		return
	}

	o := chart.Options{}
	if mp := r.URL.Query().Get("max_points"); mp != "" {
		if v, err := strconv.Atoi(mp); err == nil && v > 0 {
			o.MaxPoints = v
		}
	}

	var buf bytes.Buffer
	if err := chart.Render(&buf, result, plane, o); err != nil {
		writeDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleHistogram(w http.ResponseWriter, r *http.Request) {
	result, ok := s.analysis(w, r)
	if !ok {
		return
	}

	o := chart.HistogramOptions{}
	if b := r.URL.Query().Get("bins"); b != "" {
		if v, err := strconv.Atoi(b); err == nil && v > 0 && v <= 200 {
			o.Bins = v
		}
	}

	var buf bytes.Buffer
	if err := chart.RenderHistogram(&buf, result, o); err != nil {
		writeDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(buf.Bytes())
}

// analysis loads the {id} analysis, writing the error response on failure.
func (s *Server) analysis(w http.ResponseWriter, r *http.Request) (*domain.AnalysisResult, bool) {
	result, err := s.ports.Analysis.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeDomainError(w, err)
		return nil, false
	}
	return result, true
}
