package library

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/brainview-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/brainview-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/brainview-cli/internal/core/domain"
	"github.com/custodia-labs/brainview-cli/internal/core/ports/driving"
)

type mockAnalysis struct {
	summaries []domain.AnalysisSummary
	err       error
	calls     int
}

func (m *mockAnalysis) Import(context.Context, io.Reader, string) (*driving.ImportResult, error) {
	return nil, nil
}

func (m *mockAnalysis) Open(context.Context, io.Reader, string) (*domain.AnalysisResult, error) {
	return nil, nil
}

func (m *mockAnalysis) Get(context.Context, string) (*domain.AnalysisResult, error) {
	return nil, nil
}

func (m *mockAnalysis) List(context.Context) ([]domain.AnalysisSummary, error) {
	m.calls++
	return m.summaries, m.err
}

func (m *mockAnalysis) Delete(context.Context, string) error {
	return nil
}

func (m *mockAnalysis) Summarise(*domain.AnalysisResult) driving.ActivationSummary {
	return driving.ActivationSummary{}
}

func summaries() []domain.AnalysisSummary {
	created := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	return []domain.AnalysisSummary{
		{ID: "a1", Name: "Clair de Lune", CreatedAt: created, Shape: "views", VoxelCount: 120, Dominant: domain.EmotionCalm, DominantPct: 0.81},
		{ID: "a2", CreatedAt: created, Shape: "flat"},
	}
}

func loaded(t *testing.T, m *mockAnalysis) *View {
	t.Helper()
	v := NewView(styles.DefaultStyles(), m)
	v.SetDimensions(120, 30)
	cmd := v.Init()
	require.NotNil(t, cmd)
	v.Update(cmd())
	return v
}

func TestView_Load(t *testing.T) {
	m := &mockAnalysis{summaries: summaries()}
	v := loaded(t, m)

	out := v.View()
	assert.Equal(t, 1, m.calls)
	assert.Contains(t, out, "Clair de Lune")
	assert.Contains(t, out, "120 voxels")
	assert.Contains(t, out, "calm 81%")
	assert.Contains(t, out, "a2", "unnamed analyses show their ID")
}

func TestView_States(t *testing.T) {
	t.Run("loading", func(t *testing.T) {
		v := NewView(styles.DefaultStyles(), &mockAnalysis{})
		v.Init()
		assert.Contains(t, v.View(), "Loading analyses")
	})

	t.Run("empty", func(t *testing.T) {
		v := loaded(t, &mockAnalysis{})
		assert.Contains(t, v.View(), "No analyses imported")
	})

	t.Run("error", func(t *testing.T) {
		v := loaded(t, &mockAnalysis{err: errors.New("database locked")})
		assert.Contains(t, v.View(), "database locked")
	})

	t.Run("no service", func(t *testing.T) {
		v := NewView(styles.DefaultStyles(), nil)
		msg := v.Init()()
		loadedMsg, ok := msg.(messages.AnalysesLoaded)
		require.True(t, ok)
		assert.Error(t, loadedMsg.Err)
	})
}

func TestView_Keys(t *testing.T) {
	m := &mockAnalysis{summaries: summaries()}
	v := loaded(t, m)

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, v.Selected())
	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, v.Selected(), "stops at the end")
	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	assert.Equal(t, 0, v.Selected())

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.AnalysisSelected{ID: "a1"}, cmd())

	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	require.NotNil(t, cmd)
	v.Update(cmd())
	assert.Equal(t, 2, m.calls)

	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewVisualizer}, cmd())
}

func TestView_EnterWithoutItems(t *testing.T) {
	v := loaded(t, &mockAnalysis{})
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}
