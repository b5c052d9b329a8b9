package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/brainview-cli/internal/core/domain"
)

func nextEvent(t *testing.T, events <-chan domain.DatasetEvent) domain.DatasetEvent {
	t.Helper()
	select {
	case ev, ok := <-events:
		require.True(t, ok, "event channel closed")
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for dataset event")
		return domain.DatasetEvent{}
	}
}

func TestWatcher_EmitsInitialAndReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "analysis.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name": "first", "brain_data": {"slices": [{"image": "a"}]}}`), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := NewWatcher(nil).WithDebounce(20*time.Millisecond).Watch(ctx, path)
	require.NoError(t, err)

	first := nextEvent(t, events)
	require.NoError(t, first.Err)
	assert.Equal(t, "first", first.Result.Name)
	assert.NotEmpty(t, first.Result.Source, "source defaults to the file path")

	require.NoError(t, os.WriteFile(path, []byte(`{"name": "second", "brain_data": {"slices": []}}`), 0o644))

	// A save can surface a truncated read before the final one.
	for {
		ev := nextEvent(t, events)
		if ev.Err == nil && ev.Result.Name == "second" {
			break
		}
	}

	cancel()
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-events:
			return !ok
		default:
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)
}

func TestWatcher_ReportsDecodeErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"emotions": {}}`), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := NewWatcher(NewCodec()).Watch(ctx, path)
	require.NoError(t, err)

	ev := nextEvent(t, events)
	assert.ErrorIs(t, ev.Err, domain.ErrUnrecognizedDataset)
	assert.Nil(t, ev.Result)
}

func TestWatcher_MissingDirectory(t *testing.T) {
	_, err := NewWatcher(nil).Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "a.json"))
	assert.Error(t, err)
}

func TestTriggersReload(t *testing.T) {
	path := filepath.Join(string(filepath.Separator), "data", "analysis.json")
	other := filepath.Join(string(filepath.Separator), "data", "other.json")

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{name: "write", event: fsnotify.Event{Name: path, Op: fsnotify.Write}, want: true},
		{name: "create", event: fsnotify.Event{Name: path, Op: fsnotify.Create}, want: true},
		{name: "rename", event: fsnotify.Event{Name: path, Op: fsnotify.Rename}, want: true},
		{name: "remove", event: fsnotify.Event{Name: path, Op: fsnotify.Remove}, want: true},
		{name: "chmod only", event: fsnotify.Event{Name: path, Op: fsnotify.Chmod}, want: false},
		{name: "other file", event: fsnotify.Event{Name: other, Op: fsnotify.Write}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, triggersReload(tt.event, path))
		})
	}
}
