package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.Empty(t, store.Keys())
	assert.Equal(t, ":memory:", store.Path())
	assert.NoError(t, store.Load())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("display.frame_rate", 24))
	require.NoError(t, store.Set("display.frame_rate", 60))

	val, ok := store.Get("display.frame_rate")
	assert.True(t, ok)
	assert.Equal(t, 60, val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("s", "axial")
	_ = store.Set("i", 30)
	_ = store.Set("i64", int64(7))
	_ = store.Set("f", 2.5)
	_ = store.Set("b", true)

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"string", store.GetString("s"), "axial"},
		{"string wrong type", store.GetString("i"), ""},
		{"int", store.GetInt("i"), 30},
		{"int from int64", store.GetInt("i64"), 7},
		{"int from float", store.GetInt("f"), 2},
		{"int wrong type", store.GetInt("s"), 0},
		{"float", store.GetFloat("f"), 2.5},
		{"float from int", store.GetFloat("i"), 30.0},
		{"float from int64", store.GetFloat("i64"), 7.0},
		{"float wrong type", store.GetFloat("b"), 0.0},
		{"bool", store.GetBool("b"), true},
		{"bool wrong type", store.GetBool("s"), false},
		{"bool missing", store.GetBool("missing"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestConfigStore_DeleteAndKeys(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("regions.source", "http")
	_ = store.Set("display.color", false)

	assert.Equal(t, []string{"display.color", "regions.source"}, store.Keys())

	require.NoError(t, store.Delete("regions.source"))
	require.NoError(t, store.Delete("never.set"))

	assert.Equal(t, []string{"display.color"}, store.Keys())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key.%d", n)
			_ = store.Set(key, n)
			_ = store.GetInt(key)
			_ = store.Keys()
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.Keys(), 20)
}

func TestNewConfigStore_Seeded(t *testing.T) {
	store := NewConfigStore(
		map[string]any{"display.frame_rate": 24, "display.color": true},
		map[string]any{"display.frame_rate": 60},
	)

	assert.Equal(t, 60, store.GetInt("display.frame_rate"))
	assert.True(t, store.GetBool("display.color"))
	assert.Equal(t, []string{"display.color", "display.frame_rate"}, store.Keys())
}
