package regions

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/custodia-labs/brainview-cli/internal/core/domain"
	"github.com/custodia-labs/brainview-cli/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.RegionCatalog = (*Catalog)(nil)

//go:embed data/*.json
var dataFS embed.FS

// catalogEntry is one region as stored in brain_regions.json.
type catalogEntry struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Functions     []string `json:"functions"`
	MusicRelation string   `json:"music_relation"`
}

// Weight is the strength with which an emotion engages a region.
type Weight struct {
	Region    domain.RegionKey `json:"region"`
	Intensity float64          `json:"intensity"`
}

// Catalog is an in-memory region directory.
type Catalog struct {
	entries map[domain.RegionKey]catalogEntry
	mapping map[domain.EmotionLabel][]Weight
	keys    []domain.RegionKey
}

// NewCatalog returns the catalog compiled into the binary.
func NewCatalog() (*Catalog, error) {
	regions, err := dataFS.Open("data/brain_regions.json")
	if err != nil {
		return nil, fmt.Errorf("opening region catalog: %w", err)
	}
	defer regions.Close()

	mapping, err := dataFS.Open("data/emotion_mapping.json")
	if err != nil {
		return nil, fmt.Errorf("opening emotion mapping: %w", err)
	}
	defer mapping.Close()

	return LoadCatalog(regions, mapping)
}

// LoadCatalog reads a region catalog and an optional emotion mapping.
func LoadCatalog(regions io.Reader, mapping io.Reader) (*Catalog, error) {
	c := &Catalog{
		entries: make(map[domain.RegionKey]catalogEntry),
		mapping: make(map[domain.EmotionLabel][]Weight),
	}

	var entries map[string]catalogEntry
	if err := json.NewDecoder(regions).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decoding region catalog: %w", err)
	}
	for key, entry := range entries {
		c.entries[domain.RegionKey(key)] = entry
		c.keys = append(c.keys, domain.RegionKey(key))
	}
	sort.Slice(c.keys, func(i, j int) bool { return c.keys[i] < c.keys[j] })

	if mapping != nil {
		var weights map[string][]Weight
		if err := json.NewDecoder(mapping).Decode(&weights); err != nil {
			return nil, fmt.Errorf("decoding emotion mapping: %w", err)
		}
		for label, ws := range weights {
			c.mapping[domain.EmotionLabel(label)] = ws
		}
	}
	return c, nil
}

// Lookup returns the metadata for key, with its emotions derived from
// the emotion mapping.
func (c *Catalog) Lookup(_ context.Context, key domain.RegionKey) (*domain.RegionInfo, error) {
	entry, ok := c.entries[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownRegion, key)
	}
	return &domain.RegionInfo{
		Key:           key,
		Name:          entry.Name,
		Description:   entry.Description,
		Functions:     append([]string(nil), entry.Functions...),
		MusicRelation: entry.MusicRelation,
		Emotions:      c.emotionsFor(key),
	}, nil
}

// Keys returns all region keys, sorted.
func (c *Catalog) Keys() []domain.RegionKey {
	return append([]domain.RegionKey(nil), c.keys...)
}

// Weights returns the regions an emotion engages, strongest first.
func (c *Catalog) Weights(label domain.EmotionLabel) []Weight {
	out := append([]Weight(nil), c.mapping[label]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Intensity > out[j].Intensity })
	return out
}

// emotionsFor lists, in canonical order, the emotions that engage key.
func (c *Catalog) emotionsFor(key domain.RegionKey) []domain.EmotionLabel {
	var out []domain.EmotionLabel
	for _, label := range domain.AllEmotions() {
		for _, w := range c.mapping[label] {
			if w.Region == key {
				out = append(out, label)
				break
			}
		}
	}
	return out
}
