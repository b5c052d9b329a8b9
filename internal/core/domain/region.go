package domain

// RegionKey identifies an anatomical region. Keys are produced by whatever
// maps a user pick to a label; the engine treats them as opaque.
type RegionKey string

// EmotionLabel names an emotion category from the analysis pipeline.
type EmotionLabel string

// Known emotion labels.
const (
	EmotionHappy     EmotionLabel = "happy"
	EmotionSad       EmotionLabel = "sad"
	EmotionCalm      EmotionLabel = "calm"
	EmotionEnergetic EmotionLabel = "energetic"
	EmotionTense     EmotionLabel = "tense"

	// EmotionAll is a catch-all tag that is never displayed.
	EmotionAll EmotionLabel = "all"
)

// AllEmotions returns the displayable emotion labels in canonical order.
func AllEmotions() []EmotionLabel {
	return []EmotionLabel{EmotionHappy, EmotionSad, EmotionCalm, EmotionEnergetic, EmotionTense}
}

// RegionInfo is externally fetched metadata for one region.
type RegionInfo struct {
	Key           RegionKey      `json:"key,omitempty"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Functions     []string       `json:"functions"`
	MusicRelation string         `json:"music_relation"`
	Emotions      []EmotionLabel `json:"emotions"`
}

// DisplayEmotions returns the emotions to show, dropping the catch-all tag.
func (r *RegionInfo) DisplayEmotions() []EmotionLabel {
	if r == nil {
		return nil
	}
	out := make([]EmotionLabel, 0, len(r.Emotions))
	for _, e := range r.Emotions {
		if e == EmotionAll || e == "" {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FetchStatus is the state of a region metadata request.
type FetchStatus string

// Fetch states.
const (
	FetchIdle    FetchStatus = "idle"
	FetchLoading FetchStatus = "loading"
	FetchReady   FetchStatus = "ready"
	FetchError   FetchStatus = "error"
)

// RegionPanel is the displayable state of the region info panel.
type RegionPanel struct {
	Key     RegionKey   `json:"key,omitempty"`
	Status  FetchStatus `json:"status"`
	Info    *RegionInfo `json:"info,omitempty"`
	Message string      `json:"message,omitempty"`
}

// Open returns true while a region is selected.
func (p RegionPanel) Open() bool {
	return p.Key != ""
}

// RegionFetchFailedMessage is the user-facing panel text for any failed
// metadata lookup.
const RegionFetchFailedMessage = "Failed to load region information"
