package domain

const unknownDescription = "Unknown"

// RegionSource selects where region metadata comes from.
type RegionSource string

// Available region sources.
const (
	// RegionSourceCatalog uses the catalog compiled into the binary.
	RegionSourceCatalog RegionSource = "catalog"

	// RegionSourceHTTP queries a remote region info endpoint.
	RegionSourceHTTP RegionSource = "http"
)

// IsValid returns true if the region source is recognised.
func (r RegionSource) IsValid() bool {
	switch r {
	case RegionSourceCatalog, RegionSourceHTTP:
		return true
	default:
		return false
	}
}

// RequiresBaseURL returns true if the source needs a remote endpoint.
func (r RegionSource) RequiresBaseURL() bool {
	return r == RegionSourceHTTP
}

// String returns the string representation.
func (r RegionSource) String() string {
	return string(r)
}

// Description returns a human-readable description of the source.
func (r RegionSource) Description() string {
	switch r {
	case RegionSourceCatalog:
		return "Built-in catalog (offline)"
	case RegionSourceHTTP:
		return "Remote region info service"
	default:
		return unknownDescription
	}
}

// AllRegionSources returns all region sources in display order.
func AllRegionSources() []RegionSource {
	return []RegionSource{RegionSourceCatalog, RegionSourceHTTP}
}

// DisplaySettings configures how views are drawn.
type DisplaySettings struct {
	// DefaultMode is the preferred initial mode. Empty means the first
	// 2D plane with slice data.
	DefaultMode ViewMode

	// FrameRate is the volumetric render loop rate in frames per second.
	FrameRate int

	// Seed fixes the decorative randomness of the scene. Zero means random.
	Seed int64

	// Color enables ANSI colour output.
	Color bool
}

// RegionSettings configures region metadata lookups.
type RegionSettings struct {
	Source    RegionSource
	BaseURL   string
	RateLimit float64
}

// IsConfigured returns true if the region source has what it needs.
func (r RegionSettings) IsConfigured() bool {
	if !r.Source.IsValid() {
		return false
	}
	if r.Source.RequiresBaseURL() && r.BaseURL == "" {
		return false
	}
	return true
}

// StorageSettings configures the analysis library location.
type StorageSettings struct {
	// DataDir holds the analysis database. Empty means ~/.brainview/data.
	DataDir string
}

// AppSettings holds all user-configurable settings.
type AppSettings struct {
	Display DisplaySettings
	Regions RegionSettings
	Storage StorageSettings
}

// Frame rate bounds for the volumetric render loop.
const (
	MinFrameRate = 1
	MaxFrameRate = 120
)

// DefaultAppSettings returns the default settings.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Display: DisplaySettings{
			FrameRate: 30,
			Color:     true,
		},
		Regions: RegionSettings{
			Source:    RegionSourceCatalog,
			RateLimit: 5,
		},
	}
}
