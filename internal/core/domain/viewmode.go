package domain

import (
	"fmt"
	"strings"
)

// ViewMode identifies a navigable 2D plane or the single volumetric mode.
// Plane names beyond the canonical three are allowed when a dataset
// supplies them.
type ViewMode string

// Canonical view modes.
const (
	// ViewAxial is the horizontal (top-down) plane.
	ViewAxial ViewMode = "axial"

	// ViewSagittal is the left-right plane.
	ViewSagittal ViewMode = "sagittal"

	// ViewCoronal is the front-back plane.
	ViewCoronal ViewMode = "coronal"

	// ViewVolumetric is the animated 3D scene.
	ViewVolumetric ViewMode = "volumetric"
)

// CanonicalPlanes returns the standard 2D planes in display order.
func CanonicalPlanes() []ViewMode {
	return []ViewMode{ViewAxial, ViewSagittal, ViewCoronal}
}

// ParseViewMode parses a mode name. "3d" is accepted for the volumetric mode.
// Any other non-empty name is treated as a plane key.
func ParseViewMode(s string) (ViewMode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "":
		return "", fmt.Errorf("%w: empty", ErrUnknownViewMode)
	case "3d", string(ViewVolumetric):
		return ViewVolumetric, nil
	}
	if strings.ContainsAny(name, " /?#") {
		return "", fmt.Errorf("%w: %q", ErrUnknownViewMode, s)
	}
	return ViewMode(name), nil
}

// IsPlanar returns true for any 2D plane mode.
func (m ViewMode) IsPlanar() bool {
	return m != "" && m != ViewVolumetric
}

// IsCanonical returns true for axial, sagittal, coronal and volumetric.
func (m ViewMode) IsCanonical() bool {
	switch m {
	case ViewAxial, ViewSagittal, ViewCoronal, ViewVolumetric:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m ViewMode) String() string {
	return string(m)
}

// Label returns a short display label.
func (m ViewMode) Label() string {
	switch m {
	case ViewVolumetric:
		return "3D"
	case "":
		return unknownDescription
	default:
		s := string(m)
		return strings.ToUpper(s[:1]) + s[1:]
	}
}
