// Package engine defines the module's contract with the external
// molecular graphics engine. Structure payloads are opaque to this module;
// the engine parses them and draws the visual representations.
package engine

import (
	"context"

	"github.com/goliatone/go-molview/pkg/color"
)

// StyleCartoon is the default ribbon representation applied when a
// structure finishes loading.
const StyleCartoon = "cartoon"

// Stage is a display surface with structures loaded into it. A stage must
// be initialized before any load is attempted.
type Stage interface {
	// Ready reports whether the stage is initialized and can accept loads.
	Ready() bool

	// LoadStructure asks the engine to load structure data from source: a
	// scheme-prefixed remote identifier (rcsb://1LYZ) or a local relative
	// path. The returned component handle is owned by the caller's session.
	LoadStructure(ctx context.Context, source string) (Component, error)

	// RemoveAllComponents releases every loaded component.
	RemoveAllComponents() error
}

// Component is an engine-owned handle representing one loaded structure.
type Component interface {
	// Source returns the structure source the component was loaded from.
	Source() string

	// AddRepresentation attaches a visual style parameterized by a color
	// parameter and returns its handle.
	AddRepresentation(style string, param color.Param) (Representation, error)

	// RemoveRepresentation detaches a previously added representation.
	// Removal must precede replacement so engine resources are released.
	RemoveRepresentation(rep Representation) error

	// AutoView re-centres the camera on the component.
	AutoView() error
}

// Representation is an engine-owned handle for one visual style instance
// attached to a component.
type Representation interface {
	Style() string
	Color() color.Param
}
