package render

import (
	"encoding/json"

	"github.com/goliatone/go-molview/pkg/protein"
)

// Fragment identifies which region of the viewer a render call targets.
// The orchestrator replaces whole fragments; there is no incremental
// update.
type Fragment string

const (
	// FragmentPage renders the full viewer page shell.
	FragmentPage Fragment = "page"
	// FragmentInfo renders the protein details panel.
	FragmentInfo Fragment = "info"
	// FragmentControls renders the coloring scheme controls.
	FragmentControls Fragment = "controls"
	// FragmentViewport renders the 3D viewport region.
	FragmentViewport Fragment = "viewport"
)

// View is the renderer-facing model of the viewer state.
type View struct {
	// Fragment selects the region to render. Empty means FragmentPage.
	Fragment Fragment

	// Title is the page title for FragmentPage renders.
	Title string

	// Protein is the display name of the selected protein, when any.
	Protein string

	// Info holds the details record in declaration order. HasInfo
	// distinguishes an empty record from "no details available".
	Info    []protein.Entry
	HasInfo bool

	// Options lists the coloring schemes to expose as controls. Entries
	// are expected to be pre-validated.
	Options []protein.ColoringOption

	// Notice carries loading or error copy for the targeted fragment.
	Notice string

	// Scene is the serialized scene document embedded into the viewport
	// for the viewer bootstrap to replay.
	Scene json.RawMessage

	// Selector lists the protein choices for the page's selection control.
	// Values are stable handles, not serialized descriptors.
	Selector []SelectorOption

	// Placeholder is the disabled first entry of the selection control.
	Placeholder string
}

// SelectorOption is one entry of the protein selection control.
type SelectorOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
