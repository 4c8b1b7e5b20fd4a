package scene

import (
	"encoding/json"

	"github.com/goliatone/go-molview/pkg/color"
)

// Document is the serializable form of the scene. The viewer bootstrap
// loads the source into NGL and attaches the listed representations.
type Document struct {
	Source          string                   `json:"source,omitempty"`
	Representations []RepresentationDocument `json:"representations,omitempty"`
	AutoView        bool                     `json:"autoView,omitempty"`
}

// RepresentationDocument is one attached representation in the document.
type RepresentationDocument struct {
	ID    int         `json:"id"`
	Style string      `json:"style"`
	Color color.Param `json:"color"`
}

// IsZero reports whether the document describes an empty scene.
func (d Document) IsZero() bool {
	return d.Source == "" && len(d.Representations) == 0
}

// SceneJSON encodes the current document for embedding into the viewer
// page. It satisfies the optional scene-source contract the orchestrator
// probes for.
func (s *Stage) SceneJSON() ([]byte, error) {
	doc := s.Snapshot()
	if doc.IsZero() {
		return nil, nil
	}
	return json.Marshal(doc)
}
