// Package scene implements engine.Stage as a serializable scene document.
// Instead of driving a live canvas, the stage records which structure is
// loaded and which representations are attached; the embedded viewer
// bootstrap replays the document against NGL in the browser.
package scene

import (
	"context"
	"fmt"
	"sync"

	"github.com/goliatone/go-molview/pkg/color"
	"github.com/goliatone/go-molview/pkg/engine"
)

// SourceCheck validates a structure source before the stage accepts it.
// Returning an error fails the load, which lets hosts reject unknown
// bundles and tests simulate engine failures.
type SourceCheck func(ctx context.Context, source string) error

// Option customises the stage configuration.
type Option func(*Stage)

// WithSourceCheck installs a source validation hook.
func WithSourceCheck(check SourceCheck) Option {
	return func(s *Stage) {
		s.check = check
	}
}

// Stage is a document-backed engine.Stage. Handles carry monotonic ids so
// ownership and release-before-replace are observable in tests and in the
// replayed scene.
type Stage struct {
	mu         sync.Mutex
	ready      bool
	nextID     int
	components []*Component
	check      SourceCheck
}

// Ensure the implementation satisfies the engine contract.
var _ engine.Stage = (*Stage)(nil)

// New constructs an initialized stage bound to the (virtual) display
// surface.
func New(options ...Option) *Stage {
	s := &Stage{ready: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Ready reports whether the stage accepts structure loads.
func (s *Stage) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// Shutdown releases the stage. Subsequent loads fail with
// engine.ErrNotReady.
func (s *Stage) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = false
	s.components = nil
}

// LoadStructure records a structure load and returns its component handle.
func (s *Stage) LoadStructure(ctx context.Context, source string) (engine.Component, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if source == "" {
		return nil, fmt.Errorf("scene: structure source is required")
	}

	s.mu.Lock()
	ready := s.ready
	check := s.check
	s.mu.Unlock()

	if !ready {
		return nil, engine.ErrNotReady
	}
	if check != nil {
		if err := check(ctx, source); err != nil {
			return nil, fmt.Errorf("scene: load %q: %w", source, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	component := &Component{stage: s, id: s.nextID, source: source}
	s.components = append(s.components, component)
	return component, nil
}

// RemoveAllComponents releases every loaded component.
func (s *Stage) RemoveAllComponents() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, component := range s.components {
		component.removed = true
	}
	s.components = nil
	return nil
}

// ComponentCount reports how many components are loaded.
func (s *Stage) ComponentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.components)
}

// Snapshot returns the current scene document. With a single active
// structure the document describes the most recently loaded component;
// an empty document means nothing is loaded.
func (s *Stage) Snapshot() Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.components) == 0 {
		return Document{}
	}

	component := s.components[len(s.components)-1]
	doc := Document{
		Source:   component.source,
		AutoView: component.autoView,
	}
	for _, rep := range component.reps {
		doc.Representations = append(doc.Representations, RepresentationDocument{
			ID:    rep.id,
			Style: rep.style,
			Color: rep.color,
		})
	}
	return doc
}

// Component is a document-backed engine.Component.
type Component struct {
	stage    *Stage
	id       int
	source   string
	reps     []*Representation
	autoView bool
	removed  bool
}

var _ engine.Component = (*Component)(nil)

// ID returns the handle id assigned by the stage.
func (c *Component) ID() int {
	return c.id
}

// Source returns the structure source the component was loaded from.
func (c *Component) Source() string {
	return c.source
}

// AddRepresentation attaches a representation to the component.
func (c *Component) AddRepresentation(style string, param color.Param) (engine.Representation, error) {
	c.stage.mu.Lock()
	defer c.stage.mu.Unlock()

	if c.removed {
		return nil, fmt.Errorf("scene: component %d has been removed", c.id)
	}
	if style == "" {
		return nil, fmt.Errorf("scene: representation style is required")
	}

	c.stage.nextID++
	rep := &Representation{id: c.stage.nextID, style: style, color: param}
	c.reps = append(c.reps, rep)
	return rep, nil
}

// RemoveRepresentation detaches a representation by handle identity.
func (c *Component) RemoveRepresentation(rep engine.Representation) error {
	target, ok := rep.(*Representation)
	if !ok || target == nil {
		return fmt.Errorf("scene: representation handle is not owned by this stage")
	}

	c.stage.mu.Lock()
	defer c.stage.mu.Unlock()

	for i, candidate := range c.reps {
		if candidate == target {
			c.reps = append(c.reps[:i], c.reps[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("scene: representation %d not attached to component %d", target.id, c.id)
}

// AutoView records an auto-fit-view request for the replayed scene.
func (c *Component) AutoView() error {
	c.stage.mu.Lock()
	defer c.stage.mu.Unlock()

	if c.removed {
		return fmt.Errorf("scene: component %d has been removed", c.id)
	}
	c.autoView = true
	return nil
}

// Representation is a document-backed engine.Representation.
type Representation struct {
	id    int
	style string
	color color.Param
}

var _ engine.Representation = (*Representation)(nil)

// Style returns the representation style name.
func (r *Representation) Style() string {
	return r.style
}

// Color returns the color parameter the representation was added with.
func (r *Representation) Color() color.Param {
	return r.color
}
