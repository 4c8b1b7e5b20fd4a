package orchestrator

import (
	"sync"

	"github.com/goliatone/go-molview/pkg/catalog"
	"github.com/goliatone/go-molview/pkg/engine"
	"github.com/goliatone/go-molview/pkg/protein"
)

// State is the lifecycle stage of the current load.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// session tracks the in-flight and committed load. Each call to begin bumps
// the generation counter; a load whose generation is no longer current must
// not commit its result, so overlapping selections resolve last-write-wins.
type session struct {
	mu             sync.Mutex
	state          State
	generation     uint64
	descriptor     catalog.ProteinDescriptor
	info           protein.Info
	options        []protein.ColoringOption
	component      engine.Component
	representation engine.Representation
}

func (s *session) begin(descriptor catalog.ProteinDescriptor) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.state = StateLoading
	s.descriptor = descriptor
	s.info = protein.Info{}
	s.options = nil
	s.component = nil
	s.representation = nil
	return s.generation
}

func (s *session) current(token uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation == token
}

// stage stores intermediate assets if the load is still current. It reports
// whether the caller should keep going.
func (s *session) stage(token uint64, info protein.Info, options []protein.ColoringOption) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != token {
		return false
	}
	s.info = info
	s.options = options
	return true
}

func (s *session) commit(token uint64, component engine.Component, representation engine.Representation) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != token {
		return false
	}
	s.state = StateReady
	s.component = component
	s.representation = representation
	return true
}

func (s *session) fail(token uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != token {
		return false
	}
	s.state = StateFailed
	s.component = nil
	s.representation = nil
	return true
}

// State returns the current lifecycle state.
func (s *session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *session) snapshot() (State, catalog.ProteinDescriptor, protein.Info, []protein.ColoringOption) {
	s.mu.Lock()
	defer s.mu.Unlock()
	options := make([]protein.ColoringOption, len(s.options))
	copy(options, s.options)
	return s.state, s.descriptor, s.info, options
}

// activeComponent returns the committed component and representation, or
// nils when no structure is on screen.
func (s *session) activeComponent() (engine.Component, engine.Representation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return nil, nil
	}
	return s.component, s.representation
}

// swapRepresentation replaces the tracked representation after a coloring
// change, provided the same component is still committed.
func (s *session) swapRepresentation(component engine.Component, representation engine.Representation) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady || s.component != component {
		return false
	}
	s.representation = representation
	return true
}
