package orchestrator

import "sync"

// Surface receives the rendered fragments and user-facing alerts. The HTTP
// example pushes fragments back to the browser; the CLI writes them to a
// file; tests use MemorySurface.
type Surface interface {
	SetInfo(markup []byte)
	SetControls(markup []byte)
	SetViewport(markup []byte)
	Alert(message string)
}

// MemorySurface is an in-memory Surface that records the latest fragment
// per slot and every alert, in order. Safe for concurrent use.
type MemorySurface struct {
	mu       sync.Mutex
	info     []byte
	controls []byte
	viewport []byte
	alerts   []string
}

var _ Surface = (*MemorySurface)(nil)

// NewMemorySurface returns an empty MemorySurface.
func NewMemorySurface() *MemorySurface {
	return &MemorySurface{}
}

func (s *MemorySurface) SetInfo(markup []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.info = append([]byte(nil), markup...)
}

func (s *MemorySurface) SetControls(markup []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controls = append([]byte(nil), markup...)
}

func (s *MemorySurface) SetViewport(markup []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewport = append([]byte(nil), markup...)
}

func (s *MemorySurface) Alert(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append(s.alerts, message)
}

// Info returns the latest info panel markup.
func (s *MemorySurface) Info() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.info)
}

// Controls returns the latest coloring controls markup.
func (s *MemorySurface) Controls() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.controls)
}

// Viewport returns the latest viewport markup.
func (s *MemorySurface) Viewport() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.viewport)
}

// Alerts returns every alert raised so far, oldest first.
func (s *MemorySurface) Alerts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.alerts))
	copy(out, s.alerts)
	return out
}
