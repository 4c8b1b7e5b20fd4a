package orchestrator_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-molview/pkg/catalog"
	"github.com/goliatone/go-molview/pkg/color"
	"github.com/goliatone/go-molview/pkg/engine"
	"github.com/goliatone/go-molview/pkg/orchestrator"
	"github.com/goliatone/go-molview/pkg/protein"
)

// flakyStage rejects representations per scheme so swap recovery paths can
// be exercised. The in-memory scene stage never fails an add, so these
// tests need their own engine fakes.
type flakyStage struct {
	component *flakyComponent
}

var _ engine.Stage = (*flakyStage)(nil)

func (s *flakyStage) Ready() bool { return true }

func (s *flakyStage) LoadStructure(ctx context.Context, source string) (engine.Component, error) {
	s.component.source = source
	return s.component, nil
}

func (s *flakyStage) RemoveAllComponents() error { return nil }

type flakyComponent struct {
	source        string
	failSchemes   map[string]bool
	failAll       bool
	removed       int
	added         []color.Param
	autoViewCalls int
}

var _ engine.Component = (*flakyComponent)(nil)

func (c *flakyComponent) Source() string { return c.source }

func (c *flakyComponent) AddRepresentation(style string, param color.Param) (engine.Representation, error) {
	if c.failAll || c.failSchemes[param.Scheme()] {
		return nil, errors.New("scheme rejected")
	}
	c.added = append(c.added, param)
	return &flakyRepresentation{style: style, color: param}, nil
}

func (c *flakyComponent) RemoveRepresentation(rep engine.Representation) error {
	c.removed++
	return nil
}

func (c *flakyComponent) AutoView() error {
	c.autoViewCalls++
	return nil
}

type flakyRepresentation struct {
	style string
	color color.Param
}

var _ engine.Representation = (*flakyRepresentation)(nil)

func (r *flakyRepresentation) Style() string      { return r.style }
func (r *flakyRepresentation) Color() color.Param { return r.color }

func newFlakyOrchestrator(t *testing.T, component *flakyComponent) (*orchestrator.Orchestrator, *orchestrator.MemorySurface) {
	t.Helper()
	surface := orchestrator.NewMemorySurface()
	orc, err := orchestrator.New(
		orchestrator.WithStage(&flakyStage{component: component}),
		orchestrator.WithSurface(surface),
		orchestrator.WithLogger(discardLogger),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := orc.LoadProtein(context.Background(), catalog.ProteinDescriptor{Name: "Crambin", PDBID: "1CRN"}); err != nil {
		t.Fatalf("LoadProtein() error = %v", err)
	}
	return orc, surface
}

func TestApplyColoringFallsBackToGray(t *testing.T) {
	component := &flakyComponent{failSchemes: map[string]bool{"bfactor": true}}
	orc, surface := newFlakyOrchestrator(t, component)

	option := protein.ColoringOption{Name: "By B-Factor", SchemeID: "bfactor"}
	err := orc.ApplyColoring(context.Background(), option)
	if err == nil {
		t.Fatal("ApplyColoring() expected error")
	}

	var swapErr *orchestrator.RepresentationSwapError
	if !errors.As(err, &swapErr) {
		t.Fatalf("ApplyColoring() error = %v, want *RepresentationSwapError", err)
	}
	if !swapErr.Fallback {
		t.Error("RepresentationSwapError.Fallback = false, want true")
	}

	alerts := surface.Alerts()
	if len(alerts) != 1 {
		t.Fatalf("Alerts() = %v, want one", alerts)
	}
	if !strings.Contains(alerts[0], "By B-Factor") || !strings.Contains(alerts[0], "gray") {
		t.Errorf("alert should name the scheme and the gray fallback, got %q", alerts[0])
	}

	last := component.added[len(component.added)-1]
	if last.Kind() != color.KindLiteral || last.Value() != "gray" {
		t.Errorf("fallback representation = %v, want literal gray", last)
	}
}

func TestApplyColoringDoubleFailure(t *testing.T) {
	component := &flakyComponent{}
	orc, surface := newFlakyOrchestrator(t, component)

	// Every add fails from now on, including the gray recovery.
	component.failAll = true

	err := orc.ApplyColoring(context.Background(), protein.ColoringOption{Name: "By Chain", SchemeID: "chainid"})
	if err == nil {
		t.Fatal("ApplyColoring() expected error")
	}

	var swapErr *orchestrator.RepresentationSwapError
	if !errors.As(err, &swapErr) {
		t.Fatalf("ApplyColoring() error = %v, want *RepresentationSwapError", err)
	}
	if swapErr.Fallback {
		t.Error("RepresentationSwapError.Fallback = true, want false")
	}

	alerts := surface.Alerts()
	if len(alerts) != 2 {
		t.Fatalf("Alerts() = %v, want two", alerts)
	}
	if !strings.Contains(alerts[1], "could not be restored") {
		t.Errorf("second alert should report the unrestorable view, got %q", alerts[1])
	}
}

func TestApplyColoringRemovesPreviousRepresentation(t *testing.T) {
	component := &flakyComponent{}
	orc, _ := newFlakyOrchestrator(t, component)

	if err := orc.ApplyColoring(context.Background(), protein.ColoringOption{Name: "By Chain", SchemeID: "chainid"}); err != nil {
		t.Fatalf("ApplyColoring() error = %v", err)
	}
	if component.removed != 1 {
		t.Errorf("removed %d representations, want 1", component.removed)
	}

	if err := orc.ApplyColoring(context.Background(), protein.ColoringOption{Name: "Uniform Gray", SchemeID: "uniform", Params: map[string]any{"value": "gray"}}); err != nil {
		t.Fatalf("ApplyColoring() error = %v", err)
	}
	if component.removed != 2 {
		t.Errorf("removed %d representations, want 2", component.removed)
	}
}
