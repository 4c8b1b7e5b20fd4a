package orchestrator

import (
	"context"

	"github.com/goliatone/go-molview/pkg/catalog"
	"github.com/goliatone/go-molview/pkg/color"
	"github.com/goliatone/go-molview/pkg/engine"
	"github.com/goliatone/go-molview/pkg/protein"
	"github.com/goliatone/go-molview/pkg/render"
)

// loadStructure loads the structure, applies the initial representation,
// and commits the session. Any failure goes through failLoad so no panel
// keeps stale content and no engine component survives into Failed.
func (o *Orchestrator) loadStructure(ctx context.Context, token uint64, descriptor catalog.ProteinDescriptor, source string, options []protein.ColoringOption) error {
	if !o.stage.Ready() {
		o.failLoad(token, descriptor, msgEngineNotReady)
		return &StructureLoadError{Source: source, Err: engine.ErrNotReady}
	}

	if err := o.stage.RemoveAllComponents(); err != nil {
		o.logger("orchestrator: clear stage: %v", err)
	}

	component, err := o.stage.LoadStructure(ctx, source)
	if err != nil {
		o.failLoad(token, descriptor, msgStructureFailed)
		return &StructureLoadError{Source: source, Err: err}
	}

	representation, err := component.AddRepresentation(engine.StyleCartoon, initialColor(options))
	if err != nil {
		o.failLoad(token, descriptor, msgStructureFailed)
		return &StructureLoadError{Source: source, Err: err}
	}

	if err := component.AutoView(); err != nil {
		o.logger("orchestrator: auto view: %v", err)
	}

	if !o.session.commit(token, component, representation) {
		return nil
	}

	o.renderViewport(render.View{Protein: descriptor.Name})
	return nil
}

// initialColor picks the first declared coloring option, falling back to
// uniform gray when none are available.
func initialColor(options []protein.ColoringOption) color.Param {
	if len(options) == 0 {
		return color.Gray()
	}
	first := options[0]
	return color.Resolve(first.SchemeID, first.Params)
}
