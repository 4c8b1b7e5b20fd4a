package orchestrator

import (
	"context"
	"fmt"

	"github.com/goliatone/go-molview/pkg/color"
	"github.com/goliatone/go-molview/pkg/engine"
	"github.com/goliatone/go-molview/pkg/protein"
	"github.com/goliatone/go-molview/pkg/render"
)

// ApplyColoring swaps the active representation to the requested scheme.
// With no structure on screen the call is a logged no-op. When the swap
// fails the viewer recovers to uniform gray and the user is alerted; old
// representation handles are never reused after removal.
func (o *Orchestrator) ApplyColoring(_ context.Context, option protein.ColoringOption) error {
	component, representation := o.session.activeComponent()
	if component == nil {
		o.logger("orchestrator: apply coloring %q: no structure loaded", option.SchemeID)
		return nil
	}

	param := color.Resolve(option.SchemeID, option.Params)

	if representation != nil {
		if err := component.RemoveRepresentation(representation); err != nil {
			o.logger("orchestrator: remove representation: %v", err)
		}
	}

	next, err := component.AddRepresentation(engine.StyleCartoon, param)
	if err != nil {
		return o.recoverColoring(component, option, err)
	}

	o.session.swapRepresentation(component, next)
	o.renderViewport(render.View{})
	return nil
}

// recoverColoring restores a usable view after a failed scheme swap by
// applying the uniform gray representation.
func (o *Orchestrator) recoverColoring(component engine.Component, option protein.ColoringOption, cause error) error {
	name := option.Name
	if name == "" {
		name = option.SchemeID
	}
	o.surface.Alert(fmt.Sprintf("The %q coloring scheme could not be applied. Reverting to uniform gray.", name))

	fallback, err := component.AddRepresentation(engine.StyleCartoon, color.Gray())
	if err != nil {
		o.logger("orchestrator: gray fallback failed: %v", err)
		o.surface.Alert(msgRestoreFailed)
		o.session.swapRepresentation(component, nil)
		return &RepresentationSwapError{Scheme: option.SchemeID, Err: cause}
	}

	o.session.swapRepresentation(component, fallback)
	o.renderViewport(render.View{})
	return &RepresentationSwapError{Scheme: option.SchemeID, Fallback: true, Err: cause}
}
