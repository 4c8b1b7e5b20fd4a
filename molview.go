// Package molview generates a browser-based protein structure viewer: a
// catalog-driven picker, an info panel, coloring controls, and a 3D
// viewport backed by an external molecular graphics engine.
package molview

import (
	"context"

	"github.com/goliatone/go-molview/internal/format"
	"github.com/goliatone/go-molview/pkg/catalog"
	"github.com/goliatone/go-molview/pkg/orchestrator"
	"github.com/goliatone/go-molview/pkg/protein"
	"github.com/goliatone/go-molview/pkg/render"
)

// ProteinDescriptor is one catalog entry; alias exported via the root
// package for convenience.
type ProteinDescriptor = catalog.ProteinDescriptor

// Catalog is an ordered list of protein descriptors.
type Catalog = catalog.Catalog

// ColoringOption names one selectable coloring scheme.
type ColoringOption = protein.ColoringOption

// Info is the ordered protein metadata record.
type Info = protein.Info

// RenderOptions describes per-request overrides (theme, endpoints) that
// renderers can use.
type RenderOptions = render.RenderOptions

// Surface receives rendered fragments and alerts.
type Surface = orchestrator.Surface

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module. With no options it wires an in-memory scene stage, a file-based
// loader, and the vanilla renderer.
func NewOrchestrator(options ...orchestrator.Option) (*orchestrator.Orchestrator, error) {
	return orchestrator.New(options...)
}

// LoadAndRender loads the catalog source, selects the named protein, and
// returns the rendered viewer page. It is the simplest entry point for
// callers that just want HTML output.
func LoadAndRender(ctx context.Context, src catalog.Source, proteinName string, options ...orchestrator.Option) ([]byte, error) {
	orc, err := orchestrator.New(options...)
	if err != nil {
		return nil, err
	}

	cat, err := orc.LoadCatalog(ctx, src)
	if err != nil {
		return nil, err
	}

	var selector []render.SelectorOption
	for _, descriptor := range cat.Proteins {
		selector = append(selector, render.SelectorOption{Value: descriptor.Name, Label: descriptor.Name})
	}

	for _, descriptor := range cat.Proteins {
		if descriptor.Name != proteinName {
			continue
		}
		if err := orc.LoadProtein(ctx, descriptor); err != nil {
			return nil, err
		}
		break
	}

	return orc.RenderPage(ctx, selector)
}

// FormatKey converts a camelCase metadata key into its display label.
func FormatKey(key string) string {
	return format.FormatKey(key)
}
