package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data that renderers can use to
// customise their output without mutating the view pipeline.
type RenderOptions struct {
	// Theme carries a resolved go-theme configuration. Renderers surface
	// its tokens and CSS variables in the page shell; nil renders the
	// built-in styling.
	Theme *theme.RendererConfig

	// ColoringEndpoint is the URL coloring controls submit scheme changes
	// to. Empty leaves the controls wired to the client-side runtime only.
	ColoringEndpoint string

	// LoadEndpoint is the URL the selection control submits protein
	// choices to. Empty leaves selection wired to the client-side runtime
	// only.
	LoadEndpoint string
}
