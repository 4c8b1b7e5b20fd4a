package render

import "context"

// Renderer converts a viewer View into a byte representation (HTML for
// the built-in vanilla renderer, JSON for machine consumers).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view View, options RenderOptions) ([]byte, error)
}
