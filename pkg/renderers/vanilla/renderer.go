package vanilla

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-molview/internal/format"
	"github.com/goliatone/go-molview/pkg/render"
	rendertemplate "github.com/goliatone/go-molview/pkg/render/template"
	gotemplate "github.com/goliatone/go-molview/pkg/render/template/gotemplate"
)

const (
	defaultTitle          = "Protein Structure Viewer"
	noDetailsNotice       = "No details available"
	noColoringNotice      = "No coloring options available"
	defaultPlaceholder    = "Select a protein…"
	nglScriptURL          = "https://unpkg.com/ngl@2.1.1/dist/ngl.js"
	templateInfoPanel     = "templates/info_panel.tmpl"
	templateColoringPanel = "templates/coloring_controls.tmpl"
	templateViewport      = "templates/viewport.tmpl"
	templateViewerPage    = "templates/viewer.tmpl"
)

// Option customises the renderer configuration.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Renderer is the built-in HTML viewer renderer. It renders the full page
// shell plus the three replaceable fragments (info panel, coloring
// controls, viewport).
type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

// Ensure the implementation satisfies the render contract.
var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the markup for the requested fragment. An empty
// Fragment renders the full page.
func (r *Renderer) Render(_ context.Context, view render.View, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	switch view.Fragment {
	case render.FragmentInfo:
		return r.renderFragment(templateInfoPanel, infoContext(view))
	case render.FragmentControls:
		return r.renderFragment(templateColoringPanel, controlsContext(view, options))
	case render.FragmentViewport:
		return r.renderFragment(templateViewport, viewportContext(view))
	case render.FragmentPage, "":
		return r.renderPage(view, options)
	default:
		return nil, fmt.Errorf("vanilla renderer: unknown fragment %q", view.Fragment)
	}
}

func (r *Renderer) renderFragment(name string, data map[string]any) ([]byte, error) {
	result, err := r.templates.RenderTemplate(name, data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template %q: %w", name, err)
	}
	return []byte(result), nil
}

func (r *Renderer) renderPage(view render.View, options render.RenderOptions) ([]byte, error) {
	info, err := r.renderFragment(templateInfoPanel, infoContext(view))
	if err != nil {
		return nil, err
	}
	controls, err := r.renderFragment(templateColoringPanel, controlsContext(view, options))
	if err != nil {
		return nil, err
	}
	viewport, err := r.renderFragment(templateViewport, viewportContext(view))
	if err != nil {
		return nil, err
	}

	title := view.Title
	if title == "" {
		title = defaultTitle
	}
	placeholder := view.Placeholder
	if placeholder == "" {
		placeholder = defaultPlaceholder
	}

	var selector []map[string]any
	for _, option := range view.Selector {
		selector = append(selector, map[string]any{
			"value": option.Value,
			"label": option.Label,
		})
	}

	themeCtx := buildThemeContext(options.Theme)

	data := map[string]any{
		"title":            title,
		"protein":          view.Protein,
		"placeholder":      placeholder,
		"selector":         selector,
		"info":             string(info),
		"controls":         string(controls),
		"viewport":         string(viewport),
		"stylesheet":       defaultStylesheet(),
		"runtime":          viewerRuntime(),
		"engineScript":     nglScriptURL,
		"themeName":        themeCtx.Name,
		"themeVariant":     themeCtx.Variant,
		"themeCSSVars":     themeCtx.CSSVarsStyle,
		"loadEndpoint":     options.LoadEndpoint,
		"coloringEndpoint": options.ColoringEndpoint,
	}

	result, err := r.templates.RenderTemplate(templateViewerPage, data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template %q: %w", templateViewerPage, err)
	}
	return []byte(result), nil
}

func infoContext(view render.View) map[string]any {
	entries := make([]map[string]any, 0, len(view.Info))
	for _, entry := range view.Info {
		entries = append(entries, map[string]any{
			"label": format.FormatKey(entry.Key),
			"value": sanitizeValueMarkup(displayValue(entry.Value)),
		})
	}

	notice := view.Notice
	if !view.HasInfo && notice == "" {
		notice = noDetailsNotice
	}

	return map[string]any{
		"hasInfo": view.HasInfo,
		"entries": entries,
		"notice":  notice,
	}
}

func controlsContext(view render.View, options render.RenderOptions) map[string]any {
	controls := make([]map[string]any, 0, len(view.Options))
	for _, option := range view.Options {
		control := map[string]any{
			"name":     option.Name,
			"schemeId": option.SchemeID,
		}
		if len(option.Params) > 0 {
			params, err := json.Marshal(option.Params)
			if err == nil {
				control["params"] = string(params)
			}
		}
		controls = append(controls, control)
	}

	notice := view.Notice
	if len(controls) == 0 && notice == "" {
		notice = noColoringNotice
	}

	return map[string]any{
		"options":  controls,
		"notice":   notice,
		"endpoint": options.ColoringEndpoint,
	}
}

func viewportContext(view render.View) map[string]any {
	return map[string]any{
		"notice": view.Notice,
		"scene":  string(view.Scene),
	}
}
