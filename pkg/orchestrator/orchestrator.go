// Package orchestrator drives the viewer lifecycle: it loads catalogs,
// resolves protein assets, feeds the graphics engine, and pushes rendered
// fragments to a Surface. Overlapping selections resolve last-write-wins.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-molview/internal/assets"
	"github.com/goliatone/go-molview/pkg/catalog"
	"github.com/goliatone/go-molview/pkg/engine"
	"github.com/goliatone/go-molview/pkg/engine/scene"
	"github.com/goliatone/go-molview/pkg/protein"
	"github.com/goliatone/go-molview/pkg/render"
	"github.com/goliatone/go-molview/pkg/renderers/vanilla"
)

const (
	metadataFile  = "metadata.json"
	coloringFile  = "coloring.json"
	structureFile = "structure.pdb"

	remoteSourcePrefix = "rcsb://"
	remoteSourceName   = "RCSB PDB"
)

const (
	msgLoadingDetails     = "Loading details…"
	msgCatalogFailed      = "The protein catalog could not be loaded."
	msgInvalidDescriptor  = "The selected protein entry is invalid."
	msgDetailsFailed      = "The protein details could not be loaded."
	msgStructureFailed    = "The structure could not be loaded."
	msgEngineNotReady     = "The molecular graphics engine is not initialized."
	msgRestoreFailed      = "The view could not be restored."
	msgCatalogPlaceholder = "Catalog unavailable"
)

// AssetFetcher resolves raw resource bytes for local protein bundles.
// *assets.Fetcher satisfies it; tests substitute fakes.
type AssetFetcher interface {
	Fetch(ctx context.Context, src catalog.Source) ([]byte, error)
}

// SceneSource is the optional contract stages can implement to expose a
// serialized scene document. The orchestrator probes for it when rendering
// the viewport so browser runtimes can replay the scene.
type SceneSource interface {
	SceneJSON() ([]byte, error)
}

// Logger receives diagnostic messages. Defaults to log.Printf.
type Logger func(format string, args ...any)

// BundleSource maps a bundle directory plus resource name to a fetchable
// source. The default treats http(s) paths as URLs and everything else as
// local files.
type BundleSource func(dir, name string) catalog.Source

// Option customises an Orchestrator.
type Option func(*Orchestrator)

// WithStage injects the graphics engine stage.
func WithStage(stage engine.Stage) Option {
	return func(o *Orchestrator) {
		if stage != nil {
			o.stage = stage
		}
	}
}

// WithCatalogLoader injects the catalog loader.
func WithCatalogLoader(loader catalog.Loader) Option {
	return func(o *Orchestrator) {
		if loader != nil {
			o.loader = loader
		}
	}
}

// WithAssetFetcher injects the bundle asset fetcher.
func WithAssetFetcher(fetcher AssetFetcher) Option {
	return func(o *Orchestrator) {
		if fetcher != nil {
			o.fetcher = fetcher
		}
	}
}

// WithRegistry injects a pre-populated renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		if registry != nil {
			o.registry = registry
		}
	}
}

// WithRenderer selects the named renderer from the registry.
func WithRenderer(name string) Option {
	return func(o *Orchestrator) {
		if name != "" {
			o.rendererName = name
		}
	}
}

// WithSurface injects the fragment sink.
func WithSurface(surface Surface) Option {
	return func(o *Orchestrator) {
		if surface != nil {
			o.surface = surface
		}
	}
}

// WithRenderOptions sets the per-render options (theme, endpoints).
func WithRenderOptions(options render.RenderOptions) Option {
	return func(o *Orchestrator) {
		o.renderOptions = options
	}
}

// WithLogger injects a diagnostic logger.
func WithLogger(logger Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithBundleSource overrides how bundle resources resolve to sources.
func WithBundleSource(resolver BundleSource) Option {
	return func(o *Orchestrator) {
		if resolver != nil {
			o.bundleSource = resolver
		}
	}
}

// Orchestrator owns the viewer session. It is safe for concurrent use; the
// most recent LoadProtein call wins when selections overlap.
type Orchestrator struct {
	stage         engine.Stage
	loader        catalog.Loader
	fetcher       AssetFetcher
	registry      *render.Registry
	rendererName  string
	surface       Surface
	renderOptions render.RenderOptions
	logger        Logger
	bundleSource  BundleSource

	session       session
	catalogFailed atomic.Bool
}

// New constructs an Orchestrator, filling unset collaborators with working
// defaults: an in-memory scene stage, a file-based loader, the vanilla
// renderer, and a MemorySurface.
func New(options ...Option) (*Orchestrator, error) {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}

	if err := o.applyDefaults(); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Orchestrator) applyDefaults() error {
	if o.stage == nil {
		o.stage = scene.New()
	}
	if o.loader == nil {
		o.loader = assets.NewCatalogLoader(catalog.NewLoaderOptions())
	}
	if o.fetcher == nil {
		o.fetcher = assets.New(catalog.NewLoaderOptions())
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
	}
	if o.rendererName == "" {
		o.rendererName = "vanilla"
	}
	if !o.registry.Has(o.rendererName) && o.rendererName == "vanilla" {
		renderer, err := vanilla.New()
		if err != nil {
			return fmt.Errorf("orchestrator: configure default renderer: %w", err)
		}
		if err := o.registry.Register(renderer); err != nil {
			return fmt.Errorf("orchestrator: register default renderer: %w", err)
		}
	}
	if !o.registry.Has(o.rendererName) {
		return fmt.Errorf("orchestrator: renderer %q is not registered", o.rendererName)
	}
	if o.surface == nil {
		o.surface = NewMemorySurface()
	}
	if o.logger == nil {
		o.logger = log.Printf
	}
	if o.bundleSource == nil {
		o.bundleSource = defaultBundleSource
	}
	return nil
}

func defaultBundleSource(dir, name string) catalog.Source {
	if strings.HasPrefix(dir, "http://") || strings.HasPrefix(dir, "https://") {
		return catalog.SourceFromURL(strings.TrimSuffix(dir, "/") + "/" + name)
	}
	return catalog.SourceFromFile(path.Join(dir, name))
}

// State reports the lifecycle state of the current load.
func (o *Orchestrator) State() State {
	return o.session.State()
}

// Stage exposes the configured engine stage.
func (o *Orchestrator) Stage() engine.Stage {
	return o.stage
}

// LoadCatalog fetches and parses the protein catalog. Failures surface as
// an info panel error plus an alert, and the error is returned so callers
// can decide whether to retry.
func (o *Orchestrator) LoadCatalog(ctx context.Context, src catalog.Source) (catalog.Catalog, error) {
	cat, err := o.loader.Load(ctx, src)
	if err != nil {
		location := ""
		if src != nil {
			location = src.Location()
		}
		o.catalogFailed.Store(true)
		o.renderInfo(render.View{Notice: msgCatalogFailed})
		o.surface.Alert(msgCatalogFailed)
		return catalog.Catalog{}, &CatalogError{Source: location, Err: err}
	}
	o.catalogFailed.Store(false)
	return cat, nil
}

// LoadProtein runs the selection lifecycle for one descriptor: placeholder
// fragments, asset resolution, structure load, and the final viewport
// render. A newer selection supersedes the call at every checkpoint.
func (o *Orchestrator) LoadProtein(ctx context.Context, descriptor catalog.ProteinDescriptor) error {
	if err := descriptor.Validate(); err != nil {
		o.renderInfo(render.View{Protein: descriptor.Name, Notice: msgInvalidDescriptor})
		o.surface.Alert(msgInvalidDescriptor)
		return fmt.Errorf("orchestrator: load protein: %w", err)
	}

	token := o.session.begin(descriptor)

	if err := o.stage.RemoveAllComponents(); err != nil {
		o.logger("orchestrator: clear stage: %v", err)
	}

	o.renderInfo(render.View{Protein: descriptor.Name, Notice: msgLoadingDetails})
	o.renderControls(render.View{Protein: descriptor.Name}, nil)

	info, options, structureSource, err := o.resolveAssets(ctx, descriptor)
	if err != nil {
		o.failLoad(token, descriptor, msgDetailsFailed)
		return err
	}

	if !o.session.stage(token, info, options) {
		return nil
	}

	o.renderInfo(render.View{
		Protein: descriptor.Name,
		Info:    info.Entries(),
		HasInfo: !info.IsZero(),
	})
	o.renderControls(render.View{Protein: descriptor.Name}, options)

	return o.loadStructure(ctx, token, descriptor, structureSource, options)
}

// resolveAssets produces the info record, coloring options, and structure
// source for a descriptor. Remote descriptors synthesize metadata and use
// the default coloring set; local descriptors fetch both bundle files
// concurrently and abort if either fails.
func (o *Orchestrator) resolveAssets(ctx context.Context, descriptor catalog.ProteinDescriptor) (protein.Info, []protein.ColoringOption, string, error) {
	switch descriptor.Mode() {
	case catalog.ModeRemote:
		info := protein.NewInfo(
			protein.Entry{Key: "name", Value: descriptor.Name},
			protein.Entry{Key: "source", Value: remoteSourceName},
			protein.Entry{Key: "pdbId", Value: descriptor.PDBID},
		)
		return info, protein.DefaultColoringOptions(), remoteSourcePrefix + descriptor.PDBID, nil

	case catalog.ModeLocal:
		var (
			metadataRaw []byte
			coloringRaw []byte
		)

		group, groupCtx := errgroup.WithContext(ctx)
		group.Go(func() error {
			data, err := o.fetcher.Fetch(groupCtx, o.bundleSource(descriptor.Path, metadataFile))
			if err != nil {
				return &AssetFetchError{Resource: metadataFile, Err: err}
			}
			metadataRaw = data
			return nil
		})
		group.Go(func() error {
			data, err := o.fetcher.Fetch(groupCtx, o.bundleSource(descriptor.Path, coloringFile))
			if err != nil {
				return &AssetFetchError{Resource: coloringFile, Err: err}
			}
			coloringRaw = data
			return nil
		})
		if err := group.Wait(); err != nil {
			return protein.Info{}, nil, "", err
		}

		info, err := protein.ParseInfo(metadataRaw)
		if err != nil {
			return protein.Info{}, nil, "", &AssetFetchError{Resource: metadataFile, Err: err}
		}
		parsed, err := protein.ParseColoringOptions(coloringRaw)
		if err != nil {
			return protein.Info{}, nil, "", &AssetFetchError{Resource: coloringFile, Err: err}
		}
		options := protein.ValidColoringOptions(parsed, func(option protein.ColoringOption) {
			o.logger("orchestrator: skipping invalid coloring option %q (scheme %q)", option.Name, option.SchemeID)
		})

		source := o.bundleSource(descriptor.Path, structureFile).Location()
		return info, options, source, nil

	default:
		return protein.Info{}, nil, "", fmt.Errorf("orchestrator: resolve assets: %w", catalog.ErrInvalidDescriptor)
	}
}

// failLoad transitions a still-current load to Failed and tears down its
// surfaces: engine components cleared, info panel showing the failure,
// coloring controls cleared, and the notice repeated in the viewport.
// Superseded loads exit without touching anything.
func (o *Orchestrator) failLoad(token uint64, descriptor catalog.ProteinDescriptor, notice string) {
	if !o.session.fail(token) {
		return
	}
	if err := o.stage.RemoveAllComponents(); err != nil {
		o.logger("orchestrator: clear stage: %v", err)
	}
	o.renderInfo(render.View{Protein: descriptor.Name, Notice: notice})
	o.renderControls(render.View{Protein: descriptor.Name}, nil)
	o.renderViewport(render.View{Protein: descriptor.Name, Notice: notice})
	o.surface.Alert(notice)
}

func (o *Orchestrator) renderer() (render.Renderer, error) {
	return o.registry.Get(o.rendererName)
}

func (o *Orchestrator) renderInfo(view render.View) {
	view.Fragment = render.FragmentInfo
	if markup, ok := o.renderFragment(view); ok {
		o.surface.SetInfo(markup)
	}
}

func (o *Orchestrator) renderControls(view render.View, options []protein.ColoringOption) {
	view.Fragment = render.FragmentControls
	view.Options = options
	if markup, ok := o.renderFragment(view); ok {
		o.surface.SetControls(markup)
	}
}

func (o *Orchestrator) renderViewport(view render.View) {
	view.Fragment = render.FragmentViewport
	if view.Scene == nil {
		view.Scene = o.sceneDocument()
	}
	if markup, ok := o.renderFragment(view); ok {
		o.surface.SetViewport(markup)
	}
}

func (o *Orchestrator) renderFragment(view render.View) ([]byte, bool) {
	renderer, err := o.renderer()
	if err != nil {
		o.logger("orchestrator: resolve renderer: %v", err)
		return nil, false
	}
	markup, err := renderer.Render(context.Background(), view, o.renderOptions)
	if err != nil {
		o.logger("orchestrator: render %s fragment: %v", view.Fragment, err)
		return nil, false
	}
	return markup, true
}

// sceneDocument probes the stage for a serialized scene. Stages without
// the optional contract yield an empty document.
func (o *Orchestrator) sceneDocument() json.RawMessage {
	source, ok := o.stage.(SceneSource)
	if !ok {
		return nil
	}
	data, err := source.SceneJSON()
	if err != nil {
		o.logger("orchestrator: serialize scene: %v", err)
		return nil
	}
	return data
}

// RenderPage renders the full viewer page from the current session plus
// the supplied selector options.
func (o *Orchestrator) RenderPage(ctx context.Context, selector []render.SelectorOption) ([]byte, error) {
	renderer, err := o.renderer()
	if err != nil {
		return nil, err
	}

	state, descriptor, info, options := o.session.snapshot()

	view := render.View{
		Fragment: render.FragmentPage,
		Selector: selector,
		Scene:    o.sceneDocument(),
	}
	if o.catalogFailed.Load() {
		view.Placeholder = msgCatalogPlaceholder
	}
	if state == StateReady {
		view.Protein = descriptor.Name
		view.Info = info.Entries()
		view.HasInfo = !info.IsZero()
		view.Options = options
	}

	return renderer.Render(ctx, view, o.renderOptions)
}
