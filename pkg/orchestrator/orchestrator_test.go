package orchestrator_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/goliatone/go-molview/pkg/catalog"
	"github.com/goliatone/go-molview/pkg/engine/scene"
	"github.com/goliatone/go-molview/pkg/orchestrator"
	"github.com/goliatone/go-molview/pkg/protein"
	"github.com/goliatone/go-molview/pkg/render"
)

type fetchGate struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

type fakeFetcher struct {
	mu    sync.Mutex
	files map[string][]byte
	gates map[string]*fetchGate
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		files: map[string][]byte{},
		gates: map[string]*fetchGate{},
	}
}

func (f *fakeFetcher) put(location string, data string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[location] = []byte(data)
}

// gate makes fetches of location block until release closes. started closes
// once a fetch reaches the gate.
func (f *fakeFetcher) gate(location string) (started <-chan struct{}, release chan struct{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g := &fetchGate{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	f.gates[location] = g
	return g.started, g.release
}

func (f *fakeFetcher) Fetch(ctx context.Context, src catalog.Source) ([]byte, error) {
	f.mu.Lock()
	gate := f.gates[src.Location()]
	f.mu.Unlock()

	if gate != nil {
		gate.once.Do(func() { close(gate.started) })
		select {
		case <-gate.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.files[src.Location()]
	if !ok {
		return nil, fmt.Errorf("fetch %q: not found", src.Location())
	}
	return append([]byte(nil), data...), nil
}

func discardLogger(string, ...any) {}

func newOrchestrator(t *testing.T, options ...orchestrator.Option) (*orchestrator.Orchestrator, *orchestrator.MemorySurface, *scene.Stage) {
	t.Helper()
	surface := orchestrator.NewMemorySurface()
	stage := scene.New()
	base := []orchestrator.Option{
		orchestrator.WithStage(stage),
		orchestrator.WithSurface(surface),
		orchestrator.WithLogger(discardLogger),
	}
	orc, err := orchestrator.New(append(base, options...)...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return orc, surface, stage
}

func TestLoadProteinRemote(t *testing.T) {
	orc, surface, stage := newOrchestrator(t)

	descriptor := catalog.ProteinDescriptor{Name: "Crambin", PDBID: "1CRN"}
	if err := orc.LoadProtein(context.Background(), descriptor); err != nil {
		t.Fatalf("LoadProtein() error = %v", err)
	}

	if got := orc.State(); got != orchestrator.StateReady {
		t.Errorf("State() = %v, want %v", got, orchestrator.StateReady)
	}
	if got := stage.ComponentCount(); got != 1 {
		t.Errorf("ComponentCount() = %d, want 1", got)
	}
	if doc := stage.Snapshot(); doc.Source != "rcsb://1CRN" {
		t.Errorf("Snapshot().Source = %q, want %q", doc.Source, "rcsb://1CRN")
	}

	info := surface.Info()
	for _, want := range []string{"Crambin", "RCSB PDB", "1CRN"} {
		if !strings.Contains(info, want) {
			t.Errorf("info panel missing %q:\n%s", want, info)
		}
	}

	controls := surface.Controls()
	if got := strings.Count(controls, "data-molview-scheme="); got != 4 {
		t.Errorf("controls rendered %d scheme buttons, want 4:\n%s", got, controls)
	}
	for _, scheme := range []string{"chainid", "residueindex", "bfactor", "uniform"} {
		if !strings.Contains(controls, fmt.Sprintf("data-molview-scheme=%q", scheme)) {
			t.Errorf("controls missing scheme %q", scheme)
		}
	}

	if viewport := surface.Viewport(); !strings.Contains(viewport, "rcsb://1CRN") {
		t.Errorf("viewport missing scene source:\n%s", viewport)
	}
}

func TestLoadProteinLocal(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.put("bundles/crambin/metadata.json", `{"name":"Crambin","organism":"Crambe abyssinica","resolution":1.5}`)
	fetcher.put("bundles/crambin/coloring.json", `[
		{"name":"By Chain","schemeId":"chainid"},
		{"name":"","schemeId":"broken"},
		{"name":"Uniform Gray","schemeId":"uniform","params":{"value":"gray"}}
	]`)

	orc, surface, stage := newOrchestrator(t, orchestrator.WithAssetFetcher(fetcher))

	descriptor := catalog.ProteinDescriptor{Name: "Crambin", Path: "bundles/crambin"}
	if err := orc.LoadProtein(context.Background(), descriptor); err != nil {
		t.Fatalf("LoadProtein() error = %v", err)
	}

	if got := orc.State(); got != orchestrator.StateReady {
		t.Errorf("State() = %v, want %v", got, orchestrator.StateReady)
	}
	if doc := stage.Snapshot(); doc.Source != "bundles/crambin/structure.pdb" {
		t.Errorf("Snapshot().Source = %q", doc.Source)
	}

	info := surface.Info()
	for _, want := range []string{"Organism", "Crambe abyssinica", "1.5"} {
		if !strings.Contains(info, want) {
			t.Errorf("info panel missing %q:\n%s", want, info)
		}
	}

	controls := surface.Controls()
	if got := strings.Count(controls, "data-molview-scheme="); got != 2 {
		t.Errorf("controls rendered %d scheme buttons, want 2 (invalid entry skipped):\n%s", got, controls)
	}
}

func TestLoadProteinLocalFetchFailureAborts(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.put("bundles/crambin/metadata.json", `{"name":"Crambin"}`)
	// coloring.json missing

	orc, surface, stage := newOrchestrator(t, orchestrator.WithAssetFetcher(fetcher))

	descriptor := catalog.ProteinDescriptor{Name: "Crambin", Path: "bundles/crambin"}
	err := orc.LoadProtein(context.Background(), descriptor)
	if err == nil {
		t.Fatal("LoadProtein() expected error")
	}

	var fetchErr *orchestrator.AssetFetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("LoadProtein() error = %v, want *AssetFetchError", err)
	}
	if fetchErr.Resource != "coloring.json" {
		t.Errorf("AssetFetchError.Resource = %q, want coloring.json", fetchErr.Resource)
	}

	if got := orc.State(); got != orchestrator.StateFailed {
		t.Errorf("State() = %v, want %v", got, orchestrator.StateFailed)
	}
	if got := stage.ComponentCount(); got != 0 {
		t.Errorf("ComponentCount() = %d, want 0 (no structure request after asset failure)", got)
	}
	if info := surface.Info(); !strings.Contains(info, "The protein details could not be loaded.") {
		t.Errorf("info panel missing failure notice:\n%s", info)
	}
	if alerts := surface.Alerts(); len(alerts) == 0 {
		t.Error("expected an alert after asset fetch failure")
	}
}

func TestLoadProteinInvalidDescriptor(t *testing.T) {
	orc, surface, _ := newOrchestrator(t)

	err := orc.LoadProtein(context.Background(), catalog.ProteinDescriptor{Name: "Mystery"})
	if err == nil {
		t.Fatal("LoadProtein() expected error")
	}
	if !errors.Is(err, catalog.ErrInvalidDescriptor) {
		t.Errorf("LoadProtein() error = %v, want ErrInvalidDescriptor", err)
	}
	if alerts := surface.Alerts(); len(alerts) != 1 {
		t.Errorf("Alerts() = %v, want one invalid-descriptor alert", alerts)
	}
}

func TestLoadProteinStructureFailure(t *testing.T) {
	stage := scene.New(scene.WithSourceCheck(func(ctx context.Context, source string) error {
		return errors.New("unreachable")
	}))
	surface := orchestrator.NewMemorySurface()
	orc, err := orchestrator.New(
		orchestrator.WithStage(stage),
		orchestrator.WithSurface(surface),
		orchestrator.WithLogger(discardLogger),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	loadErr := orc.LoadProtein(context.Background(), catalog.ProteinDescriptor{Name: "Crambin", PDBID: "1CRN"})
	if loadErr == nil {
		t.Fatal("LoadProtein() expected error")
	}

	var structErr *orchestrator.StructureLoadError
	if !errors.As(loadErr, &structErr) {
		t.Fatalf("LoadProtein() error = %v, want *StructureLoadError", loadErr)
	}
	if got := orc.State(); got != orchestrator.StateFailed {
		t.Errorf("State() = %v, want %v", got, orchestrator.StateFailed)
	}
	if viewport := surface.Viewport(); !strings.Contains(viewport, "The structure could not be loaded.") {
		t.Errorf("viewport missing failure notice:\n%s", viewport)
	}
	info := surface.Info()
	if !strings.Contains(info, "The structure could not be loaded.") {
		t.Errorf("info panel missing failure notice:\n%s", info)
	}
	if strings.Contains(info, "RCSB PDB") {
		t.Errorf("info panel should not keep the resolved details after failure:\n%s", info)
	}
	controls := surface.Controls()
	if got := strings.Count(controls, "data-molview-scheme="); got != 0 {
		t.Errorf("controls not cleared after structure failure: %d buttons remain:\n%s", got, controls)
	}
	if !strings.Contains(controls, "No coloring options available") {
		t.Errorf("controls missing the empty notice after failure:\n%s", controls)
	}
}

func TestLoadProteinClearsStageOnEntry(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.put("bundles/second/metadata.json", `{"name":"Second"}`)
	fetcher.put("bundles/second/coloring.json", `[{"name":"By Chain","schemeId":"chainid"}]`)

	started, release := fetcher.gate("bundles/second/metadata.json")

	orc, _, stage := newOrchestrator(t, orchestrator.WithAssetFetcher(fetcher))

	if err := orc.LoadProtein(context.Background(), catalog.ProteinDescriptor{Name: "First", PDBID: "1CRN"}); err != nil {
		t.Fatalf("LoadProtein(first) error = %v", err)
	}
	if got := stage.ComponentCount(); got != 1 {
		t.Fatalf("ComponentCount() = %d after first load, want 1", got)
	}

	done := make(chan error, 1)
	go func() {
		done <- orc.LoadProtein(context.Background(), catalog.ProteinDescriptor{Name: "Second", Path: "bundles/second"})
	}()

	<-started

	// Entering Loading must clear the previous structure before the
	// fetches suspend, not after they resolve.
	if got := stage.ComponentCount(); got != 0 {
		t.Errorf("ComponentCount() = %d during second load's fetch, want 0", got)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("LoadProtein(second) error = %v", err)
	}

	if got := stage.ComponentCount(); got != 1 {
		t.Errorf("ComponentCount() = %d after second load, want 1", got)
	}
	if doc := stage.Snapshot(); doc.Source != "bundles/second/structure.pdb" {
		t.Errorf("Snapshot().Source = %q", doc.Source)
	}
}

func TestLoadProteinLastWriteWins(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.put("bundles/slow/metadata.json", `{"name":"Slow"}`)
	fetcher.put("bundles/slow/coloring.json", `[{"name":"By Chain","schemeId":"chainid"}]`)
	fetcher.put("bundles/fast/metadata.json", `{"name":"Fast"}`)
	fetcher.put("bundles/fast/coloring.json", `[{"name":"By Chain","schemeId":"chainid"}]`)

	started, release := fetcher.gate("bundles/slow/metadata.json")

	orc, surface, stage := newOrchestrator(t, orchestrator.WithAssetFetcher(fetcher))

	done := make(chan error, 1)
	go func() {
		done <- orc.LoadProtein(context.Background(), catalog.ProteinDescriptor{Name: "Slow", Path: "bundles/slow"})
	}()

	<-started

	if err := orc.LoadProtein(context.Background(), catalog.ProteinDescriptor{Name: "Fast", Path: "bundles/fast"}); err != nil {
		t.Fatalf("LoadProtein(fast) error = %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("LoadProtein(slow) error = %v", err)
	}

	if got := orc.State(); got != orchestrator.StateReady {
		t.Errorf("State() = %v, want %v", got, orchestrator.StateReady)
	}
	if doc := stage.Snapshot(); doc.Source != "bundles/fast/structure.pdb" {
		t.Errorf("Snapshot().Source = %q, want the later selection to win", doc.Source)
	}
	if info := surface.Info(); !strings.Contains(info, "Fast") {
		t.Errorf("info panel should show the later selection:\n%s", info)
	}
}

func TestApplyColoringWithoutStructureIsNoOp(t *testing.T) {
	orc, surface, _ := newOrchestrator(t)

	err := orc.ApplyColoring(context.Background(), protein.ColoringOption{Name: "By Chain", SchemeID: "chainid"})
	if err != nil {
		t.Fatalf("ApplyColoring() error = %v", err)
	}
	if alerts := surface.Alerts(); len(alerts) != 0 {
		t.Errorf("Alerts() = %v, want none", alerts)
	}
}

func TestApplyColoringSwapsRepresentation(t *testing.T) {
	orc, _, stage := newOrchestrator(t)

	if err := orc.LoadProtein(context.Background(), catalog.ProteinDescriptor{Name: "Crambin", PDBID: "1CRN"}); err != nil {
		t.Fatalf("LoadProtein() error = %v", err)
	}

	option := protein.ColoringOption{
		Name:     "By B-Factor",
		SchemeID: "bfactor",
		Params:   map[string]any{"domain": []any{0.0, 100.0}},
	}
	if err := orc.ApplyColoring(context.Background(), option); err != nil {
		t.Fatalf("ApplyColoring() error = %v", err)
	}

	doc := stage.Snapshot()
	if got := len(doc.Representations); got != 1 {
		t.Fatalf("Snapshot() has %d representations, want 1", got)
	}
	if got := doc.Representations[0].Color.Scheme(); got != "bfactor" {
		t.Errorf("representation scheme = %q, want bfactor", got)
	}
}

func TestLoadCatalogFailure(t *testing.T) {
	loader := catalogLoaderFunc(func(ctx context.Context, src catalog.Source) (catalog.Catalog, error) {
		return catalog.Catalog{}, errors.New("boom")
	})
	orc, surface, _ := newOrchestrator(t, orchestrator.WithCatalogLoader(loader))

	_, err := orc.LoadCatalog(context.Background(), catalog.SourceFromFile("catalog.json"))
	if err == nil {
		t.Fatal("LoadCatalog() expected error")
	}
	var catErr *orchestrator.CatalogError
	if !errors.As(err, &catErr) {
		t.Fatalf("LoadCatalog() error = %v, want *CatalogError", err)
	}
	if info := surface.Info(); !strings.Contains(info, "The protein catalog could not be loaded.") {
		t.Errorf("info panel missing catalog failure notice:\n%s", info)
	}
	if alerts := surface.Alerts(); len(alerts) != 1 {
		t.Errorf("Alerts() = %v, want one catalog alert", alerts)
	}
}

type catalogLoaderFunc func(ctx context.Context, src catalog.Source) (catalog.Catalog, error)

func (f catalogLoaderFunc) Load(ctx context.Context, src catalog.Source) (catalog.Catalog, error) {
	return f(ctx, src)
}

func TestRenderPageAfterCatalogFailure(t *testing.T) {
	loader := catalogLoaderFunc(func(ctx context.Context, src catalog.Source) (catalog.Catalog, error) {
		return catalog.Catalog{}, errors.New("boom")
	})
	orc, _, _ := newOrchestrator(t, orchestrator.WithCatalogLoader(loader))

	if _, err := orc.LoadCatalog(context.Background(), catalog.SourceFromFile("catalog.json")); err == nil {
		t.Fatal("LoadCatalog() expected error")
	}

	page, err := orc.RenderPage(context.Background(), nil)
	if err != nil {
		t.Fatalf("RenderPage() error = %v", err)
	}
	if !strings.Contains(string(page), "Catalog unavailable") {
		t.Errorf("RenderPage() missing the selector error placeholder:\n%s", page)
	}
}

func TestRenderPage(t *testing.T) {
	orc, _, _ := newOrchestrator(t)

	if err := orc.LoadProtein(context.Background(), catalog.ProteinDescriptor{Name: "Crambin", PDBID: "1CRN"}); err != nil {
		t.Fatalf("LoadProtein() error = %v", err)
	}

	page, err := orc.RenderPage(context.Background(), []render.SelectorOption{
		{Value: "p0", Label: "Crambin"},
		{Value: "p1", Label: "Hemoglobin"},
	})
	if err != nil {
		t.Fatalf("RenderPage() error = %v", err)
	}
	html := string(page)

	for _, want := range []string{"<!DOCTYPE html>", "Crambin", "Hemoglobin", "rcsb://1CRN", "data-molview-picker"} {
		if !strings.Contains(html, want) {
			t.Errorf("RenderPage() missing %q", want)
		}
	}
}
