package orchestrator

import "fmt"

// CatalogError reports a catalog that could not be retrieved or parsed.
type CatalogError struct {
	Source string
	Err    error
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("orchestrator: load catalog %q: %v", e.Source, e.Err)
}

func (e *CatalogError) Unwrap() error { return e.Err }

// AssetFetchError reports a local bundle resource (metadata or coloring
// definitions) that could not be fetched. A failed fetch aborts the load
// before any structure request is issued.
type AssetFetchError struct {
	Resource string
	Err      error
}

func (e *AssetFetchError) Error() string {
	return fmt.Sprintf("orchestrator: fetch asset %q: %v", e.Resource, e.Err)
}

func (e *AssetFetchError) Unwrap() error { return e.Err }

// StructureLoadError reports a structure source the engine rejected.
type StructureLoadError struct {
	Source string
	Err    error
}

func (e *StructureLoadError) Error() string {
	return fmt.Sprintf("orchestrator: load structure %q: %v", e.Source, e.Err)
}

func (e *StructureLoadError) Unwrap() error { return e.Err }

// RepresentationSwapError reports a coloring change that failed. Fallback
// is true when the gray recovery representation was applied afterwards.
type RepresentationSwapError struct {
	Scheme   string
	Fallback bool
	Err      error
}

func (e *RepresentationSwapError) Error() string {
	return fmt.Sprintf("orchestrator: apply coloring %q: %v", e.Scheme, e.Err)
}

func (e *RepresentationSwapError) Unwrap() error { return e.Err }
