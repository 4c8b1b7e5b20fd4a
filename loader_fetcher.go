package molview

import (
	internalAssets "github.com/goliatone/go-molview/internal/assets"
	"github.com/goliatone/go-molview/pkg/catalog"
	"github.com/goliatone/go-molview/pkg/orchestrator"
)

// NewCatalogLoader constructs a catalog loader using the internal
// implementation while keeping the concrete type hidden from consumers.
func NewCatalogLoader(options ...catalog.LoaderOption) catalog.Loader {
	cfg := catalog.NewLoaderOptions(options...)
	return internalAssets.NewCatalogLoader(cfg)
}

// NewAssetFetcher constructs the bundle asset fetcher sharing the same
// transport configuration as the catalog loader.
func NewAssetFetcher(options ...catalog.LoaderOption) orchestrator.AssetFetcher {
	cfg := catalog.NewLoaderOptions(options...)
	return internalAssets.New(cfg)
}
