package assets

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-molview/pkg/catalog"
)

// Fetcher resolves raw resource bytes from file, fs.FS, or HTTP sources.
// The catalog loader and the per-protein asset fetcher share it so both
// honour the same transport configuration.
type Fetcher struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
}

// New constructs a Fetcher from pre-resolved options.
func New(options catalog.LoaderOptions) *Fetcher {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Fetcher{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
	}
}

// Fetch loads the raw bytes behind src.
func (f *Fetcher) Fetch(ctx context.Context, src catalog.Source) ([]byte, error) {
	if src == nil {
		return nil, errors.New("assets: source is nil")
	}

	switch src.Kind() {
	case catalog.SourceKindFile:
		return loadFile(ctx, src.Location())
	case catalog.SourceKindFS:
		return loadFromFS(ctx, f.fs, src.Location())
	case catalog.SourceKindURL:
		if !f.allowHTTP {
			return nil, errors.New("assets: http support disabled")
		}
		return loadHTTP(ctx, f.http, src.Location(), f.timeout)
	default:
		return nil, errors.New("assets: unsupported source kind")
	}
}

// CatalogLoader implements catalog.Loader on top of a Fetcher.
type CatalogLoader struct {
	fetcher *Fetcher
}

// Ensure the implementation satisfies the public interface.
var _ catalog.Loader = (*CatalogLoader)(nil)

// NewCatalogLoader constructs a catalog loader from pre-resolved options.
func NewCatalogLoader(options catalog.LoaderOptions) *CatalogLoader {
	return &CatalogLoader{fetcher: New(options)}
}

// Load fetches and parses a catalog document.
func (l *CatalogLoader) Load(ctx context.Context, src catalog.Source) (catalog.Catalog, error) {
	data, err := l.fetcher.Fetch(ctx, src)
	if err != nil {
		return catalog.Catalog{}, err
	}
	return catalog.Parse(data)
}
