package catalog

import (
	"context"
	"io/fs"
	"net/http"
	"time"
)

// Loader fetches protein catalogs from different sources (filesystem,
// fs.FS, HTTP). Implementations live under internal/assets but satisfy
// this contract.
type Loader interface {
	Load(ctx context.Context, src Source) (Catalog, error)
}

// LoaderOptions configures how resources are resolved. The same options
// drive the catalog loader and the per-protein asset fetcher so a viewer
// only configures transport once.
type LoaderOptions struct {
	// FileSystem enables loading from an abstract filesystem. Nil disables
	// fs.FS sources.
	FileSystem fs.FS

	// HTTPClient allows callers to inject custom HTTP behaviour (timeouts,
	// proxies). Nil means HTTP sources are disabled unless
	// AllowHTTPFallback is set.
	HTTPClient *http.Client

	// AllowHTTPFallback toggles a default HTTP client when none is
	// supplied. Keeping this explicit preserves offline-first behaviour.
	AllowHTTPFallback bool

	// RequestTimeout caps remote fetch durations.
	RequestTimeout time.Duration
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem injects an fs.FS implementation for bundled resources.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient injects a custom HTTP client for remote resources.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTPFallback enables HTTP loading using a default client and assigns
// an optional timeout.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTPFallback = true
		opts.RequestTimeout = timeout
	}
}

// NewLoaderOptions applies a set of LoaderOption values and returns the
// resulting configuration.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}

// Construction helpers live in the top-level molview package to prevent
// import cycles.
