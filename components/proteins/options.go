package proteins

import (
	"net/http"

	"github.com/goliatone/go-molview/pkg/catalog"
)

type GuardFunc func(r *http.Request) error

type Options struct {
	RoutePath    string
	SearchParam  string
	LimitParam   string
	DefaultLimit int
	MaxLimit     int
	Guard        GuardFunc

	Catalog catalog.Catalog
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:    "/api/proteins",
		SearchParam:  "q",
		LimitParam:   "limit",
		DefaultLimit: 50,
		MaxLimit:     200,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 50
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = 200
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/api/proteins"
	}
	if opts.SearchParam == "" {
		opts.SearchParam = "q"
	}
	if opts.LimitParam == "" {
		opts.LimitParam = "limit"
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithSearchParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SearchParam = name
	}
}

func WithLimitParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.LimitParam = name
	}
}

func WithDefaultLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultLimit = limit
	}
}

func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxLimit = limit
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithCatalog(cat catalog.Catalog) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Catalog = cat
	}
}

func clampLimit(limit int, opts Options) int {
	if limit < 0 {
		return 0
	}
	if limit == 0 {
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		return opts.MaxLimit
	}
	return limit
}
