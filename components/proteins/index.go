package proteins

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-molview/pkg/catalog"
	"github.com/goliatone/go-molview/pkg/render"
)

// Option is one selectable catalog entry.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Index assigns stable handles to catalog entries in declaration order and
// resolves them back to descriptors. Handles keep raw descriptors out of
// request payloads.
type Index struct {
	handles     []string
	options     []Option
	descriptors map[string]catalog.ProteinDescriptor
}

// NewIndex builds an Index over the catalog.
func NewIndex(cat catalog.Catalog) *Index {
	idx := &Index{
		descriptors: make(map[string]catalog.ProteinDescriptor, cat.Len()),
	}
	for i, descriptor := range cat.Proteins {
		handle := fmt.Sprintf("p%d", i)
		idx.handles = append(idx.handles, handle)
		idx.options = append(idx.options, Option{Value: handle, Label: descriptor.Name})
		idx.descriptors[handle] = descriptor
	}
	return idx
}

// Len returns the number of indexed entries.
func (idx *Index) Len() int {
	return len(idx.handles)
}

// Resolve returns the descriptor behind a handle.
func (idx *Index) Resolve(handle string) (catalog.ProteinDescriptor, bool) {
	descriptor, ok := idx.descriptors[strings.TrimSpace(handle)]
	return descriptor, ok
}

// Options returns every entry as a selector option, in declaration order.
func (idx *Index) Options() []Option {
	out := make([]Option, len(idx.options))
	copy(out, idx.options)
	return out
}

// SelectorOptions returns the entries in the shape the page renderer
// consumes.
func (idx *Index) SelectorOptions() []render.SelectorOption {
	out := make([]render.SelectorOption, 0, len(idx.options))
	for _, option := range idx.options {
		out = append(out, render.SelectorOption{Value: option.Value, Label: option.Label})
	}
	return out
}

// SearchOptions filters options by a case-insensitive substring match on
// the label. An empty query matches everything. limit caps the result per
// the configured clamps.
func SearchOptions(options []Option, query string, limit int, opts Options) []Option {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return []Option{}
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	results := make([]Option, 0, len(options))
	for _, option := range options {
		if needle != "" && !strings.Contains(strings.ToLower(option.Label), needle) {
			continue
		}
		results = append(results, option)
		if len(results) >= limit {
			break
		}
	}
	return results
}
