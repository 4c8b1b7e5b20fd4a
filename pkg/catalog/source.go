package catalog

import (
	"fmt"
	"net/url"
	"path/filepath"
)

// SourceKind discriminates where a resource lives.
type SourceKind int

const (
	// SourceKindFile reads from the operating system filesystem.
	SourceKindFile SourceKind = iota
	// SourceKindFS reads from an fs.FS supplied via loader options.
	SourceKindFS
	// SourceKindURL fetches over HTTP(S).
	SourceKindURL
)

// Source identifies a catalog, metadata, coloring-options, or structure
// resource. Implementations are value types created through the
// SourceFrom* helpers.
type Source interface {
	Location() string
	Kind() SourceKind
}

type fileSource struct {
	path string
}

func (s fileSource) Location() string { return s.path }
func (s fileSource) Kind() SourceKind { return SourceKindFile }

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct {
	name string
}

func (s fsSource) Location() string { return s.name }
func (s fsSource) Kind() SourceKind { return SourceKindFS }

// SourceFromFS returns a Source identifying a resource inside an fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

type urlSource struct {
	raw string
}

func (s urlSource) Location() string { return s.raw }
func (s urlSource) Kind() SourceKind { return SourceKindURL }

// SourceFromURL parses the supplied URL string and returns a Source. It
// panics if the URL is invalid to surface configuration mistakes early.
func SourceFromURL(raw string) Source {
	if raw == "" {
		panic("catalog: empty URL source")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		panic(fmt.Sprintf("catalog: invalid URL %q: %v", raw, err))
	}
	return urlSource{raw: raw}
}
