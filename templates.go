package molview

import (
	"io/fs"

	vanilla "github.com/goliatone/go-molview/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in vanilla renderer templates so
// callers can reuse or extend them without importing the renderer package
// directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// ViewerAssetsFS exposes the built-in stylesheet and browser runtime so Go
// applications can serve them without an asset pipeline.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(molview.ViewerAssetsFS()),
//	  ),
//	)
func ViewerAssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
