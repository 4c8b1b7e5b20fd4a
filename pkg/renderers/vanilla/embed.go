package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

const (
	// StylesheetName is the built-in viewer stylesheet asset.
	StylesheetName = "molview-vanilla.css"
	// RuntimeScriptName is the browser bootstrap that replays scene
	// documents against NGL and wires the viewer controls.
	RuntimeScriptName = "molview-viewer.js"
)

// TemplatesFS exposes the embedded template bundle for consumers that want
// to extend the built-in viewer markup.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// AssetsFS exposes the embedded runtime asset bundle (CSS/JS) so callers
// can serve it over HTTP or copy it into their own asset pipeline.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}

func defaultStylesheet() string {
	data, err := fs.ReadFile(embeddedAssets, "assets/"+StylesheetName)
	if err != nil {
		return ""
	}
	return string(data)
}

func viewerRuntime() string {
	data, err := fs.ReadFile(embeddedAssets, "assets/"+RuntimeScriptName)
	if err != nil {
		return ""
	}
	return string(data)
}
