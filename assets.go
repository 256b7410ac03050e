package customfields

import (
	"io/fs"

	"github.com/goliatone/go-customfields/pkg/renderers/html"
)

// EmbeddedTemplates exposes the built-in HTML control templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}

// AssetsFS exposes the embedded stylesheet bundle so applications can serve
// it without a separate asset build step.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(customfields.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return html.AssetsFS()
}
