// Package template declares the engine seam form renderers execute their
// markup through. Renderers depend on the interface alone; the gotemplate
// subpackage carries the default pongo2-backed engine.
package template
