package customfields

import (
	"context"
	"fmt"

	"github.com/goliatone/go-customfields/pkg/entity"
	"github.com/goliatone/go-customfields/pkg/form"
	"github.com/goliatone/go-customfields/pkg/lookup"
	"github.com/goliatone/go-customfields/pkg/overlay"
	"github.com/goliatone/go-customfields/pkg/render"
	"github.com/goliatone/go-customfields/pkg/renderers/html"
	"github.com/goliatone/go-customfields/pkg/renderers/tui"
	"github.com/goliatone/go-customfields/pkg/schema"
)

// FieldDefinition mirrors the administrator-authored definition document;
// alias exported via the root package for convenience.
type FieldDefinition = schema.FieldDefinition

// Definitions is an ordered collection of field definitions.
type Definitions = schema.Definitions

// Session drives one form lifecycle over a definition set.
type Session = form.Session

// Control is one resolved node of the control tree.
type Control = form.Control

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface server-side validation errors.
type RenderOptions = render.RenderOptions

// FieldSubset aliases render.FieldSubset for callers rendering a slice of the
// form.
type FieldSubset = render.FieldSubset

// LookupOption is one selectable lookup entry.
type LookupOption = lookup.Option

// NewSession exposes the session constructor from the top-level module.
func NewSession(defs schema.Definitions, options ...form.Option) *form.Session {
	return form.New(defs, options...)
}

// WithEntity seeds the session from a persisted record of the given kind.
func WithEntity(kind entity.Kind, rec entity.Record) form.Option {
	return form.WithEntity(kind, rec)
}

// WithLookup wires the option source behind lookup fields.
func WithLookup(source lookup.Source) form.Option {
	return form.WithLookup(source)
}

// WithOverlay applies a per-entity definition overlay before the session
// seeds.
func WithOverlay(ov overlay.Overlay) form.Option {
	return form.WithOverlay(ov)
}

// WithSessionID pins the session identifier instead of generating one.
func WithSessionID(id string) form.Option {
	return form.WithSessionID(id)
}

// DefaultRegistry returns a registry with the built-in HTML and TUI renderers
// registered under their names.
func DefaultRegistry() (*render.Registry, error) {
	htmlRenderer, err := html.New()
	if err != nil {
		return nil, fmt.Errorf("customfields: build html renderer: %w", err)
	}
	tuiRenderer, err := tui.New()
	if err != nil {
		return nil, fmt.Errorf("customfields: build tui renderer: %w", err)
	}

	registry := render.NewRegistry()
	if err := registry.Register(htmlRenderer); err != nil {
		return nil, err
	}
	if err := registry.Register(tuiRenderer); err != nil {
		return nil, err
	}
	return registry, nil
}

// RenderHTML builds a session for the definitions and renders it with the
// built-in HTML renderer. It is the simplest entry point for callers that
// just want markup output.
func RenderHTML(ctx context.Context, defs schema.Definitions, options ...form.Option) ([]byte, error) {
	renderer, err := html.New()
	if err != nil {
		return nil, err
	}

	session := form.New(defs, options...)
	defer session.Close()

	return renderer.Render(ctx, session, render.RenderOptions{})
}
