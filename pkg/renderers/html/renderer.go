// Package html renders a form session as standalone HTML. Structural markup
// is built directly; leaf inputs render through overridable template partials
// so themes can swap individual controls without replacing the renderer.
package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-customfields/pkg/form"
	"github.com/goliatone/go-customfields/pkg/render"
	rendertemplate "github.com/goliatone/go-customfields/pkg/render/template"
	"github.com/goliatone/go-customfields/pkg/render/template/gotemplate"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	inlineStyles     bool
	stylesheets      []string
}

// WithTemplatesFS supplies an alternate control template bundle via fs.FS. The
// bundle must carry the same templates/controls/*.tmpl layout as the embedded
// one.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads control templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithDefaultStyles inlines the embedded stylesheet into the rendered output.
func WithDefaultStyles() Option {
	return func(cfg *config) {
		cfg.inlineStyles = true
	}
}

// WithStylesheet links an external stylesheet ahead of the form element. Bare
// names resolve through the theme asset resolver when one is configured.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		if href == "" {
			return
		}
		cfg.stylesheets = append(cfg.stylesheets, href)
	}
}

// Renderer emits the HTML document fragment for a session.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	inlineStyles bool
	stylesheets  []string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:    renderer,
		inlineStyles: cfg.inlineStyles,
		stylesheets:  cfg.stylesheets,
	}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render walks the session's control tree and returns the form markup.
func (r *Renderer) Render(ctx context.Context, session *form.Session, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}
	if session == nil {
		return nil, fmt.Errorf("html renderer: session is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	page := &pageBuilder{renderer: r, session: session, options: options}
	out, err := page.build(ctx)
	if err != nil {
		return nil, fmt.Errorf("html renderer: %w", err)
	}
	return []byte(out), nil
}
