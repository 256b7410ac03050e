package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	customfields "github.com/goliatone/go-customfields"
	"github.com/goliatone/go-customfields/pkg/form"
	"github.com/goliatone/go-customfields/pkg/lookup"
	"github.com/goliatone/go-customfields/pkg/overlay"
	"github.com/goliatone/go-customfields/pkg/render"
	"github.com/goliatone/go-customfields/pkg/renderers/html"
	"github.com/goliatone/go-customfields/pkg/renderers/tui"
	"github.com/goliatone/go-customfields/pkg/schema"
)

func main() {
	defsPath := flag.String("defs", "definitions.json", "definition document path or URL")
	rendererName := flag.String("renderer", "tui", "renderer to use (tui or html)")
	format := flag.String("format", "json", "tui output format (json, form, or pretty)")
	output := flag.String("output", "", "output file (stdout if empty)")
	title := flag.String("title", "", "form title announced before the walk")
	showHidden := flag.Bool("show-hidden", false, "announce hidden fields instead of skipping them silently")
	lookupURL := flag.String("lookup-url", "", "base URL for HTTP lookup sources")
	overlayDir := flag.String("overlays", "", "directory of per-entity overlay documents")
	entityKind := flag.String("entity", "", "entity kind used to pick an overlay")
	flag.Parse()

	ctx := context.Background()

	src := parseSource(*defsPath)
	if src == nil {
		log.Fatalf("invalid definition source: %q", *defsPath)
	}

	defs, err := customfields.LoadDefinitions(ctx, customfields.NewLoader(loaderOptions(src)...), src)
	if err != nil {
		log.Fatalf("Failed to load definitions: %v", err)
	}
	if err := defs.Validate(); err != nil {
		log.Fatalf("Invalid definitions: %v", err)
	}

	var sessionOptions []form.Option
	if *lookupURL != "" {
		sessionOptions = append(sessionOptions, customfields.WithLookup(
			lookup.NewHTTPSource(*lookupURL, lookup.WithResultsPath("data")),
		))
	}
	if *overlayDir != "" {
		ov, err := loadOverlay(*overlayDir, *entityKind)
		if err != nil {
			log.Fatalf("Failed to load overlays: %v", err)
		}
		sessionOptions = append(sessionOptions, customfields.WithOverlay(ov))
	}

	session := customfields.NewSession(defs, sessionOptions...)
	defer session.Close()

	out, err := renderWith(ctx, *rendererName, *format, session, render.RenderOptions{
		Title:      *title,
		ShowHidden: *showHidden,
	})
	if errors.Is(err, tui.ErrAborted) {
		log.Fatalf("Form walk aborted")
	}
	if err != nil {
		log.Fatalf("Failed to render form: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, out, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Form written to %s\n", *output)
	} else {
		fmt.Println(string(out))
	}
}

func renderWith(ctx context.Context, name, format string, session *form.Session, options render.RenderOptions) ([]byte, error) {
	var (
		renderer render.Renderer
		err      error
	)
	switch name {
	case "tui":
		renderer, err = tui.New(tui.WithOutputFormat(tui.OutputFormat(format)))
	case "html":
		renderer, err = html.New(html.WithDefaultStyles())
	default:
		return nil, fmt.Errorf("unknown renderer %q (have tui, html)", name)
	}
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, session, options)
}

func loaderOptions(src schema.Source) []schema.LoaderOption {
	if src.Kind() == schema.SourceKindURL {
		return []schema.LoaderOption{schema.WithHTTPFallback(30 * time.Second)}
	}
	return nil
}

func loadOverlay(dir, kind string) (overlay.Overlay, error) {
	overlays, err := overlay.Load(os.DirFS(dir), ".")
	if err != nil {
		return overlay.Overlay{}, err
	}
	if kind == "" && len(overlays) == 1 {
		for _, ov := range overlays {
			return ov, nil
		}
	}
	ov, ok := overlays[kind]
	if !ok {
		return overlay.Overlay{}, fmt.Errorf("no overlay for entity %q", kind)
	}
	return ov, nil
}

func parseSource(raw string) schema.Source {
	path := strings.TrimSpace(raw)
	if path == "" {
		return nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		if _, err := url.ParseRequestURI(path); err != nil {
			return nil
		}
		return schema.SourceFromURL(path)
	}
	return schema.SourceFromFile(path)
}
