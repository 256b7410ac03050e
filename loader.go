package customfields

import (
	"context"

	"github.com/goliatone/go-customfields/internal/loader"
	"github.com/goliatone/go-customfields/pkg/schema"
)

// NewLoader constructs a definition loader using the internal implementation
// while keeping the concrete type hidden from consumers.
func NewLoader(options ...schema.LoaderOption) schema.Loader {
	cfg := schema.NewLoaderOptions(options...)
	return loader.New(cfg)
}

// LoadDefinitions fetches a definition document from src and decodes it. A
// nil loader falls back to the default offline-only loader.
func LoadDefinitions(ctx context.Context, l schema.Loader, src schema.Source) (schema.Definitions, error) {
	if l == nil {
		l = NewLoader()
	}

	doc, err := l.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	return schema.DecodeDocument(doc)
}
