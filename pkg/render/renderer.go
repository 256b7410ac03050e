// Package render defines the renderer contract over a form session and the
// registry renderers announce themselves through. Output-specific work lives
// in pkg/renderers; this package only brokers between sessions and renderers
// and normalizes server error payloads into something renderers can place.
package render

import (
	"context"

	"github.com/goliatone/go-customfields/pkg/form"
)

// Renderer converts a live session into a byte representation (HTML, JSON,
// terminal output). Renderers read the session through Controls and must not
// mutate it.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, session *form.Session, options RenderOptions) ([]byte, error)
}
