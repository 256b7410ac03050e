// Package lookup fetches the selectable options behind lookup-backed fields.
// Sources resolve a lookup type ("active_user", "organization", "us_state")
// into an ordered option list; a per-session cache keeps each type to one
// fetch per form.
package lookup

import (
	"context"
	"errors"
	"fmt"
)

// Option is one selectable entry. Value is what the field stores, Label what
// the control shows.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Source resolves lookup types into options.
type Source interface {
	Options(ctx context.Context, lookupType string) ([]Option, error)
}

// ErrUnknownType reports a lookup type the source does not serve.
var ErrUnknownType = errors.New("lookup: unknown lookup type")

// StaticSource serves fixed option tables keyed by lookup type. It backs
// tests and offline flows.
type StaticSource map[string][]Option

var _ Source = StaticSource(nil)

// Options returns a copy of the table entry for the lookup type.
func (s StaticSource) Options(_ context.Context, lookupType string) ([]Option, error) {
	options, ok := s[lookupType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, lookupType)
	}
	return append([]Option(nil), options...), nil
}
