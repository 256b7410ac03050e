package form

import (
	"context"

	"github.com/goliatone/go-customfields/pkg/fieldtype"
	"github.com/goliatone/go-customfields/pkg/lookup"
	"github.com/goliatone/go-customfields/pkg/resolve"
	"github.com/goliatone/go-customfields/pkg/schema"
	"github.com/goliatone/go-customfields/pkg/values"
)

// Control is one renderable unit of the form. Path is the storage path edits
// and validation results refer to, dotted for composite members. Display is
// the human-readable form of Value: lists comma-joined, currency prefixed.
type Control struct {
	Definition schema.FieldDefinition
	Path       string
	Kind       fieldtype.ControlKind
	Value      values.Value
	Display    string
	Options    []lookup.Option
	Disabled   bool
	ReadOnly   bool
	Hidden     bool
	Children   []Control
}

// Controls returns the renderable control tree in sort order, composite
// children nested under their parent. Dependency-disabled fields come back as
// inert ControlDisabled placeholders. Lookup options resolve through the
// session's cached source; a fetch failure leaves Options empty so renderers
// can degrade to free text. Hidden fields come back with Hidden set so each
// renderer can decide whether to skip them.
func (s *Session) Controls(ctx context.Context) []Control {
	if ctx == nil {
		ctx = context.Background()
	}
	top := s.defs.TopLevel().Sorted()
	out := make([]Control, 0, len(top))
	for _, def := range top {
		out = append(out, s.buildControl(ctx, def, def.FieldName))
	}
	return out
}

func (s *Session) buildControl(ctx context.Context, def schema.FieldDefinition, path string) Control {
	d := fieldtype.Dispatch(def)
	v := s.store.Get(path)
	c := Control{
		Definition: def,
		Path:       path,
		Kind:       d.Control,
		Value:      v,
		Display:    d.Display(def, v),
		Hidden:     def.IsHidden,
		ReadOnly:   s.readOnlyDef(def),
	}

	if !(resolve.Dependency{}).Enabled(s.store, def) {
		c.Disabled = true
		c.Kind = fieldtype.ControlDisabled
		return c
	}

	if d.Control == fieldtype.ControlLookup {
		if options, err := s.lookups.Options(ctx, def.LookupType); err == nil {
			c.Options = options
		}
	}

	if def.FieldType == schema.FieldTypeComposite {
		subs := s.defs.SubFields(def)
		if len(subs) == 0 {
			c.Kind = fieldtype.ControlNotConfigured
			return c
		}
		c.Children = make([]Control, 0, len(subs))
		for _, sub := range subs {
			c.Children = append(c.Children, s.buildControl(ctx, sub, path+"."+sub.FieldName))
		}
	}

	return c
}
