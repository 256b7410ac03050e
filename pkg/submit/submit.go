// Package submit maps a session's values into the label-keyed payload the
// surrounding collaborators persist. The same mapper serves the create,
// update, and bulk-update paths; they differ only in how many fields pass
// through it.
package submit

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-customfields/pkg/fieldtype"
	"github.com/goliatone/go-customfields/pkg/schema"
	"github.com/goliatone/go-customfields/pkg/values"
)

// Payload builds the submission payload: one entry per visible top-level
// field, keyed by field label. Hidden fields never appear, with or without a
// value. Dates leave in YYYY-MM-DD regardless of the display form the store
// holds, zips stay strings, multi-valued fields leave as ordered string
// slices, and composites nest a label-keyed map of their sub-fields.
func Payload(defs schema.Definitions, store *values.Store) map[string]any {
	out := make(map[string]any)
	for _, def := range defs.TopLevel().Sorted() {
		if def.IsHidden {
			continue
		}
		out[def.FieldLabel] = fieldValue(defs, def, store, def.FieldName)
	}
	return out
}

// BulkPayload maps one field and raw value through the identical rules, for
// bulk update flows that touch a single field across many records.
func BulkPayload(def schema.FieldDefinition, raw any) (map[string]any, error) {
	if strings.TrimSpace(def.FieldLabel) == "" {
		return nil, fmt.Errorf("submit: field %q has no label", def.FieldName)
	}
	if def.FieldType == schema.FieldTypeComposite {
		return nil, fmt.Errorf("submit: composite field %q cannot be bulk updated", def.FieldLabel)
	}
	v := fieldtype.Dispatch(def).Normalize(def, values.From(raw))
	return map[string]any{def.FieldLabel: scalarValue(def, v)}, nil
}

func fieldValue(defs schema.Definitions, def schema.FieldDefinition, store *values.Store, path string) any {
	if def.FieldType == schema.FieldTypeComposite {
		nested := make(map[string]any)
		for _, sub := range defs.SubFields(def) {
			if sub.IsHidden {
				continue
			}
			nested[sub.FieldLabel] = fieldValue(defs, sub, store, path+"."+sub.FieldName)
		}
		return nested
	}
	return scalarValue(def, store.Get(path))
}

func scalarValue(def schema.FieldDefinition, v values.Value) any {
	switch {
	case def.FieldType == schema.FieldTypeDate:
		return fieldtype.ToStorageDate(v.AsString())
	case def.FieldType == schema.FieldTypeCheckbox:
		return v.AsBool()
	case def.FieldType.Multi():
		items := v.AsList()
		if items == nil {
			items = []string{}
		}
		return items
	default:
		return v.AsString()
	}
}
