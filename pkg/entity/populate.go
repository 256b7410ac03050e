package entity

import (
	"strings"

	"github.com/goliatone/go-customfields/pkg/fieldtype"
	"github.com/goliatone/go-customfields/pkg/schema"
	"github.com/goliatone/go-customfields/pkg/values"
)

// Record is a persisted entity as the surrounding collaborators hand it over:
// fixed columns keyed by column name, custom fields keyed by field label.
type Record struct {
	Columns      map[string]any `json:"columns"`
	CustomFields map[string]any `json:"custom_fields"`
}

// Populate loads a record into the store using the two-pass mapping. Pass one
// copies label-keyed values from the custom-field blob. Pass two falls back to
// the kind's standard columns for any field pass one left untouched; it never
// overwrites a pass-one write. Values pass through the field's normalizer on
// the way in, so phones arrive masked and dates arrive in display form.
func Populate(store *values.Store, kind Kind, rec Record) {
	defs := store.Definitions()

	filled := map[string]struct{}{}
	for _, def := range defs {
		raw, ok := byLabel(rec.CustomFields, def.FieldLabel)
		if !ok {
			continue
		}
		if def.FieldType == schema.FieldTypeComposite {
			if populateComposite(store, defs, def, raw) {
				filled[def.FieldName] = struct{}{}
			}
			continue
		}
		v := values.From(raw)
		if v.IsEmpty() {
			continue
		}
		d := fieldtype.Dispatch(def)
		store.Set(def.FieldName, d.Normalize(def, v))
		filled[def.FieldName] = struct{}{}
	}

	for _, def := range defs {
		if _, done := filled[def.FieldName]; done {
			continue
		}
		column, ok := Column(kind, def.FieldLabel)
		if !ok {
			continue
		}
		raw, ok := rec.Columns[column]
		if !ok {
			continue
		}
		v := values.From(raw)
		if v.IsEmpty() {
			continue
		}
		d := fieldtype.Dispatch(def)
		store.Set(def.FieldName, d.Normalize(def, v))
	}
}

// populateComposite writes a composite blob entry through the parent's
// sub-field definitions. The blob nests by sub-field label; the store nests by
// sub-field name.
func populateComposite(store *values.Store, defs schema.Definitions, parent schema.FieldDefinition, raw any) bool {
	nested, ok := raw.(map[string]any)
	if !ok || len(nested) == 0 {
		return false
	}

	wrote := false
	for _, sub := range defs.SubFields(parent) {
		subRaw, ok := byLabel(nested, sub.FieldLabel)
		if !ok {
			continue
		}
		v := values.From(subRaw)
		if v.IsEmpty() {
			continue
		}
		d := fieldtype.Dispatch(sub)
		store.Set(parent.FieldName+"."+sub.FieldName, d.Normalize(sub, v))
		wrote = true
	}
	return wrote
}

// ExtractColumns splits a label-keyed submission payload into standard-column
// updates and the custom-field blob that persists alongside them. Every label
// the kind's table does not claim stays in the custom blob.
func ExtractColumns(kind Kind, payload map[string]any) (columns map[string]any, custom map[string]any) {
	columns = make(map[string]any)
	custom = make(map[string]any)
	for label, v := range payload {
		if column, ok := Column(kind, label); ok {
			columns[column] = v
			continue
		}
		custom[label] = v
	}
	return columns, custom
}

func byLabel(blob map[string]any, label string) (any, bool) {
	if len(blob) == 0 {
		return nil, false
	}
	if v, ok := blob[label]; ok {
		return v, true
	}
	want := strings.TrimSpace(label)
	for key, v := range blob {
		if strings.EqualFold(strings.TrimSpace(key), want) {
			return v, true
		}
	}
	return nil, false
}
