package schema

import (
	"fmt"
	"sort"
	"strings"
)

// FieldType enumerates the control types an administrator can assign to a
// custom field. The set is closed: dispatch over it is exhaustive, and a type
// outside this list renders as an unconfigured control rather than failing.
type FieldType string

const (
	FieldTypeText          FieldType = "text"
	FieldTypeTextArea      FieldType = "textarea"
	FieldTypeNumber        FieldType = "number"
	FieldTypeCurrency      FieldType = "currency"
	FieldTypePercentage    FieldType = "percentage"
	FieldTypePhone         FieldType = "phone"
	FieldTypeZip           FieldType = "zip"
	FieldTypeURL           FieldType = "url"
	FieldTypeDate          FieldType = "date"
	FieldTypeSelect        FieldType = "select"
	FieldTypeRadio         FieldType = "radio"
	FieldTypeMultiSelect   FieldType = "multiselect"
	FieldTypeMultiCheckbox FieldType = "multicheckbox"
	FieldTypeLookup        FieldType = "lookup"
	FieldTypeMultiLookup   FieldType = "multiselect_lookup"
	FieldTypeComposite     FieldType = "composite"
	FieldTypeAddress       FieldType = "address"
	FieldTypeCheckbox      FieldType = "checkbox"
	FieldTypeFile          FieldType = "file"
)

var knownFieldTypes = map[FieldType]struct{}{
	FieldTypeText: {}, FieldTypeTextArea: {}, FieldTypeNumber: {},
	FieldTypeCurrency: {}, FieldTypePercentage: {}, FieldTypePhone: {},
	FieldTypeZip: {}, FieldTypeURL: {}, FieldTypeDate: {},
	FieldTypeSelect: {}, FieldTypeRadio: {}, FieldTypeMultiSelect: {},
	FieldTypeMultiCheckbox: {}, FieldTypeLookup: {}, FieldTypeMultiLookup: {},
	FieldTypeComposite: {}, FieldTypeAddress: {}, FieldTypeCheckbox: {},
	FieldTypeFile: {},
}

// Valid reports whether t is one of the known field types.
func (t FieldType) Valid() bool {
	_, ok := knownFieldTypes[t]
	return ok
}

// Multi reports whether values of this type hold an ordered list rather than
// a scalar.
func (t FieldType) Multi() bool {
	switch t {
	case FieldTypeMultiSelect, FieldTypeMultiCheckbox, FieldTypeMultiLookup:
		return true
	}
	return false
}

// HasOptions reports whether the type renders admin-authored options.
func (t FieldType) HasOptions() bool {
	switch t {
	case FieldTypeSelect, FieldTypeRadio, FieldTypeMultiSelect, FieldTypeMultiCheckbox:
		return true
	}
	return false
}

// Lookup reports whether options arrive from a lookup source instead of the
// definition document.
func (t FieldType) Lookup() bool {
	return t == FieldTypeLookup || t == FieldTypeMultiLookup
}

// FieldDefinition is one administrator-authored field. FieldName is the
// internal storage key; FieldLabel doubles as the display string and the
// submission payload key. The label, not the name, is the persistence
// contract with downstream consumers.
type FieldDefinition struct {
	ID                 string            `json:"id" yaml:"id"`
	FieldName          string            `json:"field_name" yaml:"field_name"`
	FieldLabel         string            `json:"field_label" yaml:"field_label"`
	FieldType          FieldType         `json:"field_type" yaml:"field_type"`
	IsRequired         bool              `json:"is_required" yaml:"is_required"`
	IsHidden           bool              `json:"is_hidden" yaml:"is_hidden"`
	IsReadOnly         bool              `json:"is_read_only" yaml:"is_read_only"`
	Options            OptionList        `json:"options,omitempty" yaml:"options,omitempty"`
	Placeholder        string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	HelpText           string            `json:"help_text,omitempty" yaml:"help_text,omitempty"`
	DefaultValue       any               `json:"default_value,omitempty" yaml:"default_value,omitempty"`
	SortOrder          int               `json:"sort_order" yaml:"sort_order"`
	LookupType         string            `json:"lookup_type,omitempty" yaml:"lookup_type,omitempty"`
	SubFieldIDs        []string          `json:"sub_field_ids,omitempty" yaml:"sub_field_ids,omitempty"`
	DependentOnFieldID string            `json:"dependent_on_field_id,omitempty" yaml:"dependent_on_field_id,omitempty"`
	Metadata           map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// NotConfigured reports whether the definition is structurally unusable: an
// option-backed field with no options, or a lookup field that names no lookup
// type. Such fields render a notice instead of an input and never block
// submission.
func (f FieldDefinition) NotConfigured() bool {
	if f.FieldType.HasOptions() && len(f.Options) == 0 {
		return true
	}
	if f.FieldType.Lookup() && strings.TrimSpace(f.LookupType) == "" {
		return true
	}
	return false
}

// Definitions is an ordered collection of field definitions.
type Definitions []FieldDefinition

// Sorted returns a copy ordered by ascending SortOrder. Ties keep their
// declaration order so admin intent survives duplicate sort keys.
func (d Definitions) Sorted() Definitions {
	out := append(Definitions(nil), d...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SortOrder < out[j].SortOrder
	})
	return out
}

// ByID returns the definition with the given ID.
func (d Definitions) ByID(id string) (FieldDefinition, bool) {
	for _, def := range d {
		if def.ID == id {
			return def, true
		}
	}
	return FieldDefinition{}, false
}

// ByName returns the definition with the given storage name.
func (d Definitions) ByName(name string) (FieldDefinition, bool) {
	for _, def := range d {
		if def.FieldName == name {
			return def, true
		}
	}
	return FieldDefinition{}, false
}

// ByLabel returns the first definition whose label matches, ignoring case and
// surrounding whitespace.
func (d Definitions) ByLabel(label string) (FieldDefinition, bool) {
	want := strings.TrimSpace(label)
	for _, def := range d {
		if strings.EqualFold(strings.TrimSpace(def.FieldLabel), want) {
			return def, true
		}
	}
	return FieldDefinition{}, false
}

// SubFields resolves parent's SubFieldIDs in declared order. Unknown IDs are
// skipped silently so a stale reference degrades instead of failing the form.
func (d Definitions) SubFields(parent FieldDefinition) Definitions {
	if len(parent.SubFieldIDs) == 0 {
		return nil
	}
	out := make(Definitions, 0, len(parent.SubFieldIDs))
	for _, id := range parent.SubFieldIDs {
		if def, ok := d.ByID(id); ok {
			out = append(out, def)
		}
	}
	return out
}

// TopLevel returns the definitions that are not referenced as sub-fields of a
// composite. These are the entries walked by resolvers, validation, and
// submission; sub-fields are reached through their parent.
func (d Definitions) TopLevel() Definitions {
	nested := map[string]struct{}{}
	for _, def := range d {
		for _, id := range def.SubFieldIDs {
			nested[id] = struct{}{}
		}
	}
	out := make(Definitions, 0, len(d))
	for _, def := range d {
		if _, ok := nested[def.ID]; ok && def.ID != "" {
			continue
		}
		out = append(out, def)
	}
	return out
}

// Validate performs structural checks over the collection: storage names must
// be present and unique, and sub-field or dependency references must resolve.
// Callers may treat the error as advisory and still render best-effort.
func (d Definitions) Validate() error {
	seen := map[string]string{}
	for _, def := range d {
		name := strings.TrimSpace(def.FieldName)
		if name == "" {
			return fmt.Errorf("schema: definition %q has no field_name", def.FieldLabel)
		}
		if prior, dup := seen[name]; dup {
			return fmt.Errorf("schema: field_name %q declared by both %q and %q", name, prior, def.FieldLabel)
		}
		seen[name] = def.FieldLabel

		for _, id := range def.SubFieldIDs {
			if _, ok := d.ByID(id); !ok {
				return fmt.Errorf("schema: %q references unknown sub field %q", def.FieldLabel, id)
			}
		}
		if id := def.DependentOnFieldID; id != "" {
			if id == def.ID {
				return fmt.Errorf("schema: %q depends on itself", def.FieldLabel)
			}
			if _, ok := d.ByID(id); !ok {
				return fmt.Errorf("schema: %q depends on unknown field %q", def.FieldLabel, id)
			}
		}
	}
	return nil
}
