// Package openapi derives field definitions from OpenAPI component schemas.
// Entities keep their standard columns in API schemas rather than definition
// documents; deriving definitions from those schemas lets fixed columns and
// admin-authored custom fields flow through the same form pipeline.
package openapi

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-customfields/pkg/entity"
	"github.com/goliatone/go-customfields/pkg/schema"
)

// LookupExtension is the vendor extension naming the lookup source behind a
// property ("x-lookup": "active_user"). Properties carrying it derive as
// lookup fields regardless of their declared type.
const LookupExtension = "x-lookup"

// Derive maps the named component schema of an OpenAPI document onto field
// definitions for the given entity kind. Property names become storage names,
// labels derive from them, the schema's required list sets is_required, and
// sort order follows the sorted property names so derivation is deterministic
// across runs.
//
// Type mapping: boolean to checkbox, number and integer to number, string to
// text unless the format says date, uri, or tel; enums become selects with
// the enum entries as options; arrays whose items enumerate become
// multiselects.
func Derive(data []byte, schemaName string, kind entity.Kind) (schema.Definitions, error) {
	if len(data) == 0 {
		return nil, errors.New("openapi: document is empty")
	}
	if strings.TrimSpace(schemaName) == "" {
		return nil, errors.New("openapi: schema name is required")
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("openapi: unknown entity kind %q", kind)
	}

	loader := &openapi3.Loader{IsExternalRefsAllowed: false}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return nil, errors.New("openapi: document has no component schemas")
	}

	ref, ok := spec.Components.Schemas[schemaName]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("openapi: schema %q not found", schemaName)
	}
	target := ref.Value
	if len(target.Properties) == 0 {
		return nil, fmt.Errorf("openapi: schema %q has no properties", schemaName)
	}

	required := make(map[string]struct{}, len(target.Required))
	for _, name := range target.Required {
		required[name] = struct{}{}
	}

	names := make([]string, 0, len(target.Properties))
	for name := range target.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	defs := make(schema.Definitions, 0, len(names))
	for i, name := range names {
		prop := target.Properties[name]
		if prop == nil || prop.Value == nil {
			continue
		}
		def := defineProperty(kind, name, prop.Value)
		def.SortOrder = i + 1
		if _, ok := required[name]; ok {
			def.IsRequired = true
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func defineProperty(kind entity.Kind, name string, prop *openapi3.Schema) schema.FieldDefinition {
	def := schema.FieldDefinition{
		ID:         fmt.Sprintf("%s-%s", kind, name),
		FieldName:  name,
		FieldLabel: schema.DeriveLabel(name),
		FieldType:  fieldTypeFor(prop),
	}

	switch def.FieldType {
	case schema.FieldTypeSelect:
		def.Options = enumOptions(prop.Enum)
	case schema.FieldTypeMultiSelect:
		if prop.Items != nil && prop.Items.Value != nil {
			def.Options = enumOptions(prop.Items.Value.Enum)
		}
	case schema.FieldTypeLookup:
		def.LookupType = lookupTypeOf(prop.Extensions)
	}

	if prop.Description != "" {
		def.HelpText = prop.Description
	}
	if prop.Default != nil {
		def.DefaultValue = prop.Default
	}
	return def
}

func fieldTypeFor(prop *openapi3.Schema) schema.FieldType {
	if lookupTypeOf(prop.Extensions) != "" {
		return schema.FieldTypeLookup
	}
	if len(prop.Enum) > 0 {
		return schema.FieldTypeSelect
	}

	switch schemaType(prop.Type) {
	case "boolean":
		return schema.FieldTypeCheckbox
	case "number", "integer":
		return schema.FieldTypeNumber
	case "array":
		if prop.Items != nil && prop.Items.Value != nil && len(prop.Items.Value.Enum) > 0 {
			return schema.FieldTypeMultiSelect
		}
		return schema.FieldTypeText
	case "string":
		switch strings.ToLower(prop.Format) {
		case "date", "date-time":
			return schema.FieldTypeDate
		case "uri", "url":
			return schema.FieldTypeURL
		case "tel", "phone":
			return schema.FieldTypePhone
		}
		return schema.FieldTypeText
	}
	return schema.FieldTypeText
}

func schemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func enumOptions(enum []any) schema.OptionList {
	out := make(schema.OptionList, 0, len(enum))
	for _, entry := range enum {
		if s := strings.TrimSpace(fmt.Sprint(entry)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func lookupTypeOf(extensions map[string]any) string {
	raw, ok := extensions[LookupExtension]
	if !ok {
		return ""
	}
	s, _ := raw.(string)
	return strings.TrimSpace(s)
}
