// Package overlay adjusts field definitions per entity before a session
// starts. Deployments use overlays to hide, require, relabel-adjacent tweak,
// or reorder admin-authored fields without editing the definitions themselves.
package overlay

import (
	"strings"

	"github.com/goliatone/go-customfields/pkg/schema"
)

// FieldPatch is one adjustment, matched to a definition by label. Pointer
// members distinguish "leave alone" from "set to zero value".
type FieldPatch struct {
	Label       string             `json:"label" yaml:"label"`
	Hide        *bool              `json:"hide,omitempty" yaml:"hide,omitempty"`
	Require     *bool              `json:"require,omitempty" yaml:"require,omitempty"`
	ReadOnly    *bool              `json:"read_only,omitempty" yaml:"read_only,omitempty"`
	Placeholder *string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	HelpText    *string            `json:"help_text,omitempty" yaml:"help_text,omitempty"`
	SortOrder   *int               `json:"sort_order,omitempty" yaml:"sort_order,omitempty"`
	Options     *schema.OptionList `json:"options,omitempty" yaml:"options,omitempty"`
}

// Overlay is the set of patches for one entity kind.
type Overlay struct {
	Entity string       `json:"entity" yaml:"entity"`
	Fields []FieldPatch `json:"fields" yaml:"fields"`
}

// Empty reports whether the overlay carries any patches.
func (o Overlay) Empty() bool {
	return len(o.Fields) == 0
}

// Apply returns a patched copy of defs. Labels match ignoring case and
// surrounding whitespace; a patch whose label matches nothing is ignored so
// overlays survive definition churn.
func (o Overlay) Apply(defs schema.Definitions) schema.Definitions {
	if o.Empty() || len(defs) == 0 {
		return defs
	}
	out := append(schema.Definitions(nil), defs...)
	for _, patch := range o.Fields {
		want := strings.TrimSpace(patch.Label)
		if want == "" {
			continue
		}
		for i := range out {
			if !strings.EqualFold(strings.TrimSpace(out[i].FieldLabel), want) {
				continue
			}
			patchDefinition(&out[i], patch)
		}
	}
	return out
}

func patchDefinition(def *schema.FieldDefinition, patch FieldPatch) {
	if patch.Hide != nil {
		def.IsHidden = *patch.Hide
	}
	if patch.Require != nil {
		def.IsRequired = *patch.Require
	}
	if patch.ReadOnly != nil {
		def.IsReadOnly = *patch.ReadOnly
	}
	if patch.Placeholder != nil {
		def.Placeholder = *patch.Placeholder
	}
	if patch.HelpText != nil {
		def.HelpText = *patch.HelpText
	}
	if patch.SortOrder != nil {
		def.SortOrder = *patch.SortOrder
	}
	if patch.Options != nil {
		def.Options = append(schema.OptionList(nil), *patch.Options...)
	}
}
