// Package fieldtype maps every declared field type onto its control, masking,
// formatting, and validation behaviour. Dispatch is an exhaustive switch over
// the closed type enum; renderers and validators consume the resulting
// Descriptor instead of re-deriving per-type rules.
package fieldtype

import (
	"github.com/goliatone/go-customfields/pkg/schema"
	"github.com/goliatone/go-customfields/pkg/semantic"
	"github.com/goliatone/go-customfields/pkg/values"
)

// ControlKind names the concrete control a field renders as.
type ControlKind string

const (
	ControlText          ControlKind = "text"
	ControlTextArea      ControlKind = "textarea"
	ControlNumber        ControlKind = "number"
	ControlCurrency      ControlKind = "currency"
	ControlPercentage    ControlKind = "percentage"
	ControlPhone         ControlKind = "phone"
	ControlZip           ControlKind = "zip"
	ControlURL           ControlKind = "url"
	ControlDate          ControlKind = "date"
	ControlSelect        ControlKind = "select"
	ControlRadio         ControlKind = "radio"
	ControlMultiSelect   ControlKind = "multiselect"
	ControlCheckboxGroup ControlKind = "checkbox_group"
	ControlLookup        ControlKind = "lookup"
	ControlComposite     ControlKind = "composite"
	ControlCheckbox      ControlKind = "checkbox"
	ControlFile          ControlKind = "file"
	// ControlDisabled marks a dependency-disabled field: an inert placeholder
	// until its controller gains a value.
	ControlDisabled      ControlKind = "disabled"
	// ControlNotConfigured renders the inline notice shown when an
	// option-backed field has no usable options. Schema problems degrade to
	// this state; they never fail the form.
	ControlNotConfigured ControlKind = "not_configured"
)

// MaskFunc reformats raw input as the user types, returning the masked text
// and the preserved caret position.
type MaskFunc func(raw string, cursor int) (string, int)

// NormalizeFunc shapes a committed value on change (mask application, list
// coercion). It never rejects input.
type NormalizeFunc func(def schema.FieldDefinition, v values.Value) values.Value

// FormatFunc shapes a value when the field loses focus (clamping, fixed
// decimal places).
type FormatFunc func(def schema.FieldDefinition, v values.Value) values.Value

// PredicateFunc reports whether the value satisfies the type's rules.
type PredicateFunc func(def schema.FieldDefinition, v values.Value) bool

// MessageFunc renders the user-facing problem for an invalid value.
type MessageFunc func(def schema.FieldDefinition, v values.Value) string

// DisplayFunc renders the read-only display form of a value.
type DisplayFunc func(def schema.FieldDefinition, v values.Value) string

// Descriptor bundles a field type's rendering and input behaviour. Every
// function member is non-nil except Mask, which only masked types carry.
type Descriptor struct {
	Control   ControlKind
	Kind      semantic.Kind
	Mask      MaskFunc
	Normalize NormalizeFunc
	Format    FormatFunc
	Valid     PredicateFunc
	Problem   MessageFunc
	Display   DisplayFunc
}
